package server

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
)

// MemoryStore keeps the catalogue in process memory. A unit of work runs on a
// copy that replaces the live data only when it succeeds.
type MemoryStore struct {
	mu   sync.Mutex
	data memoryData
}

type memoryData struct {
	books        map[domain.ID]domain.Book
	authors      map[domain.ID]domain.Author
	nextBookID   domain.ID
	nextAuthorID domain.ID
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: memoryData{
			books:        make(map[domain.ID]domain.Book),
			authors:      make(map[domain.ID]domain.Author),
			nextBookID:   1,
			nextAuthorID: 1,
		},
	}
}

// WithTx implements Repository.
func (m *MemoryStore) WithTx(ctx context.Context, fn func(Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{data: memoryData{
		books:        maps.Clone(m.data.books),
		authors:      maps.Clone(m.data.authors),
		nextBookID:   m.data.nextBookID,
		nextAuthorID: m.data.nextAuthorID,
	}}
	if err := fn(tx); err != nil {
		return err
	}
	m.data = tx.data
	return nil
}

// Ping implements Repository.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements Repository.
func (m *MemoryStore) Close() error {
	return nil
}

type memoryTx struct {
	data memoryData
}

func (t *memoryTx) ListBooks() ([]domain.Book, error) {
	out := slices.Collect(maps.Values(t.data.books))
	slices.SortFunc(out, func(a, b domain.Book) int { return cmp.Compare(a.ID, b.ID) })
	if out == nil {
		out = []domain.Book{}
	}
	return out, nil
}

func (t *memoryTx) GetBook(id domain.ID) (domain.Book, bool, error) {
	book, ok := t.data.books[id]
	return book, ok, nil
}

func (t *memoryTx) BookExists(title, author string, excludeID domain.ID) (bool, error) {
	for id, book := range t.data.books {
		if id == excludeID {
			continue
		}
		if foldEqual(book.Title, title) && foldEqual(book.Author, author) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memoryTx) InsertBook(title, author string) (domain.Book, error) {
	book := domain.Book{ID: t.data.nextBookID, Title: title, Author: author}
	t.data.books[book.ID] = book
	t.data.nextBookID++
	return book, nil
}

func (t *memoryTx) SaveBook(book domain.Book) error {
	t.data.books[book.ID] = book
	return nil
}

func (t *memoryTx) DeleteBook(id domain.ID) error {
	delete(t.data.books, id)
	return nil
}

func (t *memoryTx) ListAuthors() ([]domain.Author, error) {
	out := slices.Collect(maps.Values(t.data.authors))
	slices.SortFunc(out, func(a, b domain.Author) int { return cmp.Compare(a.ID, b.ID) })
	if out == nil {
		out = []domain.Author{}
	}
	return out, nil
}

func (t *memoryTx) GetAuthor(id domain.ID) (domain.Author, bool, error) {
	author, ok := t.data.authors[id]
	return author, ok, nil
}

func (t *memoryTx) FindAuthor(name string, excludeID domain.ID) (domain.Author, bool, error) {
	ids := slices.Sorted(maps.Keys(t.data.authors))
	for _, id := range ids {
		if id == excludeID {
			continue
		}
		if author := t.data.authors[id]; foldEqual(author.Name, name) {
			return author, true, nil
		}
	}
	return domain.Author{}, false, nil
}

func (t *memoryTx) InsertAuthor(name string) (domain.Author, error) {
	author := domain.Author{ID: t.data.nextAuthorID, Name: name}
	t.data.authors[author.ID] = author
	t.data.nextAuthorID++
	return author, nil
}

func (t *memoryTx) SaveAuthor(author domain.Author) error {
	t.data.authors[author.ID] = author
	return nil
}

func (t *memoryTx) DeleteAuthor(id domain.ID) error {
	delete(t.data.authors, id)
	return nil
}

func foldEqual(a, b string) bool {
	return strings.ToLower(strings.TrimSpace(a)) == strings.ToLower(strings.TrimSpace(b))
}
