package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/logger"
	shelferrors "github.com/alexisbeaulieu97/shelf/pkg/errors"
)

const pgUniqueViolation = "23505"

// conflictOnUnique turns a unique index violation into the same conflict the
// pre-insert checks report. Concurrent writers that both pass the check are
// caught here.
func conflictOnUnique(err error, resource, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return shelferrors.NewConflictError(resource, message)
	}
	return err
}

// PostgresStore persists the catalogue in PostgreSQL.
type PostgresStore struct {
	db  *sqlx.DB
	log *logger.Logger
}

// OpenPostgres connects to dsn and applies pending migrations.
func OpenPostgres(ctx context.Context, dsn string, log *logger.Logger) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewPostgresStore(db, log), nil
}

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sqlx.DB, log *logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

// DB exposes the underlying pool.
func (p *PostgresStore) DB() *sqlx.DB {
	return p.db
}

// WithTx implements Repository.
func (p *PostgresStore) WithTx(ctx context.Context, fn func(Tx) error) error {
	op := "PostgresStore.WithTx"
	log := p.log.WithFields(map[string]any{"op": op, "rqID": middleware.GetReqID(ctx)})

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error(err, "Failed to begin transaction")
		return err
	}

	if err := fn(&postgresTx{ctx: ctx, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error(rbErr, "Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error(err, "Failed to commit transaction")
		return err
	}

	log.Debug("Transaction committed")
	return nil
}

// Ping implements Repository.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close implements Repository.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}

type postgresTx struct {
	ctx context.Context
	tx  *sqlx.Tx
}

func (t *postgresTx) ListBooks() ([]domain.Book, error) {
	out := []domain.Book{}
	err := t.tx.SelectContext(t.ctx, &out, `SELECT id, title, author FROM books ORDER BY id ASC`)
	return out, err
}

func (t *postgresTx) GetBook(id domain.ID) (domain.Book, bool, error) {
	var book domain.Book
	err := t.tx.GetContext(t.ctx, &book, `SELECT id, title, author FROM books WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, false, nil
	}
	return book, err == nil, err
}

func (t *postgresTx) BookExists(title, author string, excludeID domain.ID) (bool, error) {
	var exists bool
	err := t.tx.GetContext(t.ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM books
			WHERE lower(title) = lower($1) AND lower(author) = lower($2) AND id <> $3
		)`, title, author, excludeID)
	return exists, err
}

func (t *postgresTx) InsertBook(title, author string) (domain.Book, error) {
	var book domain.Book
	err := t.tx.GetContext(t.ctx, &book,
		`INSERT INTO books (title, author) VALUES ($1, $2) RETURNING id, title, author`, title, author)
	return book, conflictOnUnique(err, "book", msgBookExists)
}

func (t *postgresTx) SaveBook(book domain.Book) error {
	_, err := t.tx.NamedExecContext(t.ctx, `UPDATE books SET title = :title, author = :author WHERE id = :id`, book)
	return conflictOnUnique(err, "book", msgAnotherBookExists)
}

func (t *postgresTx) DeleteBook(id domain.ID) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}

func (t *postgresTx) ListAuthors() ([]domain.Author, error) {
	out := []domain.Author{}
	err := t.tx.SelectContext(t.ctx, &out, `SELECT id, name FROM authors ORDER BY id ASC`)
	return out, err
}

func (t *postgresTx) GetAuthor(id domain.ID) (domain.Author, bool, error) {
	var author domain.Author
	err := t.tx.GetContext(t.ctx, &author, `SELECT id, name FROM authors WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Author{}, false, nil
	}
	return author, err == nil, err
}

func (t *postgresTx) FindAuthor(name string, excludeID domain.ID) (domain.Author, bool, error) {
	var author domain.Author
	err := t.tx.GetContext(t.ctx, &author, `
		SELECT id, name FROM authors
		WHERE lower(name) = lower($1) AND id <> $2
		ORDER BY id ASC
		LIMIT 1`, name, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Author{}, false, nil
	}
	return author, err == nil, err
}

func (t *postgresTx) InsertAuthor(name string) (domain.Author, error) {
	var author domain.Author
	err := t.tx.GetContext(t.ctx, &author, `INSERT INTO authors (name) VALUES ($1) RETURNING id, name`, name)
	return author, conflictOnUnique(err, "author", msgAuthorExists)
}

func (t *postgresTx) SaveAuthor(author domain.Author) error {
	_, err := t.tx.NamedExecContext(t.ctx, `UPDATE authors SET name = :name WHERE id = :id`, author)
	return conflictOnUnique(err, "author", msgAnotherAuthorExists)
}

func (t *postgresTx) DeleteAuthor(id domain.ID) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM authors WHERE id = $1`, id)
	return err
}
