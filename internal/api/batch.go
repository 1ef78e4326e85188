package api

import (
	"context"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
)

// Tally counts the outcome of a batch operation.
type Tally struct {
	OK     int
	Failed int
}

// DeleteFunc removes a single record.
type DeleteFunc func(ctx context.Context, id domain.ID) error

// DeleteSequentially calls del for each id in order, one at a time. A failed
// call is reported to onFailure and does not stop the batch.
func DeleteSequentially(ctx context.Context, ids []domain.ID, del DeleteFunc, onFailure func(domain.ID, error)) Tally {
	var tally Tally
	for _, id := range ids {
		if err := del(ctx, id); err != nil {
			tally.Failed++
			if onFailure != nil {
				onFailure(id, err)
			}
			continue
		}
		tally.OK++
	}
	return tally
}
