package repository

import (
	"context"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// TxManager runs fn inside one database transaction. The transaction travels
// on the context passed to fn and every repository called with that context
// joins it. Nested calls reuse the outer transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Sequencer hands out document sequence numbers. Next must be called inside
// the transaction that inserts the document: the counter row stays locked
// until that transaction ends, and a number is never issued twice.
type Sequencer interface {
	Next(ctx context.Context, docType enum.DocumentType, year int) (int64, error)
}

//go:generate mockgen -destination=../../mocks/mock_locker.go -package=mocks . Locker

// Locker serializes work on a key across requests (and instances when backed
// by redis). The returned release func must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
