package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/mocks"
	"github.com/sangkips/inventra-api/pkg/apperror"
)

func TestTransferCompletionMovesStock(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTransferService(env.tx, env.transfers, env.products, env.warehouses, env.stock)
	ctx := context.Background()

	p := env.product(t, "TRF-1", 10, 5, 2)
	from := env.warehouse(t, "NORTH")
	to := env.warehouse(t, "SOUTH")
	env.stockItem(t, p, from, 10)

	transfer, err := svc.CreateTransfer(ctx, &CreateTransferInput{
		ProductID:       p.ID,
		FromWarehouseID: from.ID,
		ToWarehouseID:   to.ID,
		Quantity:        4,
		Actor:           tester,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(transfer.Number, "TRF-"))
	assert.Equal(t, enum.TransferStatusPending, transfer.Status)
	assert.Equal(t, tester.Name, transfer.RequestedBy)

	// pending transfers do not touch stock
	assert.Equal(t, int64(10), env.onHand(t, p, from))

	_, err = svc.UpdateTransferStatus(ctx, transfer.ID, enum.TransferStatusCompleted)
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.UpdateTransferStatus(ctx, transfer.ID, enum.TransferStatusInTransit)
	require.NoError(t, err)
	done, err := svc.UpdateTransferStatus(ctx, transfer.ID, enum.TransferStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, enum.TransferStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedDate)
	assert.Equal(t, int64(6), env.onHand(t, p, from))
	assert.Equal(t, int64(4), env.onHand(t, p, to))

	dest, err := env.stock.GetForUpdate(ctx, p.ID, to.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dest.MinStock, "new stock item takes the product minimum")

	_, err = svc.UpdateTransferStatus(ctx, transfer.ID, enum.TransferStatusCancelled)
	requireStatus(t, err, http.StatusConflict)
}

func TestTransferCompletionShortOfStock(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTransferService(env.tx, env.transfers, env.products, env.warehouses, env.stock)
	ctx := context.Background()

	p := env.product(t, "TRF-2", 10, 5, 0)
	from := env.warehouse(t, "NORTH")
	to := env.warehouse(t, "SOUTH")
	env.stockItem(t, p, from, 3)

	transfer, err := svc.CreateTransfer(ctx, &CreateTransferInput{
		ProductID:       p.ID,
		FromWarehouseID: from.ID,
		ToWarehouseID:   to.ID,
		Quantity:        5,
	})
	require.NoError(t, err)
	_, err = svc.UpdateTransferStatus(ctx, transfer.ID, enum.TransferStatusInTransit)
	require.NoError(t, err)

	_, err = svc.UpdateTransferStatus(ctx, transfer.ID, enum.TransferStatusCompleted)
	requireStatus(t, err, http.StatusConflict)

	got, err := svc.GetTransfer(ctx, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TransferStatusInTransit, got.Status)
	assert.Equal(t, int64(3), env.onHand(t, p, from))
	assert.Equal(t, int64(0), env.onHand(t, p, to))
}

func TestCreateTransferValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTransferService(env.tx, env.transfers, env.products, env.warehouses, env.stock)
	ctx := context.Background()

	p := env.product(t, "TRF-3", 10, 5, 0)
	w := env.warehouse(t, "ONLY")

	_, err := svc.CreateTransfer(ctx, &CreateTransferInput{
		ProductID:       p.ID,
		FromWarehouseID: w.ID,
		ToWarehouseID:   w.ID,
		Quantity:        0,
	})
	requireStatus(t, err, http.StatusUnprocessableEntity)
}

func TestClosedTransferRejectedBeforeLocking(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTransferService(env.tx, env.transfers, env.products, env.warehouses, env.stock)
	ctx := context.Background()

	p := env.product(t, "TRF-3", 10, 5, 0)
	from := env.warehouse(t, "WEST")
	to := env.warehouse(t, "EAST")
	env.stockItem(t, p, from, 5)

	transfer, err := svc.CreateTransfer(ctx, &CreateTransferInput{
		ProductID:       p.ID,
		FromWarehouseID: from.ID,
		ToWarehouseID:   to.ID,
		Quantity:        2,
		Actor:           tester,
	})
	require.NoError(t, err)
	_, err = svc.UpdateTransferStatus(ctx, transfer.ID, enum.TransferStatusCancelled)
	require.NoError(t, err)

	// the locker has no expectations, any Acquire fails the test
	ctrl := gomock.NewController(t)
	strict := env.tx
	strict.Locker = mocks.NewMockLocker(ctrl)
	svc = NewTransferService(strict, env.transfers, env.products, env.warehouses, env.stock)

	for _, next := range []enum.TransferStatus{enum.TransferStatusCompleted, enum.TransferStatusInTransit} {
		_, err = svc.UpdateTransferStatus(ctx, transfer.ID, next)
		requireStatus(t, err, http.StatusConflict)
		assert.Contains(t, apperror.GetAppError(err).Message, "is cancelled")
	}
	assert.Equal(t, int64(5), env.onHand(t, p, from))
}
