package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/numbering"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/phone"
)

// Actor is the authenticated user performing an operation
type Actor struct {
	ID   uuid.UUID
	Name string
}

// Tx bundles what every mutating operation needs: the transaction manager,
// the document sequencer and the keyed locker
type Tx struct {
	Manager   repository.TxManager
	Sequencer repository.Sequencer
	Locker    repository.Locker
}

// run takes the keyed locks, then executes fn in one transaction
func (t Tx) run(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	if len(keys) > 0 {
		release, err := lock.AcquireAll(ctx, t.Locker, keys...)
		if err != nil {
			return err
		}
		defer release()
	}
	return t.Manager.WithinTransaction(ctx, fn)
}

// nextNumber issues the next document number for docType. Must run inside
// the transaction that inserts the document.
func (t Tx) nextNumber(ctx context.Context, docType enum.DocumentType, at time.Time) (string, error) {
	year := at.Year()
	seq, err := t.Sequencer.Next(ctx, docType, year)
	if err != nil {
		return "", err
	}
	return numbering.Format(docType.Prefix(), year, seq), nil
}

// now is the service clock, UTC
var now = func() time.Time {
	return time.Now().UTC()
}

// normalizePhone returns the E.164 form of an optional phone number
func normalizePhone(number *string, region string) (*string, error) {
	if number == nil || strings.TrimSpace(*number) == "" {
		return nil, nil
	}
	e164, err := phone.Normalize(*number, region)
	if err != nil {
		return nil, apperror.NewFieldError("phone", err.Error())
	}
	return &e164, nil
}

// optionalString trims s and maps empty to nil
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
