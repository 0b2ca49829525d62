package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sangkips/inventra-api/pkg/pagination"
)

type ctxKey string

// txKey is the context key for the active transaction
const txKey ctxKey = "gorm_tx"

// withTx adds a transaction to the context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// conn returns the transaction carried by ctx, or db when there is none.
// Every repository query starts here so that calls made inside
// TxManager.WithinTransaction join the same transaction.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// ForUpdate returns a GORM scope that locks the selected rows until the
// transaction ends. SQLite has no row locks and the dialector drops the clause.
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Search returns a GORM scope that matches term case-insensitively against
// any of the columns. LOWER/LIKE keeps it portable across postgres, mysql
// and sqlite.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Paginate returns a GORM scope applying offset and limit
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// orderBy resolves a client supplied sort key against a whitelist
func orderBy(sortBy, sortOrder string, allowed map[string]string, fallback string) string {
	col, ok := allowed[sortBy]
	if !ok {
		return fallback
	}
	if strings.EqualFold(sortOrder, "asc") {
		return col + " ASC"
	}
	return col + " DESC"
}
