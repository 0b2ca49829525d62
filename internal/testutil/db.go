// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/infrastructure/database"
)

// NewDB returns a migrated in-memory SQLite database private to t.
// A single connection serialises every query, so repository calls made
// inside a transaction must carry the transaction context.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: database.NewGormLogger(log, false),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db, log))
	return db
}
