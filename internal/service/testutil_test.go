package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dropfixer/dropfixer-api/internal/models"
)

// newTestDB opens a named in-memory database so tests do not see each
// other's rows.
func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Attendance{},
		&models.Grade{},
		&models.Fee{},
		&models.Survey{},
		&models.Alert{},
	))

	return db
}
