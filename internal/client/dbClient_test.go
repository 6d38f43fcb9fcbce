package client

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "log.db")), &gorm.Config{
		Logger: newGormLogger(zerolog.New(&buf)),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.AutoMigrate(&model.Item{}))
	ctx := context.Background()

	var item model.Item
	err = db.WithContext(ctx).Where("slug = ?", "missing").First(&item).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	err = db.WithContext(ctx).Table("no_such_table").First(&item).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
