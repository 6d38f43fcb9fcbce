package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

func testApp(t *testing.T) (*bytes.Buffer, *gorm.DB, func(args ...string) error) {
	t.Helper()

	db, err := client.InitDBClient(&config.Database{
		Driver:       "sqlite",
		URL:          filepath.Join(t.TempDir(), "test.db"),
		MaxIdleConns: 2,
		MaxOpenConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	out := &bytes.Buffer{}
	app := newApp(func() (*gorm.DB, error) { return db, nil })
	app.Writer = out
	app.ExitErrHandler = func(*cli.Context, error) {}

	run := func(args ...string) error {
		return app.RunContext(context.Background(), append([]string{"storectl"}, args...))
	}
	return out, db, run
}

func TestSeedAndCoupon(t *testing.T) {
	out, db, run := testApp(t)

	require.NoError(t, run("seed"))
	require.NoError(t, run("seed"))

	var items int64
	require.NoError(t, db.Model(&model.Item{}).Count(&items).Error)
	assert.EqualValues(t, 6, items)

	require.NoError(t, run("coupon", "add", "--code", "SAVE5", "--amount", "5.00"))
	assert.Contains(t, out.String(), "coupon SAVE5 created")

	assert.Error(t, run("coupon", "add", "--code", "BAD", "--amount", "lots"))
	assert.Error(t, run("coupon", "add", "--code", "SAVE5", "--amount", "1"))
}

func TestRefundCommands(t *testing.T) {
	out, db, run := testApp(t)

	ref := "abcdefghij0123456789"
	order := &model.Order{UserID: "alice", StartDate: time.Now(), Ordered: true, RefCode: &ref, RefundRequested: true}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&model.Refund{OrderID: order.ID, Reason: "wrong size", Email: "alice@example.com"}).Error)

	require.NoError(t, run("refund", "list"))
	assert.Contains(t, out.String(), ref)
	assert.Contains(t, out.String(), "wrong size")

	out.Reset()
	require.NoError(t, run("refund", "grant", ref))
	assert.Equal(t, "1 refund(s) granted", strings.TrimSpace(out.String()))

	out.Reset()
	require.NoError(t, run("refund", "list"))
	assert.Contains(t, out.String(), "no pending refund requests")

	assert.Error(t, run("refund", "grant"))
}
