package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letly-be-svc/internal/config"
	"letly-be-svc/internal/database"
	"letly-be-svc/internal/notifier"
	"letly-be-svc/internal/repository"
	"letly-be-svc/pkg/logger"
)

func TestSeedDemo(t *testing.T) {
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.NewNopLogger()
	a := &app{cfg: &config.Config{JWT: config.JWTConfig{Secret: "seed-test", TTLHours: 1}}, db: db, logger: log}
	recorder := notifier.NewRecorder()
	mailer := notifier.NewMailer(recorder, log)

	require.NoError(t, seedDemo(context.Background(), a, mailer, "password123"))
	mailer.Wait()

	landlord, err := repository.NewUserRepository(db.DB).GetByEmail(context.Background(), "landlord@letly.demo")
	require.NoError(t, err)
	bills, err := repository.NewBillRepository(db.DB).ListByLandlord(context.Background(), landlord.ID, repository.BillFilter{})
	require.NoError(t, err)

	// rent and utilities plus the cleaning fee for each of two tenants
	assert.Len(t, bills, 6)
	total := 0.0
	for _, b := range bills {
		total += b.Amount
	}
	assert.InDelta(t, 1540, total, 1e-6)
	assert.Len(t, recorder.Messages(), 6)

	assert.Error(t, seedDemo(context.Background(), a, mailer, "password123"), "accounts already exist")
}
