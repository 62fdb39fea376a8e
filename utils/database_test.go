package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"jackpot-go/models"
)

func TestLedgerWithoutDatabase(t *testing.T) {
	CloseDatabase()
	ctx := context.Background()

	if err := SetupDatabase(ctx, ""); err != nil {
		t.Fatalf("Expected empty URL to disable the ledger, got %v", err)
	}
	if DB != nil {
		t.Fatal("Expected no pool without a URL")
	}

	var ledger DatabaseLedger
	if err := ledger.RecordPlay(ctx, models.PlayRecord{MessageID: "m", UserID: 1, Outcome: "lose", Matches: 1}); err != nil {
		t.Errorf("Expected RecordPlay to be a no-op, got %v", err)
	}
	if _, err := ledger.PlayStats(ctx, 1); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Expected ErrNoDatabase, got %v", err)
	}
}

func TestSetupDatabaseRejectsBadURL(t *testing.T) {
	CloseDatabase()
	if err := SetupDatabase(context.Background(), "postgres://%zz"); err == nil {
		t.Error("Expected error for malformed URL")
		CloseDatabase()
	}
}

func TestLedgerCacheInvalidation(t *testing.T) {
	CloseDatabase()
	ctx := context.Background()
	ledger := DatabaseLedger{Cache: NewStatsCache(time.Minute)}

	cached := models.NewPlayStats(7)
	cached.Add("jackpot", 5, 1, time.Now())
	ledger.Cache.Set(7, cached)

	stats, err := ledger.PlayStats(ctx, 7)
	if err != nil {
		t.Fatalf("Expected cached stats, got %v", err)
	}
	if stats.Wins != 1 {
		t.Errorf("Expected 1 win, got %d", stats.Wins)
	}

	if err := ledger.RecordPlay(ctx, models.PlayRecord{MessageID: "m", UserID: 7, Outcome: "lose", Matches: 1}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := ledger.PlayStats(ctx, 7); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Expected cache miss after a play, got %v", err)
	}
}
