package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHealthRouterRoot(t *testing.T) {
	status := NewBotStatus()
	status.Set("online")
	router := NewHealthRouter(status, NewDeliveryMetrics())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "online") {
		t.Errorf("Expected body to mention bot status, got '%s'", rec.Body.String())
	}
}

func TestHealthRouterReport(t *testing.T) {
	status := NewBotStatus()
	metrics := NewDeliveryMetrics()
	metrics.RecordAction(true)
	metrics.RecordEdit(5*time.Millisecond, nil)
	router := NewHealthRouter(status, metrics)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got '%s'", ct)
	}

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected 'healthy', got '%s'", resp.Status)
	}
	if resp.BotStatus != "starting" {
		t.Errorf("Expected bot status 'starting', got '%s'", resp.BotStatus)
	}
	if resp.Delivery.NoOps != 1 || resp.Delivery.Edits != 1 {
		t.Errorf("Expected delivery counters in report, got %+v", resp.Delivery)
	}
}

func TestHealthRouterRejectsOtherMethods(t *testing.T) {
	router := NewHealthRouter(NewBotStatus(), NewDeliveryMetrics())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestRunHealthServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunHealthServer(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected server to stop after cancel")
	}
}
