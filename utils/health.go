package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BotStatus is the gateway state reported by the health endpoints.
type BotStatus struct {
	v atomic.Value
}

// NewBotStatus starts in the "starting" state.
func NewBotStatus() *BotStatus {
	s := &BotStatus{}
	s.Set("starting")
	return s
}

func (s *BotStatus) Set(status string) { s.v.Store(status) }

func (s *BotStatus) Get() string {
	status, _ := s.v.Load().(string)
	return status
}

type healthResponse struct {
	Status    string        `json:"status"`
	Service   string        `json:"service"`
	BotStatus string        `json:"bot_status"`
	Delivery  DeliveryStats `json:"delivery"`
}

// NewHealthRouter serves a plain-text status on / and a JSON report on
// /health.
func NewHealthRouter(status *BotStatus, metrics *DeliveryMetrics) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Discord Bot Status: %s", status.Get())
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		resp := healthResponse{
			Status:    "healthy",
			Service:   "jackpot-bot",
			BotStatus: status.Get(),
			Delivery:  metrics.Stats(),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			Log.Warn("write health response", zap.Error(err))
		}
	})

	return r
}

// RunHealthServer serves handler on addr until ctx is done.
func RunHealthServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		Log.Info("health server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("health server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("health server shutdown: %w", err)
		}
		return nil
	}
}
