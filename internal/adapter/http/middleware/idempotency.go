package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	pendingMarker = "processing"
	storeTimeout  = 2 * time.Second
)

// cachedResponse is what gets stored for a completed request.
type cachedResponse struct {
	Body        []byte `json:"body"`
	ContentType string `json:"content_type"`
	Status      int    `json:"status"`
}

// IdempotencyMiddleware replays the stored response of a mutating request
// that is retried with the same Idempotency-Key.
type IdempotencyMiddleware struct {
	store  usecase.IdempotencyStore
	logger zerolog.Logger
	ttl    time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
// A non-positive ttl falls back to usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, logger zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl, logger: logger}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		key = r.Method + " " + r.URL.Path + " " + key

		exists, stored, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			m.logger.Error().Err(err).Str("key", key).Msg("idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}

		if exists {
			m.replay(w, stored)
			return
		}

		// Release the claim unless a response gets stored, including when
		// next panics and the recovery middleware sits further out.
		completed := false
		defer func() {
			if completed {
				return
			}
			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), storeTimeout)
			defer cancel()
			if err := m.store.Release(ctx, key); err != nil {
				m.logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
			}
		}()

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			Status:      recorder.statusCode,
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		})
		if err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("failed to encode idempotent response")
			return
		}

		// The request context may already be done once the handler returns.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), storeTimeout)
		defer cancel()
		if err := m.store.Update(ctx, key, payload, m.ttl); err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
			return
		}
		completed = true
	})
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, stored []byte) {
	if len(stored) == 0 || string(stored) == pendingMarker {
		writeJSONError(w, http.StatusConflict, "request with this idempotency key is in progress")
		return
	}

	var cached cachedResponse
	if err := json.Unmarshal(stored, &cached); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "corrupt idempotent response")
		return
	}

	if cached.ContentType != "" {
		w.Header().Set("Content-Type", cached.ContentType)
	}
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(cached.Status)
	w.Write(cached.Body)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
