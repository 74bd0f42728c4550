package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Write contract headers.
const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	HeaderActorID   = "Ax-Actor-Id"
	// HeaderReplayed is set on responses served from the store.
	HeaderReplayed = "Ax-Idempotent-Replay"
)

const (
	// A reservation expires if the handler never completes.
	inFlightTTL  = 60 * time.Second
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

// Idempotency makes agent writes safe to retry. A write is identified by its
// route, the approval or adjustment it targets, the acting agent and the
// request id. The first answer is stored for ttl and replayed to later
// attempts carrying the same body; a 5xx answer is dropped so a retry reaches
// the handler again.
func Idempotency(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	store := &replayStore{rdb: rdb, ttl: ttl}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isWrite(c.Request().Method) {
				return next(c)
			}

			w, err := readWrite(c)
			if err != nil {
				return reject(c, http.StatusBadRequest, err.Error())
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
			defer cancel()

			reserved, err := store.reserve(ctx, w)
			if err != nil {
				log.Error("idempotency store unavailable", zap.String("key", w.key), zap.Error(err))
				return reject(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !reserved {
				return replay(ctx, c, store, w, log)
			}

			rec := &captureWriter{w: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be gone once the answer is written
			done, cancelDone := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelDone()

			if rec.code >= http.StatusInternalServerError {
				if err := store.release(done, w.key); err != nil {
					log.Warn("idempotency release failed", zap.String("key", w.key), zap.Error(err))
				}
				return nil
			}
			answer := storedResponse{
				Status:      rec.code,
				ContentType: rec.Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
				BodySHA256:  w.bodySHA,
				Target:      w.target,
				StoredAt:    now(),
			}
			if err := store.complete(done, w.key, answer); err != nil {
				log.Warn("idempotency save failed", zap.String("key", w.key), zap.Error(err))
			}
			return nil
		}
	}
}

// replay answers a write whose key is already taken.
func replay(ctx context.Context, c echo.Context, store *replayStore, w writeRequest, log *zap.Logger) error {
	prev, err := store.load(ctx, w.key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn("idempotency load failed", zap.String("key", w.key), zap.Error(err))
		}
		return reject(c, http.StatusConflict, "request is already in progress")
	}
	if prev.BodySHA256 != w.bodySHA {
		return reject(c, http.StatusConflict, HeaderRequestID+" reused with a different body")
	}
	if prev.Pending {
		return reject(c, http.StatusConflict, "request is already in progress")
	}

	log.Debug("idempotent replay",
		zap.String("target", w.target),
		zap.String("actor_id", w.actorID),
		zap.Int("status", prev.Status),
	)
	c.Response().Header().Set(HeaderReplayed, "true")
	contentType := prev.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(prev.Status, contentType, prev.Body)
}

func reject(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// captureWriter tees the handler's answer so it can be stored.
type captureWriter struct {
	w    http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *captureWriter) Header() http.Header { return r.w.Header() }

func (r *captureWriter) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}

func (r *captureWriter) WriteHeader(code int) {
	r.code = code
	r.w.WriteHeader(code)
}
