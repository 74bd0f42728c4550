package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"approvals-engine/pkg/id"
)

const keyPrefix = "idemp:approvals:"

var (
	reUUID = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-7][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	// agent logins or emails
	reActorID = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)
)

var now = func() time.Time { return time.Now().UTC() }

// writeRequest is what identifies one agent write.
type writeRequest struct {
	key       string
	target    string
	actorID   string
	requestID string
	bodySHA   string
}

// readWrite validates the write headers and buffers the body.
func readWrite(c echo.Context) (writeRequest, error) {
	req := c.Request()

	reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
	if reqID == "" {
		return writeRequest{}, errors.New("missing " + HeaderRequestID)
	}
	if !validRequestID(reqID) {
		return writeRequest{}, errors.New("invalid " + HeaderRequestID + " format")
	}

	at, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
	if err != nil {
		return writeRequest{}, err
	}
	if skew := now().Sub(at); skew > maxClockSkew || skew < -maxClockSkew {
		return writeRequest{}, errors.New(HeaderRequestAt + " too skewed")
	}

	actorID := strings.TrimSpace(req.Header.Get(HeaderActorID))
	if actorID == "" {
		return writeRequest{}, errors.New("missing " + HeaderActorID)
	}
	if !reActorID.MatchString(actorID) {
		return writeRequest{}, errors.New("invalid " + HeaderActorID)
	}

	var body []byte
	if req.Body != nil {
		if body, err = io.ReadAll(req.Body); err != nil {
			return writeRequest{}, errors.New("unreadable body")
		}
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	target := targetOf(c)
	return writeRequest{
		key:       writeKey(req.Method, c.Path(), target, actorID, reqID),
		target:    target,
		actorID:   actorID,
		requestID: reqID,
		bodySHA:   bodyHash(body),
	}, nil
}

// targetOf names the approval or adjustment a write applies to, from the
// route parameters ("approval_id=7"). Routes without parameters target "-".
func targetOf(c echo.Context) string {
	names := c.ParamNames()
	if len(names) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, n+"="+c.Param(n))
	}
	return strings.Join(parts, ",")
}

func writeKey(method, route, target, actorID, requestID string) string {
	return keyPrefix + strings.ToLower(method) + ":" + route + ":" + target + ":" + actorID + ":" + requestID
}

func bodyHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// validRequestID accepts lowercase UUIDs and the 32-hex ids of pkg/id.
func validRequestID(s string) bool {
	return reUUID.MatchString(s) || id.IsID32(s)
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339 with a
// zone. Timestamps without a zone are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}

// storedResponse is the Redis value under a write key.
type storedResponse struct {
	Pending     bool      `json:"pending"`
	Status      int       `json:"status,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body,omitempty"`
	BodySHA256  string    `json:"body_sha256"`
	Target      string    `json:"target"`
	StoredAt    time.Time `json:"stored_at"`
}

type replayStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// reserve claims the key for an in-flight write. false means it is taken.
func (s *replayStore) reserve(ctx context.Context, w writeRequest) (bool, error) {
	payload, err := json.Marshal(storedResponse{
		Pending:    true,
		BodySHA256: w.bodySHA,
		Target:     w.target,
		StoredAt:   now(),
	})
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, w.key, payload, inFlightTTL).Result()
}

func (s *replayStore) load(ctx context.Context, key string) (storedResponse, error) {
	var r storedResponse
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return r, err
	}
	err = json.Unmarshal(raw, &r)
	return r, err
}

func (s *replayStore) complete(ctx context.Context, key string, r storedResponse) error {
	r.Pending = false
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

func (s *replayStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
