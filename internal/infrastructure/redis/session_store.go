package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/peoplehub/internal/domain"
)

// SessionStore mirrors refresh sessions in Redis with per-user generations:
//   - sess:<sid>  -> "<uid>:<gen>" with the refresh TTL
//   - sessgen:<uid> -> <gen>, no TTL
//
// RevokeAll bumps the generation, which orphans every older session of the user.
type SessionStore struct {
	rdb *goredis.Client

	sessPrefix string
	genPrefix  string
}

func NewSessionStore(c *Client) *SessionStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &SessionStore{
		rdb:        rdb,
		sessPrefix: "sess:",
		genPrefix:  "sessgen:",
	}
}

var errNotConfigured = errors.New("redis session store not configured")

func (s *SessionStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrMissingField("session_id")
	}
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingField("user_id")
	}
	if s.rdb == nil {
		return domain.ErrRedisUnavailable(errNotConfigured)
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	gen, err := s.generation(ctx, userID)
	if err != nil {
		return err
	}
	val := fmt.Sprintf("%s:%d", userID, gen)
	if err := s.rdb.Set(ctx, s.sessPrefix+sessionID, val, ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

// Consume atomically removes the session and returns its owner.
// A second Consume of the same id, or a session from a revoked generation, is refresh_token_invalid.
func (s *SessionStore) Consume(ctx context.Context, sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", domain.ErrRefreshTokenInvalid()
	}
	if s.rdb == nil {
		return "", domain.ErrRedisUnavailable(errNotConfigured)
	}

	val, err := s.rdb.GetDel(ctx, s.sessPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domain.ErrSessionRevoked()
		}
		return "", domain.ErrRedisUnavailable(err)
	}

	uid, gen, err := parseUIDGen(val)
	if err != nil {
		return "", domain.ErrRefreshTokenInvalid()
	}
	cur, err := s.generation(ctx, uid)
	if err != nil {
		return "", err
	}
	if gen != cur {
		return "", domain.ErrSessionRevoked()
	}
	return uid, nil
}

func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	if s.rdb == nil {
		return domain.ErrRedisUnavailable(errNotConfigured)
	}
	if err := s.rdb.Del(ctx, s.sessPrefix+sessionID).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (s *SessionStore) RevokeAll(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingField("user_id")
	}
	if s.rdb == nil {
		return domain.ErrRedisUnavailable(errNotConfigured)
	}
	if err := s.rdb.Incr(ctx, s.genPrefix+userID).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

// ---- helpers ----

func (s *SessionStore) generation(ctx context.Context, userID string) (int64, error) {
	v, err := s.rdb.Get(ctx, s.genPrefix+userID).Result()
	if err == nil {
		if n, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64); perr == nil {
			return n, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		return 0, domain.ErrRedisUnavailable(err)
	}
	// first session of the user: pin generation 0
	_ = s.rdb.SetNX(ctx, s.genPrefix+userID, "0", 0).Err()
	return 0, nil
}

func parseUIDGen(s string) (uid string, gen int64, err error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return "", 0, fmt.Errorf("bad session value")
	}
	uid = strings.TrimSpace(s[:i])
	if uid == "" {
		return "", 0, fmt.Errorf("empty uid")
	}
	gen, err = strconv.ParseInt(strings.TrimSpace(s[i+1:]), 10, 64)
	if err != nil {
		return "", 0, err
	}
	return uid, gen, nil
}
