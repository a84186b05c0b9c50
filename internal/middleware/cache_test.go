package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/kindlot/charity-auction/internal/config"
)

// RedisMiddlewareSuite exercises the response cache and the token bucket
// against an in-process Redis.
type RedisMiddlewareSuite struct {
	suite.Suite
	mini *miniredis.Miniredis
	rdb  *redis.Client
}

func TestRedisMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(RedisMiddlewareSuite))
}

func (s *RedisMiddlewareSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.rdb = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
}

func (s *RedisMiddlewareSuite) TearDownTest() {
	_ = s.rdb.Close()
}

// newServer registers a counting handler on /v1/charities behind the given
// middleware and returns the echo instance plus the invocation counter.
func newServer(mw echo.MiddlewareFunc) (*echo.Echo, *int) {
	e := echo.New()
	calls := 0
	e.GET("/v1/charities", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"charities": []string{"Hope"}})
	}, mw)
	return e, &calls
}

func get(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/charities", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func (s *RedisMiddlewareSuite) cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}
}

func (s *RedisMiddlewareSuite) TestCacheMissThenHit() {
	e, calls := newServer(NewRedisCache(s.cacheConfig(), s.rdb))

	first := get(e)
	s.Equal(http.StatusOK, first.Code)
	s.Equal("MISS", first.Header().Get("X-Cache"))
	s.Equal(1, *calls)

	second := get(e)
	s.Equal(http.StatusOK, second.Code)
	s.Equal("HIT", second.Header().Get("X-Cache"))
	// Served from Redis, handler not invoked again, body identical.
	s.Equal(1, *calls)
	s.Equal(first.Body.String(), second.Body.String())
}

func (s *RedisMiddlewareSuite) TestCacheExpires() {
	e, calls := newServer(NewRedisCache(s.cacheConfig(), s.rdb))

	get(e)
	s.mini.FastForward(2 * time.Minute)

	rec := get(e)
	s.Equal("MISS", rec.Header().Get("X-Cache"))
	s.Equal(2, *calls)
}

func (s *RedisMiddlewareSuite) TestCacheNilClientPassesThrough() {
	e, calls := newServer(NewRedisCache(s.cacheConfig(), nil))

	get(e)
	get(e)
	s.Equal(2, *calls)
}

func (s *RedisMiddlewareSuite) TestTokenBucketLimits() {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_user_route",
		Prefix:         "rl",
	}
	e, calls := newServer(NewTokenBucket(cfg, s.rdb))

	s.Equal(http.StatusOK, get(e).Code)
	s.Equal(http.StatusOK, get(e).Code)

	blocked := get(e)
	s.Equal(http.StatusTooManyRequests, blocked.Code)
	s.NotEmpty(blocked.Header().Get("Retry-After"))
	s.Equal("0", blocked.Header().Get("X-RateLimit-Remaining"))
	s.Equal(2, *calls)
}

func (s *RedisMiddlewareSuite) TestTokenBucketNilClientPassesThrough() {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1}
	e, calls := newServer(NewTokenBucket(cfg, nil))

	get(e)
	get(e)
	s.Equal(2, *calls)
}
