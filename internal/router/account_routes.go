package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kindlot/charity-auction/internal/config"
	"github.com/kindlot/charity-auction/internal/handler"
	"github.com/kindlot/charity-auction/internal/middleware"
	"github.com/kindlot/charity-auction/internal/model"
)

// RegisterAccount registers the per-user endpoints: balance and its ledger,
// notifications, the paid subscription and the caller's own charity profile.
// All routes require a valid JWT; role checks beyond authentication happen
// in the handlers where ownership already scopes every query.
func RegisterAccount(
	e *echo.Echo,
	b *handler.BalanceHandler,
	n *handler.NotificationHandler,
	s *handler.SubscriptionHandler,
	jwtSecret string,
) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/balance", b.Get)
	g.POST("/balance/top-up", b.TopUp)
	g.POST("/balance/withdraw", b.Withdraw)
	g.GET("/balance/history", b.History)

	g.GET("/notifications", n.List)
	g.POST("/notifications/:id/read", n.MarkRead)

	g.GET("/subscription", s.Get)
	g.POST("/subscription", s.Create)
	g.DELETE("/subscription", s.Cancel)
}

// RegisterCharities registers the public charity directory and the
// charity-scoped profile endpoints.  The directory list is read-heavy and
// changes rarely, so it sits behind the Redis response cache and the token
// bucket rate limiter; both degrade to pass-through when rdb is nil.
func RegisterCharities(
	e *echo.Echo,
	h *handler.CharityHandler,
	rdb *redis.Client,
	jwtSecret string,
) {
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	e.GET("/v1/charities", h.List,
		middleware.NewTokenBucket(rateCfg, rdb),
		middleware.NewRedisCache(cacheCfg, rdb),
	)

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCharity, model.RoleAdmin),
	)
	g.GET("/me/charity", h.Mine)
	g.PUT("/me/charity/reg-number", h.SetRegNumber)
}
