package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"seatapp-web/config"
	"seatapp-web/internal/logging"
	"seatapp-web/internal/mw"
	"seatapp-web/internal/render"
)

// NewRouter creates and configures the front-end router.
func NewRouter(cfg *config.Config, u Upstream) *gin.Engine {
	r := gin.New()
	// Client IPs feed the login limiter, so only listed proxies may set them.
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logging.Error().Err(err).Strs("trusted_proxies", cfg.Server.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.SetHTMLTemplate(render.Templates())
	r.Use(gin.Recovery(), mw.RequestID(), mw.AccessLog(), mw.Metrics())

	handler := NewHandler(u, cfg.Upstream.SessionCookie)

	// Only pages that are identical for every caller go through the cache.
	var pageStore *cache.Cache
	if cfg.Server.PageCacheTTL > 0 {
		pageStore = cache.New(cfg.Server.PageCacheTTL, 2*cfg.Server.PageCacheTTL)
	}
	caching := mw.PageCache(pageStore, cfg.Server.PageCacheTTL)

	loginLimiter := mw.RateLimiter(rate.Limit(cfg.Server.LoginRateLimitPerSec), cfg.Server.LoginRateBurst, handler.TooManyRequests)

	r.GET("/", caching, handler.Home)
	r.GET("/login", caching, handler.LoginForm)
	r.POST("/login", loginLimiter, handler.Login)
	r.GET("/logout", handler.Logout)
	r.GET("/map", handler.Map)
	r.GET("/reports", handler.Reports)

	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(handler.NotFound)

	return r
}
