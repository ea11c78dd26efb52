package router

import (
	"time"

	"github.com/gin-gonic/gin"

	authhandler "riskwizard_backend/internal/feature/auth/transport/handler"
	"riskwizard_backend/internal/platform/http/middleware"
	jwtmw "riskwizard_backend/internal/platform/jwt"
)

// Config はルーター全体のミドルウェア設定です。
type Config struct {
	Production     bool
	AllowedOrigins []string
	// RequestLinkRateLimit はIPごとの1分あたりのリンク要求数です。0で無効。
	RequestLinkRateLimit int
}

func NewRouter(cfg Config, authHandler *authhandler.AuthHandler, userHandler *authhandler.UserHandler,
	parser jwtmw.AccessTokenParser, health gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.Security(middleware.SecurityOptions(cfg.Production)))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// 導通確認用
	for _, path := range []string{"/healthz", "/health/"} {
		r.GET(path, health)
		r.HEAD(path, health)
		r.OPTIONS(path, health)
	}

	api := r.Group("/api")

	// 認証不要
	auth := api.Group("/auth")
	{
		// マジックリンク送信
		auth.POST("/request-link", middleware.RateLimitByIP(cfg.RequestLinkRateLimit, time.Minute), authHandler.RequestLink)
		// メール内リンクの確認（JWT 発行）
		auth.GET("/confirm", authHandler.Confirm)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", jwtmw.OptionalAuth(parser), authHandler.Session)
	}

	// 認証必須のルート
	// → Cookie か Authorization ヘッダーに JWT が必要になる
	protected := api.Group("/")
	protected.Use(jwtmw.AuthRequired(parser))
	{
		protected.GET("/users/list", userHandler.List)
	}

	return r
}
