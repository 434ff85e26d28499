package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なDB疎通確認を定義する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CurrentUserService middleware.CurrentUserService
	RateLimiter        *middleware.RateLimiter
	SessionSecret      string
	CookieSecure       bool
	CookieDomain       string
	AdminUserID        int64

	// 描画
	Renderer *Renderer

	// サービス
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig
	BlogService BlogServiceInterface
	BlogAdmin   AdminServiceInterface
	Mailer      MailerInterface

	// 監視
	Metrics       metrics.MetricsCollector
	MetricsGather prometheus.Gatherer
	HealthChecker HealthChecker
}

// NewRouter は全ページのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → Metrics → CurrentUser → Logging → SecurityHeaders → CSRF → RateLimit(General)
//
// CurrentUserはLoggingより先に実行する。認証済みリクエストのログに
// user_idを含めるためにLoggingが同一コンテキストを参照する。
// /health と /metrics はミドルウェアチェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	authHandler := NewAuthHandler(deps.AuthService, deps.Renderer, deps.Metrics, deps.AuthConfig)
	blogHandler := NewBlogHandler(deps.BlogService, deps.Renderer, deps.Metrics)
	adminHandler := NewAdminHandler(deps.BlogAdmin, deps.Renderer, deps.Metrics)
	contactHandler := NewContactHandler(deps.Mailer, deps.Renderer, deps.Metrics)

	// --- 運用系ルート（ミドルウェアチェーンの外） ---

	r.Get("/health", newHealthHandler(deps.HealthChecker))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGather))

	// --- ページルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRequestIDMiddleware())
		r.Use(middleware.NewRecoveryMiddleware())
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
		r.Use(middleware.NewCurrentUserMiddleware(deps.CurrentUserService, deps.SessionSecret))
		r.Use(middleware.NewLoggingMiddleware(slog.Default()))
		r.Use(middleware.NewSecurityHeadersMiddleware())
		r.Use(middleware.NewCSRFMiddleware(middleware.CSRFConfig{
			CookieSecure: deps.CookieSecure,
			CookieDomain: deps.CookieDomain,
		}))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 認証（資格情報の送信には総当たり対策のレート制限を追加）
		r.Group(func(r chi.Router) {
			r.Use(deps.RateLimiter.AuthMiddleware())

			r.Get("/register", authHandler.ShowRegister)
			r.Post("/register", authHandler.Register)
			r.Get("/login", authHandler.ShowLogin)
			r.Post("/login", authHandler.Login)
		})
		r.Get("/logout", authHandler.Logout)

		// 記事閲覧・コメント
		r.Get("/", blogHandler.Index)
		r.Get("/post/{id}", blogHandler.ShowPost)
		r.Post("/post/{id}", blogHandler.AddComment)
		r.Get("/about", blogHandler.About)

		// お問い合わせ
		r.Get("/contact", contactHandler.ShowContact)
		r.Post("/contact", contactHandler.SubmitContact)

		// 管理（記事の作成・編集・削除）
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewRequireAdminMiddleware(deps.AdminUserID))

			r.Get("/new-post", adminHandler.ShowNewPost)
			r.Post("/new-post", adminHandler.CreatePost)
			r.Get("/edit-post/{id}", adminHandler.ShowEditPost)
			r.Post("/edit-post/{id}", adminHandler.UpdatePost)
			r.Get("/delete/{id}", adminHandler.DeletePost)
		})
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checker.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
