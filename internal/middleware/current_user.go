// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/auth"
	"github.com/hitoshi/blogman/internal/model"
)

// SessionCookieName はセッションIDを保持するHTTP Only Cookieの名前。
const SessionCookieName = "session_id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに現在ユーザーを格納するためのキー。
var userContextKey = contextKey("current_user")

// CurrentUserService はセッションIDから現在ユーザーを解決するインターフェース。
// auth.Serviceの部分集合として定義する。
type CurrentUserService interface {
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)
}

// NewCurrentUserMiddleware は署名付きCookieからセッションを読み取り、
// 現在ユーザーをリクエストコンテキストに注入するミドルウェアを返す。
// ブログの大半のページは匿名でも閲覧できるため、Cookieの欠落・署名不正・
// セッション期限切れは拒否せず匿名リクエストとして通す。
// 認可の判定はRequireAdminや各ハンドラーが行う。
func NewCurrentUserMiddleware(service CurrentUserService, sessionSecret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sessionID, ok := auth.ParseSignedSessionID(sessionSecret, cookie.Value)
			if !ok {
				// 改ざんされたCookieは匿名として扱う
				next.ServeHTTP(w, r)
				return
			}

			user, err := service.CurrentUser(r.Context(), sessionID)
			if err != nil {
				if !errors.Is(err, model.ErrSessionNotFound) && !errors.Is(err, model.ErrUserNotFound) {
					slog.Error("failed to resolve current user",
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext はリクエストコンテキストから現在ユーザーを取得する。
// 匿名リクエストではok=falseを返す。
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// ContextWithUser はコンテキストに現在ユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
