package middleware

import (
	"log/slog"
	"net/http"
)

// NewRequireAdminMiddleware は管理者専用ルートのゲートを返す。
// 現在ユーザーが認証済みかつIDがadminUserIDに一致する場合のみ後続の
// ハンドラーへ委譲し、それ以外は403で打ち切る。
// これがシステム唯一の認可ルールであり、ロールやリソース単位の
// 所有チェックは存在しない。
func NewRequireAdminMiddleware(adminUserID int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user.ID != adminUserID {
				slog.Warn("admin route denied",
					slog.String("path", r.URL.Path),
					slog.Bool("authenticated", ok),
				)
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
