package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/auth"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*model.User, *model.Session, error)
	Login(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// RegistrationRecorder はユーザー登録のメトリクス記録を定義する。
type RegistrationRecorder interface {
	RecordUserRegistered()
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	SessionSecret string
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler は登録・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	renderer *Renderer
	metrics  RegistrationRecorder
	config   AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, renderer *Renderer, metrics RegistrationRecorder, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service:  service,
		renderer: renderer,
		metrics:  metrics,
		config:   config,
	}
}

// ShowRegister は登録フォームを表示する。
// GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "register", "Register", map[string]any{
		"Form":   map[string]string{},
		"Errors": formErrors{},
	})
}

// Register は新規ユーザーを登録し、そのままログイン状態にする。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	errs := requireFields(map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	errs = validateEmail(errs, "email", email)
	if errs.HasErrors() {
		h.renderer.Render(w, r, http.StatusOK, "register", "Register", map[string]any{
			"Form":   map[string]string{"name": name, "email": email},
			"Errors": errs,
		})
		return
	}

	user, session, err := h.service.Register(r.Context(), name, email, password)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			setFlash(w, "user already registered,try login")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		slog.Error("failed to register user", slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	slog.Info("user registered", slog.Int64("user_id", user.ID))
	h.metrics.RecordUserRegistered()

	h.setSessionCookie(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowLogin はログインフォームを表示する。
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login", "Log In", map[string]any{
		"Form":   map[string]string{},
		"Errors": formErrors{},
	})
}

// Login は資格情報を検証してセッションを確立する。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	errs := requireFields(map[string]string{
		"email":    email,
		"password": password,
	})
	if errs.HasErrors() {
		h.renderer.Render(w, r, http.StatusOK, "login", "Log In", map[string]any{
			"Form":   map[string]string{"email": email},
			"Errors": errs,
		})
		return
	}

	user, session, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			setFlash(w, "That email does not exist, please try again.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, model.ErrWrongPassword):
			setFlash(w, "Password incorrect, please try again.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			slog.Error("failed to login", slog.String("error", err.Error()))
			h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		}
		return
	}

	slog.Info("user logged in", slog.Int64("user_id", user.ID))

	h.setSessionCookie(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout はセッションを破棄する。未ログインでも何もせず一覧へ戻る。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if sessionID, ok := auth.ParseSignedSessionID(h.config.SessionSecret, cookie.Value); ok {
			if logoutErr := h.service.Logout(r.Context(), sessionID); logoutErr != nil {
				slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
				// ログアウト失敗してもCookieはクリアする
			}
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// setSessionCookie は署名付きセッションCookieを設定する。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    auth.SignSessionID(h.config.SessionSecret, session.ID),
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie はセッションCookieを削除する。
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
