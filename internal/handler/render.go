// Package handler はHTTPハンドラーとページ描画を提供する。
package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/avatar"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// viewData は全ページテンプレートに渡す共通データ。
// ページ固有のデータはDataに格納する。
type viewData struct {
	Title       string
	CurrentUser *model.User
	LoggedIn    bool
	IsAdmin     bool
	Flash       string
	CSRFToken   string
	Data        any
}

// Renderer は埋め込みテンプレートによるページ描画を提供する。
type Renderer struct {
	templates   map[string]*template.Template
	adminUserID int64
}

// templateFuncs はテンプレートから呼び出せるヘルパー関数群。
var templateFuncs = template.FuncMap{
	"gravatar": func(email string) string {
		return avatar.Gravatar(email, avatar.DefaultSize)
	},
	// 記事本文は保存時にサニタイズ済みのHTMLをそのまま描画する
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// ページテンプレート名の一覧。各ページはbase.htmlと組で解析する。
var pageNames = []string{
	"index",
	"post",
	"register",
	"login",
	"make-post",
	"contact",
	"about",
	"error",
}

// NewRenderer は埋め込みテンプレートを解析してRendererを生成する。
func NewRenderer(adminUserID int64) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("base.html").Funcs(templateFuncs).ParseFS(
			templateFS,
			"templates/base.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = t
	}

	return &Renderer{
		templates:   templates,
		adminUserID: adminUserID,
	}, nil
}

// Render は指定ページをステータスコード付きで描画する。
// 現在のユーザー・フラッシュメッセージ・CSRFトークンを自動的に付加する。
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	t, ok := rn.templates[page]
	if !ok {
		slog.Error("unknown template", slog.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user, loggedIn := middleware.UserFromContext(r.Context())

	vd := viewData{
		Title:       title,
		CurrentUser: user,
		LoggedIn:    loggedIn,
		IsAdmin:     loggedIn && user.ID == rn.adminUserID,
		Flash:       popFlash(w, r),
		CSRFToken:   middleware.CSRFTokenFromContext(r.Context()),
		Data:        data,
	}

	// テンプレートエラー時に中途半端なレスポンスを返さないよう、先にバッファへ描画する
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base.html", vd); err != nil {
		slog.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// RenderError はエラーページを描画する。
func (rn *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rn.Render(w, r, status, "error", fmt.Sprintf("%d", status), map[string]any{
		"Status":  status,
		"Message": message,
	})
}
