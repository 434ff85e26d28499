package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

// BlogServiceInterface はブログハンドラーが必要とするサービスインターフェース。
type BlogServiceInterface interface {
	ListPosts(ctx context.Context) ([]*model.BlogPost, error)
	GetPost(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error)
	AddComment(ctx context.Context, authorID, postID int64, text string) (*model.Comment, error)
}

// CommentRecorder はコメント投稿のメトリクス記録を定義する。
type CommentRecorder interface {
	RecordCommentCreated()
}

// BlogHandler は記事閲覧・コメント投稿のHTTPハンドラー。
type BlogHandler struct {
	service  BlogServiceInterface
	renderer *Renderer
	metrics  CommentRecorder
}

// NewBlogHandler はBlogHandlerを生成する。
func NewBlogHandler(service BlogServiceInterface, renderer *Renderer, metrics CommentRecorder) *BlogHandler {
	return &BlogHandler{
		service:  service,
		renderer: renderer,
		metrics:  metrics,
	}
}

// Index は全記事の一覧を表示する。
// GET /
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		slog.Error("failed to list posts", slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "index", "Home", map[string]any{
		"Posts": posts,
	})
}

// ShowPost は記事の詳細とコメント一覧を表示する。
// GET /post/{id}
func (h *BlogHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r)
	if err != nil {
		h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
		return
	}

	post, comments, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("failed to get post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	h.renderPost(w, r, post, comments, formErrors{})
}

// AddComment は記事にコメントを追加する。未ログインの場合はログインページへ誘導する。
// 投稿後はリダイレクトせず同じページを再描画する。
// POST /post/{id}
func (h *BlogHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, loggedIn := middleware.UserFromContext(r.Context())
	if !loggedIn {
		setFlash(w, "You need to login or register to comment.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	postID, err := parseIDParam(r)
	if err != nil {
		h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
		return
	}

	text := r.PostFormValue("text")
	if errs := requireFields(map[string]string{"text": text}); errs.HasErrors() {
		post, comments, getErr := h.service.GetPost(r.Context(), postID)
		if getErr != nil {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		h.renderPost(w, r, post, comments, errs)
		return
	}

	if _, err := h.service.AddComment(r.Context(), user.ID, postID, text); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("failed to add comment", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	h.metrics.RecordCommentCreated()

	post, comments, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		slog.Error("failed to reload post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}
	h.renderPost(w, r, post, comments, formErrors{})
}

// About は固定のAboutページを表示する。
// GET /about
func (h *BlogHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "about", "About Me", nil)
}

// renderPost は記事詳細ページを描画する。
func (h *BlogHandler) renderPost(w http.ResponseWriter, r *http.Request, post *model.BlogPost, comments []*model.Comment, errs formErrors) {
	h.renderer.Render(w, r, http.StatusOK, "post", post.Title, map[string]any{
		"Post":     post,
		"Comments": comments,
		"Errors":   errs,
	})
}

// parseIDParam はURLパスの{id}パラメーターを整数として取得する。
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
