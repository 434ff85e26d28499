package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/blog"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

// AdminServiceInterface は管理ハンドラーが必要とするサービスインターフェース。
type AdminServiceInterface interface {
	GetPost(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error)
	CreatePost(ctx context.Context, authorID int64, input blog.PostInput) (*model.BlogPost, error)
	UpdatePost(ctx context.Context, editorID, postID int64, input blog.PostInput) (*model.BlogPost, error)
	DeletePost(ctx context.Context, postID int64) error
}

// PostRecorder は記事作成のメトリクス記録を定義する。
type PostRecorder interface {
	RecordPostCreated()
}

// AdminHandler は記事の作成・編集・削除のHTTPハンドラー。
// 全ルートをRequireAdminミドルウェアの内側に配置する。
type AdminHandler struct {
	service  AdminServiceInterface
	renderer *Renderer
	metrics  PostRecorder
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(service AdminServiceInterface, renderer *Renderer, metrics PostRecorder) *AdminHandler {
	return &AdminHandler{
		service:  service,
		renderer: renderer,
		metrics:  metrics,
	}
}

// ShowNewPost は記事作成フォームを表示する。
// GET /new-post
func (h *AdminHandler) ShowNewPost(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "make-post", "New Post", map[string]any{
		"IsEdit": false,
		"Action": "/new-post",
		"Form":   map[string]string{},
		"Errors": formErrors{},
	})
}

// CreatePost は新しい記事を作成する。著者は現在のユーザー、日付は当日になる。
// POST /new-post
func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.renderer.RenderError(w, r, http.StatusForbidden, "You are not allowed to do that.")
		return
	}

	input, form, errs := parsePostForm(r)
	if errs.HasErrors() {
		h.renderer.Render(w, r, http.StatusOK, "make-post", "New Post", map[string]any{
			"IsEdit": false,
			"Action": "/new-post",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	post, err := h.service.CreatePost(r.Context(), user.ID, input)
	if err != nil {
		slog.Error("failed to create post", slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	slog.Info("post created", slog.Int64("post_id", post.ID), slog.Int64("author_id", user.ID))
	h.metrics.RecordPostCreated()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowEditPost は既存記事の内容で編集フォームを表示する。日付は編集対象外。
// GET /edit-post/{id}
func (h *AdminHandler) ShowEditPost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r)
	if err != nil {
		h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
		return
	}

	post, _, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("failed to get post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "make-post", "Edit Post", map[string]any{
		"IsEdit": true,
		"Action": fmt.Sprintf("/edit-post/%d", post.ID),
		"Form": map[string]string{
			"title":    post.Title,
			"subtitle": post.Subtitle,
			"img_url":  post.ImgURL,
			"body":     post.Body,
		},
		"Errors": formErrors{},
	})
}

// UpdatePost は記事を更新する。著者は編集したユーザーに付け替わる。
// POST /edit-post/{id}
func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.renderer.RenderError(w, r, http.StatusForbidden, "You are not allowed to do that.")
		return
	}

	postID, err := parseIDParam(r)
	if err != nil {
		h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
		return
	}

	input, form, errs := parsePostForm(r)
	if errs.HasErrors() {
		h.renderer.Render(w, r, http.StatusOK, "make-post", "Edit Post", map[string]any{
			"IsEdit": true,
			"Action": fmt.Sprintf("/edit-post/%d", postID),
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	post, err := h.service.UpdatePost(r.Context(), user.ID, postID, input)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("failed to update post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", post.ID), http.StatusSeeOther)
}

// DeletePost は記事を削除する。記事に付いたコメントも連鎖的に削除される。
// GET /delete/{id}
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIDParam(r)
	if err != nil {
		h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
		return
	}

	if err := h.service.DeletePost(r.Context(), postID); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.renderer.RenderError(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		slog.Error("failed to delete post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	slog.Info("post deleted", slog.Int64("post_id", postID))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parsePostForm は記事フォームの入力を検証つきで取り出す。
func parsePostForm(r *http.Request) (blog.PostInput, map[string]string, formErrors) {
	input := blog.PostInput{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Body:     r.PostFormValue("body"),
		ImgURL:   r.PostFormValue("img_url"),
	}

	form := map[string]string{
		"title":    input.Title,
		"subtitle": input.Subtitle,
		"img_url":  input.ImgURL,
		"body":     input.Body,
	}

	errs := requireFields(map[string]string{
		"title":    input.Title,
		"subtitle": input.Subtitle,
		"img_url":  input.ImgURL,
		"body":     input.Body,
	})

	return input, form, errs
}
