package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/model"
)

// 一覧ページに全記事のタイトルが表示されることを検証
func TestBlogHandler_Index(t *testing.T) {
	service := &mockBlogService{
		listPostsFunc: func(ctx context.Context) ([]*model.BlogPost, error) {
			return []*model.BlogPost{
				{ID: 1, Title: "First Post", Subtitle: "sub", Date: "January 01, 2026", AuthorName: "Hitoshi"},
				{ID: 2, Title: "Second Post", Subtitle: "sub", Date: "February 01, 2026", AuthorName: "Hitoshi"},
			}, nil
		},
	}
	h := NewBlogHandler(service, newTestRenderer(t), &mockMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "First Post") || !strings.Contains(body, "Second Post") {
		t.Error("listing should contain all post titles")
	}
	if !strings.Contains(body, "/post/1") {
		t.Error("listing should link to post detail pages")
	}
}

// 記事詳細にタイトル・本文・コメントが表示されることを検証
func TestBlogHandler_ShowPost(t *testing.T) {
	service := &mockBlogService{
		getPostFunc: func(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error) {
			if id != 7 {
				t.Errorf("id = %d, want 7", id)
			}
			post := &model.BlogPost{ID: 7, Title: "A Post", Body: "<p>hello</p>", AuthorName: "Hitoshi"}
			comments := []*model.Comment{
				{ID: 1, PostID: 7, Text: "nice one", AuthorName: "Alice", AuthorEmail: "alice@example.com"},
			}
			return post, comments, nil
		},
	}
	h := NewBlogHandler(service, newTestRenderer(t), &mockMetrics{})

	r := chi.NewRouter()
	r.Get("/post/{id}", h.ShowPost)

	req := httptest.NewRequest(http.MethodGet, "/post/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "A Post") {
		t.Error("page should contain the post title")
	}
	if !strings.Contains(body, "<p>hello</p>") {
		t.Error("sanitized body should be rendered as HTML")
	}
	if !strings.Contains(body, "nice one") {
		t.Error("page should contain the comment text")
	}
	if !strings.Contains(body, "gravatar.com/avatar/") {
		t.Error("comments should show gravatar avatars")
	}
}

// 存在しない記事は404になることを検証
func TestBlogHandler_ShowPost_NotFound(t *testing.T) {
	service := &mockBlogService{
		getPostFunc: func(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error) {
			return nil, nil, model.ErrPostNotFound
		},
	}
	h := NewBlogHandler(service, newTestRenderer(t), &mockMetrics{})

	r := chi.NewRouter()
	r.Get("/post/{id}", h.ShowPost)

	req := httptest.NewRequest(http.MethodGet, "/post/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// 未ログインのコメント投稿はコメントを作らず、ログインへ誘導することを検証
func TestBlogHandler_AddComment_Anonymous(t *testing.T) {
	service := &mockBlogService{
		addCommentFunc: func(ctx context.Context, authorID, postID int64, text string) (*model.Comment, error) {
			t.Error("AddComment should not be called for anonymous users")
			return nil, nil
		},
	}
	metrics := &mockMetrics{}
	h := NewBlogHandler(service, newTestRenderer(t), metrics)

	r := chi.NewRouter()
	r.Post("/post/{id}", h.AddComment)

	req := httptest.NewRequest(http.MethodPost, "/post/7", strings.NewReader(url.Values{"text": {"hi"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if got := flashMessage(t, w); got != "You need to login or register to comment." {
		t.Errorf("flash = %q, want %q", got, "You need to login or register to comment.")
	}
	if metrics.commentsCreated != 0 {
		t.Errorf("commentsCreated = %d, want 0", metrics.commentsCreated)
	}
}

// ログイン済みのコメント投稿は保存され、同じページが再描画されることを検証
func TestBlogHandler_AddComment_Authenticated(t *testing.T) {
	user := &model.User{ID: 2, Email: "alice@example.com", Name: "Alice"}

	var savedText string
	service := &mockBlogService{
		addCommentFunc: func(ctx context.Context, authorID, postID int64, text string) (*model.Comment, error) {
			if authorID != user.ID {
				t.Errorf("authorID = %d, want %d", authorID, user.ID)
			}
			if postID != 7 {
				t.Errorf("postID = %d, want 7", postID)
			}
			savedText = text
			return &model.Comment{ID: 1, AuthorID: authorID, PostID: postID, Text: text}, nil
		},
		getPostFunc: func(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error) {
			post := &model.BlogPost{ID: 7, Title: "A Post", AuthorName: "Hitoshi"}
			comments := []*model.Comment{
				{ID: 1, PostID: 7, Text: savedText, AuthorName: user.Name, AuthorEmail: user.Email},
			}
			return post, comments, nil
		},
	}
	metrics := &mockMetrics{}
	h := NewBlogHandler(service, newTestRenderer(t), metrics)

	r := chi.NewRouter()
	r.Use(withUser(user))
	r.Post("/post/{id}", h.AddComment)

	req := httptest.NewRequest(http.MethodPost, "/post/7", strings.NewReader(url.Values{"text": {"great read"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if savedText != "great read" {
		t.Errorf("saved text = %q, want %q", savedText, "great read")
	}
	if !strings.Contains(w.Body.String(), "great read") {
		t.Error("re-rendered page should contain the new comment")
	}
	if metrics.commentsCreated != 1 {
		t.Errorf("commentsCreated = %d, want 1", metrics.commentsCreated)
	}
}

// Aboutページが表示されることを検証
func TestBlogHandler_About(t *testing.T) {
	h := NewBlogHandler(&mockBlogService{}, newTestRenderer(t), &mockMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	w := httptest.NewRecorder()
	h.About(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "About Me") {
		t.Error("page should contain the about heading")
	}
}
