package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/blogman/internal/blog"
	"github.com/hitoshi/blogman/internal/mailer"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

// mockAuthService はAuthServiceInterfaceのテスト用モック。
type mockAuthService struct {
	registerFunc func(ctx context.Context, name, email, password string) (*model.User, *model.Session, error)
	loginFunc    func(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	logoutFunc   func(ctx context.Context, sessionID string) error
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*model.User, *model.Session, error) {
	return m.registerFunc(ctx, name, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, *model.Session, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, sessionID)
	}
	return nil
}

// mockBlogService はBlogServiceInterfaceとAdminServiceInterfaceのテスト用モック。
type mockBlogService struct {
	listPostsFunc  func(ctx context.Context) ([]*model.BlogPost, error)
	getPostFunc    func(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error)
	addCommentFunc func(ctx context.Context, authorID, postID int64, text string) (*model.Comment, error)
	createPostFunc func(ctx context.Context, authorID int64, input blog.PostInput) (*model.BlogPost, error)
	updatePostFunc func(ctx context.Context, editorID, postID int64, input blog.PostInput) (*model.BlogPost, error)
	deletePostFunc func(ctx context.Context, postID int64) error
}

func (m *mockBlogService) ListPosts(ctx context.Context) ([]*model.BlogPost, error) {
	return m.listPostsFunc(ctx)
}

func (m *mockBlogService) GetPost(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error) {
	return m.getPostFunc(ctx, id)
}

func (m *mockBlogService) AddComment(ctx context.Context, authorID, postID int64, text string) (*model.Comment, error) {
	return m.addCommentFunc(ctx, authorID, postID, text)
}

func (m *mockBlogService) CreatePost(ctx context.Context, authorID int64, input blog.PostInput) (*model.BlogPost, error) {
	return m.createPostFunc(ctx, authorID, input)
}

func (m *mockBlogService) UpdatePost(ctx context.Context, editorID, postID int64, input blog.PostInput) (*model.BlogPost, error) {
	return m.updatePostFunc(ctx, editorID, postID, input)
}

func (m *mockBlogService) DeletePost(ctx context.Context, postID int64) error {
	return m.deletePostFunc(ctx, postID)
}

// mockMailer はMailerInterfaceのテスト用モック。
type mockMailer struct {
	sendFunc func(ctx context.Context, msg mailer.ContactMessage) error
}

func (m *mockMailer) SendContactNotification(ctx context.Context, msg mailer.ContactMessage) error {
	return m.sendFunc(ctx, msg)
}

// mockMetrics は各Recorderインターフェースを満たすテスト用モック。
// 呼び出し回数を記録する。
type mockMetrics struct {
	usersRegistered int
	postsCreated    int
	commentsCreated int
	mailSent        int
	mailFailed      int
}

func (m *mockMetrics) RecordUserRegistered()     { m.usersRegistered++ }
func (m *mockMetrics) RecordPostCreated()        { m.postsCreated++ }
func (m *mockMetrics) RecordCommentCreated()     { m.commentsCreated++ }
func (m *mockMetrics) RecordContactMailSent()    { m.mailSent++ }
func (m *mockMetrics) RecordContactMailFailure() { m.mailFailed++ }

// newTestRenderer は管理ユーザーID=1でRendererを生成する。
func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := NewRenderer(1)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return rn
}

// withUser は認証済みユーザーをコンテキストに注入するミドルウェアを返す。
func withUser(user *model.User) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.ContextWithUser(r.Context(), user)))
		})
	}
}

// flashMessage はレスポンスに設定されたフラッシュメッセージを読み取る。
func flashMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookieName {
			r.AddCookie(c)
		}
	}
	return popFlash(httptest.NewRecorder(), r)
}
