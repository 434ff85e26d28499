package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// リクエストIDがヘッダーとコンテキストの両方に設定されることを検証
func TestRequestIDMiddleware(t *testing.T) {
	var ctxID string
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	headerID := w.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("X-Request-ID header is empty")
	}
	if ctxID != headerID {
		t.Errorf("context id = %q, header id = %q, want equal", ctxID, headerID)
	}
	if _, err := uuid.Parse(headerID); err != nil {
		t.Errorf("request id %q is not a valid UUID: %v", headerID, err)
	}
}

// リクエストごとに異なるIDが割り当てられることを検証
func TestRequestIDMiddleware_UniquePerRequest(t *testing.T) {
	handler := NewRequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/", nil))

	if w1.Header().Get("X-Request-ID") == w2.Header().Get("X-Request-ID") {
		t.Error("two requests received the same request id")
	}
}

// IDが未設定のコンテキストでは空文字列が返ることを検証
func TestRequestIDFromContext_Missing(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext = %q, want empty", got)
	}
}
