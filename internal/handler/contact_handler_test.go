package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hitoshi/blogman/internal/mailer"
)

func validContactForm() url.Values {
	return url.Values{
		"name":    {"Alice"},
		"email":   {"alice@example.com"},
		"phone":   {"090-1234-5678"},
		"message": {"Hello there"},
	}
}

// 正しい入力でメールが送信され、フラッシュ付きで同じページへ戻ることを検証
func TestContactHandler_Submit_Success(t *testing.T) {
	var sent mailer.ContactMessage
	m := &mockMailer{
		sendFunc: func(ctx context.Context, msg mailer.ContactMessage) error {
			sent = msg
			return nil
		},
	}
	metrics := &mockMetrics{}
	h := NewContactHandler(m, newTestRenderer(t), metrics)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(validContactForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.SubmitContact(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/contact" {
		t.Errorf("Location = %q, want /contact", loc)
	}
	if got := flashMessage(t, w); got != "Message sent successfully!" {
		t.Errorf("flash = %q, want %q", got, "Message sent successfully!")
	}
	if sent.Name != "Alice" || sent.Message != "Hello there" {
		t.Errorf("sent message = %+v, want the submitted fields", sent)
	}
	if metrics.mailSent != 1 || metrics.mailFailed != 0 {
		t.Errorf("mailSent, mailFailed = %d, %d, want 1, 0", metrics.mailSent, metrics.mailFailed)
	}
}

// SMTP失敗は一般的な500エラーページになることを検証
func TestContactHandler_Submit_MailFailure(t *testing.T) {
	m := &mockMailer{
		sendFunc: func(ctx context.Context, msg mailer.ContactMessage) error {
			return errors.New("smtp auth failed")
		},
	}
	metrics := &mockMetrics{}
	h := NewContactHandler(m, newTestRenderer(t), metrics)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(validContactForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.SubmitContact(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if metrics.mailFailed != 1 {
		t.Errorf("mailFailed = %d, want 1", metrics.mailFailed)
	}
}

// 入力不備では送信せず、入力値を保持したままフォームを再表示することを検証
func TestContactHandler_Submit_ValidationErrors(t *testing.T) {
	m := &mockMailer{
		sendFunc: func(ctx context.Context, msg mailer.ContactMessage) error {
			t.Error("mail should not be sent on validation failure")
			return nil
		},
	}
	h := NewContactHandler(m, newTestRenderer(t), &mockMetrics{})

	form := validContactForm()
	form.Del("message")
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.SubmitContact(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "This field is required.") {
		t.Error("page should show the field error")
	}
	if !strings.Contains(body, "alice@example.com") {
		t.Error("form should keep the submitted values")
	}
}

// フォーム表示が200で返ることを検証
func TestContactHandler_ShowContact(t *testing.T) {
	h := NewContactHandler(&mockMailer{}, newTestRenderer(t), &mockMetrics{})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	w := httptest.NewRecorder()
	h.ShowContact(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Contact Me") {
		t.Error("page should contain the contact heading")
	}
}
