package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/mailer"
)

// MailerInterface は問い合わせハンドラーが必要とするメール送信インターフェース。
type MailerInterface interface {
	SendContactNotification(ctx context.Context, msg mailer.ContactMessage) error
}

// ContactMailRecorder は問い合わせメール送信のメトリクス記録を定義する。
type ContactMailRecorder interface {
	RecordContactMailSent()
	RecordContactMailFailure()
}

// ContactHandler はお問い合わせフォームのHTTPハンドラー。
type ContactHandler struct {
	mailer   MailerInterface
	renderer *Renderer
	metrics  ContactMailRecorder
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(m MailerInterface, renderer *Renderer, metrics ContactMailRecorder) *ContactHandler {
	return &ContactHandler{
		mailer:   m,
		renderer: renderer,
		metrics:  metrics,
	}
}

// ShowContact は問い合わせフォームを表示する。
// GET /contact
func (h *ContactHandler) ShowContact(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "contact", "Contact Me", map[string]any{
		"Form":   map[string]string{},
		"Errors": formErrors{},
	})
}

// SubmitContact は問い合わせ内容をメールで送信する。
// 送信はリクエスト処理の中で同期的に行う。
// POST /contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	phone := r.PostFormValue("phone")
	message := r.PostFormValue("message")

	errs := requireFields(map[string]string{
		"name":    name,
		"email":   email,
		"phone":   phone,
		"message": message,
	})
	errs = validateEmail(errs, "email", email)
	if errs.HasErrors() {
		h.renderer.Render(w, r, http.StatusOK, "contact", "Contact Me", map[string]any{
			"Form":   map[string]string{"name": name, "email": email, "phone": phone, "message": message},
			"Errors": errs,
		})
		return
	}

	msg := mailer.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
	}

	if err := h.mailer.SendContactNotification(r.Context(), msg); err != nil {
		slog.Error("failed to send contact mail", slog.String("error", err.Error()))
		h.metrics.RecordContactMailFailure()
		h.renderer.RenderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	h.metrics.RecordContactMailSent()

	setFlash(w, "Message sent successfully!")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
