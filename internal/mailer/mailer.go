// Package mailer はお問い合わせフォームのSMTPメール送信を提供する。
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// contactSubject はお問い合わせ通知メールの件名。
const contactSubject = "New Message"

// ContactMessage はお問い合わせフォームの送信内容。
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Config はSMTP送信の設定。
// Passwordが空のままでも構築はできるが、送信時にSMTP認証エラーになる。
type Config struct {
	Host     string
	Port     int
	From     string
	To       string
	Password string
	Timeout  time.Duration
}

// SMTPMailer はSTARTTLSとSMTP認証を使った同期送信を行う。
// 送信はリクエスト処理中にブロッキングで実行され、失敗はリトライせず
// そのまま呼び出し側へ伝播する。
type SMTPMailer struct {
	config Config
}

// NewSMTPMailer はSMTPMailerを生成する。
func NewSMTPMailer(config Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// SendContactNotification はお問い合わせ内容を固定の宛先にプレーンテキストで送信する。
// SMTP接続はSTARTTLSにアップグレードし、送信元アカウントの資格情報で認証する。
func (m *SMTPMailer) SendContactNotification(ctx context.Context, msg ContactMessage) error {
	mm := mail.NewMsg()
	if err := mm.From(m.config.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := mm.To(m.config.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	mm.Subject(contactSubject)
	mm.SetBodyString(mail.TypeTextPlain, buildContactBody(msg))

	client, err := mail.NewClient(m.config.Host,
		mail.WithPort(m.config.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.config.From),
		mail.WithPassword(m.config.Password),
		mail.WithTimeout(m.config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send contact mail: %w", err)
	}

	return nil
}

// buildContactBody はお問い合わせ内容をプレーンテキストの本文に整形する。
func buildContactBody(msg ContactMessage) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage: %s",
		msg.Name, msg.Email, msg.Phone, msg.Message)
}
