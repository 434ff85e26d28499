package mailer

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewSMTPMailer_Initializes(t *testing.T) {
	m := NewSMTPMailer(Config{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "sender@example.com",
		To:      "inbox@example.com",
		Timeout: 10 * time.Second,
	})
	if m == nil {
		t.Fatal("expected non-nil mailer")
	}
}

// 本文がフォームの4項目をすべて含むプレーンテキストであることを検証
func TestBuildContactBody_ContainsAllFields(t *testing.T) {
	body := buildContactBody(ContactMessage{
		Name:    "Alice",
		Email:   "alice@example.com",
		Phone:   "090-1234-5678",
		Message: "Hello there",
	})

	for _, want := range []string{
		"Name: Alice",
		"Email: alice@example.com",
		"Phone: 090-1234-5678",
		"Message: Hello there",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body = %q, should contain %q", body, want)
		}
	}
}

// 本文が1行1項目のレイアウトであることを検証
func TestBuildContactBody_Layout(t *testing.T) {
	body := buildContactBody(ContactMessage{
		Name:    "A",
		Email:   "a@example.com",
		Phone:   "1",
		Message: "m",
	})

	lines := strings.Split(body, "\n")
	if len(lines) != 4 {
		t.Errorf("len(lines) = %d, want 4: %q", len(lines), body)
	}
}

// 不正な送信元アドレスは送信前にエラーになることを検証
func TestSendContactNotification_InvalidFromAddress(t *testing.T) {
	m := NewSMTPMailer(Config{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "not-an-address",
		To:      "inbox@example.com",
		Timeout: time.Second,
	})

	err := m.SendContactNotification(context.Background(), ContactMessage{Name: "A"})
	if err == nil {
		t.Fatal("expected error for invalid sender address")
	}
}
