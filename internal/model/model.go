// Package model はドメインモデルを定義する。
package model

import "time"

// User は登録済みユーザーを表す。
// PasswordHashには平文パスワードではなくPBKDF2ダイジェストのみを格納する。
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// BlogPost はブログ記事を表す。
// Dateは整形済みの日付文字列（例: "January 02, 2006"）であり、
// 日付型ではなく文字列としてそのまま保存・表示する。
type BlogPost struct {
	ID       int64
	AuthorID int64
	Title    string
	Subtitle string
	Date     string
	Body     string
	ImgURL   string

	// AuthorNameは一覧・詳細表示用にJOINで取得する表示名。
	AuthorName string
}

// Comment は記事へのコメントを表す。
type Comment struct {
	ID       int64
	AuthorID int64
	PostID   int64
	Text     string

	// AuthorName / AuthorEmail は表示用にJOINで取得する。
	// AuthorEmailはGravatar URLの導出にのみ使用する。
	AuthorName  string
	AuthorEmail string
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
