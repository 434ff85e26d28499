package model

import "errors"

// ドメイン層の業務判定エラー。ハンドラー層でフラッシュメッセージ付きの
// リダイレクトや404/403に変換される。ここに該当しないエラーはすべて
// 予期しない障害として500に落とす。
var (
	// ErrEmailTaken は登録済みメールアドレスでの再登録を表す。
	ErrEmailTaken = errors.New("email is already registered")

	// ErrUserNotFound はメールアドレスまたはIDに該当するユーザーの不在を表す。
	ErrUserNotFound = errors.New("user not found")

	// ErrWrongPassword はパスワード検証の失敗を表す。
	ErrWrongPassword = errors.New("password does not match")

	// ErrPostNotFound はIDに該当する記事の不在を表す。
	ErrPostNotFound = errors.New("blog post not found")

	// ErrDuplicateTitle は記事タイトルの一意制約違反を表す。
	ErrDuplicateTitle = errors.New("blog post title already exists")

	// ErrSessionNotFound はセッションの不在または期限切れを表す。
	ErrSessionNotFound = errors.New("session not found or expired")
)
