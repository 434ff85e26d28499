// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/blogman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番されたIDをuser.IDに設定する。
	// メールアドレスの一意制約違反時はmodel.ErrEmailTakenを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// PostRepository はブログ記事の永続化インターフェース。
type PostRepository interface {
	// Create は記事を作成し、採番されたIDをpost.IDに設定する。
	// タイトルの一意制約違反時はmodel.ErrDuplicateTitleを返す。
	Create(ctx context.Context, post *model.BlogPost) error

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.BlogPost, error)

	// FindAll は全記事を取得する。
	FindAll(ctx context.Context) ([]*model.BlogPost, error)

	// Update は記事の可変フィールド（title, subtitle, body, img_url, author_id）を
	// 上書きする。dateは再スタンプしない。
	// タイトルの一意制約違反時はmodel.ErrDuplicateTitleを返す。
	Update(ctx context.Context, post *model.BlogPost) error

	// DeleteByID は指定IDの記事を削除する。
	// 記事が存在しない場合はmodel.ErrPostNotFoundを返す。
	// 関連するコメントはCASCADE削除される。
	DeleteByID(ctx context.Context, id int64) error
}

// CommentRepository はコメントの永続化インターフェース。
type CommentRepository interface {
	// Create はコメントを作成し、採番されたIDをcomment.IDに設定する。
	Create(ctx context.Context, comment *model.Comment) error

	// ListByPostID は指定記事のコメントを作成順で取得する。
	// 表示用のAuthorName / AuthorEmailをJOINで補完する。
	ListByPostID(ctx context.Context, postID int64) ([]*model.Comment, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID int64) error
}
