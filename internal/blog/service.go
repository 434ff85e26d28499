// Package blog は記事とコメントのドメインロジックを提供する。
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
	"github.com/hitoshi/blogman/internal/security"
)

// dateLayout は記事のdate欄に保存する整形済み日付のレイアウト。
// 日付型ではなく表示用文字列としてそのまま保存する。
const dateLayout = "January 02, 2006"

// PostInput は記事の作成・編集フォームの入力値。
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// Service は記事とコメントのサービス層。
type Service struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	sanitizer   security.ContentSanitizerService
}

// NewService はServiceを生成する。
func NewService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	sanitizer security.ContentSanitizerService,
) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		sanitizer:   sanitizer,
	}
}

// ListPosts は全記事を取得する。
func (s *Service) ListPosts(ctx context.Context) ([]*model.BlogPost, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost は記事とそのコメント一覧を取得する。
// 記事が存在しない場合はmodel.ErrPostNotFoundを返す。
func (s *Service) GetPost(ctx context.Context, id int64) (*model.BlogPost, []*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, nil, model.ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPostID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return post, comments, nil
}

// CreatePost は新規記事を作成する。著者は作成時の管理者、dateはサーバーの
// 当日をdateLayoutで整形した文字列になる。本文はサニタイズして保存する。
// タイトル重複はmodel.ErrDuplicateTitleとして伝播する。
func (s *Service) CreatePost(ctx context.Context, authorID int64, input PostInput) (*model.BlogPost, error) {
	post := &model.BlogPost{
		AuthorID: authorID,
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Date:     time.Now().Format(dateLayout),
		Body:     s.sanitizer.SanitizeBody(input.Body),
		ImgURL:   input.ImgURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("blog post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("author_id", authorID),
	)

	return post, nil
}

// UpdatePost は既存記事の可変フィールドを上書きする。
// dateは再スタンプしない。author_idは編集者のIDに付け替える
// （単一管理者前提の既存挙動の踏襲。複数管理者化の際は要再検討）。
// 記事が存在しない場合はmodel.ErrPostNotFoundを返す。
func (s *Service) UpdatePost(ctx context.Context, editorID, postID int64, input PostInput) (*model.BlogPost, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}

	post.Title = input.Title
	post.Subtitle = input.Subtitle
	post.Body = s.sanitizer.SanitizeBody(input.Body)
	post.ImgURL = input.ImgURL
	post.AuthorID = editorID

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("blog post updated",
		slog.Int64("post_id", postID),
		slog.Int64("editor_id", editorID),
	)

	return post, nil
}

// DeletePost は記事を削除する。記事が存在しない場合はmodel.ErrPostNotFoundを返す。
// 関連するコメントはストレージ層のCASCADEで削除される。
func (s *Service) DeletePost(ctx context.Context, postID int64) error {
	if err := s.postRepo.DeleteByID(ctx, postID); err != nil {
		return err
	}

	slog.Info("blog post deleted", slog.Int64("post_id", postID))
	return nil
}

// AddComment は認証済みユーザーのコメントを記事に追加する。
// 記事が存在しない場合はmodel.ErrPostNotFoundを返す。
// コメント本文はタグを除去したプレーンテキストとして保存する。
func (s *Service) AddComment(ctx context.Context, authorID, postID int64, text string) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}

	comment := &model.Comment{
		AuthorID: authorID,
		PostID:   postID,
		Text:     s.sanitizer.SanitizeComment(text),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", postID),
		slog.Int64("author_id", authorID),
	)

	return comment, nil
}
