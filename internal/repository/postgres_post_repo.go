package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/blogman/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用したブログ記事リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// Create は記事を作成し、採番されたIDをpost.IDに設定する。
// タイトルの一意制約違反時はmodel.ErrDuplicateTitleを返す。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.BlogPost) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO blog_posts (author_id, title, subtitle, date, body, img_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		post.AuthorID, post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL,
	).Scan(&post.ID)

	if isUniqueViolation(err) {
		return model.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	return nil
}

// FindByID は指定IDの記事を著者名付きで取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	post := &model.BlogPost{}
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		 FROM blog_posts p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.id = $1`,
		id,
	).Scan(&post.ID, &post.AuthorID, &post.Title, &post.Subtitle, &post.Date,
		&post.Body, &post.ImgURL, &post.AuthorName)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find blog post by ID: %w", err)
	}

	return post, nil
}

// FindAll は全記事を著者名付きで取得する。
func (r *PostgresPostRepo) FindAll(ctx context.Context) ([]*model.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url, u.name
		 FROM blog_posts p
		 JOIN users u ON u.id = p.author_id
		 ORDER BY p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.BlogPost
	for rows.Next() {
		post := &model.BlogPost{}
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Title, &post.Subtitle,
			&post.Date, &post.Body, &post.ImgURL, &post.AuthorName); err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blog posts: %w", err)
	}

	return posts, nil
}

// Update は記事の可変フィールドを上書きする。dateは再スタンプしない。
// author_idも上書き対象で、編集者への付け替えはサービス層の責務。
// タイトルの一意制約違反時はmodel.ErrDuplicateTitleを返す。
func (r *PostgresPostRepo) Update(ctx context.Context, post *model.BlogPost) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE blog_posts
		 SET title = $1, subtitle = $2, body = $3, img_url = $4, author_id = $5
		 WHERE id = $6`,
		post.Title, post.Subtitle, post.Body, post.ImgURL, post.AuthorID, post.ID,
	)
	if isUniqueViolation(err) {
		return model.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// DeleteByID は指定IDの記事を削除する。記事が存在しない場合はmodel.ErrPostNotFoundを返す。
// 関連するコメントはスキーマのON DELETE CASCADEで削除される。
func (r *PostgresPostRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM blog_posts WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
