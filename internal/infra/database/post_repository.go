package database

import (
	"context"
	"database/sql"

	"github.com/gemlabs/gem-platform/internal/entity"
)

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (id, member_id, content, likes_count, comments_count, created_at)
		VALUES ($1, $2, $3, 0, 0, NOW())
		RETURNING created_at
	`
	return r.DB.QueryRowContext(ctx, query, post.ID, post.MemberID, post.Content).
		Scan(&post.CreatedAt)
}

func (r *PostRepository) List(ctx context.Context, limit int) ([]entity.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, member_id, content, likes_count, comments_count, created_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []entity.Post
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Content, &p.LikesCount, &p.CommentsCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	query := `
		SELECT id, member_id, content, likes_count, comments_count, created_at
		FROM posts
		WHERE id = $1
	`

	var p entity.Post
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.MemberID, &p.Content, &p.LikesCount, &p.CommentsCount, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrPostNotFound
	}
	return nil
}

// AddComment stores the comment and bumps the denormalized counter in one
// transaction so the count never drifts from the rows.
func (r *PostRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO comments (id, post_id, member_id, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`, comment.ID, comment.PostID, comment.MemberID, comment.Content).
		Scan(&comment.CreatedAt)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`, comment.PostID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrPostNotFound
	}

	return tx.Commit()
}

func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]entity.Comment, error) {
	query := `
		SELECT id, post_id, member_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.MemberID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
