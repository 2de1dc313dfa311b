package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPostNotFound = errors.New("post not found")

// Post is community content. Posts are never physically deleted; hiding is a
// backend moderation concern.
type Post struct {
	ID            string    `json:"id"`
	MemberID      string    `json:"member_id"`
	Content       string    `json:"content"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	MemberID  string    `json:"member_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPost(memberID, content string) *Post {
	return &Post{
		ID:        uuid.New().String(),
		MemberID:  memberID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

func NewComment(postID, memberID, content string) *Comment {
	return &Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		MemberID:  memberID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

type PostRepositoryInterface interface {
	Create(ctx context.Context, post *Post) error
	List(ctx context.Context, limit int) ([]Post, error)
	FindByID(ctx context.Context, id string) (*Post, error)
	IncrementLikes(ctx context.Context, id string) error
	AddComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, postID string) ([]Comment, error)
}
