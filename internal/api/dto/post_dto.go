package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// PostRequest payload for creating or editing a post.
type PostRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=100"`
	Description string `json:"description" validate:"required,min=10,max=500"`
}

// PostAuthor is the author projection embedded in post responses.
type PostAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostResponse is the client-facing projection of a post.
type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Author      PostAuthor `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewPostResponse maps a domain post onto the response shape.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Author:      PostAuthor{Name: post.AuthorName, Email: post.AuthorEmail},
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// NewPostListResponse maps a page of posts.
func NewPostListResponse(posts []*domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, NewPostResponse(post))
	}
	return out
}
