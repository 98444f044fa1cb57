package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const postsPerPage = 10

// PostService coordinates blog post CRUD with ownership checks.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// List returns one page of posts, newest first. Pages are 1-based.
func (s *PostService) List(ctx context.Context, page int) ([]*domain.Post, error) {
	pageNum := 0
	if page > 1 {
		pageNum = page - 1
	}
	posts, err := s.posts.List(ctx, pageNum*postsPerPage, postsPerPage)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return posts, nil
}

// Get returns a single post by ID.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return post, nil
}

// Create persists a new post owned by the caller.
func (s *PostService) Create(ctx context.Context, userID, title, description string) (*domain.Post, error) {
	post := &domain.Post{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return post, nil
}

// Update edits a post; only the owner may edit.
func (s *PostService) Update(ctx context.Context, userID, id, title, description string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Post")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if post.UserID != userID {
		return nil, apperrors.NewForbidden("You are not authorized to edit this post")
	}

	post.Title = title
	post.Description = description
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return post, nil
}

// Delete removes a post; only the owner may delete.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Post")
		}
		return apperrors.NewInternalError(err)
	}
	if post.UserID != userID {
		return apperrors.NewForbidden("You are not authorized to delete this post")
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
