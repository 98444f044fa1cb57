package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// PostsHandler exposes blog post CRUD endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// List handles GET /api/posts?page=.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	posts, err := h.posts.List(c.Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Posts fetched successfully",
		"posts":   dto.NewPostListResponse(posts),
	})
}

// Single handles GET /api/posts/single?_id=.
func (h *PostsHandler) Single(c *fiber.Ctx) error {
	id := c.Query("_id")
	if id == "" {
		return apperrors.NewValidationError("\"_id\" is required")
	}

	post, err := h.posts.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Get single post successfully",
		"post":    dto.NewPostResponse(post),
	})
}

// Create handles POST /api/posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication failed!")
	}

	var req dto.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    dto.NewPostResponse(post),
	})
}

// Update handles PUT /api/posts?_id=.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication failed!")
	}
	id := c.Query("_id")
	if id == "" {
		return apperrors.NewValidationError("\"_id\" is required")
	}

	var req dto.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	post, err := h.posts.Update(c.Context(), claims.UserID, id, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post updated successfully",
		"post":    dto.NewPostResponse(post),
	})
}

// Delete handles DELETE /api/posts?_id=.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication failed!")
	}
	id := c.Query("_id")
	if id == "" {
		return apperrors.NewValidationError("\"_id\" is required")
	}

	if err := h.posts.Delete(c.Context(), claims.UserID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
