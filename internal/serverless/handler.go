// Package serverless is a thin user CRUD surface that talks to the store
// directly, without the repository/service layering of the main API. It
// mirrors a function-per-route deployable and shares nothing with the auth
// flows beyond the database.
package serverless

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Handler owns the raw store access for the serverless user CRUD.
type Handler struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewHandler constructs the handler.
func NewHandler(pool *pgxpool.Pool, logger *zap.Logger) *Handler {
	return &Handler{pool: pool, logger: logger}
}

type userPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// TestConnection handles GET /.
func (h *Handler) TestConnection(c *fiber.Ctx) error {
	if err := h.pool.Ping(c.Context()); err != nil {
		h.logger.Error("store unreachable", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error connecting to store",
		})
	}
	return c.JSON(fiber.Map{"message": "Store connection successful"})
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req userPayload
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Email == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Name and email are required",
		})
	}

	var id string
	err := h.pool.QueryRow(c.Context(),
		`INSERT INTO serverless_users (name, email) VALUES ($1, $2) RETURNING id`,
		req.Name, req.Email,
	).Scan(&id)
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating user",
		})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"userId":  id,
	})
}

// GetUser handles GET /users/:id.
func (h *Handler) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user userRecord
	err := h.pool.QueryRow(c.Context(),
		`SELECT id, name, email, created_at, updated_at FROM serverless_users WHERE id=$1`, id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		h.logger.Error("fetch user failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching user",
		})
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /users/:id.
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var req userPayload
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Email == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Name and email are required",
		})
	}

	cmd, err := h.pool.Exec(c.Context(),
		`UPDATE serverless_users SET name=$1, email=$2, updated_at=NOW() WHERE id=$3`,
		req.Name, req.Email, id)
	if err != nil {
		h.logger.Error("update user failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating user",
		})
	}
	if cmd.RowsAffected() == 0 {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User updated successfully!"})
}

// DeleteUser handles DELETE /users/:id.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	cmd, err := h.pool.Exec(c.Context(), `DELETE FROM serverless_users WHERE id=$1`, id)
	if err != nil {
		h.logger.Error("delete user failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting user",
		})
	}
	if cmd.RowsAffected() == 0 {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully!"})
}

// Register wires the CRUD routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/", h.TestConnection)
	app.Post("/users", h.CreateUser)
	app.Get("/users/:id", h.GetUser)
	app.Put("/users/:id", h.UpdateUser)
	app.Delete("/users/:id", h.DeleteUser)
}
