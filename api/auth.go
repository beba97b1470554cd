package api

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/auth"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type AuthHandler struct {
	users   repository.UserRepository
	manager *auth.Manager
}

type authRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewAuthHandler(users repository.UserRepository, manager *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, manager: manager}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/auth", h.authenticate)
}

// RegisterAdmin mounts admin-only user management.
func (h *AuthHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("", h.createUser)
	router.PATCH("/:id", h.updateUser)
	router.DELETE("/:id", h.deleteUser)
}

func (h *AuthHandler) register(c *gin.Context) {
	h.create(c, domain.RoleUser)
}

func (h *AuthHandler) createUser(c *gin.Context) {
	h.create(c, c.DefaultQuery("role", domain.RoleUser))
}

func (h *AuthHandler) create(c *gin.Context, role string) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		renderError(c, apperr.Internal("failed to hash password", err))
		return
	}

	user := &domain.User{Username: req.Username, PasswordHash: hash, Role: role}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		renderError(c, apperr.Internal("failed to create user", err))
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Role: user.Role})
}

func (h *AuthHandler) authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			renderError(c, apperr.BadRequest("Invalid credentials"))
			return
		}
		renderError(c, apperr.Internal("failed to load user", err))
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		renderError(c, apperr.BadRequest("Invalid credentials"))
		return
	}

	token, err := h.manager.IssueToken(user.ID, []string{user.Role})
	if err != nil {
		renderError(c, apperr.Internal("failed to issue token", err))
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: token})
}

type updateUserRequest struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) updateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid user id"))
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			renderError(c, apperr.NotFound("User"))
			return
		}
		renderError(c, apperr.Internal("failed to load user", err))
		return
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			renderError(c, apperr.Internal("failed to hash password", err))
			return
		}
		user.PasswordHash = hash
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		renderError(c, apperr.Internal("failed to update user", err))
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Username: user.Username, Role: user.Role})
}

func (h *AuthHandler) deleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid user id"))
		return
	}
	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		renderError(c, apperr.Internal("failed to delete user", err))
		return
	}
	c.Status(http.StatusNoContent)
}
