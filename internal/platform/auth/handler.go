package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc AuthService }

// RegisterRoutes: login は公開、register は admin 用のグループに載せる
func RegisterRoutes(public gin.IRoutes, admin gin.IRoutes, svc AuthService, loginGuards ...gin.HandlerFunc) {
	h := &AuthHandler{svc: svc}
	public.POST("/auth/login", append(loginGuards, h.Login)...)
	admin.POST("/auth/register", h.Register)
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary  Log in as an administrator
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "credentials"
// @Success  200 {object} map[string]string
// @Failure  400 {object} map[string]string
// @Failure  401 {object} map[string]string
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		if !errors.Is(err, ErrAuthFailed) && !errors.Is(err, ErrDisabled) {
			log.Printf("[ERROR] login: %v", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid id or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Login successful",
	})
}

type RegisterRequest struct {
	ID       string  `json:"id" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Role     *string `json:"role,omitempty"` // 未指定なら user
}

// Register godoc
// @Summary  Create an account (admin only)
// @Tags     auth
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    X-CSRF-Token header string true "anti-forgery token"
// @Param    body body RegisterRequest true "account"
// @Success  201 {object} map[string]string
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role := RoleUser
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	if err := h.svc.Register(c.Request.Context(), req.ID, req.Password, role); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "ID already exists"})
		case errors.Is(err, ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required, password needs 8+ chars, role must be admin or user"})
		default:
			log.Printf("[ERROR] register: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "register failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}
