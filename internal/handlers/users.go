package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medrecords-backend/internal/repository"
)

// --- Structs for Request Binding ---

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	RoleID   uint   `json:"role_id" binding:"required"`
}

type UpdateUserRequest struct {
	RoleID   *uint `json:"role_id"`
	IsActive *bool `json:"is_active"`
}

// --- Handler Functions (admin only, gated in the router) ---

func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	users, total, err := h.Users.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"per_page": pageSize,
		"total":    total,
		"data":     users,
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	id, err := h.Users.Create(c.Request.Context(), repository.UserCreate{
		Username: req.Username,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User created",
		"user_id": id,
	})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	user, err := h.Users.Update(c.Request.Context(), id, repository.UserUpdate{
		RoleID:   req.RoleID,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"role":      user.Role.RoleName,
		"is_active": user.IsActive,
	})
}
