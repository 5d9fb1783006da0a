package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medrecords-backend/internal/auth"
	"medrecords-backend/internal/middleware"
	"medrecords-backend/internal/repository"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// setSessionCookie installs the HttpOnly session cookie. maxAge <= 0 expires it.
func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}

// APILogin authenticates JSON clients and establishes a session.
func (h *Handler) APILogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	user, token, err := h.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	setSessionCookie(c, token, 0)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role.RoleName,
		},
	})
}

// APILogout clears the session binding.
func (h *Handler) APILogout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.Sessions.Logout(c.Request.Context(), token); err != nil {
			h.respondError(c, err)
			return
		}
	}
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Logged out"})
}

// LoginPage renders the login form, skipping straight to the dashboard for
// already-authenticated visitors.
func (h *Handler) LoginPage(c *gin.Context) {
	if auth.CurrentIdentity(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// LoginSubmit handles the login form post.
func (h *Handler) LoginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, token, err := h.Sessions.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"Error": "Invalid username or password",
			})
			return
		}
		h.pageError(c, err)
		return
	}
	setSessionCookie(c, token, 0)
	c.Redirect(http.StatusFound, "/dashboard")
}

// LogoutPage clears the session and returns to the login form.
func (h *Handler) LogoutPage(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.Sessions.Logout(c.Request.Context(), token); err != nil {
			h.pageError(c, err)
			return
		}
	}
	setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}
