package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/docuforge/docuforge/internal/common"
)

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email, and password are required"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		handleError(c, err)
		return
	}

	user, err := s.users.Create(c.Request.Context(), req.Username, req.Email, string(hash))
	if err != nil {
		// unique violations surface as a generic conflict
		s.logger.Warn("auth.signup.failed", "username", req.Username, "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
		return
	}

	s.logger.Info("auth.signup.ok", "user_id", user.ID)
	s.setSessionCookie(c, s.sessions.create(user.ID))
	c.JSON(http.StatusCreated, user)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := s.users.GetByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		handleError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("auth.login.failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	s.logger.Info("auth.login.ok", "user_id", user.ID)
	s.setSessionCookie(c, s.sessions.create(user.ID))
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(s.cfg.Server.SessionCookie); err == nil {
		s.sessions.revoke(token)
	}
	c.SetCookie(s.cfg.Server.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(s.cfg.Server.SessionTTL.Seconds())
	c.SetCookie(s.cfg.Server.SessionCookie, token, maxAge, "/", "", false, true)
}
