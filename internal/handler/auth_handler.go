package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dental-clinic-api/internal/auth"
	"dental-clinic-api/internal/middleware"
	"dental-clinic-api/internal/model"
	"dental-clinic-api/internal/store"
)

// RefreshCookie carries the long-lived refresh JWT.
const RefreshCookie = "refreshJwt"

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: firstName, lastName, email, password"})
		return
	}

	if _, err := h.store.UserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.log.Error("register: email lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create new user"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("register: hash failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create new user"})
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.store.CreateUser(c.Request.Context(), u); err != nil {
		h.log.Error("register: create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create new user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"user": gin.H{
			"id":        u.ID,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"email":     u.Email,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	u, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	accessTok, err := auth.MakeAccessToken(u.ID, u.Email, h.cfg.AccessSecret)
	if err != nil {
		h.log.Error("login: access token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	refreshTok, err := auth.MakeRefreshToken(u.ID, u.Email, h.cfg.RefreshSecret)
	if err != nil {
		h.log.Error("login: refresh token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	expiry := time.Now().Add(auth.RefreshTokenTTL)
	if err := h.store.UpsertRefreshToken(c.Request.Context(), u.ID, refreshTok, expiry); err != nil {
		h.log.Error("login: refresh token storage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.setAuthCookie(c, middleware.AccessCookie, accessTok, int(auth.AccessTokenTTL.Seconds()))
	h.setAuthCookie(c, RefreshCookie, refreshTok, int(auth.RefreshTokenTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":    u.ID,
			"email": u.Email,
		},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	refreshTok, err := c.Cookie(RefreshCookie)
	if err != nil || refreshTok == "" {
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.store.DeleteRefreshToken(c.Request.Context(), refreshTok); err != nil {
		h.log.Error("logout: delete refresh token", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	h.setAuthCookie(c, middleware.AccessCookie, "", -1)
	h.setAuthCookie(c, RefreshCookie, "", -1)
	c.Status(http.StatusNoContent)
}

// Refresh mints a new access cookie off a valid, stored refresh token.
// No cookie is 204 so clients don't retry; everything else suspect is 403.
func (h *Handler) Refresh(c *gin.Context) {
	refreshTok, err := c.Cookie(RefreshCookie)
	if err != nil || refreshTok == "" {
		c.Status(http.StatusNoContent)
		return
	}

	stored, err := h.store.RefreshTokenByToken(c.Request.Context(), refreshTok)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Refresh token not found"})
		return
	}
	if err != nil {
		h.log.Error("refresh: token lookup", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	claims, err := auth.ParseToken(refreshTok, h.cfg.RefreshSecret)
	if err != nil {
		h.log.Warn("refresh: verify failed", zap.Error(err))
		c.Status(http.StatusForbidden)
		return
	}
	if stored.UserID != claims.UserID {
		h.log.Warn("refresh: user mismatch between store and token")
		c.Status(http.StatusForbidden)
		return
	}

	accessTok, err := auth.MakeAccessToken(claims.UserID, claims.Email, h.cfg.AccessSecret)
	if err != nil {
		h.log.Error("refresh: access token", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	h.setAuthCookie(c, middleware.AccessCookie, accessTok, int(auth.AccessTokenTTL.Seconds()))
	c.Status(http.StatusOK)
}

func (h *Handler) setAuthCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetCookie(name, value, maxAge, "/", "", h.cfg.SecureCookies, true)
}
