package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dental-clinic-api/internal/middleware"
	"dental-clinic-api/internal/model"
	"dental-clinic-api/internal/store"
)

// GetAuthUser returns the record of whoever the access token identifies.
func (h *Handler) GetAuthUser(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	u, err := h.store.UserByID(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}
	if err != nil {
		h.log.Error("fetching auth user failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user."})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("fetching users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users."})
		return
	}
	if users == nil {
		users = []model.User{}
	}
	c.JSON(http.StatusOK, users)
}
