package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"riskwizard_backend/internal/feature/auth/transport/http/dto"
	"riskwizard_backend/internal/feature/auth/usecase"
	jwtmw "riskwizard_backend/internal/platform/jwt"
)

// UserHandler serves the staff-only user directory.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all users, newest first. jwtmw.AuthRequired must run first.
func (h *UserHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "authentication required"})
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), userID)
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorRes{Error: "forbidden"})
		return
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "authentication required"})
		return
	case err != nil:
		slog.Error("list users failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: errServerError})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListRes(users))
}
