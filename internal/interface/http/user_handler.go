package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karanatwal4/todo-api/internal/application"
	"github.com/karanatwal4/todo-api/internal/domain/entity"
	"github.com/karanatwal4/todo-api/internal/interface/middleware"
	"github.com/karanatwal4/todo-api/pkg/response"
	"github.com/karanatwal4/todo-api/pkg/validation"
)

type UserHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(auth *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Auth: auth, Logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// currentUser returns the user placed in the context by the auth middleware.
func currentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(middleware.CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

// Register POST /users {email, password}
// Responds with the public user; the x-auth header carries the new token.
func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrDuplicateEmail) {
			response.Error(c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	c.Header(middleware.TokenHeader, token)
	c.JSON(http.StatusOK, u)
}

// Login POST /users/login {email, password}
func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	c.Header(middleware.TokenHeader, token)
	c.JSON(http.StatusOK, u)
}

// Me GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		response.Error(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	c.JSON(http.StatusOK, u)
}

// RevokeToken DELETE /users/me/token
// Removes the presented token from the user's token list. Idempotent.
func (h *UserHandler) RevokeToken(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		response.Error(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	token := c.GetString(middleware.CtxTokenKey)
	if err := h.Auth.Revoke(c.Request.Context(), u, token); err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("revoke failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	c.Status(http.StatusOK)
}
