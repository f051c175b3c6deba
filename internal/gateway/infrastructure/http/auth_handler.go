package http

import (
	"net/http"
	"time"

	"github.com/Lexv0lk/vending-machine/internal/gateway/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/gin-gonic/gin"
)

type registerRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=buyer seller"`
}

type loginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequestBody struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type AuthHandler struct {
	service domain.AuthService
	logger  logging.Logger
}

func NewAuthHandler(service domain.AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindingError(c, err)
		return
	}

	account, err := h.service.Register(c.Request.Context(), body.Username, body.Password, body.Role)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, domain.NewAccountView(account, 0))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindingError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	view := domain.LoginView{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if result.Warning != nil {
		view.Warning = result.Warning.Msg
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	account, activeSessions, err := h.service.Account(c.Request.Context(), actor.AccountID)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, domain.NewAccountView(account, activeSessions))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var body changePasswordRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindingError(c, err)
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), actor.AccountID, body.CurrentPassword, body.NewPassword)
	if err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) DeleteMe(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), actor.AccountID); err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), sessionFrom(c)); err != nil {
		handleDomainError(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	revoked := h.service.LogoutAll(c.Request.Context(), actor.AccountID)
	c.JSON(http.StatusOK, gin.H{"revoked": revoked})
}
