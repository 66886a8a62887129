package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oppabier/cardapio-server/src/middleware"
	"github.com/oppabier/cardapio-server/src/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles login, token verification and credential updates
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for successful login
type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// LoginUser is the identity echoed back to the admin panel
type LoginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// HandleLogin authenticates the admin account and returns a bearer token
func (ah *AuthHandler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário e senha são obrigatórios"})
		return
	}

	user, err := ah.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	token, err := middleware.GenerateAdminToken(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login realizado com sucesso",
		Token:   token,
		User:    LoginUser{ID: user.ID, Username: user.Username},
	})
}

// HandleVerify confirms a token is still valid and echoes its identity
func (ah *AuthHandler) HandleVerify(c *gin.Context) {
	userID := c.GetInt64("user_id")
	username := c.GetString("username")

	c.JSON(http.StatusOK, gin.H{
		"user": LoginUser{ID: userID, Username: username},
	})
}

// UpdateUserRequest represents the request body for credential updates.
// CurrentPassword is always required; at least one of the new fields must be
// supplied.
type UpdateUserRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword" binding:"required"`
}

// HandleUpdateUser changes the admin username and/or password
func (ah *AuthHandler) HandleUpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Senha atual é obrigatória"})
		return
	}

	userID := c.GetInt64("user_id")
	err := ah.userService.UpdateCredentials(c.Request.Context(), userID, req.CurrentPassword, req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Usuário atualizado com sucesso"})
	case errors.Is(err, services.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha atual incorreta"})
	case errors.Is(err, services.ErrNoChange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhuma alteração fornecida"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome de usuário já está em uso"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
	default:
		log.Error().Err(err).Msg("failed to update admin account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar usuário"})
	}
}
