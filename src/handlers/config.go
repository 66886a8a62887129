package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oppabier/cardapio-server/src/services"
	"github.com/rs/zerolog/log"
)

// ConfigHandler handles the operational settings routes
type ConfigHandler struct {
	configService *services.ConfigService
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(configService *services.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// HandleGet returns the public storefront settings as a bare object
func (ch *ConfigHandler) HandleGet(c *gin.Context) {
	cfg, err := ch.configService.PublicConfig(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// HandleListAll returns every config row for the admin settings table
func (ch *ConfigHandler) HandleListAll(c *gin.Context) {
	entries, err := ch.configService.ListAll(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateConfigRequest represents the request body for the settings update.
// Both fields are required; the admin form always submits both.
type UpdateConfigRequest struct {
	TempoEntrega  string `json:"tempo_entrega" binding:"required"`
	TempoRetirada string `json:"tempo_retirada" binding:"required"`
}

// HandleUpdate writes both well-known settings
func (ch *ConfigHandler) HandleUpdate(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tempo de entrega e retirada são obrigatórios"})
		return
	}

	err := ch.configService.Update(c.Request.Context(), req.TempoEntrega, req.TempoRetirada)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Configurações atualizadas com sucesso"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tempo de entrega e retirada são obrigatórios"})
	default:
		log.Error().Err(err).Msg("failed to update config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar configurações"})
	}
}
