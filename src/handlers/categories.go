package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oppabier/cardapio-server/src/services"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category routes
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the request body for create and update
type CategoryRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Descricao string `json:"descricao"`
	Ordem     int    `json:"ordem"`
}

// HandleList returns active categories for the storefront
func (ch *CategoryHandler) HandleList(c *gin.Context) {
	categories, err := ch.categoryService.ListActive(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// HandleListAll returns every category with its active product count
func (ch *CategoryHandler) HandleListAll(c *gin.Context) {
	categories, err := ch.categoryService.ListAll(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// HandleCreate inserts a category
func (ch *CategoryHandler) HandleCreate(c *gin.Context) {
	var req CategoryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da categoria é obrigatório"})
		return
	}

	id, err := ch.categoryService.Create(c.Request.Context(), req.Nome, req.Descricao, req.Ordem)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da categoria é obrigatório"})
			return
		}
		log.Error().Err(err).Msg("failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar categoria"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Categoria criada com sucesso",
		"id":      id,
	})
}

// HandleUpdate rewrites a category
func (ch *CategoryHandler) HandleUpdate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da categoria é obrigatório"})
		return
	}

	err := ch.categoryService.Update(c.Request.Context(), id, req.Nome, req.Descricao, req.Ordem)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Categoria atualizada com sucesso"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome da categoria é obrigatório"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoria não encontrada"})
	default:
		log.Error().Err(err).Msg("failed to update category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar categoria"})
	}
}

// HandleDelete deactivates a category without active products
func (ch *CategoryHandler) HandleDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	err := ch.categoryService.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Categoria deletada com sucesso"})
	case errors.Is(err, services.ErrHasActiveProducts):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Não é possível deletar categoria com produtos ativos"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoria não encontrada"})
	default:
		log.Error().Err(err).Msg("failed to delete category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao deletar categoria"})
	}
}

// paramID parses the :id route parameter, responding 400 on garbage
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return id, true
}
