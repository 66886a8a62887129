package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oppabier/cardapio-server/src/repositories"
	"github.com/oppabier/cardapio-server/src/services"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product routes, the storefront menu and stats
type ProductHandler struct {
	productService *services.ProductService
	imageService   *services.ImageService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService, imageService *services.ImageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
	}
}

// HandleList returns active products, optionally filtered by category and
// featured flag
func (ph *ProductHandler) HandleList(c *gin.Context) {
	var filter repositories.ProductFilter

	if raw := c.Query("categoria_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "categoria_id inválido"})
			return
		}
		filter.CategoriaID = &id
	}
	filter.Destaque = isTruthy(c.Query("destaque"))

	products, err := ph.productService.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// HandleListAll returns every product, inactive included, for the admin table
func (ph *ProductHandler) HandleListAll(c *gin.Context) {
	products, err := ph.productService.ListAll(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// HandleCreate inserts a product from a multipart form, storing the image
// first so a rejected upload never leaves a row behind
func (ph *ProductHandler) HandleCreate(c *gin.Context) {
	in, ok := ph.bindProductForm(c)
	if !ok {
		return
	}

	if file, err := c.FormFile("imagem"); err == nil {
		url, err := ph.imageService.Save(file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		in.ImagemURL = url
	}

	id, err := ph.productService.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nome, preço e categoria são obrigatórios"})
			return
		}
		log.Error().Err(err).Msg("failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar produto"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produto criado com sucesso",
		"id":      id,
	})
}

// HandleUpdate rewrites a product. Without a new upload the stored image is
// kept only when the form says so (manter_imagem=true); otherwise it is
// cleared.
func (ph *ProductHandler) HandleUpdate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	in, ok := ph.bindProductForm(c)
	if !ok {
		return
	}

	setImage := true
	newImage := ""
	if file, err := c.FormFile("imagem"); err == nil {
		url, err := ph.imageService.Save(file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		in.ImagemURL = url
		newImage = url
	} else if isTruthy(c.PostForm("manter_imagem")) {
		setImage = false
	}

	err := ph.productService.Update(c.Request.Context(), id, in, setImage)
	if err != nil && newImage != "" {
		// the row was not rewritten, so the freshly stored file is an orphan
		ph.imageService.Remove(newImage)
	}
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Produto atualizado com sucesso"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome, preço e categoria são obrigatórios"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
	default:
		log.Error().Err(err).Msg("failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar produto"})
	}
}

// HandleDelete deactivates a product
func (ph *ProductHandler) HandleDelete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	err := ph.productService.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Produto deletado com sucesso"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
	default:
		log.Error().Err(err).Msg("failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao deletar produto"})
	}
}

// HandleFullMenu returns the whole category→products tree for the storefront
func (ph *ProductHandler) HandleFullMenu(c *gin.Context) {
	menu, err := ph.productService.FullMenu(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load menu")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

// HandleStats returns the admin dashboard counters
func (ph *ProductHandler) HandleStats(c *gin.Context) {
	stats, err := ph.productService.Stats(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// bindProductForm reads the multipart fields shared by create and update
func (ph *ProductHandler) bindProductForm(c *gin.Context) (services.ProductInput, bool) {
	nome := c.PostForm("nome")
	precoRaw := c.PostForm("preco")
	categoriaRaw := c.PostForm("categoria_id")

	if nome == "" || precoRaw == "" || categoriaRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome, preço e categoria são obrigatórios"})
		return services.ProductInput{}, false
	}

	preco, err := decimal.NewFromString(precoRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço inválido"})
		return services.ProductInput{}, false
	}

	categoriaID, err := strconv.ParseInt(categoriaRaw, 10, 64)
	if err != nil || categoriaID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria inválida"})
		return services.ProductInput{}, false
	}

	return services.ProductInput{
		Nome:        nome,
		Descricao:   c.PostForm("descricao"),
		Preco:       preco,
		CategoriaID: categoriaID,
		Destaque:    isTruthy(c.PostForm("destaque")),
	}, true
}

func respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidUpload) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Apenas imagens de até 5MB são permitidas"})
		return
	}
	log.Error().Err(err).Msg("failed to store upload")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar imagem"})
}

func isTruthy(v string) bool {
	return v == "1" || v == "true" || v == "sim"
}
