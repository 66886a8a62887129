package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories/mock"
	"github.com/oppabier/cardapio-server/src/services"
)

func setupCategoryHandler(repo *mock.CategoryRepository) *CategoryHandler {
	gin.SetMode(gin.TestMode)
	return NewCategoryHandler(services.NewCategoryServiceWithRepo(repo))
}

func TestHandleListCategories(t *testing.T) {
	repo := mock.NewCategoryRepository()
	repo.ListActiveFunc = func(ctx context.Context) ([]models.Category, error) {
		return []models.Category{
			{ID: 1, Nome: "Lanches", Ativo: true},
			{ID: 2, Nome: "Bebidas", Ativo: true},
		}, nil
	}
	handler := setupCategoryHandler(repo)

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodGet, "/api/categorias", nil)

	handler.HandleList(c)

	assertStatusCode(t, w, http.StatusOK)

	var categories []models.Category
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(categories))
	}
}

func TestHandleListAllCategories_IncludesCounts(t *testing.T) {
	repo := mock.NewCategoryRepository()
	repo.ListAllFunc = func(ctx context.Context) ([]models.CategoryWithCount, error) {
		return []models.CategoryWithCount{
			{Category: models.Category{ID: 1, Nome: "Lanches", Ativo: true}, TotalProdutos: 3},
		}, nil
	}
	handler := setupCategoryHandler(repo)

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodGet, "/api/categorias/todas", nil)

	handler.HandleListAll(c)

	assertStatusCode(t, w, http.StatusOK)

	var categories []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if categories[0]["total_produtos"] != float64(3) {
		t.Errorf("expected total_produtos 3, got %v", categories[0]["total_produtos"])
	}
}

func TestHandleCreateCategory_Success(t *testing.T) {
	repo := mock.NewCategoryRepository()
	repo.CreateFunc = func(ctx context.Context, category *models.Category) (int64, error) {
		return 9, nil
	}
	handler := setupCategoryHandler(repo)

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodPost, "/api/categorias", map[string]interface{}{
		"nome":  "Sobremesas",
		"ordem": 3,
	})

	handler.HandleCreate(c)

	assertStatusCode(t, w, http.StatusCreated)

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if response["id"] != float64(9) {
		t.Errorf("expected id 9, got %v", response["id"])
	}
}

func TestHandleCreateCategory_MissingName(t *testing.T) {
	handler := setupCategoryHandler(mock.NewCategoryRepository())

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodPost, "/api/categorias", map[string]interface{}{
		"descricao": "sem nome",
	})

	handler.HandleCreate(c)

	assertStatusCode(t, w, http.StatusBadRequest)
	assertJSONError(t, w, "Nome da categoria é obrigatório")
}

func TestHandleUpdateCategory_NotFound(t *testing.T) {
	repo := mock.NewCategoryRepository()
	repo.UpdateFunc = func(ctx context.Context, category *models.Category) (int64, error) {
		return 0, nil
	}
	handler := setupCategoryHandler(repo)

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodPut, "/api/categorias/99", map[string]interface{}{
		"nome": "Lanches",
	})
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.HandleUpdate(c)

	assertStatusCode(t, w, http.StatusNotFound)
	assertJSONError(t, w, "Categoria não encontrada")
}

func TestHandleUpdateCategory_InvalidID(t *testing.T) {
	handler := setupCategoryHandler(mock.NewCategoryRepository())

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodPut, "/api/categorias/abc", map[string]interface{}{
		"nome": "Lanches",
	})
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.HandleUpdate(c)

	assertStatusCode(t, w, http.StatusBadRequest)
	assertJSONError(t, w, "ID inválido")
}

func TestHandleDeleteCategory_BlockedByProducts(t *testing.T) {
	repo := mock.NewCategoryRepository()
	repo.CountActiveProductsFunc = func(ctx context.Context, categoryID int64) (int, error) {
		return 2, nil
	}
	handler := setupCategoryHandler(repo)

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodDelete, "/api/categorias/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.HandleDelete(c)

	assertStatusCode(t, w, http.StatusBadRequest)
	assertJSONError(t, w, "Não é possível deletar categoria com produtos ativos")
}

func TestHandleDeleteCategory_Success(t *testing.T) {
	repo := mock.NewCategoryRepository()
	repo.CountActiveProductsFunc = func(ctx context.Context, categoryID int64) (int, error) {
		return 0, nil
	}
	handler := setupCategoryHandler(repo)

	w, c := createTestContext()
	c.Request = jsonRequest(http.MethodDelete, "/api/categorias/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.HandleDelete(c)

	assertStatusCode(t, w, http.StatusOK)
}
