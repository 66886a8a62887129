package services

import (
	"context"
	"testing"

	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
	"github.com/oppabier/cardapio-server/src/repositories/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductInput() ProductInput {
	return ProductInput{
		Nome:        "X-Burger",
		Descricao:   "Pão, carne e queijo",
		Preco:       decimal.NewFromFloat(25.90),
		CategoriaID: 1,
	}
}

func TestProductCreate_Validation(t *testing.T) {
	repo := mock.NewProductRepository()
	service := NewProductServiceWithRepo(repo)

	tests := []struct {
		name   string
		mutate func(*ProductInput)
	}{
		{"empty name", func(in *ProductInput) { in.Nome = "  " }},
		{"negative price", func(in *ProductInput) { in.Preco = decimal.NewFromFloat(-1) }},
		{"missing category", func(in *ProductInput) { in.CategoriaID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProductInput()
			tt.mutate(&in)
			_, err := service.Create(context.Background(), in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, repo.Calls["Create"])
}

func TestProductCreate_Success(t *testing.T) {
	repo := mock.NewProductRepository()
	var created *models.Product
	repo.CreateFunc = func(ctx context.Context, product *models.Product) (int64, error) {
		created = product
		return 7, nil
	}

	service := NewProductServiceWithRepo(repo)
	in := validProductInput()
	in.Destaque = true
	id, err := service.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "X-Burger", created.Nome)
	assert.True(t, created.Destaque)
	assert.True(t, created.Preco.Equal(decimal.NewFromFloat(25.90)))
}

func TestProductCreate_ZeroPriceAllowed(t *testing.T) {
	repo := mock.NewProductRepository()
	service := NewProductServiceWithRepo(repo)

	in := validProductInput()
	in.Preco = decimal.Zero
	_, err := service.Create(context.Background(), in)

	assert.NoError(t, err)
}

func TestProductUpdate_NotFound(t *testing.T) {
	repo := mock.NewProductRepository()
	repo.UpdateFunc = func(ctx context.Context, product *models.Product, setImage bool) (int64, error) {
		return 0, nil
	}

	service := NewProductServiceWithRepo(repo)
	err := service.Update(context.Background(), 99, validProductInput(), true)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductUpdate_PassesSetImageFlag(t *testing.T) {
	repo := mock.NewProductRepository()
	var gotSetImage bool
	repo.UpdateFunc = func(ctx context.Context, product *models.Product, setImage bool) (int64, error) {
		gotSetImage = setImage
		return 1, nil
	}

	service := NewProductServiceWithRepo(repo)
	err := service.Update(context.Background(), 1, validProductInput(), false)

	require.NoError(t, err)
	assert.False(t, gotSetImage)
}

func TestProductDelete_NotFound(t *testing.T) {
	repo := mock.NewProductRepository()
	repo.DeactivateFunc = func(ctx context.Context, id int64) (int64, error) {
		return 0, nil
	}

	service := NewProductServiceWithRepo(repo)
	err := service.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductList_ForwardsFilter(t *testing.T) {
	repo := mock.NewProductRepository()
	var gotFilter repositories.ProductFilter
	repo.ListFunc = func(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
		gotFilter = filter
		return []models.Product{}, nil
	}

	service := NewProductServiceWithRepo(repo)
	categoriaID := int64(3)
	_, err := service.List(context.Background(), repositories.ProductFilter{CategoriaID: &categoriaID, Destaque: true})

	require.NoError(t, err)
	require.NotNil(t, gotFilter.CategoriaID)
	assert.Equal(t, int64(3), *gotFilter.CategoriaID)
	assert.True(t, gotFilter.Destaque)
}

func menuRow(catID int64, catNome string, ordem int, produto *models.Product) models.MenuRow {
	row := models.MenuRow{
		CategoriaID:    catID,
		CategoriaNome:  catNome,
		CategoriaOrdem: ordem,
	}
	if produto != nil {
		row.ProdutoID = &produto.ID
		row.ProdutoNome = &produto.Nome
		row.ProdutoDescricao = &produto.Descricao
		row.ProdutoPreco = &produto.Preco
		row.ProdutoImagemURL = &produto.ImagemURL
		row.ProdutoDestaque = &produto.Destaque
	}
	return row
}

func TestGroupMenuRows(t *testing.T) {
	burger := &models.Product{ID: 10, Nome: "X-Burger", Preco: decimal.NewFromFloat(25.90), Destaque: true}
	fries := &models.Product{ID: 11, Nome: "Batata frita", Preco: decimal.NewFromFloat(12.00)}
	soda := &models.Product{ID: 20, Nome: "Refrigerante", Preco: decimal.NewFromFloat(6.50)}

	rows := []models.MenuRow{
		menuRow(1, "Lanches", 1, burger),
		menuRow(1, "Lanches", 1, fries),
		menuRow(2, "Bebidas", 2, soda),
		menuRow(3, "Sobremesas", 3, nil), // category without products
	}

	menu := groupMenuRows(rows)

	require.Len(t, menu, 3)

	assert.Equal(t, "Lanches", menu[0].Nome)
	require.Len(t, menu[0].Produtos, 2)
	assert.Equal(t, int64(10), menu[0].Produtos[0].ID)
	assert.True(t, menu[0].Produtos[0].Destaque)
	assert.Equal(t, int64(1), menu[0].Produtos[0].CategoriaID)

	assert.Equal(t, "Bebidas", menu[1].Nome)
	require.Len(t, menu[1].Produtos, 1)

	// Empty category keeps an empty slice, not nil, so it serializes as []
	assert.Equal(t, "Sobremesas", menu[2].Nome)
	assert.NotNil(t, menu[2].Produtos)
	assert.Len(t, menu[2].Produtos, 0)
}

func TestGroupMenuRows_Empty(t *testing.T) {
	menu := groupMenuRows(nil)
	assert.NotNil(t, menu)
	assert.Len(t, menu, 0)
}

func TestFullMenu_UsesRepository(t *testing.T) {
	repo := mock.NewProductRepository()
	burger := &models.Product{ID: 1, Nome: "X-Burger", Preco: decimal.NewFromFloat(25.90)}
	repo.MenuRowsFunc = func(ctx context.Context) ([]models.MenuRow, error) {
		return []models.MenuRow{menuRow(1, "Lanches", 1, burger)}, nil
	}

	service := NewProductServiceWithRepo(repo)
	menu, err := service.FullMenu(context.Background())

	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "X-Burger", menu[0].Produtos[0].Nome)
}

func TestStats_PassesThrough(t *testing.T) {
	repo := mock.NewProductRepository()
	repo.StatsFunc = func(ctx context.Context) (*models.Stats, error) {
		return &models.Stats{Categorias: 3, Produtos: 12, Destaques: 2}, nil
	}

	service := NewProductServiceWithRepo(repo)
	stats, err := service.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Produtos)
}
