package mock

import (
	"context"

	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
)

// ProductRepository is a mock implementation of repositories.ProductRepository
type ProductRepository struct {
	ListFunc       func(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error)
	ListAllFunc    func(ctx context.Context) ([]models.Product, error)
	CreateFunc     func(ctx context.Context, product *models.Product) (int64, error)
	UpdateFunc     func(ctx context.Context, product *models.Product, setImage bool) (int64, error)
	DeactivateFunc func(ctx context.Context, id int64) (int64, error)
	MenuRowsFunc   func(ctx context.Context) ([]models.MenuRow, error)
	StatsFunc      func(ctx context.Context) (*models.Stats, error)

	Calls map[string][]interface{}
}

// NewProductRepository creates a new mock product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *ProductRepository) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	m.Calls["List"] = append(m.Calls["List"], filter)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	m.Calls["ListAll"] = append(m.Calls["ListAll"], nil)
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *ProductRepository) Create(ctx context.Context, product *models.Product) (int64, error) {
	m.Calls["Create"] = append(m.Calls["Create"], product)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	return 1, nil
}

func (m *ProductRepository) Update(ctx context.Context, product *models.Product, setImage bool) (int64, error) {
	m.Calls["Update"] = append(m.Calls["Update"], product)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product, setImage)
	}
	return 1, nil
}

func (m *ProductRepository) Deactivate(ctx context.Context, id int64) (int64, error) {
	m.Calls["Deactivate"] = append(m.Calls["Deactivate"], id)
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return 1, nil
}

func (m *ProductRepository) MenuRows(ctx context.Context) ([]models.MenuRow, error) {
	m.Calls["MenuRows"] = append(m.Calls["MenuRows"], nil)
	if m.MenuRowsFunc != nil {
		return m.MenuRowsFunc(ctx)
	}
	return nil, nil
}

func (m *ProductRepository) Stats(ctx context.Context) (*models.Stats, error) {
	m.Calls["Stats"] = append(m.Calls["Stats"], nil)
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &models.Stats{}, nil
}

// Ensure ProductRepository implements the interface
var _ repositories.ProductRepository = (*ProductRepository)(nil)
