package mock

import (
	"context"

	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
)

// CategoryRepository is a mock implementation of repositories.CategoryRepository
type CategoryRepository struct {
	ListActiveFunc          func(ctx context.Context) ([]models.Category, error)
	ListAllFunc             func(ctx context.Context) ([]models.CategoryWithCount, error)
	CreateFunc              func(ctx context.Context, category *models.Category) (int64, error)
	UpdateFunc              func(ctx context.Context, category *models.Category) (int64, error)
	DeactivateFunc          func(ctx context.Context, id int64) (int64, error)
	CountActiveProductsFunc func(ctx context.Context, categoryID int64) (int, error)

	Calls map[string][]interface{}
}

// NewCategoryRepository creates a new mock category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	m.Calls["ListActive"] = append(m.Calls["ListActive"], nil)
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *CategoryRepository) ListAll(ctx context.Context) ([]models.CategoryWithCount, error) {
	m.Calls["ListAll"] = append(m.Calls["ListAll"], nil)
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *CategoryRepository) Create(ctx context.Context, category *models.Category) (int64, error) {
	m.Calls["Create"] = append(m.Calls["Create"], category)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return 1, nil
}

func (m *CategoryRepository) Update(ctx context.Context, category *models.Category) (int64, error) {
	m.Calls["Update"] = append(m.Calls["Update"], category)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return 1, nil
}

func (m *CategoryRepository) Deactivate(ctx context.Context, id int64) (int64, error) {
	m.Calls["Deactivate"] = append(m.Calls["Deactivate"], id)
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return 1, nil
}

func (m *CategoryRepository) CountActiveProducts(ctx context.Context, categoryID int64) (int, error) {
	m.Calls["CountActiveProducts"] = append(m.Calls["CountActiveProducts"], categoryID)
	if m.CountActiveProductsFunc != nil {
		return m.CountActiveProductsFunc(ctx, categoryID)
	}
	return 0, nil
}

// Ensure CategoryRepository implements the interface
var _ repositories.CategoryRepository = (*CategoryRepository)(nil)
