package mock

import (
	"context"

	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
)

// AdminRepository is a mock implementation of repositories.AdminRepository
type AdminRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc          func(ctx context.Context, admin *models.AdminUser) error
	GetByUsernameFunc   func(ctx context.Context, username string) (*models.AdminUser, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*models.AdminUser, error)
	UpdateFunc          func(ctx context.Context, id int64, username, passwordHash string) (int64, error)
	UpdateLastLoginFunc func(ctx context.Context, id int64) error
	CountFunc           func(ctx context.Context) (int, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewAdminRepository creates a new mock admin repository
func NewAdminRepository() *AdminRepository {
	return &AdminRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	m.Calls["Create"] = append(m.Calls["Create"], admin)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

func (m *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	m.Calls["GetByUsername"] = append(m.Calls["GetByUsername"], username)
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *AdminRepository) GetByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *AdminRepository) Update(ctx context.Context, id int64, username, passwordHash string) (int64, error) {
	m.Calls["Update"] = append(m.Calls["Update"], id)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, username, passwordHash)
	}
	return 1, nil
}

func (m *AdminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	m.Calls["UpdateLastLogin"] = append(m.Calls["UpdateLastLogin"], id)
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, id)
	}
	return nil
}

func (m *AdminRepository) Count(ctx context.Context) (int, error) {
	m.Calls["Count"] = append(m.Calls["Count"], nil)
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// Ensure AdminRepository implements the interface
var _ repositories.AdminRepository = (*AdminRepository)(nil)
