package repositories

import (
	"context"

	"github.com/oppabier/cardapio-server/src/models"
)

// AdminRepository defines the interface for admin account data access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*models.AdminUser, error)
	// Update rewrites username and password hash, returning rows affected
	Update(ctx context.Context, id int64, username, passwordHash string) (int64, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	ListAll(ctx context.Context) ([]models.CategoryWithCount, error)
	Create(ctx context.Context, category *models.Category) (int64, error)
	Update(ctx context.Context, category *models.Category) (int64, error)
	// Deactivate soft-deletes a category, returning rows affected
	Deactivate(ctx context.Context, id int64) (int64, error)
	CountActiveProducts(ctx context.Context, categoryID int64) (int, error)
}

// ProductFilter narrows the public product listing. Filters are additive.
type ProductFilter struct {
	CategoriaID *int64
	Destaque    bool
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (int64, error)
	// Update rewrites the product row. The image column is only touched when
	// setImage is true.
	Update(ctx context.Context, product *models.Product, setImage bool) (int64, error)
	// Deactivate soft-deletes a product, returning rows affected
	Deactivate(ctx context.Context, id int64) (int64, error)
	MenuRows(ctx context.Context) ([]models.MenuRow, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// ConfigRepository defines the interface for configuration data access
type ConfigRepository interface {
	GetValues(ctx context.Context, keys ...string) (map[string]string, error)
	Upsert(ctx context.Context, chave, valor string) error
	ListAll(ctx context.Context) ([]models.ConfigEntry, error)
}
