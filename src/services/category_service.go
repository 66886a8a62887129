package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
)

// CategoryService handles category CRUD and the referential delete guard
type CategoryService struct {
	pool *pgxpool.Pool
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(pool *pgxpool.Pool) *CategoryService {
	return &CategoryService{pool: pool}
}

// NewCategoryServiceWithRepo creates a new category service with repository (for testing)
func NewCategoryServiceWithRepo(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListActive returns the categories visible on the storefront, ordered by
// display order then name
func (cs *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	if cs.repo != nil {
		return cs.repo.ListActive(ctx)
	}

	rows, err := cs.pool.Query(ctx, `
		SELECT id, nome, descricao, ordem, ativo, created_at
		FROM categorias
		WHERE ativo
		ORDER BY ordem, nome
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Nome, &c.Descricao, &c.Ordem, &c.Ativo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListAll returns every category, inactive included, with the count of
// active products in each. The admin panel relies on this shape.
func (cs *CategoryService) ListAll(ctx context.Context) ([]models.CategoryWithCount, error) {
	if cs.repo != nil {
		return cs.repo.ListAll(ctx)
	}

	rows, err := cs.pool.Query(ctx, `
		SELECT c.id, c.nome, c.descricao, c.ordem, c.ativo, c.created_at, COUNT(p.id) AS total_produtos
		FROM categorias c
		LEFT JOIN produtos p ON p.categoria_id = c.id AND p.ativo
		GROUP BY c.id
		ORDER BY c.ordem, c.nome
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.CategoryWithCount, 0)
	for rows.Next() {
		var c models.CategoryWithCount
		if err := rows.Scan(&c.ID, &c.Nome, &c.Descricao, &c.Ordem, &c.Ativo, &c.CreatedAt, &c.TotalProdutos); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create inserts a category and returns its id
func (cs *CategoryService) Create(ctx context.Context, nome, descricao string, ordem int) (int64, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return 0, fmt.Errorf("%w: nome is required", ErrValidation)
	}

	if cs.repo != nil {
		return cs.repo.Create(ctx, &models.Category{Nome: nome, Descricao: descricao, Ordem: ordem})
	}

	var id int64
	err := cs.pool.QueryRow(ctx, `
		INSERT INTO categorias (nome, descricao, ordem)
		VALUES ($1, $2, $3)
		RETURNING id
	`, nome, descricao, ordem).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	return id, nil
}

// Update rewrites name, description and display order of a category
func (cs *CategoryService) Update(ctx context.Context, id int64, nome, descricao string, ordem int) error {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return fmt.Errorf("%w: nome is required", ErrValidation)
	}

	var rows int64
	var err error
	if cs.repo != nil {
		rows, err = cs.repo.Update(ctx, &models.Category{ID: id, Nome: nome, Descricao: descricao, Ordem: ordem})
	} else {
		var tag pgconn.CommandTag
		tag, err = cs.pool.Exec(ctx, `
			UPDATE categorias SET nome = $1, descricao = $2, ordem = $3 WHERE id = $4
		`, nome, descricao, ordem, id)
		if err == nil {
			rows = tag.RowsAffected()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deactivates a category. A category still referenced by active
// products cannot be removed.
//
// The existence check and the write are two separate statements; concurrent
// admin deletes can race past the guard. Accepted for single-admin usage.
func (cs *CategoryService) Delete(ctx context.Context, id int64) error {
	count, err := cs.countActiveProducts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}
	if count > 0 {
		return ErrHasActiveProducts
	}

	var rows int64
	if cs.repo != nil {
		rows, err = cs.repo.Deactivate(ctx, id)
	} else {
		var tag pgconn.CommandTag
		tag, err = cs.pool.Exec(ctx, "UPDATE categorias SET ativo = FALSE WHERE id = $1", id)
		if err == nil {
			rows = tag.RowsAffected()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (cs *CategoryService) countActiveProducts(ctx context.Context, id int64) (int, error) {
	if cs.repo != nil {
		return cs.repo.CountActiveProducts(ctx, id)
	}

	var count int
	err := cs.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM produtos WHERE categoria_id = $1 AND ativo", id).Scan(&count)
	return count, err
}
