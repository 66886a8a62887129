package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
	"github.com/shopspring/decimal"
)

// ProductInput carries the writable product fields
type ProductInput struct {
	Nome        string
	Descricao   string
	Preco       decimal.Decimal
	CategoriaID int64
	Destaque    bool
	ImagemURL   string
}

func (in *ProductInput) validate() error {
	in.Nome = strings.TrimSpace(in.Nome)
	if in.Nome == "" {
		return fmt.Errorf("%w: nome is required", ErrValidation)
	}
	if in.Preco.IsNegative() {
		return fmt.Errorf("%w: preco must be >= 0", ErrValidation)
	}
	if in.CategoriaID <= 0 {
		return fmt.Errorf("%w: categoria_id is required", ErrValidation)
	}
	return nil
}

// ProductService handles product CRUD, the storefront menu and dashboard stats
type ProductService struct {
	pool *pgxpool.Pool
	repo repositories.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(pool *pgxpool.Pool) *ProductService {
	return &ProductService{pool: pool}
}

// NewProductServiceWithRepo creates a new product service with repository (for testing)
func NewProductServiceWithRepo(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List returns active products joined with their category name. Filters are
// additive.
func (ps *ProductService) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	if ps.repo != nil {
		return ps.repo.List(ctx, filter)
	}

	sql := `
		SELECT p.id, p.nome, p.descricao, p.preco, p.categoria_id, COALESCE(c.nome, ''),
		       p.imagem_url, p.ativo, p.destaque, p.created_at
		FROM produtos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		WHERE p.ativo
	`
	args := []interface{}{}

	if filter.CategoriaID != nil {
		args = append(args, *filter.CategoriaID)
		sql += fmt.Sprintf(" AND p.categoria_id = $%d", len(args))
	}
	if filter.Destaque {
		sql += " AND p.destaque"
	}
	sql += " ORDER BY p.nome"

	return ps.queryProducts(ctx, sql, args...)
}

// ListAll returns every product, inactive included, for the admin table
func (ps *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	if ps.repo != nil {
		return ps.repo.ListAll(ctx)
	}

	return ps.queryProducts(ctx, `
		SELECT p.id, p.nome, p.descricao, p.preco, p.categoria_id, COALESCE(c.nome, ''),
		       p.imagem_url, p.ativo, p.destaque, p.created_at
		FROM produtos p
		LEFT JOIN categorias c ON p.categoria_id = c.id
		ORDER BY p.nome
	`)
}

// Create inserts a product and returns its id. A reference to a missing
// category is rejected by the foreign key and surfaces as a validation error.
func (ps *ProductService) Create(ctx context.Context, in ProductInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	if ps.repo != nil {
		return ps.repo.Create(ctx, &models.Product{
			Nome:        in.Nome,
			Descricao:   in.Descricao,
			Preco:       in.Preco,
			CategoriaID: in.CategoriaID,
			Destaque:    in.Destaque,
			ImagemURL:   in.ImagemURL,
		})
	}

	var id int64
	err := ps.pool.QueryRow(ctx, `
		INSERT INTO produtos (nome, descricao, preco, categoria_id, imagem_url, destaque)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, in.Nome, in.Descricao, in.Preco, in.CategoriaID, in.ImagemURL, in.Destaque).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: categoria does not exist", ErrValidation)
		}
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// Update rewrites a product row. The image reference is only written when
// setImage is true; callers preserve the stored image by passing false
// (the explicit manter_imagem flag).
func (ps *ProductService) Update(ctx context.Context, id int64, in ProductInput, setImage bool) error {
	if err := in.validate(); err != nil {
		return err
	}

	var rows int64
	var err error
	if ps.repo != nil {
		rows, err = ps.repo.Update(ctx, &models.Product{
			ID:          id,
			Nome:        in.Nome,
			Descricao:   in.Descricao,
			Preco:       in.Preco,
			CategoriaID: in.CategoriaID,
			Destaque:    in.Destaque,
			ImagemURL:   in.ImagemURL,
		}, setImage)
	} else if setImage {
		var tag pgconn.CommandTag
		tag, err = ps.pool.Exec(ctx, `
			UPDATE produtos
			SET nome = $1, descricao = $2, preco = $3, categoria_id = $4, imagem_url = $5, destaque = $6
			WHERE id = $7
		`, in.Nome, in.Descricao, in.Preco, in.CategoriaID, in.ImagemURL, in.Destaque, id)
		if err == nil {
			rows = tag.RowsAffected()
		}
	} else {
		var tag pgconn.CommandTag
		tag, err = ps.pool.Exec(ctx, `
			UPDATE produtos
			SET nome = $1, descricao = $2, preco = $3, categoria_id = $4, destaque = $5
			WHERE id = $6
		`, in.Nome, in.Descricao, in.Preco, in.CategoriaID, in.Destaque, id)
		if err == nil {
			rows = tag.RowsAffected()
		}
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoria does not exist", ErrValidation)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deactivates a product, keeping the row for the admin table
func (ps *ProductService) Delete(ctx context.Context, id int64) error {
	var rows int64
	var err error
	if ps.repo != nil {
		rows, err = ps.repo.Deactivate(ctx, id)
	} else {
		var tag pgconn.CommandTag
		tag, err = ps.pool.Exec(ctx, "UPDATE produtos SET ativo = FALSE WHERE id = $1", id)
		if err == nil {
			rows = tag.RowsAffected()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// FullMenu returns the whole storefront menu in one round trip: active
// categories in display order, each with its active products. Categories
// without products are kept with an empty product list.
func (ps *ProductService) FullMenu(ctx context.Context) ([]models.MenuCategory, error) {
	rows, err := ps.menuRows(ctx)
	if err != nil {
		return nil, err
	}
	return groupMenuRows(rows), nil
}

// groupMenuRows folds the flat join result into the category tree,
// preserving row order
func groupMenuRows(rows []models.MenuRow) []models.MenuCategory {
	menu := make([]models.MenuCategory, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		pos, ok := index[row.CategoriaID]
		if !ok {
			pos = len(menu)
			index[row.CategoriaID] = pos
			menu = append(menu, models.MenuCategory{
				ID:        row.CategoriaID,
				Nome:      row.CategoriaNome,
				Descricao: row.CategoriaDescricao,
				Ordem:     row.CategoriaOrdem,
				Produtos:  make([]models.Product, 0),
			})
		}

		if row.ProdutoID == nil {
			continue
		}
		menu[pos].Produtos = append(menu[pos].Produtos, models.Product{
			ID:          *row.ProdutoID,
			Nome:        *row.ProdutoNome,
			Descricao:   derefString(row.ProdutoDescricao),
			Preco:       *row.ProdutoPreco,
			CategoriaID: row.CategoriaID,
			ImagemURL:   derefString(row.ProdutoImagemURL),
			Ativo:       true,
			Destaque:    row.ProdutoDestaque != nil && *row.ProdutoDestaque,
		})
	}
	return menu
}

// Stats returns the dashboard counters in a single aggregate query
func (ps *ProductService) Stats(ctx context.Context) (*models.Stats, error) {
	if ps.repo != nil {
		return ps.repo.Stats(ctx)
	}

	stats := &models.Stats{}
	err := ps.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM categorias WHERE ativo),
			(SELECT COUNT(*) FROM produtos WHERE ativo),
			(SELECT COUNT(*) FROM produtos WHERE ativo AND destaque)
	`).Scan(&stats.Categorias, &stats.Produtos, &stats.Destaques)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}

func (ps *ProductService) menuRows(ctx context.Context) ([]models.MenuRow, error) {
	if ps.repo != nil {
		return ps.repo.MenuRows(ctx)
	}

	rows, err := ps.pool.Query(ctx, `
		SELECT c.id, c.nome, c.descricao, c.ordem,
		       p.id, p.nome, p.descricao, p.preco, p.imagem_url, p.destaque
		FROM categorias c
		LEFT JOIN produtos p ON p.categoria_id = c.id AND p.ativo
		WHERE c.ativo
		ORDER BY c.ordem, c.nome, p.nome
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	defer rows.Close()

	result := make([]models.MenuRow, 0)
	for rows.Next() {
		var r models.MenuRow
		if err := rows.Scan(
			&r.CategoriaID, &r.CategoriaNome, &r.CategoriaDescricao, &r.CategoriaOrdem,
			&r.ProdutoID, &r.ProdutoNome, &r.ProdutoDescricao, &r.ProdutoPreco,
			&r.ProdutoImagemURL, &r.ProdutoDestaque,
		); err != nil {
			return nil, fmt.Errorf("failed to scan menu row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (ps *ProductService) queryProducts(ctx context.Context, sql string, args ...interface{}) ([]models.Product, error) {
	rows, err := ps.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Nome, &p.Descricao, &p.Preco, &p.CategoriaID, &p.CategoriaNome,
			&p.ImagemURL, &p.Ativo, &p.Destaque, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
