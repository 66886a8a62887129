package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
)

// PublicConfig is the storefront configuration envelope. Values stay strings,
// the same way they are stored.
type PublicConfig struct {
	TempoEntrega  string `json:"tempo_entrega"`
	TempoRetirada string `json:"tempo_retirada"`
}

// ConfigService handles the key-value operational settings
type ConfigService struct {
	pool *pgxpool.Pool
	repo repositories.ConfigRepository
}

// NewConfigService creates a new config service
func NewConfigService(pool *pgxpool.Pool) *ConfigService {
	return &ConfigService{pool: pool}
}

// NewConfigServiceWithRepo creates a new config service with repository (for testing)
func NewConfigServiceWithRepo(repo repositories.ConfigRepository) *ConfigService {
	return &ConfigService{repo: repo}
}

// Seed inserts the well-known keys with their defaults when absent
func (cs *ConfigService) Seed(ctx context.Context) error {
	defaults := map[string]struct{ valor, descricao string }{
		models.ConfigTempoEntrega:  {models.DefaultTempoEntrega, "Tempo de entrega em minutos"},
		models.ConfigTempoRetirada: {models.DefaultTempoRetirada, "Tempo de retirada em minutos"},
	}

	for chave, d := range defaults {
		if cs.repo != nil {
			// Mock path has no insert-if-absent; Upsert is close enough for tests
			if err := cs.repo.Upsert(ctx, chave, d.valor); err != nil {
				return err
			}
			continue
		}
		_, err := cs.pool.Exec(ctx, `
			INSERT INTO configuracoes (chave, valor, descricao)
			VALUES ($1, $2, $3)
			ON CONFLICT (chave) DO NOTHING
		`, chave, d.valor, d.descricao)
		if err != nil {
			return fmt.Errorf("failed to seed config %s: %w", chave, err)
		}
	}
	return nil
}

// PublicConfig returns the storefront settings, falling back to the defaults
// when a row is missing
func (cs *ConfigService) PublicConfig(ctx context.Context) (*PublicConfig, error) {
	values, err := cs.getValues(ctx, models.ConfigTempoEntrega, models.ConfigTempoRetirada)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := &PublicConfig{
		TempoEntrega:  models.DefaultTempoEntrega,
		TempoRetirada: models.DefaultTempoRetirada,
	}
	if v, ok := values[models.ConfigTempoEntrega]; ok {
		cfg.TempoEntrega = v
	}
	if v, ok := values[models.ConfigTempoRetirada]; ok {
		cfg.TempoRetirada = v
	}
	return cfg, nil
}

// Update writes both well-known keys. There is no partial update: the admin
// form always submits both.
func (cs *ConfigService) Update(ctx context.Context, tempoEntrega, tempoRetirada string) error {
	tempoEntrega = strings.TrimSpace(tempoEntrega)
	tempoRetirada = strings.TrimSpace(tempoRetirada)
	if tempoEntrega == "" || tempoRetirada == "" {
		return fmt.Errorf("%w: tempo_entrega and tempo_retirada are required", ErrValidation)
	}

	if err := cs.upsert(ctx, models.ConfigTempoEntrega, tempoEntrega); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	if err := cs.upsert(ctx, models.ConfigTempoRetirada, tempoRetirada); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	return nil
}

// ListAll returns every config row for the admin settings table
func (cs *ConfigService) ListAll(ctx context.Context) ([]models.ConfigEntry, error) {
	if cs.repo != nil {
		return cs.repo.ListAll(ctx)
	}

	rows, err := cs.pool.Query(ctx, `
		SELECT chave, valor, descricao, updated_at
		FROM configuracoes
		ORDER BY chave
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list config: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ConfigEntry, 0)
	for rows.Next() {
		var e models.ConfigEntry
		if err := rows.Scan(&e.Chave, &e.Valor, &e.Descricao, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan config: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (cs *ConfigService) getValues(ctx context.Context, keys ...string) (map[string]string, error) {
	if cs.repo != nil {
		return cs.repo.GetValues(ctx, keys...)
	}

	rows, err := cs.pool.Query(ctx,
		"SELECT chave, valor FROM configuracoes WHERE chave = ANY($1)", keys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var chave, valor string
		if err := rows.Scan(&chave, &valor); err != nil {
			return nil, err
		}
		values[chave] = valor
	}
	return values, rows.Err()
}

func (cs *ConfigService) upsert(ctx context.Context, chave, valor string) error {
	if cs.repo != nil {
		return cs.repo.Upsert(ctx, chave, valor)
	}

	_, err := cs.pool.Exec(ctx, `
		INSERT INTO configuracoes (chave, valor)
		VALUES ($1, $2)
		ON CONFLICT (chave) DO UPDATE SET valor = EXCLUDED.valor, updated_at = now()
	`, chave, valor)
	return err
}
