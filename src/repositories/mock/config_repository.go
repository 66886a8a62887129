package mock

import (
	"context"

	"github.com/oppabier/cardapio-server/src/models"
	"github.com/oppabier/cardapio-server/src/repositories"
)

// ConfigRepository is a mock implementation of repositories.ConfigRepository
type ConfigRepository struct {
	GetValuesFunc func(ctx context.Context, keys ...string) (map[string]string, error)
	UpsertFunc    func(ctx context.Context, chave, valor string) error
	ListAllFunc   func(ctx context.Context) ([]models.ConfigEntry, error)

	Calls map[string][]interface{}
}

// NewConfigRepository creates a new mock config repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *ConfigRepository) GetValues(ctx context.Context, keys ...string) (map[string]string, error) {
	m.Calls["GetValues"] = append(m.Calls["GetValues"], keys)
	if m.GetValuesFunc != nil {
		return m.GetValuesFunc(ctx, keys...)
	}
	return map[string]string{}, nil
}

func (m *ConfigRepository) Upsert(ctx context.Context, chave, valor string) error {
	m.Calls["Upsert"] = append(m.Calls["Upsert"], chave)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, chave, valor)
	}
	return nil
}

func (m *ConfigRepository) ListAll(ctx context.Context) ([]models.ConfigEntry, error) {
	m.Calls["ListAll"] = append(m.Calls["ListAll"], nil)
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

// Ensure ConfigRepository implements the interface
var _ repositories.ConfigRepository = (*ConfigRepository)(nil)
