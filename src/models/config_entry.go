package models

import "time"

// Well-known configuration keys seeded at first startup.
const (
	ConfigTempoEntrega  = "tempo_entrega"
	ConfigTempoRetirada = "tempo_retirada"

	DefaultTempoEntrega  = "60"
	DefaultTempoRetirada = "45"
)

// ConfigEntry is a named operational setting stored as a string value
type ConfigEntry struct {
	Chave     string    `json:"chave"`
	Valor     string    `json:"valor"`
	Descricao string    `json:"descricao"`
	UpdatedAt time.Time `json:"updated_at"`
}
