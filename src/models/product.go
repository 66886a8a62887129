package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable menu item belonging to exactly one category.
// Preco is a fixed-point decimal persisted as NUMERIC(10,2).
type Product struct {
	ID            int64           `json:"id"`
	Nome          string          `json:"nome"`
	Descricao     string          `json:"descricao"`
	Preco         decimal.Decimal `json:"preco"`
	CategoriaID   int64           `json:"categoria_id"`
	CategoriaNome string          `json:"categoria_nome,omitempty"`
	ImagemURL     string          `json:"imagem_url"`
	Ativo         bool            `json:"ativo"`
	Destaque      bool            `json:"destaque"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Stats summarizes the catalog for the admin dashboard
type Stats struct {
	Categorias int64 `json:"categorias"`
	Produtos   int64 `json:"produtos"`
	Destaques  int64 `json:"destaques"`
}
