package models

import "github.com/shopspring/decimal"

// MenuRow is one row of the storefront menu join. Product columns are
// pointers because a category may have no active products (LEFT JOIN).
type MenuRow struct {
	CategoriaID        int64
	CategoriaNome      string
	CategoriaDescricao string
	CategoriaOrdem     int

	ProdutoID        *int64
	ProdutoNome      *string
	ProdutoDescricao *string
	ProdutoPreco     *decimal.Decimal
	ProdutoImagemURL *string
	ProdutoDestaque  *bool
}

// MenuCategory is one node of the nested menu tree returned by the
// cardapio-completo endpoint. Categories without active products are kept,
// with an empty Produtos slice.
type MenuCategory struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao"`
	Ordem     int       `json:"ordem"`
	Produtos  []Product `json:"produtos"`
}
