package models

import "time"

// Category groups menu products. Inactive categories are hidden from the
// public listing but kept for the admin panel.
type Category struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao"`
	Ordem     int       `json:"ordem"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryWithCount is the admin listing shape. TotalProdutos counts active
// products only, matching the delete guard.
type CategoryWithCount struct {
	Category
	TotalProdutos int `json:"total_produtos"`
}
