package domain

import "time"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description"`
	Image         string    `json:"image"`
	HoverImage    *string   `json:"hover_image"`
	OriginalPrice float64   `json:"original_price"`
	SalePrice     float64   `json:"sale_price"`
	Rating        float64   `json:"rating"`
	Votes         int       `json:"votes"`
	Colors        []string  `json:"colors"`
	Badge         *string   `json:"badge"`
	CategoryID    *string   `json:"category_id"`
	InStock       bool      `json:"in_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

type Category struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Image        *string `json:"image"`
	ProductCount int     `json:"product_count"`
}

type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Rating       float64   `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
