package domain

import "time"

type Product struct {
	ProductID   string    `json:"id" dynamodbav:"product_id"`
	UserID      *string   `json:"userId" dynamodbav:"user_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Category    string    `json:"category" dynamodbav:"category"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Unit        string    `json:"unit" dynamodbav:"unit"`
	InStock     bool      `json:"inStock" dynamodbav:"in_stock"`
	Seller      string    `json:"seller" dynamodbav:"seller"`
	Location    string    `json:"location" dynamodbav:"location"`
	Description string    `json:"description" dynamodbav:"description"`
	Type        string    `json:"type" dynamodbav:"type"`
	Contact     string    `json:"contact" dynamodbav:"contact"`
	Details     string    `json:"details" dynamodbav:"details"`
	Images      []string  `json:"images" dynamodbav:"images"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	InStock     *bool    `json:"inStock"`
	Seller      string   `json:"seller"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Contact     string   `json:"contact"`
	Details     string   `json:"details"`
	Images      []string `json:"images"`
}
