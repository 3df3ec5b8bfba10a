package domain

import "time"

type Order struct {
	OrderID      string    `json:"id" dynamodbav:"order_id"`
	ProductID    string    `json:"productId" dynamodbav:"product_id"`
	Quantity     int       `json:"quantity" dynamodbav:"quantity"`
	UnitPrice    float64   `json:"unitPrice" dynamodbav:"unit_price"`
	BuyerContact *string   `json:"buyerContact" dynamodbav:"buyer_contact"`
	Status       string    `json:"status" dynamodbav:"status"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateOrderRequest struct {
	ProductID    string  `json:"productId" validate:"required"`
	Quantity     int     `json:"quantity"`
	BuyerContact *string `json:"buyerContact"`
}

type UpdateOrderRequest struct {
	Status       *string `json:"status"`
	BuyerContact *string `json:"buyerContact"`
}
