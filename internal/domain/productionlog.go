package domain

import "time"

type ProductionLog struct {
	LogID     string    `json:"id" dynamodbav:"log_id"`
	BatchCode string    `json:"batchCode" dynamodbav:"batch_code"`
	Date      time.Time `json:"date" dynamodbav:"date"`
	Eggs      int       `json:"eggs" dynamodbav:"eggs"`
	FeedKg    float64   `json:"feedKg" dynamodbav:"feed_kg"`
	Deaths    int       `json:"deaths" dynamodbav:"deaths"`
	Expenses  float64   `json:"expenses" dynamodbav:"expenses"`
	Notes     *string   `json:"notes" dynamodbav:"notes"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateLogRequest struct {
	BatchCode string  `json:"batchCode" validate:"required"`
	Date      string  `json:"date" validate:"required"` // YYYY-MM-DD or RFC 3339
	Eggs      int     `json:"eggs"`
	FeedKg    float64 `json:"feedKg"`
	Deaths    int     `json:"deaths"`
	Expenses  float64 `json:"expenses"`
	Notes     *string `json:"notes"`
}

type UpdateLogRequest struct {
	BatchCode *string  `json:"batchCode"`
	Date      *string  `json:"date"`
	Eggs      *int     `json:"eggs"`
	FeedKg    *float64 `json:"feedKg"`
	Deaths    *int     `json:"deaths"`
	Expenses  *float64 `json:"expenses"`
	Notes     *string  `json:"notes"`
}
