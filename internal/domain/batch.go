package domain

import "time"

type Batch struct {
	BatchID   string    `json:"id" dynamodbav:"batch_id"`
	Code      string    `json:"code" dynamodbav:"code"`
	Name      string    `json:"name" dynamodbav:"name"`
	Breed     string    `json:"breed" dynamodbav:"breed"`
	AgeWeeks  int       `json:"ageWeeks" dynamodbav:"age_weeks"`
	Chickens  int       `json:"chickens" dynamodbav:"chickens"`
	Status    string    `json:"status" dynamodbav:"status"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateBatchRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Breed    string `json:"breed"`
	AgeWeeks int    `json:"ageWeeks"`
	Chickens int    `json:"chickens"`
	Status   string `json:"status"`
}

type UpdateBatchRequest struct {
	Name     *string `json:"name"`
	Breed    *string `json:"breed"`
	AgeWeeks *int    `json:"ageWeeks"`
	Chickens *int    `json:"chickens"`
	Status   *string `json:"status"`
}
