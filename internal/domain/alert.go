package domain

import "time"

type Alert struct {
	AlertID   string    `json:"id" dynamodbav:"alert_id"`
	Type      string    `json:"type" dynamodbav:"type"` // "info" | "warning" | "error"
	Message   string    `json:"message" dynamodbav:"message"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
