package domain

// OtpCode is one pending, unconsumed verification code.
// PK: phone. At most one live code per number; a reissue replaces the row.
// ExpiresAt is a Unix timestamp, doubling as the DynamoDB TTL attribute.
type OtpCode struct {
	Phone     string `json:"phone" dynamodbav:"phone"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
}
