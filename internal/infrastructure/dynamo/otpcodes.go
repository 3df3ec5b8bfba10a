package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chicktrack-api/internal/domain"
)

// OTPRepo stores pending one-time passcodes, at most one per phone number.
// PK: phone. PutItem is a full replace, so reissuing a code for a phone
// atomically supersedes the previous one with no window where two live
// codes coexist. expires_at doubles as the DynamoDB TTL attribute; expiry
// is still checked at read time since TTL deletion is lazy.
type OTPRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOTPRepo(client *dynamodb.Client, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

// Put replaces any pending code for phone with a fresh one expiring after ttl.
func (r *OTPRepo) Put(ctx context.Context, phone, code string, ttl time.Duration) (*domain.OtpCode, error) {
	rec := &domain.OtpCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal otp code: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns the pending code for phone, or domain.ErrNotFound.
func (r *OTPRepo) Get(ctx context.Context, phone string) (*domain.OtpCode, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey("phone", phone),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("no pending code: %w", domain.ErrNotFound)
	}
	var rec domain.OtpCode
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Consume deletes the pending code for phone. Deleting a missing row is not
// an error.
func (r *OTPRepo) Consume(ctx context.Context, phone string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("phone", phone),
	})
	return err
}
