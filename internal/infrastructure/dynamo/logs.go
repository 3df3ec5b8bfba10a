package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chicktrack-api/internal/domain"
)

// LogRepo provides typed DynamoDB operations for the production_logs table.
type LogRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLogRepo(client *dynamodb.Client, tableName string) *LogRepo {
	return &LogRepo{client: client, tableName: tableName}
}

func (r *LogRepo) Put(ctx context.Context, l *domain.ProductionLog) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal production log: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LogRepo) Get(ctx context.Context, logID string) (*domain.ProductionLog, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("log_id", logID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("production log not found: %w", domain.ErrNotFound)
	}
	var l domain.ProductionLog
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns logs newest first, optionally filtered by batch code via the
// batch_code-index GSI.
func (r *LogRepo) List(ctx context.Context, batchCode string) ([]domain.ProductionLog, error) {
	var items []map[string]types.AttributeValue
	if batchCode != "" {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String("batch_code-index"),
			KeyConditionExpression:    aws.String("#b = :v"),
			ExpressionAttributeNames:  map[string]string{"#b": "batch_code"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: batchCode}},
		})
		if err != nil {
			return nil, err
		}
		items = out.Items
	} else {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName: aws.String(r.tableName),
		})
		if err != nil {
			return nil, err
		}
		items = out.Items
	}
	var logs []domain.ProductionLog
	if err := attributevalue.UnmarshalListOfMaps(items, &logs); err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
	return logs, nil
}

func (r *LogRepo) Update(ctx context.Context, logID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("log_id", logID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *LogRepo) Delete(ctx context.Context, logID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("log_id", logID),
	})
	return err
}
