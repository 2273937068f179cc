package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
)

// DynamoDB persists labels in a single table keyed by labelId
type DynamoDB struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoDB creates a DynamoDB-backed Gateway
func NewDynamoDB(awsCfg aws.Config, table string) *DynamoDB {
	return &DynamoDB{
		client: dynamodb.NewFromConfig(awsCfg),
		table:  table,
	}
}

func (d *DynamoDB) Put(ctx context.Context, label *domain.Label) error {
	item, err := attributevalue.MarshalMap(label)
	if err != nil {
		return errors.StoreError(err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return errors.StoreError(err)
	}
	return nil
}

func (d *DynamoDB) Get(ctx context.Context, labelID string) (*domain.Label, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       labelKey(labelID),
	})
	if err != nil {
		return nil, errors.StoreError(err)
	}
	if out.Item == nil {
		return nil, errors.NotFound("label")
	}

	var label domain.Label
	if err := attributevalue.UnmarshalMap(out.Item, &label); err != nil {
		return nil, errors.StoreError(err)
	}
	return &label, nil
}

func (d *DynamoDB) List(ctx context.Context) ([]*domain.Label, error) {
	labels := make([]*domain.Label, 0)

	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.StoreError(err)
		}

		var batch []*domain.Label
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, errors.StoreError(err)
		}
		labels = append(labels, batch...)
	}

	return labels, nil
}

// Delete removes a label. The condition makes the unconditional DynamoDB
// delete report missing documents, so the second delete of an id fails.
func (d *DynamoDB) Delete(ctx context.Context, labelID string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(d.table),
		Key:                 labelKey(labelID),
		ConditionExpression: aws.String("attribute_exists(labelId)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return errors.NotFound("label")
		}
		return errors.StoreError(err)
	}
	return nil
}

// Health reports the store status by describing the table
func (d *DynamoDB) Health(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":  "up",
		"backend": "dynamodb",
		"table":   d.table,
	}

	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.table),
	})
	if err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
	}

	return status
}

func labelKey(labelID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"labelId": &types.AttributeValueMemberS{Value: labelID},
	}
}
