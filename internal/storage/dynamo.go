package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"archreview/internal/models"
)

// DynamoStore implements MetadataStore against a DynamoDB table keyed by
// documentId.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

// NewDynamoStore builds a DynamoDB-backed metadata store for the table.
func NewDynamoStore(cfg aws.Config, table string) *DynamoStore {
	return &DynamoStore{client: dynamodb.NewFromConfig(cfg), table: table}
}

func documentKey(documentID string) map[string]dbtypes.AttributeValue {
	return map[string]dbtypes.AttributeValue{
		"documentId": &dbtypes.AttributeValueMemberS{Value: documentID},
	}
}

// Get fetches one record, mapping an absent key to ErrNotFound.
func (d *DynamoStore) Get(ctx context.Context, documentID string) (*models.DocumentMetadata, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       documentKey(documentID),
	})
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", documentID, err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	var doc models.DocumentMetadata
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal item %s: %w", documentID, err)
	}
	return &doc, nil
}

// Put writes the full record unconditionally. Re-putting the same documentId
// is a harmless overwrite, which is what makes the commit retry loop safe
// without an idempotency token.
func (d *DynamoStore) Put(ctx context.Context, doc *models.DocumentMetadata) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal item %s: %w", doc.DocumentID, err)
	}
	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put item %s: %w", doc.DocumentID, err)
	}
	return nil
}

// Update applies the patch as a single SET expression and returns the full
// post-update record. A missing key fails with ErrNotFound.
func (d *DynamoStore) Update(ctx context.Context, documentID string, patch models.ReviewPatch) (*models.DocumentMetadata, error) {
	expr, names, values, err := buildReviewUpdate(patch)
	if err != nil {
		return nil, err
	}
	out, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.table),
		Key:                       documentKey(documentID),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(documentId)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              dbtypes.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *dbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update item %s: %w", documentID, err)
	}
	var doc models.DocumentMetadata
	if err := attributevalue.UnmarshalMap(out.Attributes, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal updated item %s: %w", documentID, err)
	}
	return &doc, nil
}

// Delete removes the record. Deleting an absent key succeeds.
func (d *DynamoStore) Delete(ctx context.Context, documentID string) error {
	if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       documentKey(documentID),
	}); err != nil {
		return fmt.Errorf("delete item %s: %w", documentID, err)
	}
	return nil
}

// ScanAll reads the whole table. There is no filter pushdown; sorting and
// searching happen in memory at the service layer.
func (d *DynamoStore) ScanAll(ctx context.Context) ([]models.DocumentMetadata, error) {
	var docs []models.DocumentMetadata
	var startKey map[string]dbtypes.AttributeValue
	for {
		out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(d.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		var page []models.DocumentMetadata
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal scan page: %w", err)
		}
		docs = append(docs, page...)
		if out.LastEvaluatedKey == nil {
			return docs, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// buildReviewUpdate renders the patch into a SET expression with attribute
// name/value placeholders, in the fixed patch field order.
func buildReviewUpdate(patch models.ReviewPatch) (string, map[string]string, map[string]dbtypes.AttributeValue, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return "", nil, nil, errors.New("patch names no fields")
	}
	sets := make([]string, 0, len(fields))
	names := make(map[string]string, len(fields))
	values := make(map[string]dbtypes.AttributeValue, len(fields))
	for _, name := range models.PatchFieldOrder {
		val, ok := fields[name]
		if !ok {
			continue
		}
		av, err := attributevalue.Marshal(val)
		if err != nil {
			return "", nil, nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		sets = append(sets, fmt.Sprintf("#%s = :%s", name, name))
		names["#"+name] = name
		values[":"+name] = av
	}
	return "SET " + strings.Join(sets, ", "), names, values, nil
}
