package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/marcos-nsantos/image-pipeline/internal/domain"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
)

type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// imageItem is the stored shape, keyed by imageId.
type imageItem struct {
	ImageID   string                       `dynamodbav:"imageId"`
	Status    string                       `dynamodbav:"status"`
	CreatedAt int64                        `dynamodbav:"createdAt"`
	Source    *entity.ObjectInfo           `dynamodbav:"source,omitempty"`
	Variants  map[string]entity.ObjectInfo `dynamodbav:"variants"`
}

type ImageRepository struct {
	client DynamoAPI
	table  string
}

func NewImageRepository(client DynamoAPI, table string) *ImageRepository {
	return &ImageRepository{client: client, table: table}
}

func (r *ImageRepository) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"imageId": &types.AttributeValueMemberS{Value: id},
	}
}

func (r *ImageRepository) Create(ctx context.Context, image *entity.Image) error {
	variants := image.Variants
	if variants == nil {
		variants = map[string]entity.ObjectInfo{}
	}

	item, err := attributevalue.MarshalMap(imageItem{
		ImageID:   image.ID,
		Status:    string(image.Status),
		CreatedAt: image.CreatedAt.Unix(),
		Source:    image.Source,
		Variants:  variants,
	})
	if err != nil {
		return fmt.Errorf("marshaling image: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("imageId"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("building condition: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (*entity.Image, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            r.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrImageNotFound
	}

	var item imageItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshaling image: %w", err)
	}

	image := &entity.Image{
		ID:        item.ImageID,
		Status:    entity.Status(item.Status),
		CreatedAt: time.Unix(item.CreatedAt, 0).UTC(),
		Source:    item.Source,
		Variants:  item.Variants,
	}
	if image.Variants == nil {
		image.Variants = map[string]entity.ObjectInfo{}
	}
	return image, nil
}

// MarkUploaded sets the source and moves status to UPLOADED unless the
// record is already PROCESSED, in which case only the source is written.
// Like every update here it upserts: a missing record is created.
func (r *ImageRepository) MarkUploaded(ctx context.Context, id string, source entity.ObjectInfo) error {
	src, err := attributevalue.Marshal(source)
	if err != nil {
		return fmt.Errorf("marshaling source: %w", err)
	}

	update := expression.
		Set(expression.Name("source"), expression.Value(src)).
		Set(expression.Name("status"), expression.Value(string(entity.StatusUploaded)))
	cond := expression.Or(
		expression.AttributeNotExists(expression.Name("status")),
		expression.Name("status").NotEqual(expression.Value(string(entity.StatusProcessed))),
	)

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err == nil {
		return nil
	}

	var condErr *types.ConditionalCheckFailedException
	if !errors.As(err, &condErr) {
		return fmt.Errorf("marking image uploaded: %w", err)
	}

	sourceOnly, err := expression.NewBuilder().
		WithUpdate(expression.Set(expression.Name("source"), expression.Value(src))).
		Build()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(id),
		UpdateExpression:          sourceOnly.Update(),
		ExpressionAttributeNames:  sourceOnly.Names(),
		ExpressionAttributeValues: sourceOnly.Values(),
	})
	if err != nil {
		return fmt.Errorf("updating image source: %w", err)
	}
	return nil
}

// PutVariant writes variants[size] and sets status to PROCESSED. The
// expression is written by hand because the builder splits names on dots
// and size names may contain them.
func (r *ImageRepository) PutVariant(ctx context.Context, id, size string, variant entity.ObjectInfo) error {
	v, err := attributevalue.Marshal(variant)
	if err != nil {
		return fmt.Errorf("marshaling variant: %w", err)
	}

	names := map[string]string{
		"#variants": "variants",
		"#size":     size,
		"#st":       "status",
	}
	values := map[string]types.AttributeValue{
		":v":         v,
		":processed": &types.AttributeValueMemberS{Value: string(entity.StatusProcessed)},
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(id),
		UpdateExpression:          aws.String("SET #variants.#size = :v, #st = :processed"),
		ConditionExpression:       aws.String("attribute_exists(#variants)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err == nil {
		return nil
	}

	var condErr *types.ConditionalCheckFailedException
	if !errors.As(err, &condErr) {
		return fmt.Errorf("putting variant %s: %w", size, err)
	}

	// No variants map yet: create it with this entry. A concurrent writer
	// that created it first makes this fail, so retry the nested set.
	variants, err := attributevalue.Marshal(map[string]entity.ObjectInfo{size: variant})
	if err != nil {
		return fmt.Errorf("marshaling variants: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 r.key(id),
		UpdateExpression:    aws.String("SET #variants = :variants, #st = :processed"),
		ConditionExpression: aws.String("attribute_not_exists(#variants)"),
		ExpressionAttributeNames: map[string]string{
			"#variants": "variants",
			"#st":       "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":variants":  variants,
			":processed": values[":processed"],
		},
	})
	if err == nil {
		return nil
	}
	if !errors.As(err, &condErr) {
		return fmt.Errorf("creating variants for %s: %w", id, err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       r.key(id),
		UpdateExpression:          aws.String("SET #variants.#size = :v, #st = :processed"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("putting variant %s: %w", size, err)
	}
	return nil
}
