package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"brainpin/application/ports"
	"brainpin/domain/links"
	apperrors "brainpin/pkg/errors"
)

// CategoryRepository implements ports.CategoryRepository using DynamoDB
type CategoryRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.CategoryRepository {
	return &CategoryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// List scans the whole table, following pagination until exhausted.
func (r *CategoryRepository) List(ctx context.Context) ([]links.Category, error) {
	out := []links.Category{}

	var startKey map[string]types.AttributeValue
	for {
		resp, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan categories", err)
		}

		var page []links.Category
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal categories", err)
		}
		out = append(out, page...)

		if resp.LastEvaluatedKey == nil {
			break
		}
		startKey = resp.LastEvaluatedKey
	}

	return out, nil
}

// Get fetches a single category by id.
func (r *CategoryRepository) Get(ctx context.Context, id string) (links.Category, error) {
	resp, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return links.Category{}, apperrors.NewDatabaseError("get category", err)
	}
	if resp.Item == nil {
		return links.Category{}, apperrors.NewNotFoundError("Category")
	}

	var category links.Category
	if err := attributevalue.UnmarshalMap(resp.Item, &category); err != nil {
		return links.Category{}, apperrors.NewDatabaseError("unmarshal category", err)
	}
	return category, nil
}

// Create stores a new category, guarding against id collisions.
func (r *CategoryRepository) Create(ctx context.Context, category links.Category) error {
	item, err := attributevalue.MarshalMap(category)
	if err != nil {
		return apperrors.NewDatabaseError("marshal category", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("Category already exists")
		}
		return apperrors.NewDatabaseError("put category", err)
	}

	r.logger.Debug("category stored", zap.String("categoryID", category.ID))
	return nil
}

// Update applies the non-nil patch fields and returns the post-update state.
func (r *CategoryRepository) Update(ctx context.Context, id string, patch links.CategoryPatch) (links.Category, error) {
	var update expression.UpdateBuilder
	empty := true

	if patch.Name != nil {
		update = update.Set(expression.Name("name"), expression.Value(*patch.Name))
		empty = false
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			update = update.Remove(expression.Name("description"))
		} else {
			update = update.Set(expression.Name("description"), expression.Value(*patch.Description))
		}
		empty = false
	}
	if empty {
		return links.Category{}, apperrors.NewValidationError("no fields to update")
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("id"))).
		Build()
	if err != nil {
		return links.Category{}, apperrors.NewDatabaseError("build update expression", err)
	}

	resp, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return links.Category{}, apperrors.NewNotFoundError("Category")
		}
		return links.Category{}, apperrors.NewDatabaseError("update category", err)
	}

	var category links.Category
	if err := attributevalue.UnmarshalMap(resp.Attributes, &category); err != nil {
		return links.Category{}, apperrors.NewDatabaseError("unmarshal category", err)
	}
	return category, nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError("Category")
		}
		return apperrors.NewDatabaseError("delete category", err)
	}
	return nil
}
