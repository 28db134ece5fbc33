// Package dynamodb implements the repository ports on DynamoDB. Links and
// categories live in two plain tables keyed by "id"; entity attributes reuse
// the wire field names, so items look exactly like the API payloads.
package dynamodb

import (
	"context"
	"errors"

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

// LinkRepository implements ports.LinkRepository using DynamoDB
type LinkRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewLinkRepository creates a new LinkRepository
func NewLinkRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.LinkRepository {
	return &LinkRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// List scans the whole table, following pagination until exhausted.
func (r *LinkRepository) List(ctx context.Context) ([]links.Link, error) {
	out := []links.Link{}

	var startKey map[string]types.AttributeValue
	for {
		resp, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("scan links", err)
		}

		var page []links.Link
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &page); err != nil {
			return nil, apperrors.NewDatabaseError("unmarshal links", err)
		}
		out = append(out, page...)

		if resp.LastEvaluatedKey == nil {
			break
		}
		startKey = resp.LastEvaluatedKey
	}

	return out, nil
}

// Get fetches a single link by id.
func (r *LinkRepository) Get(ctx context.Context, id string) (links.Link, error) {
	resp, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return links.Link{}, apperrors.NewDatabaseError("get link", err)
	}
	if resp.Item == nil {
		return links.Link{}, apperrors.NewNotFoundError("Link")
	}

	var link links.Link
	if err := attributevalue.UnmarshalMap(resp.Item, &link); err != nil {
		return links.Link{}, apperrors.NewDatabaseError("unmarshal link", err)
	}
	return link, nil
}

// Create stores a new link, guarding against id collisions.
func (r *LinkRepository) Create(ctx context.Context, link links.Link) error {
	item, err := attributevalue.MarshalMap(link)
	if err != nil {
		return apperrors.NewDatabaseError("marshal link", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("Link already exists")
		}
		return apperrors.NewDatabaseError("put link", err)
	}

	r.logger.Debug("link stored", zap.String("linkID", link.ID))
	return nil
}

// Update applies the non-nil patch fields with a single UpdateItem and
// returns the post-update state.
func (r *LinkRepository) Update(ctx context.Context, id string, patch links.LinkPatch) (links.Link, error) {
	update, err := buildLinkUpdate(patch)
	if err != nil {
		return links.Link{}, err
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("id"))).
		Build()
	if err != nil {
		return links.Link{}, apperrors.NewDatabaseError("build update expression", err)
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
			return links.Link{}, apperrors.NewNotFoundError("Link")
		}
		return links.Link{}, apperrors.NewDatabaseError("update link", err)
	}

	var link links.Link
	if err := attributevalue.UnmarshalMap(resp.Attributes, &link); err != nil {
		return links.Link{}, apperrors.NewDatabaseError("unmarshal link", err)
	}
	return link, nil
}

// Put overwrites an existing link. The sublink flows use this after a
// read-modify-write of the parent.
func (r *LinkRepository) Put(ctx context.Context, link links.Link) error {
	item, err := attributevalue.MarshalMap(link)
	if err != nil {
		return apperrors.NewDatabaseError("marshal link", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError("Link")
		}
		return apperrors.NewDatabaseError("put link", err)
	}
	return nil
}

// Delete removes a link.
func (r *LinkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewNotFoundError("Link")
		}
		return apperrors.NewDatabaseError("delete link", err)
	}
	return nil
}

// AnyReferencingCategory scans for links carrying the category id, stopping
// at the first hit.
func (r *LinkRepository) AnyReferencingCategory(ctx context.Context, categoryID string) (bool, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Contains(expression.Name("categoryIds"), categoryID)).
		WithProjection(expression.NamesList(expression.Name("id"))).
		Build()
	if err != nil {
		return false, apperrors.NewDatabaseError("build scan expression", err)
	}

	var startKey map[string]types.AttributeValue
	for {
		resp, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return false, apperrors.NewDatabaseError("scan links by category", err)
		}
		if len(resp.Items) > 0 {
			return true, nil
		}
		if resp.LastEvaluatedKey == nil {
			return false, nil
		}
		startKey = resp.LastEvaluatedKey
	}
}

// buildLinkUpdate translates a patch into a SET/REMOVE expression. A blank
// description removes the attribute.
func buildLinkUpdate(patch links.LinkPatch) (expression.UpdateBuilder, error) {
	var update expression.UpdateBuilder
	empty := true

	if patch.Name != nil {
		update = update.Set(expression.Name("name"), expression.Value(*patch.Name))
		empty = false
	}
	if patch.URL != nil {
		update = update.Set(expression.Name("url"), expression.Value(*patch.URL))
		empty = false
	}
	if patch.CategoryIDs != nil {
		update = update.Set(expression.Name("categoryIds"), expression.Value(*patch.CategoryIDs))
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
	if patch.Sublinks != nil {
		update = update.Set(expression.Name("sublinks"), expression.Value(*patch.Sublinks))
		empty = false
	}

	if empty {
		return update, apperrors.NewValidationError("no fields to update")
	}
	return update, nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	// Transaction variants report the same condition differently.
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, reason := range tce.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}
