package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codearena/auth-api/internal/domain"
)

// ErrRoleNotFound is returned by lookups when no matching role exists.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepo provides typed DynamoDB operations for the roles table.
type RoleRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRoleRepo(client *dynamodb.Client, tableName string) *RoleRepo {
	return &RoleRepo{client: client, tableName: tableName}
}

func (r *RoleRepo) Put(ctx context.Context, role *domain.Role) error {
	role.NameLower = strings.ToLower(role.Name)
	item, err := attributevalue.MarshalMap(role)
	if err != nil {
		return fmt.Errorf("marshal role: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RoleRepo) Get(ctx context.Context, roleID string) (*domain.Role, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("role_id", roleID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrRoleNotFound
	}
	var role domain.Role
	if err := attributevalue.UnmarshalMap(out.Item, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName looks up a role case-insensitively via the lowercased name GSI.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("name_lc-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "name_lc"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: strings.ToLower(name)}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, ErrRoleNotFound
	}
	var role domain.Role
	if err := attributevalue.UnmarshalMap(out.Items[0], &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) Scan(ctx context.Context) ([]domain.Role, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var roles []domain.Role
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepo) Delete(ctx context.Context, roleID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("role_id", roleID),
	})
	return err
}
