package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ErrCredentialNotFound is returned when no value is stored for the slot.
var ErrCredentialNotFound = errors.New("credential not found")

// credentialItem is the stored row. PK: user_id, SK: credential
// (provider "#" name). Set overwrites, so the table enforces at most one live
// value per (user, provider, name).
type credentialItem struct {
	UserID     string `dynamodbav:"user_id"`
	Credential string `dynamodbav:"credential"`
	Value      string `dynamodbav:"value"`
}

// CredentialRepo is the named-credential store backing OTP codes and refresh
// tokens. Values are opaque strings; expiry encoding is the caller's concern.
type CredentialRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCredentialRepo(client *dynamodb.Client, tableName string) *CredentialRepo {
	return &CredentialRepo{client: client, tableName: tableName}
}

func slotKey(provider, name string) string {
	return provider + "#" + name
}

func (r *CredentialRepo) Set(ctx context.Context, userID, provider, name, value string) error {
	item, err := attributevalue.MarshalMap(credentialItem{
		UserID:     userID,
		Credential: slotKey(provider, name),
		Value:      value,
	})
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CredentialRepo) Get(ctx context.Context, userID, provider, name string) (string, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("user_id", userID, "credential", slotKey(provider, name)),
	})
	if err != nil {
		return "", err
	}
	if out.Item == nil {
		return "", ErrCredentialNotFound
	}
	var item credentialItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", err
	}
	return item.Value, nil
}

func (r *CredentialRepo) Remove(ctx context.Context, userID, provider, name string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("user_id", userID, "credential", slotKey(provider, name)),
	})
	return err
}
