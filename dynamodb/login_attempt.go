package dynamodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moviestore/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// attemptItem is keyed by username. ExpiresAt lets a table TTL drop records
// once their jail is over.
type attemptItem struct {
	Username    string     `dynamodbav:"username"`
	FailedCount int        `dynamodbav:"failed_count"`
	JailedUntil *time.Time `dynamodbav:"jailed_until,omitempty"`
	ExpiresAt   int64      `dynamodbav:"expires_at,omitempty"`
}

// LoginAttemptRepository implements [auth.LoginAttemptRepository].
type LoginAttemptRepository struct {
	client API
	table  string
}

func NewLoginAttemptRepository(client API, table string) (*LoginAttemptRepository, error) {
	if strings.TrimSpace(table) == "" {
		return nil, ErrNoTable
	}
	return &LoginAttemptRepository{
		client: client,
		table:  table,
	}, nil
}

func (r *LoginAttemptRepository) Get(ctx context.Context, username string) (auth.LoginAttempt, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            r.key(auth.NormalizeUsername(username)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return auth.LoginAttempt{}, fmt.Errorf("dynamodb: get login attempt: %w", err)
	}
	if len(out.Item) == 0 {
		return auth.LoginAttempt{}, nil
	}

	var item attemptItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return auth.LoginAttempt{}, fmt.Errorf("dynamodb: unmarshal login attempt: %w", err)
	}

	attempt := auth.LoginAttempt{FailedCount: item.FailedCount}
	if item.JailedUntil != nil {
		attempt.JailedUntil = item.JailedUntil.UTC()
	}
	return attempt, nil
}

func (r *LoginAttemptRepository) Save(ctx context.Context, username string, attempt auth.LoginAttempt) error {
	item := attemptItem{
		Username:    auth.NormalizeUsername(username),
		FailedCount: attempt.FailedCount,
	}
	if !attempt.JailedUntil.IsZero() {
		until := attempt.JailedUntil.UTC()
		item.JailedUntil = &until
		item.ExpiresAt = until.Unix()
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("dynamodb: marshal login attempt: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put login attempt: %w", err)
	}
	return nil
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, username string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       r.key(auth.NormalizeUsername(username)),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete login attempt: %w", err)
	}
	return nil
}

func (r *LoginAttemptRepository) key(username string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"username": &types.AttributeValueMemberS{Value: username},
	}
}
