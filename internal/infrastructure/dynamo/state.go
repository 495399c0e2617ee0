package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pd-tracker/internal/domain"
)

// engineStateID is the partition key of the single engine-state item. The
// whole engine shares one durable record.
const engineStateID = "engine"

// StateRepo provides typed DynamoDB operations for the engine-state table.
type StateRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewStateRepo(client *dynamodb.Client, tableName string) *StateRepo {
	return &StateRepo{client: client, tableName: tableName}
}

// Get loads the engine state. A missing item is not an error; it returns an
// empty state, which is exactly the post-install condition.
func (r *StateRepo) Get(ctx context.Context) (*domain.EngineState, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("state_id", engineStateID),
	})
	if err != nil {
		return nil, fmt.Errorf("get engine state: %w", err)
	}
	if out.Item == nil {
		return &domain.EngineState{StateID: engineStateID}, nil
	}
	var s domain.EngineState
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, fmt.Errorf("unmarshal engine state: %w", err)
	}
	return &s, nil
}

// SetCredential overwrites the stored credential, last-write-wins.
func (r *StateRepo) SetCredential(ctx context.Context, token string) error {
	return r.update(ctx, map[string]interface{}{"credential": token})
}

// ClearCredential removes the stored credential.
func (r *StateRepo) ClearCredential(ctx context.Context) error {
	return r.update(ctx, map[string]interface{}{"credential": ""})
}

// SetLastSeenID records the id of the most recent event already processed.
func (r *StateRepo) SetLastSeenID(ctx context.Context, id string) error {
	return r.update(ctx, map[string]interface{}{"last_seen_id": id})
}

func (r *StateRepo) update(ctx context.Context, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("state_id", engineStateID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		return fmt.Errorf("update engine state: %w", err)
	}
	return nil
}
