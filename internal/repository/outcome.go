package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/caro/internal/entity"
)

var ErrOutcomeNotFound = errors.New("outcome not found")

// OutcomeRepository keeps reports of finished matches. It cannot restore a match.
type OutcomeRepository interface {
	Save(ctx context.Context, outcome *entity.Outcome) error
	GetByID(ctx context.Context, id string) (*entity.Outcome, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbOutcome struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOutcomeRepository stores outcomes that expire after ttl. Zero keeps them forever.
func NewOutcomeRepository(client *redis.Client, ttl time.Duration) OutcomeRepository {
	return &dbOutcome{
		client: client,
		ttl:    ttl,
	}
}

func outcomeKey(id string) string {
	return "outcome:" + id
}

func (that *dbOutcome) Save(ctx context.Context, outcome *entity.Outcome) error {
	outcomeJSON, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("could not marshal outcome: %w", err)
	}

	err = that.client.Set(ctx, outcomeKey(outcome.ID), outcomeJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set outcome: %w", err)
	}

	return nil
}

func (that *dbOutcome) GetByID(ctx context.Context, id string) (*entity.Outcome, error) {
	response, err := that.client.Get(ctx, outcomeKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrOutcomeNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get outcome by ID: %w", err)
	}

	var outcome entity.Outcome
	if err = json.Unmarshal([]byte(response), &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcome: %w", err)
	}

	return &outcome, nil
}

func (that *dbOutcome) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, outcomeKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete outcome by ID: %w", err)
	}

	if deleted == 0 {
		return ErrOutcomeNotFound
	}

	return nil
}
