package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/entity"
)

var ErrMoveNotFound = errors.New("move not found")

// MoveRepository - cache of optimal recommendations keyed by board.
type MoveRepository interface {
	Save(ctx context.Context, board entity.Board, rec *entity.Recommendation) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Recommendation, error)
	DeleteByBoard(ctx context.Context, board entity.Board) error
}

type dbMove struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoveRepository - ttl of zero keeps entries forever.
func NewMoveRepository(client *redis.Client, ttl time.Duration) MoveRepository {
	return &dbMove{
		client: client,
		ttl:    ttl,
	}
}

func moveKey(board entity.Board) string {
	return "move:" + board.String()
}

func (that *dbMove) Save(ctx context.Context, board entity.Board, rec *entity.Recommendation) error {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("could not marshal recommendation: %w", err)
	}

	err = that.client.Set(ctx, moveKey(board), recJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set move: %w", err)
	}

	return nil
}

func (that *dbMove) GetByBoard(ctx context.Context, board entity.Board) (*entity.Recommendation, error) {
	response, err := that.client.Get(ctx, moveKey(board)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMoveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w by board", err)
	}

	var rec entity.Recommendation
	if err = json.Unmarshal([]byte(response), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
	}

	return &rec, nil
}

func (that *dbMove) DeleteByBoard(ctx context.Context, board entity.Board) error {
	deleted, err := that.client.Del(ctx, moveKey(board)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete move by board: %w", err)
	}

	if deleted == 0 {
		return ErrMoveNotFound
	}

	return nil
}
