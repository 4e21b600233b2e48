package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/entity"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/repository"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/tictactoe"
)

type AdvisorUseCase interface {
	RandomMove(ctx context.Context, cells []*string) (*entity.Recommendation, error)
	OptimalMove(ctx context.Context, cells []*string) (*entity.Recommendation, error)
}

type botService interface {
	RandomMove(board entity.Board) int
	OptimalMove(board entity.Board) *entity.Recommendation
}

type moveRepository interface {
	Save(ctx context.Context, board entity.Board, rec *entity.Recommendation) error
	GetByBoard(ctx context.Context, board entity.Board) (*entity.Recommendation, error)
}

type advisorUseCase struct {
	logger *slog.Logger

	bot      botService
	moveRepo moveRepository
}

// NewAdvisorUseCase - moveRepo may be nil, in which case every optimal move is searched.
func NewAdvisorUseCase(logger *slog.Logger, bot botService, moveRepo moveRepository) AdvisorUseCase {
	return &advisorUseCase{
		logger:   logger.With("component", "advisor"),
		bot:      bot,
		moveRepo: moveRepo,
	}
}

func (that *advisorUseCase) RandomMove(_ context.Context, cells []*string) (*entity.Recommendation, error) {
	board, err := entity.ParseBoard(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}

	return &entity.Recommendation{
		Move:   that.bot.RandomMove(board),
		Player: tictactoe.PlayerToMove(board),
	}, nil
}

func (that *advisorUseCase) OptimalMove(ctx context.Context, cells []*string) (*entity.Recommendation, error) {
	log := that.logger.With("method", "OptimalMove")

	board, err := entity.ParseBoard(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to parse board: %w", err)
	}

	if that.moveRepo == nil {
		return that.bot.OptimalMove(board), nil
	}

	rec, err := that.moveRepo.GetByBoard(ctx, board)
	switch {
	case err == nil:
		log.Debug("move cache hit", "board", board.String())
		return rec, nil
	case !errors.Is(err, repository.ErrMoveNotFound):
		// the cache is optional, fall through to a fresh search
		log.Warn("could not read move cache", "error", err)
	}

	rec = that.bot.OptimalMove(board)

	if err = that.moveRepo.Save(ctx, board, rec); err != nil {
		log.Warn("could not write move cache", "error", err)
	}

	return rec, nil
}
