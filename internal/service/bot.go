package service

import (
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/entity"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/tictactoe"
)

type BotService interface {
	RandomMove(board entity.Board) int
	OptimalMove(board entity.Board) *entity.Recommendation
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// RandomMove - uniform choice among empty cells, entity.NoMove if there are none.
func (that *botService) RandomMove(board entity.Board) int {
	availableCells := tictactoe.AvailableMoves(board)
	if len(availableCells) == 0 {
		return entity.NoMove
	}

	return availableCells[rand.Intn(len(availableCells))] //nolint: gosec // it's ok
}

// OptimalMove - best move for the player to move under perfect play by both sides.
func (that *botService) OptimalMove(board entity.Board) *entity.Recommendation {
	result := tictactoe.Search(board)

	that.logger.Debug("search finished",
		"board", board.String(),
		"move", result.Move,
		"value", result.Value,
		"nodes", result.Nodes,
	)

	return &entity.Recommendation{
		Move:   result.Move,
		Player: tictactoe.PlayerToMove(board),
		Value:  result.Value,
	}
}
