package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/entity"
)

const (
	negInf = math.MinInt
	posInf = math.MaxInt
)

// Result - outcome of a game-tree search.
type Result struct {
	// Move is entity.NoMove for terminal boards.
	Move  int
	Value entity.GameValue
	// Nodes counts every board the search evaluated, root included.
	Nodes int
}

// Search - alpha-beta minimax over the full game tree.
func Search(board entity.Board) Result {
	return SearchWithBounds(board, negInf, posInf)
}

// SearchWithBounds - alpha-beta search starting from the (alpha, beta) window.
// Values returned from a narrowed window are bounds, not exact game values.
func SearchWithBounds(board entity.Board, alpha, beta int) Result {
	s := &searcher{prune: true}
	move, value := s.search(board, alpha, beta)

	return Result{Move: move, Value: entity.GameValue(value), Nodes: s.nodes}
}

// Minimax - exhaustive search without pruning.
func Minimax(board entity.Board) Result {
	s := &searcher{}
	move, value := s.search(board, negInf, posInf)

	return Result{Move: move, Value: entity.GameValue(value), Nodes: s.nodes}
}

type searcher struct {
	prune bool
	nodes int
}

// search - X maximizes, O minimizes. Only a strictly better child replaces the best move,
// so the earliest move reaching the final extreme wins ties.
func (that *searcher) search(board entity.Board, alpha, beta int) (int, int) {
	that.nodes++

	if IsTerminal(board) {
		return entity.NoMove, int(Utility(board))
	}

	moves := AvailableMoves(board)
	bestMove := moves[0]
	maximizing := PlayerToMove(board) == entity.PlayerX

	bestValue := posInf
	if maximizing {
		bestValue = negInf
	}

	for _, move := range moves {
		_, value := that.search(place(board, move), alpha, beta)

		if maximizing {
			if value > bestValue {
				bestValue = value
				bestMove = move
			}
			alpha = max(alpha, value)
		} else {
			if value < bestValue {
				bestValue = value
				bestMove = move
			}
			beta = min(beta, value)
		}

		if that.prune && beta <= alpha {
			break
		}
	}

	return bestMove, bestValue
}
