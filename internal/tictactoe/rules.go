package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/entity"
)

// PlayerToMove - X always opens, so O is to move only while X has more marks.
func PlayerToMove(board entity.Board) entity.Mark {
	if board.Count(entity.PlayerX) > board.Count(entity.PlayerO) {
		return entity.PlayerO
	}

	return entity.PlayerX
}

// ApplyMove - returns a new board with the mark of the player to move placed on cell.
func ApplyMove(board entity.Board, cell int) (entity.Board, error) {
	if err := validateMove(board, cell); err != nil {
		return board, err
	}

	return place(board, cell), nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, cell)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, cell)
	}

	return nil
}

// place assumes cell is a valid empty index. board is a copy.
func place(board entity.Board, cell int) entity.Board {
	board[cell] = PlayerToMove(board)
	return board
}

// AvailableMoves - indices of empty cells in ascending order, regardless of whose turn it is.
func AvailableMoves(board entity.Board) []int {
	moves := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

// Winner - mark of the first completed line, or EmptyCell.
func Winner(board entity.Board) entity.Mark {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

func IsTerminal(board entity.Board) bool {
	if board.Count(entity.EmptyCell) == 0 {
		return true
	}

	return Winner(board) != entity.EmptyCell
}

// Utility - game value from X's point of view. Non-terminal boards score as a draw.
func Utility(board entity.Board) entity.GameValue {
	switch Winner(board) {
	case entity.PlayerX:
		return entity.XWins
	case entity.PlayerO:
		return entity.OWins
	default:
		return entity.Draw
	}
}
