package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/apperror"
)

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// BoardSize - number of cells on a 3x3 board.
const BoardSize = 9

// NoMove - returned in place of a cell index when there is nothing to play.
const NoMove = -1

// GameValue - outcome of a position from X's point of view.
type GameValue int

const (
	OWins GameValue = -1
	Draw  GameValue = 0
	XWins GameValue = 1
)

// WinCombos - rows, then columns, then diagonals. Scan order matters for Winner.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - row-major 3x3 position. It is a value type: assigning or passing it copies all cells.
type Board [BoardSize]Mark

// ParseBoard - validates wire cells (nil = empty) and converts them to a Board.
func ParseBoard(cells []*string) (Board, error) {
	var board Board

	if len(cells) != BoardSize {
		return board, fmt.Errorf("%w: must have exactly %d cells, got %d", apperror.ErrInvalidBoard, BoardSize, len(cells))
	}

	for i, cell := range cells {
		if cell == nil {
			continue
		}

		switch mark := Mark(*cell); mark {
		case PlayerX, PlayerO:
			board[i] = mark
		default:
			return Board{}, fmt.Errorf("%w: invalid value %q at cell %d", apperror.ErrInvalidBoard, *cell, i)
		}
	}

	return board, nil
}

// Cells - converts the board back to its wire form.
func (that Board) Cells() []*string {
	cells := make([]*string, BoardSize)
	for i, mark := range that {
		if mark == EmptyCell {
			continue
		}

		value := string(mark)
		cells[i] = &value
	}

	return cells
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// String - compact form, e.g. "XX-OO----".
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('-')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}
