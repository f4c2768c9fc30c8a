package game

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInvalidSnapshot = errors.New("invalid board snapshot")

// ConfigError is returned when a board cannot hold the requested mines
type ConfigError struct {
	Size     int
	NumMines int
}

func (err *ConfigError) Error() string {
	if err.Size < 1 {
		return fmt.Sprintf("invalid board size %d", err.Size)
	}
	return fmt.Sprintf(
		"cannot place %d mines on a %dx%d board (need 0 <= mines < %d)",
		err.NumMines, err.Size, err.Size, err.Size*err.Size,
	)
}

// CoordinateError is returned for a (row, col) outside [0, size)
type CoordinateError struct {
	Row, Col int
	Size     int
}

func (err *CoordinateError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is outside the %dx%d board", err.Row, err.Col, err.Size, err.Size)
}

func validateConfig(size, numMines int) error {
	if size < 1 || numMines < 0 || numMines >= size*size {
		return &ConfigError{Size: size, NumMines: numMines}
	}
	return nil
}
