package game

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot is a board written one rune per cell, rows separated by
// newlines:
//
//	#  hidden        .  revealed      f  flagged
//	O  hidden mine   F  flagged mine  *  mine that lost the game
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

func (board *Board) Snapshot() *BoardSnapshot {
	rows := make([]string, board.size)
	for row := range board.cells {
		var rowBuilder strings.Builder
		for col := range board.cells[row] {
			rowBuilder.WriteString(board.cells[row][col].serialize())
		}
		rows[row] = rowBuilder.String()
	}

	return &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: strings.Join(rows, "\n"),
	}
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "serializing snapshot")
	}
	return string(out), nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot")
	}
	return &snapshot, nil
}

func ReadSnapshot(path string) (*BoardSnapshot, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading snapshot %s", path)
	}
	return LoadSnapshot(string(in))
}

// CreateBoard builds a board with exactly the snapshot's mine layout. When
// fresh is set every cell starts hidden and unflagged; otherwise reveals and
// flags are restored and the status is derived from them.
func (snapshot *BoardSnapshot) CreateBoard(fresh bool) (*Board, error) {
	serialized := strings.ReplaceAll(snapshot.SerializedBoard, "\r", "")
	rows := strings.Split(strings.TrimSpace(serialized), "\n")

	size := len(rows)
	if size == 0 || rows[0] == "" {
		return nil, errors.Wrap(ErrInvalidSnapshot, "empty board")
	}

	seed := snapshot.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	board := &Board{
		size:  size,
		seed:  seed,
		rand:  rand.New(rand.NewSource(seed)),
		cells: make([][]Cell, size),
	}

	for row, line := range rows {
		runes := []rune(strings.TrimSpace(line))
		if len(runes) != size {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "row %d has %d cells, want %d", row, len(runes), size)
		}

		board.cells[row] = make([]Cell, size)
		for col, c := range runes {
			cell := &board.cells[row][col]
			cell.row, cell.col = row, col
			if !cell.deserialize(c, fresh) {
				return nil, errors.Wrapf(ErrInvalidSnapshot, "unknown cell %q at (%d, %d)", c, row, col)
			}
			if cell.hasMine {
				board.numMines++
			}
		}
	}

	if err := validateConfig(size, board.numMines); err != nil {
		return nil, errors.Wrap(err, "snapshot")
	}

	board.winThreshold = size*size - board.numMines
	board.countAdjacent()
	board.restoreProgress()

	return board, nil
}

func (board *Board) restoreProgress() {
	board.status = Pending
	lost := false

	for _, cell := range board.Cells() {
		if cell.hasFlag {
			board.numFlags++
		}
		if cell.isRevealed && !cell.hasMine {
			board.revealCount++
		}
		if cell.isLosingMine {
			lost = true
		}
	}

	switch {
	case lost:
		board.status = Lost
	case board.revealCount == board.winThreshold:
		board.status = Won
	case board.revealCount > 0:
		board.status = InProgress
	}

	// A finished game shows every cell, as it did when it ended
	if board.status.IsTerminal() {
		board.revealAll()
		board.changed = nil
	}
}

func generateReplayFilename(board *Board, t time.Time, attempt int) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch board.status {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	if attempt > 0 {
		filenameBuilder.WriteString(fmt.Sprintf("_%d", attempt))
	}

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}

// SaveSnapshot writes the board's snapshot into dir, creating it if needed,
// and returns the path written
func SaveSnapshot(dir string, board *Board, t time.Time) (string, error) {
	stat, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return "", errors.Wrapf(err, "creating snapshots dir %s", dir)
		}
	case err != nil:
		return "", errors.Wrapf(err, "checking snapshots dir %s", dir)
	case !stat.Mode().IsDir():
		return "", errors.Errorf("%s is not a directory; cannot save snapshots to it", dir)
	}

	serialized, err := board.Snapshot().Serialize()
	if err != nil {
		return "", err
	}

	for attempt := 0; ; attempt++ {
		path := filepath.Join(dir, generateReplayFilename(board, t, attempt))

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errors.Wrapf(err, "creating snapshot %s", path)
		}

		_, writeErr := file.WriteString(serialized)
		closeErr := file.Close()
		if writeErr != nil {
			return "", errors.Wrapf(writeErr, "writing snapshot %s", path)
		}
		if closeErr != nil {
			return "", errors.Wrapf(closeErr, "closing snapshot %s", path)
		}
		return path, nil
	}
}
