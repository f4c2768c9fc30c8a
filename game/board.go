package game

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

type Board struct {
	size     int // in number of cells, per side
	numMines int
	cells    [][]Cell

	status       Status
	revealCount  int
	winThreshold int
	numFlags     int

	seed int64
	rand *rand.Rand

	// Cells changed by the operation in flight, and the status it started from
	changed  []*Cell
	previous Status
}

type BoardConfig struct {
	Size     int
	NumMines int

	// Seed for mine placement; 0 picks one from the clock
	Seed int64
}

func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Size:     DefaultSize,
		NumMines: DefaultNumMines,
	}
}

// Result describes what a mutating operation did to the board, so a
// presentation layer can redraw only what changed
type Result struct {
	Changed  []*Cell
	Previous Status
	Status   Status
}

func (result Result) StatusChanged() bool {
	return result.Previous != result.Status
}

// Started reports whether this operation moved the board out of Pending,
// which is when any elapsed-time tracking should begin
func (result Result) Started() bool {
	return result.Previous == Pending && result.Status != Pending
}

// NewBoard validates the config, places mines and computes adjacency counts
func NewBoard(config BoardConfig) (*Board, error) {
	if err := validateConfig(config.Size, config.NumMines); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	board := &Board{
		size:     config.Size,
		numMines: config.NumMines,
		seed:     seed,
		rand:     rand.New(rand.NewSource(seed)),
	}
	board.initialize()

	return board, nil
}

// CreateBoard builds a clock-seeded size x size board holding numMines mines
func CreateBoard(size, numMines int) (*Board, error) {
	return NewBoard(BoardConfig{Size: size, NumMines: numMines})
}

func (board *Board) Size() int {
	return board.size
}

func (board *Board) NumCells() int {
	return board.size * board.size
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumFlags() int {
	return board.numFlags
}

// MinesRemaining is the mine count minus the flags placed, as shown on a
// classic counter; it goes negative when the player over-flags
func (board *Board) MinesRemaining() int {
	return board.numMines - board.numFlags
}

func (board *Board) RevealCount() int {
	return board.revealCount
}

func (board *Board) WinThreshold() int {
	return board.winThreshold
}

func (board *Board) Status() Status {
	return board.status
}

func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) Rand() *rand.Rand {
	return board.rand
}

func (board *Board) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < board.size && col < board.size
}

func (board *Board) cellAt(row, col int) *Cell {
	if board.inBounds(row, col) {
		return &board.cells[row][col]
	}
	return nil
}

func (board *Board) CellAt(row, col int) (*Cell, error) {
	if !board.inBounds(row, col) {
		return nil, &CoordinateError{Row: row, Col: col, Size: board.size}
	}
	return &board.cells[row][col], nil
}

// Cells returns every cell in row-major order
func (board *Board) Cells() []*Cell {
	out := make([]*Cell, 0, board.NumCells())
	for row := range board.cells {
		for col := range board.cells[row] {
			out = append(out, &board.cells[row][col])
		}
	}
	return out
}

var neighborOffsets = []Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (board *Board) neighbors(cell *Cell) []*Cell {
	out := make([]*Cell, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		if neighbor := board.cellAt(cell.row+offset.Row, cell.col+offset.Col); neighbor != nil {
			out = append(out, neighbor)
		}
	}
	return out
}

// Neighbors returns the up-to-8 cells surrounding (row, col), clipped at the
// board edges. Order is unspecified.
func (board *Board) Neighbors(row, col int) ([]*Cell, error) {
	cell, err := board.CellAt(row, col)
	if err != nil {
		return nil, err
	}
	return board.neighbors(cell), nil
}

func (board *Board) initialize() {
	size := board.size

	board.cells = make([][]Cell, size)
	board.status = Pending
	board.revealCount = 0
	board.numFlags = 0
	board.winThreshold = size*size - board.numMines

	// Store cell indexes, to shuffle later and fill mines
	cellIndexes := make([]int, size*size)
	for row := 0; row < size; row++ {
		board.cells[row] = make([]Cell, size)
		for col := 0; col < size; col++ {
			cell := &board.cells[row][col]
			cell.row, cell.col = row, col

			idx := row*size + col
			cellIndexes[idx] = idx
		}
	}

	board.rand.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})
	for _, idx := range cellIndexes[:board.numMines] {
		board.cells[idx/size][idx%size].hasMine = true
	}

	board.countAdjacent()
}

func (board *Board) countAdjacent() {
	for row := range board.cells {
		for col := range board.cells[row] {
			cell := &board.cells[row][col]
			cell.adjacentCount = 0
			for _, neighbor := range board.neighbors(cell) {
				if neighbor.hasMine {
					cell.adjacentCount++
				}
			}
		}
	}
}

func (board *Board) begin() {
	board.changed = nil
	board.previous = board.status
}

func (board *Board) finish() Result {
	result := Result{
		Changed:  board.changed,
		Previous: board.previous,
		Status:   board.status,
	}
	board.changed = nil
	return result
}

func (board *Board) unchanged() Result {
	return Result{Previous: board.status, Status: board.status}
}

func (board *Board) setStatus(status Status, cause *Cell) {
	logrus.WithFields(logrus.Fields{
		"row":    cause.row,
		"col":    cause.col,
		"from":   board.status,
		"status": status,
	}).Debug("board status changed")

	board.status = status
}

func (board *Board) markRevealed(cell *Cell) {
	cell.isRevealed = true
	if cell.hasFlag {
		cell.hasFlag = false
		board.numFlags--
	}
	if !cell.hasMine {
		board.revealCount++
	}
	board.changed = append(board.changed, cell)
}

func (board *Board) revealAll() {
	for row := range board.cells {
		for col := range board.cells[row] {
			if cell := &board.cells[row][col]; !cell.isRevealed {
				board.markRevealed(cell)
			}
		}
	}
}

func (board *Board) revealOne(cell *Cell) {
	if board.status.IsTerminal() {
		return
	}
	if board.status == Pending {
		board.setStatus(InProgress, cell)
	}
	if cell.isRevealed {
		return
	}

	board.markRevealed(cell)

	if cell.hasMine {
		cell.isLosingMine = true
		board.setStatus(Lost, cell)
		board.revealAll()
	} else if board.revealCount == board.winThreshold {
		board.setStatus(Won, cell)
		board.revealAll()
	}
}

// revealFrom reveals cell and auto-clears the zero region it opens
func (board *Board) revealFrom(cell *Cell) {
	board.revealOne(cell)
	if !cell.hasMine && cell.adjacentCount == 0 {
		board.cascade(cell)
	}
}

// Reveal is the primary player action. Revealed or flagged targets and
// terminal boards are left untouched.
func (board *Board) Reveal(row, col int) (Result, error) {
	cell, err := board.CellAt(row, col)
	if err != nil {
		return board.unchanged(), err
	}

	board.begin()
	if !board.status.IsTerminal() && !cell.isRevealed && !cell.hasFlag {
		board.revealFrom(cell)
	}
	return board.finish(), nil
}

func (board *Board) ToggleFlag(row, col int) (Result, error) {
	cell, err := board.CellAt(row, col)
	if err != nil {
		return board.unchanged(), err
	}

	board.begin()
	if board.status.IsTerminal() || cell.isRevealed {
		return board.finish(), nil
	}

	cell.hasFlag = !cell.hasFlag
	if cell.hasFlag {
		board.numFlags++
	} else {
		board.numFlags--
	}
	board.changed = append(board.changed, cell)

	return board.finish(), nil
}

// Chord reveals every unflagged neighbor of a revealed number once the
// player has flagged as many neighbors as the number says
func (board *Board) Chord(row, col int) (Result, error) {
	cell, err := board.CellAt(row, col)
	if err != nil {
		return board.unchanged(), err
	}

	board.begin()
	if board.status.IsTerminal() || !cell.isRevealed || cell.hasMine {
		return board.finish(), nil
	}

	neighbors := board.neighbors(cell)
	numFlaggedNeighbors := 0
	for _, neighbor := range neighbors {
		if neighbor.hasFlag {
			numFlaggedNeighbors++
		}
	}
	if numFlaggedNeighbors != cell.adjacentCount {
		return board.finish(), nil
	}

	for _, neighbor := range neighbors {
		if board.status.IsTerminal() {
			break
		}
		if !neighbor.isRevealed && !neighbor.hasFlag {
			board.revealFrom(neighbor)
		}
	}

	return board.finish(), nil
}

// Reset rebuilds the board with fresh mines. The new seed is drawn from the
// current random stream, so a seeded board resets deterministically.
func (board *Board) Reset() Result {
	board.begin()

	board.seed = board.rand.Int63()
	board.rand = rand.New(rand.NewSource(board.seed))
	board.initialize()

	board.changed = board.Cells()
	return board.finish()
}
