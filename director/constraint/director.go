package constraint

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

// Director deduces safe cells and mines from revealed numbers, guessing by
// lowest mine probability only when nothing is certain
type Director struct {
	board    *game.Board
	fallback random.Director
}

// Observation records that exactly numMines of cells hold mines
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[*game.Cell]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	i := 0
	for cell := range observation.cells {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(cell.Coord().String())
		i++
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.Coord().String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.fallback.Init(board)
}

func (director *Director) Act() []game.CellAction {
	if director.board == nil || director.board.Status().IsTerminal() {
		return nil
	}

	observations := director.observe()

	actors := []func([]*Observation) []game.CellAction{
		director.actDeliberate,
		director.actSubsets,
		director.actLowestProbability,
	}
	for _, actor := range actors {
		if actions := actor(observations); len(actions) > 0 {
			return actions
		}
	}

	return director.fallback.Act()
}

func (director *Director) End() {
	director.fallback.End()
	director.board = nil
}

// observe builds one observation per revealed number bordering hidden cells
func (director *Director) observe() []*Observation {
	var observations []*Observation

	for _, cell := range director.board.Cells() {
		if !cell.IsRevealed() || cell.HasMine() {
			continue
		}

		neighbors, _ := director.board.Neighbors(cell.Row(), cell.Col())
		observation := &Observation{
			origin:   cell,
			numMines: cell.AdjacentCount(),
			cells:    make(collections.Set[*game.Cell]),
		}
		for _, neighbor := range neighbors {
			switch {
			case neighbor.IsRevealed():
			case neighbor.HasFlag():
				observation.numMines--
			default:
				observation.cells.Add(neighbor)
			}
		}

		// Vacuous, or contradicted by a wrong flag
		if observation.cells.Len() == 0 || observation.numMines < 0 {
			continue
		}
		observations = append(observations, observation)
	}

	return observations
}

type actionCollector struct {
	seen    collections.Set[game.CellAction]
	actions []game.CellAction
}

func (collector *actionCollector) add(action game.CellAction) {
	if collector.seen == nil {
		collector.seen = make(collections.Set[game.CellAction])
	}
	if !collector.seen.Contains(action) {
		collector.seen.Add(action)
		collector.actions = append(collector.actions, action)
	}
}

// actDeliberate flags cells that must be mines and chords numbers whose
// mines are all flagged
func (director *Director) actDeliberate(observations []*Observation) []game.CellAction {
	collector := actionCollector{}

	for _, observation := range observations {
		switch {
		case observation.numMines == observation.cells.Len():
			for _, cell := range sortedCells(observation.cells) {
				collector.add(cell.RightClick())
			}
		case observation.numMines == 0:
			collector.add(observation.origin.MiddleClick())
		}
	}

	if len(collector.actions) > 0 {
		logrus.WithField("actions", len(collector.actions)).Debug("constraint director: deliberate")
	}
	return collector.actions
}

// actSubsets compares overlapping observations: when one's cells are a
// subset of another's, the leftover cells hold the difference in mines
func (director *Director) actSubsets(observations []*Observation) []game.CellAction {
	for _, inner := range observations {
		for _, outer := range observations {
			if inner == outer || inner.cells.Len() >= outer.cells.Len() || !inner.cells.IsSubsetOf(outer.cells) {
				continue
			}

			leftover := outer.cells.Difference(inner.cells)
			numMines := outer.numMines - inner.numMines

			collector := actionCollector{}
			switch numMines {
			case 0:
				for _, cell := range sortedCells(leftover) {
					collector.add(cell.Click())
				}
			case leftover.Len():
				for _, cell := range sortedCells(leftover) {
					collector.add(cell.RightClick())
				}
			}

			if len(collector.actions) > 0 {
				logrus.WithFields(logrus.Fields{
					"inner": inner.String(),
					"outer": outer.String(),
				}).Debug("constraint director: subset")
				return collector.actions
			}
		}
	}
	return nil
}

// actLowestProbability clicks the constrained cell least likely to be a mine,
// unless an unconstrained cell is a better bet
func (director *Director) actLowestProbability(observations []*Observation) []game.CellAction {
	if len(observations) == 0 {
		return nil
	}

	cellProbabilities := make(map[*game.Cell]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if past, ok := cellProbabilities[cell]; !ok || probability > past {
				cellProbabilities[cell] = probability
			}
		}
	}

	lowestProbability := math.Inf(1)
	var lowestProbabilityCells []*game.Cell
	numUnconstrained := 0
	for _, cell := range director.board.Cells() {
		if cell.IsRevealed() || cell.HasFlag() {
			continue
		}

		probability, constrained := cellProbabilities[cell]
		if !constrained {
			numUnconstrained++
			continue
		}

		switch {
		case probability < lowestProbability:
			lowestProbability = probability
			lowestProbabilityCells = []*game.Cell{cell}
		case probability == lowestProbability:
			lowestProbabilityCells = append(lowestProbabilityCells, cell)
		}
	}

	if numUnconstrained > 0 {
		density := float64(director.board.MinesRemaining()) / float64(numUnconstrained+len(cellProbabilities))
		if density < lowestProbability {
			return nil
		}
	}
	if len(lowestProbabilityCells) == 0 {
		return nil
	}

	director.board.Rand().Shuffle(len(lowestProbabilityCells), func(i, j int) {
		lowestProbabilityCells[i], lowestProbabilityCells[j] = lowestProbabilityCells[j], lowestProbabilityCells[i]
	})

	logrus.WithField("probability", lowestProbability).Debug("constraint director: guessing")
	return []game.CellAction{lowestProbabilityCells[0].Click()}
}

// sortedCells orders cells row-major so actions are reproducible
func sortedCells(cells collections.Set[*game.Cell]) []*game.Cell {
	out := make([]*game.Cell, 0, cells.Len())
	for cell := range cells {
		out = append(out, cell)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row() != out[j].Row() {
			return out[i].Row() < out[j].Row()
		}
		return out[i].Col() < out[j].Col()
	})
	return out
}
