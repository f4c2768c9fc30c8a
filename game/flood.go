package game

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/minefield/util/collections"
)

// cascade auto-clears the connected zero-adjacency region around origin,
// which must already be revealed. Every cell reachable through a chain of
// zero cells is revealed once; nonzero border cells are revealed but not
// expanded. Neighbor order does not matter.
func (board *Board) cascade(origin *Cell) {
	visited := make(collections.Set[Coord])
	visited.Add(origin.Coord())

	worklist := deque.New[*Cell]()
	enqueue := func(cell *Cell) {
		for _, neighbor := range board.neighbors(cell) {
			if !visited.Contains(neighbor.Coord()) {
				worklist.PushBack(neighbor)
			}
		}
	}
	enqueue(origin)

	for worklist.Len() > 0 && !board.status.IsTerminal() {
		cell := worklist.PopBack()
		if visited.Contains(cell.Coord()) {
			continue
		}
		visited.Add(cell.Coord())

		if cell.hasMine {
			continue
		}
		board.revealOne(cell)

		if cell.adjacentCount == 0 {
			enqueue(cell)
		}
	}
}
