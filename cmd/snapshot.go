package cmd

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/they4kman/minefield/game"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [row col]",
	Short: "Print the snapshot of a new board, optionally after revealing a cell",
	Long: `Generate a board with --size, --mines and --seed and print its snapshot
YAML. The output can be edited and loaded back with --snapshot.

	minefield snapshot --seed 42 4 4 > board.yaml
	minefield --snapshot board.yaml --fresh=false
`,
	Args: snapshotArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var reveal *game.Coord
		if len(args) == 2 {
			coord, err := parseCoord(args[0], args[1])
			if err != nil {
				return err
			}
			reveal = &coord
		}
		return writeSnapshot(cmd.OutOrStdout(), gameConfig.Board, reveal)
	},
}

func snapshotArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return errors.Errorf("expected no arguments or a row and a column, got %d", len(args))
	}
	return nil
}

func parseCoord(rowArg, colArg string) (game.Coord, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return game.Coord{}, errors.Wrapf(err, "invalid row %q", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return game.Coord{}, errors.Wrapf(err, "invalid column %q", colArg)
	}
	return game.Coord{Row: row, Col: col}, nil
}

func writeSnapshot(out io.Writer, config game.BoardConfig, reveal *game.Coord) error {
	board, err := game.NewBoard(config)
	if err != nil {
		return err
	}

	if reveal != nil {
		if _, err := board.Reveal(reveal.Row, reveal.Col); err != nil {
			return err
		}
	}

	serialized, err := board.Snapshot().Serialize()
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, serialized)
	return err
}
