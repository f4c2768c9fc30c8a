package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/minefield/director/constraint"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/leaderboard"
	"github.com/they4kman/minefield/tui"
)

var gameConfig = game.NewGameConfig()

var (
	directorName   directorValue
	snapshotPath   string
	leaderboardArg string
	playerName     string
	soundEnabled   bool
	logLevel       string
	logFile        string
	logOutput      io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "minefield",
	Short: "Play manual or computer-driven Minesweeper in the terminal",
	Long: `minefield is a terminal Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually
	minefield

Use the director flag to make the computer play for you
	minefield -d constraint

Replay a saved board
	minefield --snapshot replays/20240101_120000_loss.yaml
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd == cmd.Root())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadSnapshot(); err != nil {
			return err
		}
		gameConfig.Director = directorName.create()

		options := tui.Options{
			PlayerName: playerName,
			Sound:      soundEnabled,
		}
		if leaderboardArg != "" {
			store, err := leaderboard.Open(leaderboardArg)
			if err != nil {
				return err
			}
			options.Leaderboard = store
		}

		return tui.Run(gameConfig, options)
	},
}

func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execute() error {
	defer closeLogOutput()
	return rootCmd.Execute()
}

// closeLogOutput releases the --log-file opened by setupLogging, whether or
// not the command succeeded
func closeLogOutput() {
	if logOutput == nil {
		return
	}
	logrus.SetOutput(os.Stderr)
	if err := logOutput.Close(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "closing log file"))
	}
	logOutput = nil
}

func loadSnapshot() error {
	if snapshotPath == "" {
		return nil
	}

	snapshot, err := game.ReadSnapshot(snapshotPath)
	if err != nil {
		return err
	}
	gameConfig.Snapshot = snapshot
	return nil
}

// setupLogging sends logs to --log-file. Without one, logs go to stderr
// unless the terminal UI is about to take over the screen.
func setupLogging(interactive bool) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid --log-level")
	}
	logrus.SetLevel(level)

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return errors.Wrapf(err, "opening log file %s", logFile)
		}
		logrus.SetOutput(f)
		logOutput = f
	case interactive:
		logrus.SetOutput(io.Discard)
	default:
		logrus.SetOutput(os.Stderr)
	}
	return nil
}

type directorValue string

var directors = map[string]func() game.Director{
	"random":     func() game.Director { return &random.Director{} },
	"constraint": func() game.Director { return &constraint.Director{} },
}

func directorNames() []string {
	names := make([]string, 0, len(directors))
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (value *directorValue) String() string {
	return string(*value)
}

func (value *directorValue) Set(name string) error {
	if _, isValid := directors[name]; !isValid {
		return errors.Errorf("invalid director %q (choose from %s)", name, strings.Join(directorNames(), ", "))
	}
	*value = directorValue(name)
	return nil
}

func (value *directorValue) Type() string {
	return "director"
}

// create returns nil when no director was chosen
func (value *directorValue) create() game.Director {
	if newDirector, ok := directors[string(*value)]; ok {
		return newDirector()
	}
	return nil
}

func defaultLeaderboardPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "minefield", "leaderboard.yaml")
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&gameConfig.Board.Size, "size", "s", game.DefaultSize, "Width and height of the game board, in cells")
	flags.IntVarP(&gameConfig.Board.NumMines, "mines", "m", game.DefaultNumMines, "Number of mines to place in the game board")
	flags.Int64Var(&gameConfig.Board.Seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "Append logs to this file")
	flags.StringVar(&leaderboardArg, "leaderboard", defaultLeaderboardPath(), `Leaderboard file ("" disables it)`)

	rootCmd.Flags().VarP(&directorName, "director", "d", fmt.Sprintf("Make the computer play (%s)", strings.Join(directorNames(), ", ")))
	rootCmd.Flags().DurationVar(&gameConfig.DirectorInterval, "interval", gameConfig.DirectorInterval, "Pause between director moves")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Load the board from a snapshot file")
	rootCmd.Flags().BoolVar(&gameConfig.LoadSnapshotFresh, "fresh", true, "Hide every cell of a loaded snapshot")
	rootCmd.Flags().StringVar(&gameConfig.SavedSnapshotsDir, "snapshots-dir", "", "Save a snapshot of every finished game to this directory")
	rootCmd.Flags().StringVar(&playerName, "name", "", "Record wins under this name instead of prompting")
	rootCmd.Flags().BoolVar(&soundEnabled, "sound", false, "Play sounds")

	rootCmd.AddCommand(leaderboardCmd, snapshotCmd)
}
