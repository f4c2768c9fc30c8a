package game

import (
	"time"

	"github.com/sirupsen/logrus"
)

type GameConfig struct {
	Board BoardConfig

	// Snapshot to load board configuration from
	Snapshot *BoardSnapshot
	// Whether to set all cells as unrevealed when loading the Snapshot
	LoadSnapshotFresh bool

	Director Director
	// Pause between director moves
	DirectorInterval time.Duration

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Board:             DefaultBoardConfig(),
		Snapshot:          nil,
		LoadSnapshotFresh: true,
		Director:          nil,
		DirectorInterval:  500 * time.Millisecond,
	}
}

func (config GameConfig) CreateBoard() (*Board, error) {
	if config.Snapshot == nil {
		return NewBoard(config.Board)
	}
	return config.Snapshot.CreateBoard(config.LoadSnapshotFresh)
}

// OnGameEnd is called by the presentation layer once a board is terminal
func (config GameConfig) OnGameEnd(board *Board) {
	if config.SavedSnapshotsDir == "" {
		return
	}

	path, err := SaveSnapshot(config.SavedSnapshotsDir, board, time.Now())
	if err != nil {
		logrus.WithError(err).Warn("could not save board snapshot")
		return
	}
	logrus.WithFields(logrus.Fields{
		"path":   path,
		"status": board.Status(),
	}).Info("saved board snapshot")
}
