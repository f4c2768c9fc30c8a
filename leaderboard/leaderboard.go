// Package leaderboard keeps completion times of won games, fastest first.
package leaderboard

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var ErrEmptyName = errors.New("leaderboard entry needs a name")

type Entry struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Time     time.Duration `yaml:"time"`
	Recorded time.Time     `yaml:"recorded"`
}

type document struct {
	Entries []Entry `yaml:"entries"`
}

// Store persists entries as a YAML document at path. A missing file is an
// empty leaderboard.
type Store struct {
	path    string
	entries []Entry
	now     func() time.Time
}

func Open(path string) (*Store, error) {
	store := &Store{path: path, now: time.Now}

	in, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return store, nil
	case err != nil:
		return nil, errors.Wrapf(err, "reading leaderboard %s", path)
	}

	var doc document
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing leaderboard %s", path)
	}
	store.entries = doc.Entries
	store.sort()

	return store, nil
}

func (store *Store) Path() string {
	return store.path
}

func (store *Store) sort() {
	sort.SliceStable(store.entries, func(i, j int) bool {
		a, b := store.entries[i], store.entries[j]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Recorded.Before(b.Recorded)
	})
}

// Add records a finished game and saves the leaderboard
func (store *Store) Add(name string, elapsed time.Duration) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}

	entry := Entry{
		ID:       uuid.New().String(),
		Name:     name,
		Time:     elapsed,
		Recorded: store.now().UTC(),
	}
	store.entries = append(store.entries, entry)
	store.sort()

	if err := store.save(); err != nil {
		return Entry{}, err
	}

	logrus.WithFields(logrus.Fields{
		"id":   entry.ID,
		"name": entry.Name,
		"time": entry.Time,
	}).Info("recorded leaderboard entry")

	return entry, nil
}

func (store *Store) save() error {
	out, err := yaml.Marshal(document{Entries: store.entries})
	if err != nil {
		return errors.Wrap(err, "serializing leaderboard")
	}

	if dir := filepath.Dir(store.path); dir != "" {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return errors.Wrapf(err, "creating leaderboard dir %s", dir)
		}
	}

	// Replace atomically
	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o666); err != nil {
		return errors.Wrapf(err, "writing leaderboard %s", tmp)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		return errors.Wrapf(err, "replacing leaderboard %s", store.path)
	}
	return nil
}

// Entries returns every entry ordered by ascending time
func (store *Store) Entries() []Entry {
	return append([]Entry(nil), store.entries...)
}

// Top returns at most n of the fastest entries
func (store *Store) Top(n int) []Entry {
	if n < 0 || n > len(store.entries) {
		n = len(store.entries)
	}
	return append([]Entry(nil), store.entries[:n]...)
}

// Rank is the 1-based position of the entry with the given ID, or 0
func (store *Store) Rank(id string) int {
	for i, entry := range store.entries {
		if entry.ID == id {
			return i + 1
		}
	}
	return 0
}
