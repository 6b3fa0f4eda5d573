package memory

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"lifecoach/internal/errs"
)

func TestFileStore_ColdStart(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	loaded, err := store.Load()
	gt.NoError(t, err)
	gt.Equal(t, len(loaded.LifeEvents), 0)
	gt.Equal(t, len(loaded.Goals), 0)
	gt.NotNil(t, loaded.Patterns)
	gt.NotNil(t, loaded.Warnings)
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	gt.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	loaded, err := NewFileStore(path).Load()
	gt.NoError(t, err)
	gt.Equal(t, len(loaded.LifeEvents), 0)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	fs := NewFileStore(path)

	mgr, err := NewManager(fs, 5)
	gt.NoError(t, err)

	_, err = mgr.AppendEvent("finished a great project", EventCareer, "positive")
	gt.NoError(t, err)
	_, err = mgr.AppendEvent("feeling stressed about deadlines", EventGeneral, "negative")
	gt.NoError(t, err)
	goal, err := mgr.AddGoal("get promoted", "2026-10-01")
	gt.NoError(t, err)
	_, err = mgr.UpdateGoalStatus(goal.ID, GoalCompleted)
	gt.NoError(t, err)

	before := mgr.Export()

	reloaded, err := fs.Load()
	gt.NoError(t, err)

	// JSON encoding comparison sidesteps time.Time monotonic clock noise
	want, err := json.Marshal(before)
	gt.NoError(t, err)
	got, err := json.Marshal(reloaded)
	gt.NoError(t, err)
	gt.Equal(t, string(got), string(want))

	gt.Equal(t, len(reloaded.LifeEvents), 2)
	gt.Equal(t, len(reloaded.Goals), 1)
	gt.Equal(t, reloaded.Goals[0].Status, GoalCompleted)
}

func TestFileStore_SaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memory.json")
	fs := NewFileStore(path)

	gt.NoError(t, fs.Save(NewMemoryStore()))

	// No temp file left behind, and the target parses
	_, err := os.Stat(path + ".tmp")
	gt.True(t, os.IsNotExist(err))

	raw, err := os.ReadFile(path)
	gt.NoError(t, err)
	var parsed MemoryStore
	gt.NoError(t, json.Unmarshal(raw, &parsed))
}

func TestFileStore_SaveFailureIsStorageError(t *testing.T) {
	// Target directory does not exist and cannot be created below a file
	blocker := filepath.Join(t.TempDir(), "blocker")
	gt.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	fs := NewFileStore(filepath.Join(blocker, "sub", "memory.json"))
	err := fs.Save(NewMemoryStore())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, errs.ErrStorage))
}

func TestFileStore_LoadFillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	gt.NoError(t, os.WriteFile(path, []byte(`{"life_events":[{"date":"2026-01-01","entry":"hi","type":"general"}]}`), 0644))

	loaded, err := NewFileStore(path).Load()
	gt.NoError(t, err)
	gt.Equal(t, len(loaded.LifeEvents), 1)
	gt.NotNil(t, loaded.Goals)
	gt.NotNil(t, loaded.Patterns)
	gt.NotNil(t, loaded.Warnings)
}
