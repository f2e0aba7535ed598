package tracker

import (
	"fmt"
	"path/filepath"

	"github.com/keshon/rewind/internal/archive"
	"github.com/keshon/rewind/internal/scan"
	"github.com/keshon/rewind/internal/util"
)

// Restore brings the working tree back to a recorded point. State 0 is the
// baseline; a nonzero state re-applies that state's delta archive on top of
// the baseline.
//
// The target tree is staged inside the history store before anything is
// deleted, so a corrupt or missing archive aborts with the working tree
// untouched. The swap phase itself is not transactional: a failure there
// leaves a mixed tree and is reported as a restore failure.
func (t *Tracker) Restore(stateNumber int) (*RestoreResult, error) {
	if !t.IsInitialized() {
		return nil, ErrNotInitialized
	}

	meta, err := t.loadMetadata()
	if err != nil {
		return nil, err
	}

	var target *State
	if stateNumber != 0 {
		target = meta.find(stateNumber)
		if target == nil {
			return nil, &StateNotFoundError{StateNumber: stateNumber}
		}
		if !t.fsys.Exists(t.statePath(target.Filename)) {
			return nil, fmt.Errorf("state file %s not found", target.Filename)
		}
	}

	if err := t.restoreTree(target); err != nil {
		return nil, fmt.Errorf("failed to restore: %w", err)
	}

	meta.CurrentState = stateNumber
	if err := t.saveMetadata(meta); err != nil {
		return nil, err
	}

	if target == nil {
		return &RestoreResult{
			Status:  StatusSuccess,
			Message: "Restored to initial state",
		}, nil
	}
	return &RestoreResult{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Restored to state %d", stateNumber),
		StateInfo: &RestoredState{
			StateNumber:   target.StateNumber,
			Timestamp:     target.Timestamp,
			Prompt:        target.Prompt,
			Description:   target.Description,
			FilesRestored: target.FileCount,
		},
	}, nil
}

// restoreTree extracts the baseline (and the target delta, if any) into a
// staging directory, then clears the current tracked files and moves the
// staged tree into place.
func (t *Tracker) restoreTree(target *State) error {
	stage, err := t.fsys.MkdirTemp(t.historyDir, "restore-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer func() {
		if err := t.fsys.RemoveAll(stage); err != nil {
			t.log.Warn("failed to remove staging dir %s: %v", stage, err)
		}
	}()

	names, err := archive.Extract(t.fsys, t.backupPath(), stage)
	if err != nil {
		return fmt.Errorf("extract baseline: %w", err)
	}
	staged := make(map[string]bool, len(names))
	for _, name := range names {
		staged[name] = true
	}

	if target != nil {
		// The delta overwrites baseline copies inside the stage; it never
		// removes files present only in the baseline.
		stateNames, err := archive.Extract(t.fsys, t.statePath(target.Filename), stage)
		if err != nil {
			return fmt.Errorf("extract state %d: %w", target.StateNumber, err)
		}
		for _, name := range stateNames {
			staged[name] = true
		}
	}

	current, err := scan.Files(t.Root)
	if err != nil {
		return err
	}
	for _, rel := range current {
		if err := t.fsys.Remove(filepath.Join(t.Root, filepath.FromSlash(rel))); err != nil {
			return fmt.Errorf("remove %q: %w", rel, err)
		}
	}

	for _, rel := range util.SortedKeys(staged) {
		src := filepath.Join(stage, filepath.FromSlash(rel))
		dst := filepath.Join(t.Root, filepath.FromSlash(rel))
		if err := t.fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("place %q: %w", rel, err)
		}
		if err := t.fsys.Rename(src, dst); err != nil {
			return fmt.Errorf("place %q: %w", rel, err)
		}
	}
	return nil
}
