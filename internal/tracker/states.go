package tracker

import (
	"fmt"
	"sort"
)

// ListStates returns the full ordered list of saved states with truncated
// prompt previews. No mutation.
func (t *Tracker) ListStates() (*ListResult, error) {
	if !t.IsInitialized() {
		return nil, ErrNotInitialized
	}

	meta, err := t.loadMetadata()
	if err != nil {
		return nil, err
	}

	if len(meta.States) == 0 {
		return &ListResult{
			Status:  StatusInfo,
			Message: "No states saved yet",
			States:  []StateSummary{},
		}, nil
	}

	summaries := make([]StateSummary, 0, len(meta.States))
	for _, st := range meta.States {
		summaries = append(summaries, StateSummary{
			StateNumber:  st.StateNumber,
			Timestamp:    st.Timestamp,
			Prompt:       truncatePrompt(st.Prompt),
			Description:  st.Description,
			FilesChanged: st.FileCount,
			IsCurrent:    st.StateNumber == meta.CurrentState,
		})
	}

	return &ListResult{
		Status:       StatusSuccess,
		CurrentState: meta.CurrentState,
		TotalStates:  len(meta.States),
		States:       summaries,
	}, nil
}

// StateDetails returns one state's full record. State 0 yields a synthetic
// record describing the baseline snapshot.
func (t *Tracker) StateDetails(stateNumber int) (*DetailResult, error) {
	if !t.IsInitialized() {
		return nil, ErrNotInitialized
	}

	meta, err := t.loadMetadata()
	if err != nil {
		return nil, err
	}

	if stateNumber == 0 {
		return &DetailResult{
			Status: StatusSuccess,
			StateInfo: StateInfo{
				StateNumber: 0,
				Description: "Initial project state",
				Timestamp:   meta.InitializedAt,
				IsCurrent:   meta.CurrentState == 0,
			},
		}, nil
	}

	st := meta.find(stateNumber)
	if st == nil {
		return nil, &StateNotFoundError{StateNumber: stateNumber}
	}

	return &DetailResult{
		Status: StatusSuccess,
		StateInfo: StateInfo{
			StateNumber:  st.StateNumber,
			Timestamp:    st.Timestamp,
			Prompt:       st.Prompt,
			Description:  st.Description,
			FilesChanged: st.FilesChanged,
			FileCount:    st.FileCount,
			IsCurrent:    st.StateNumber == meta.CurrentState,
		},
	}, nil
}

// Cleanup retains only the keepLastN highest-numbered states and deletes
// the archives of the rest. Failed deletes are logged and skipped; only
// successful deletes count. If the current-state pointer refers to a pruned
// record it is reset to the baseline.
func (t *Tracker) Cleanup(keepLastN int) (*CleanupResult, error) {
	if !t.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if keepLastN < 0 {
		keepLastN = 0
	}

	meta, err := t.loadMetadata()
	if err != nil {
		return nil, err
	}

	if len(meta.States) <= keepLastN {
		return &CleanupResult{
			Status:  StatusInfo,
			Message: fmt.Sprintf("Only %d states exist, nothing to cleanup", len(meta.States)),
		}, nil
	}

	sorted := append([]State(nil), meta.States...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StateNumber < sorted[j].StateNumber })

	cut := len(sorted) - keepLastN
	toRemove, toKeep := sorted[:cut], sorted[cut:]

	removed := 0
	for _, st := range toRemove {
		path := t.statePath(st.Filename)
		if !t.fsys.Exists(path) {
			continue
		}
		if err := t.fsys.Remove(path); err != nil {
			t.log.Warn("failed to delete state archive %s: %v", st.Filename, err)
			continue
		}
		removed++
	}

	meta.States = toKeep
	message := fmt.Sprintf("Removed %d old states, kept last %d states", removed, len(toKeep))
	if meta.CurrentState != 0 && meta.find(meta.CurrentState) == nil {
		meta.CurrentState = 0
		message += "; current state pointer reset to baseline"
	}
	if err := t.saveMetadata(meta); err != nil {
		return nil, err
	}

	return &CleanupResult{
		Status:  StatusSuccess,
		Message: message,
		Removed: removed,
		Kept:    len(toKeep),
	}, nil
}
