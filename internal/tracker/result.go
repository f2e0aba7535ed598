package tracker

// Operation result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInfo    = "info"
)

// InitResult reports a completed initialization.
type InitResult struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	BackupLocation string `json:"backup_location"`
	FilesTracked   int    `json:"files_tracked"`
}

// SaveResult reports a save. A save with no detected changes has status
// "info" and creates no record.
type SaveResult struct {
	Status       string   `json:"status"`
	Message      string   `json:"message"`
	StateNumber  int      `json:"state_number,omitempty"`
	FilesChanged int      `json:"files_changed,omitempty"`
	ChangedFiles []string `json:"changed_files,omitempty"`
}

// StateSummary is one row of a state listing.
type StateSummary struct {
	StateNumber  int    `json:"state_number"`
	Timestamp    string `json:"timestamp"`
	Prompt       string `json:"prompt"`
	Description  string `json:"description"`
	FilesChanged int    `json:"files_changed"`
	IsCurrent    bool   `json:"is_current"`
}

// ListResult is the full ordered state listing.
type ListResult struct {
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	CurrentState int            `json:"current_state"`
	TotalStates  int            `json:"total_states"`
	States       []StateSummary `json:"states"`
}

// StateInfo describes one state in detail. State 0 is the synthetic
// baseline record.
type StateInfo struct {
	StateNumber  int      `json:"state_number"`
	Timestamp    string   `json:"timestamp,omitempty"`
	Prompt       string   `json:"prompt,omitempty"`
	Description  string   `json:"description,omitempty"`
	FilesChanged []string `json:"files_changed,omitempty"`
	FileCount    int      `json:"file_count,omitempty"`
	IsCurrent    bool     `json:"is_current"`
}

// DetailResult wraps a StateInfo.
type DetailResult struct {
	Status    string    `json:"status"`
	StateInfo StateInfo `json:"state_info"`
}

// RestoredState summarizes the state a restore landed on.
type RestoredState struct {
	StateNumber   int    `json:"state_number"`
	Timestamp     string `json:"timestamp"`
	Prompt        string `json:"prompt"`
	Description   string `json:"description"`
	FilesRestored int    `json:"files_restored"`
}

// RestoreResult reports a completed restore. StateInfo is nil for a
// baseline restore.
type RestoreResult struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	StateInfo *RestoredState `json:"state_info,omitempty"`
}

// CleanupResult reports a pruning pass.
type CleanupResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Removed int    `json:"removed,omitempty"`
	Kept    int    `json:"kept,omitempty"`
}

// StatusResult reports tracking status. Buildable before initialization.
type StatusResult struct {
	IsInitialized    bool   `json:"is_initialized"`
	CurrentState     int    `json:"current_state"`
	TotalStates      int    `json:"total_states"`
	InitializedAt    string `json:"initialized_at"`
	HistoryDirectory string `json:"history_directory"`
}
