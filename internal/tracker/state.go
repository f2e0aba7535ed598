package tracker

// State is one saved checkpoint: the archive holding every file that
// differed from the baseline at save time, plus its bookkeeping.
// Records are never mutated after creation; cleanup may remove them.
type State struct {
	StateNumber  int      `json:"state_number"`
	Filename     string   `json:"filename"`
	Timestamp    string   `json:"timestamp"`
	Prompt       string   `json:"prompt"`
	Description  string   `json:"description"`
	FilesChanged []string `json:"files_changed"`
	FileCount    int      `json:"file_count"`
}

// Metadata is the single durable document owned by the metadata store.
// Every mutation is a whole-document read-modify-write.
type Metadata struct {
	States            []State `json:"states"`
	CurrentState      int     `json:"current_state"`
	InitializedAt     string  `json:"initialized_at,omitempty"`
	TotalFilesTracked int     `json:"total_files_tracked,omitempty"`
}

func (m *Metadata) find(stateNumber int) *State {
	for i := range m.States {
		if m.States[i].StateNumber == stateNumber {
			return &m.States[i]
		}
	}
	return nil
}

// promptPreviewLimit caps prompt previews in state listings.
const promptPreviewLimit = 100

// truncatePrompt counts runes, not bytes, so multi-byte prompts are never
// cut mid-character.
func truncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > promptPreviewLimit {
		return string(runes[:promptPreviewLimit]) + "..."
	}
	return prompt
}
