package tracker

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/keshon/rewind/internal/archive"
	"github.com/keshon/rewind/internal/config"
	"github.com/keshon/rewind/internal/fs"
	"github.com/keshon/rewind/internal/hash"
	"github.com/keshon/rewind/internal/logger"
	"github.com/keshon/rewind/internal/scan"
	"github.com/keshon/rewind/internal/util"
)

// Tracker is the snapshot engine for one project root. It owns the history
// store under <root>/.rewind and keeps the metadata document, baseline
// archive, and per-state archives mutually consistent.
//
// Operations are synchronous; internal hashing may fan out to workers but
// every operation completes before returning. Trackers are not safe for
// concurrent use against the same root.
type Tracker struct {
	Root string

	fsys       fs.FS
	log        logger.Logger
	historyDir string
	statesDir  string
}

// New creates a Tracker bound to the given project root, backed by the
// real filesystem.
func New(root string) *Tracker {
	return NewWithFS(root, fs.NewOSFS())
}

// NewWithFS creates a Tracker with an explicit filesystem for the history
// store and working-tree writes.
func NewWithFS(root string, fsys fs.FS) *Tracker {
	historyDir := filepath.Join(root, config.HistoryDir)
	return &Tracker{
		Root:       root,
		fsys:       fsys,
		log:        logger.Default,
		historyDir: historyDir,
		statesDir:  filepath.Join(historyDir, config.StatesDir),
	}
}

// HistoryDir returns the absolute-ish path of the history store.
func (t *Tracker) HistoryDir() string {
	return t.historyDir
}

// IsInitialized reports whether the baseline snapshot exists. It is the
// gate for every operation except Initialize and Status.
func (t *Tracker) IsInitialized() bool {
	return t.fsys.Exists(t.backupPath())
}

// Initialize creates the history store and takes the baseline snapshot:
// a full archive of every tracked file plus their content hashes. Calling
// it again discards all prior metadata and starts a new history.
func (t *Tracker) Initialize() (*InitResult, error) {
	if err := t.fsys.MkdirAll(t.statesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create history store: %w", err)
	}

	paths, err := scan.Files(t.Root)
	if err != nil {
		return nil, err
	}

	hashes := t.hashAll(paths)
	if err := archive.Pack(t.fsys, t.backupPath(), t.Root, paths); err != nil {
		return nil, fmt.Errorf("write baseline archive: %w", err)
	}
	if err := t.saveHashes(hashes); err != nil {
		return nil, err
	}

	meta := &Metadata{
		States:            []State{},
		CurrentState:      0,
		InitializedAt:     now(),
		TotalFilesTracked: len(paths),
	}
	if err := t.saveMetadata(meta); err != nil {
		return nil, err
	}

	return &InitResult{
		Status:         StatusSuccess,
		Message:        fmt.Sprintf("Initialized tracking for %d files", len(paths)),
		BackupLocation: t.backupPath(),
		FilesTracked:   len(paths),
	}, nil
}

// Save diffs the working tree against the baseline hash map and archives
// every new or modified file as a numbered state. Saves always compare
// against the fixed baseline, never against the previous state, so each
// state archive is a self-contained delta.
func (t *Tracker) Save(promptText, description string) (*SaveResult, error) {
	if !t.IsInitialized() {
		return nil, ErrNotInitialized
	}

	baseline, err := t.loadHashes()
	if err != nil {
		return nil, err
	}
	paths, err := scan.Files(t.Root)
	if err != nil {
		return nil, err
	}
	current := t.hashAll(paths)

	// An empty current digest means "content unknown": changed when the
	// baseline knows the path, new when it does not.
	var changed []string
	for _, p := range paths {
		base, known := baseline[p]
		if !known || base != current[p] {
			changed = append(changed, p)
		}
	}
	if len(changed) == 0 {
		return &SaveResult{Status: StatusInfo, Message: "No changes detected"}, nil
	}

	meta, err := t.loadMetadata()
	if err != nil {
		return nil, err
	}

	// Numbering continues from the record count, also after pruning.
	stateNumber := len(meta.States) + 1
	filename := fmt.Sprintf("state_%03d.zip", stateNumber)
	if err := archive.Pack(t.fsys, t.statePath(filename), t.Root, changed); err != nil {
		return nil, fmt.Errorf("write state archive: %w", err)
	}

	meta.States = append(meta.States, State{
		StateNumber:  stateNumber,
		Filename:     filename,
		Timestamp:    now(),
		Prompt:       promptText,
		Description:  description,
		FilesChanged: changed,
		FileCount:    len(changed),
	})
	meta.CurrentState = stateNumber
	if err := t.saveMetadata(meta); err != nil {
		return nil, err
	}

	return &SaveResult{
		Status:       StatusSuccess,
		Message:      fmt.Sprintf("Saved state %d with %d changed files", stateNumber, len(changed)),
		StateNumber:  stateNumber,
		FilesChanged: len(changed),
		ChangedFiles: changed,
	}, nil
}

// Status reports the tracking state of the root. Unlike every other
// operation it works before initialization and creates nothing.
func (t *Tracker) Status() (*StatusResult, error) {
	meta, err := t.loadMetadata()
	if err != nil {
		return nil, err
	}

	initializedAt := meta.InitializedAt
	if initializedAt == "" {
		initializedAt = "Not initialized"
	}

	return &StatusResult{
		IsInitialized:    t.IsInitialized(),
		CurrentState:     meta.CurrentState,
		TotalStates:      len(meta.States),
		InitializedAt:    initializedAt,
		HistoryDirectory: t.historyDir,
	}, nil
}

// hashAll digests the given relative paths concurrently and joins before
// returning.
func (t *Tracker) hashAll(relPaths []string) map[string]string {
	out := make(map[string]string, len(relPaths))
	var mu sync.Mutex

	util.Parallel(relPaths, util.WorkerCount(), func(rel string) error {
		digest := hash.File(filepath.Join(t.Root, filepath.FromSlash(rel)))
		mu.Lock()
		out[rel] = digest
		mu.Unlock()
		return nil
	})
	return out
}

func (t *Tracker) backupPath() string {
	return filepath.Join(t.historyDir, config.InitialBackup)
}

func (t *Tracker) hashesPath() string {
	return filepath.Join(t.historyDir, config.FileHashes)
}

func (t *Tracker) metadataPath() string {
	return filepath.Join(t.historyDir, config.MetadataFile)
}

func (t *Tracker) statePath(filename string) string {
	return filepath.Join(t.statesDir, filename)
}

func (t *Tracker) loadMetadata() (*Metadata, error) {
	if !t.fsys.Exists(t.metadataPath()) {
		return &Metadata{States: []State{}, CurrentState: 0}, nil
	}
	var meta Metadata
	if err := util.ReadJSON(t.fsys, t.metadataPath(), &meta); err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	return &meta, nil
}

func (t *Tracker) saveMetadata(meta *Metadata) error {
	if err := util.WriteJSON(t.fsys, t.metadataPath(), meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func (t *Tracker) loadHashes() (map[string]string, error) {
	if !t.fsys.Exists(t.hashesPath()) {
		return map[string]string{}, nil
	}
	var hashes map[string]string
	if err := util.ReadJSON(t.fsys, t.hashesPath(), &hashes); err != nil {
		return nil, fmt.Errorf("read baseline hashes: %w", err)
	}
	return hashes, nil
}

func (t *Tracker) saveHashes(hashes map[string]string) error {
	if err := util.WriteJSON(t.fsys, t.hashesPath(), hashes); err != nil {
		return fmt.Errorf("write baseline hashes: %w", err)
	}
	return nil
}

func now() string {
	return time.Now().Format(time.RFC3339)
}
