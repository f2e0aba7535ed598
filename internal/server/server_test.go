package server_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/rewind/internal/server"
	"github.com/keshon/rewind/internal/tracker"
)

func TestEnvelopeStampsWorkingDirectory(t *testing.T) {
	out, err := server.Envelope(tracker.InitResult{
		Status:       tracker.StatusSuccess,
		Message:      "Initialized tracking for 3 files",
		FilesTracked: 3,
	}, "/tmp/proj")
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, "success", fields["status"])
	assert.Equal(t, "/tmp/proj", fields["working_directory"])
	assert.Equal(t, float64(3), fields["files_tracked"])
}

func TestEnvelopeIsIndented(t *testing.T) {
	out, err := server.Envelope(map[string]any{"status": "info"}, "/p")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"status\"")
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not initialized",
			err:  tracker.ErrNotInitialized,
			want: "Not initialized. Run initialize_tracking() first.",
		},
		{
			name: "wrapped not initialized",
			err:  errors.Join(errors.New("save"), tracker.ErrNotInitialized),
			want: "Not initialized. Run initialize_tracking() first.",
		},
		{
			name: "state not found",
			err:  &tracker.StateNotFoundError{StateNumber: 7},
			want: "State 7 not found",
		},
		{
			name: "generic",
			err:  errors.New("failed to restore: boom"),
			want: "Failed to restore: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, server.Humanize(tt.err))
		})
	}
}
