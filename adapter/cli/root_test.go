package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slatehq/slate/internal/scheduling/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2026-03-02",
			want:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wrong separator",
			input:   "2026/03/02",
			wantErr: true,
		},
		{
			name:    "missing day",
			input:   "2026-03",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestFindConflict(t *testing.T) {
	conflicts := []domain.Conflict{
		{ID: "conflict-a-b"},
		{ID: "conflict-b-c"},
	}

	found, ok := findConflict(conflicts, "conflict-b-c")
	assert.True(t, ok)
	assert.Equal(t, "conflict-b-c", found.ID)

	_, ok = findConflict(conflicts, "conflict-x-y")
	assert.False(t, ok)
}

func TestGetContainerUninitialized(t *testing.T) {
	prev := container
	container = nil
	defer func() { container = prev }()

	_, err := getContainer()
	assert.Error(t, err)
}
