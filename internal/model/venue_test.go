package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVenue_AllFields(t *testing.T) {
	v := NewVenue("Luigi's", "1 Main St", "(555) 123-4567", 4.5)

	assert.Equal(t, "Luigi's", v.Name)
	assert.Equal(t, "1 Main St", v.Address)
	assert.Equal(t, "(555) 123-4567", v.Phone)
	require.NotNil(t, v.Rating)
	assert.InDelta(t, 4.5, *v.Rating, 0.001)
	assert.Equal(t, "4.5", v.RatingString())
}

func TestNewVenue_MissingFieldsUseSentinel(t *testing.T) {
	v := NewVenue("", "", "(555) 000-0000", 0)

	assert.Equal(t, NotAvailable, v.Name)
	assert.Equal(t, NotAvailable, v.Address)
	assert.Nil(t, v.Rating)
	assert.Equal(t, NotAvailable, v.RatingString())
}

func TestVenue_Row(t *testing.T) {
	v := NewVenue("Cafe", "", "555", 3)
	assert.Equal(t, []string{"Cafe", NotAvailable, "555", "3"}, v.Row())
	assert.Len(t, v.Row(), len(Columns))
}

func TestRunStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   bool
	}{
		{RunStatusRunning, false},
		{RunStatusComplete, true},
		{RunStatusNoMatches, true},
		{RunStatusFailed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}
