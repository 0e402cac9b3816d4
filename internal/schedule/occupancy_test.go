package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOccupiedSlotsPrecedence(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name      string
		details   string
		start     string
		end       string
		want      []string
	}{
		{
			name:    "timeSlots list wins over start/end",
			details: `{"timeSlots": ["07:30 - 08:20", "08:20 - 09:10"]}`,
			start:   "13:00",
			end:     "13:50",
			want:    []string{"07:30 - 08:20", "08:20 - 09:10"},
		},
		{
			name:    "comma-joined time string wins when timeSlots absent",
			details: `{"time": "19:00 - 19:50, 19:50 - 20:40"}`,
			start:   "07:30",
			end:     "08:20",
			want:    []string{"19:00 - 19:50", "19:50 - 20:40"},
		},
		{
			name:    "empty details derives from start/end",
			details: "",
			start:   "07:30",
			end:     "09:10",
			want:    []string{"07:30 - 08:20", "08:20 - 09:10"},
		},
		{
			name:    "null details derives from start/end",
			details: "null",
			start:   "13:00",
			end:     "13:50",
			want:    []string{"13:00 - 13:50"},
		},
		{
			name:    "malformed details falls back instead of failing",
			details: `{"timeSlots": "oops, not a list"`,
			start:   "21:00",
			end:     "22:40",
			want:    []string{"21:00 - 21:50", "21:50 - 22:40"},
		},
		{
			name:    "whitespace entries are trimmed",
			details: `{"time": " 07:30 - 08:20 ,  , 08:20 - 09:10 "}`,
			start:   "",
			end:     "",
			want:    []string{"07:30 - 08:20", "08:20 - 09:10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OccupiedSlots([]byte(tt.details), tt.start, tt.end, logger)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveSlots(t *testing.T) {
	assert.Equal(t,
		[]string{"09:40 - 10:30", "10:30 - 11:20"},
		DeriveSlots("09:40", "11:20"))

	// A window shorter than any slot yields nothing.
	assert.Empty(t, DeriveSlots("09:40", "10:00"))

	// A backwards or empty window yields nothing.
	assert.Empty(t, DeriveSlots("11:20", "09:40"))
	assert.Empty(t, DeriveSlots("", ""))

	// Full-day window covers all fifteen catalog slots.
	assert.Len(t, DeriveSlots("00:00", "23:59"), 15)
}

func TestOccupiedSlotsNilLogger(t *testing.T) {
	// Must tolerate a nil logger; rendering must never be blocked.
	got := OccupiedSlots([]byte("{bad json"), "07:30", "08:20", nil)
	assert.Equal(t, []string{"07:30 - 08:20"}, got)
}
