package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/academic-scheduling/internal/schedule"
)

// The server rejects any slot that is not in the catalog, so the payload
// must be built from real catalog slots or every attempt comes back 400.
func TestContestedSlotsAreCatalogSlots(t *testing.T) {
	require.NotEmpty(t, contestedSlots)

	for _, slot := range contestedSlots {
		p, ok := schedule.PeriodOf(slot)
		require.True(t, ok, "slot %q is not in the catalog", slot)
		assert.Equal(t, schedule.PeriodMorning, p)
	}
}
