package schedule

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Booking is the resolver's read-only view of an existing evaluation booking,
// already normalized at the data-fetch boundary: Occupied holds the catalog
// slots the booking covers, regardless of which legacy representation the
// stored record used.
type Booking struct {
	ID           uuid.UUID
	SemesterID   uuid.UUID
	CourseID     uuid.UUID
	ClassID      uuid.UUID
	DisciplineID uuid.UUID
	Date         time.Time
	Occupied     []string
}

// legacyDetails is the historical JSONB payload attached to a booking. Old
// records carry either an explicit slot list or a comma-joined "time" string;
// both take precedence over the start/end columns.
type legacyDetails struct {
	TimeSlots []string `json:"timeSlots"`
	Time      string   `json:"time"`
}

// OccupiedSlots normalizes a booking's occupied-slot representation into a
// list of catalog slot strings. Precedence: details.timeSlots, then
// details.time, then derivation from the start/end times. A malformed details
// payload is logged and falls back to derivation; it never fails.
func OccupiedSlots(details []byte, startTime, endTime string, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(details) > 0 && string(details) != "null" {
		var d legacyDetails
		if err := json.Unmarshal(details, &d); err != nil {
			logger.Warn("malformed booking details, deriving slots from start/end",
				zap.Error(err),
			)
		} else {
			if slots := cleanSlotList(d.TimeSlots); len(slots) > 0 {
				return slots
			}
			if d.Time != "" {
				if slots := cleanSlotList(strings.Split(d.Time, ",")); len(slots) > 0 {
					return slots
				}
				logger.Warn("booking details time field yielded no slots, deriving from start/end",
					zap.String("time", d.Time),
				)
			}
		}
	}

	return DeriveSlots(startTime, endTime)
}

// DeriveSlots returns every catalog slot fully contained in [startTime,
// endTime). Zero-padded "HH:MM" strings compare correctly as text.
func DeriveSlots(startTime, endTime string) []string {
	if startTime == "" || endTime == "" || startTime >= endTime {
		return nil
	}
	var out []string
	for _, p := range AllPeriods {
		for _, slot := range slotCatalog[p] {
			s, e, ok := SlotBounds(slot)
			if !ok {
				continue
			}
			if s >= startTime && e <= endTime {
				out = append(out, slot)
			}
		}
	}
	return out
}

func cleanSlotList(raw []string) []string {
	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
