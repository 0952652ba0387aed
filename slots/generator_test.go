package slots

import (
	"testing"
	"time"

	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/rules"
)

func weekOfRules() rules.Rules {
	r := rules.Default()
	r.SeasonStart = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)  // Monday
	r.SeasonEnd = time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)    // Sunday
	r.GameDurationMinutes = 60
	r.WeeknightWindow = rules.Window{Start: 18 * time.Hour, End: 20 * time.Hour}
	r.SaturdayWindow = rules.Window{Start: 9 * time.Hour, End: 11 * time.Hour}
	return r
}

func TestGenerateProducesSlotsWithinWindows(t *testing.T) {
	r := weekOfRules()
	facilities := []domain.Facility{{ID: "fac-1", CourtCount: 2}}

	out := Generate(facilities, r)
	if len(out) == 0 {
		t.Fatal("expected at least one slot to be generated")
	}

	for _, s := range out {
		if s.Date.Weekday() == time.Sunday {
			t.Errorf("did not expect a slot on Sunday when play_on_sunday defaults to false: %v", s)
		}
		w := r.WeeknightWindow
		if s.Date.Weekday() == time.Saturday {
			w = r.SaturdayWindow
		}
		if s.Start.Sub(s.Date) < w.Start || s.End.Sub(s.Date) > w.End {
			t.Errorf("slot %v falls outside its %v-%v window", s, w.Start, w.End)
		}
	}
}

func TestGenerateSkipsSundayByDefault(t *testing.T) {
	r := weekOfRules()
	facilities := []domain.Facility{{ID: "fac-1", CourtCount: 1}}

	out := Generate(facilities, r)
	for _, s := range out {
		if s.Date.Weekday() == time.Sunday {
			t.Fatal("Sunday slot generated despite play_on_sunday being false")
		}
	}
}

func TestGenerateOneSlotPerCourtPerSegment(t *testing.T) {
	r := weekOfRules()
	facilities := []domain.Facility{{ID: "fac-1", CourtCount: 2}}

	out := Generate(facilities, r)
	saturday := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	count := 0
	for _, s := range out {
		if s.Date.Equal(saturday) {
			count++
		}
	}
	// Saturday window is 09:00-11:00, 60-minute games -> 2 segments, 2 courts.
	if count != 4 {
		t.Errorf("expected 4 Saturday slots (2 segments x 2 courts), got %d", count)
	}
}

func TestGenerateForDivisionFiltersIneligibleFacilities(t *testing.T) {
	r := weekOfRules()
	facilities := []domain.Facility{
		{ID: "fac-short-rim", CourtCount: 1, HasShortRims: true},
		{ID: "fac-standard", CourtCount: 1, HasShortRims: false},
	}

	out := GenerateForDivision(facilities, r, domain.DivisionK1Rec)
	for _, s := range out {
		if s.FacilityID != "fac-short-rim" {
			t.Errorf("expected only short-rim facility slots for K1_REC, got facility %s", s.FacilityID)
		}
	}
}

func TestBlocksGroupsConsecutiveSlots(t *testing.T) {
	r := weekOfRules()
	facilities := []domain.Facility{{ID: "fac-1", CourtCount: 1}}
	allSlots := Generate(facilities, r)

	blocks := Blocks(allSlots)
	for _, b := range blocks {
		for i := 1; i < len(b.Slots); i++ {
			if !b.Slots[i-1].End.Equal(b.Slots[i].Start) {
				t.Errorf("expected block slots to be back-to-back, gap found between %v and %v", b.Slots[i-1], b.Slots[i])
			}
		}
	}
}
