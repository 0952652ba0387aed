package domain

import (
	"testing"
	"time"
)

func TestIsAvailableDefaultsToAvailable(t *testing.T) {
	f := Facility{ID: "fac-1", CourtCount: 1}
	weekday := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC) // Wednesday
	if !f.IsAvailable(weekday, false, nil) {
		t.Error("a facility with no explicit availability set should be available by default")
	}
}

func TestIsAvailableExcludesSundayUnlessConfigured(t *testing.T) {
	f := Facility{ID: "fac-1", CourtCount: 1}
	sunday := time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC)

	if f.IsAvailable(sunday, false, nil) {
		t.Error("Sunday should be excluded when play_on_sunday is false")
	}
	if !f.IsAvailable(sunday, true, nil) {
		t.Error("Sunday should be available when play_on_sunday is true")
	}
}

func TestIsAvailableExcludesBlackoutAndHoliday(t *testing.T) {
	day := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	key := "2025-09-10"

	blackedOut := Facility{ID: "fac-1", CourtCount: 1, BlackoutDates: map[string]struct{}{key: {}}}
	if blackedOut.IsAvailable(day, false, nil) {
		t.Error("a blacked-out date must not be available")
	}

	holidays := map[string]struct{}{key: {}}
	f := Facility{ID: "fac-1", CourtCount: 1}
	if f.IsAvailable(day, false, holidays) {
		t.Error("a holiday date must not be available")
	}
}

func TestIsAvailableHonoursExplicitSet(t *testing.T) {
	day := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	other := time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)
	f := Facility{
		ID:             "fac-1",
		CourtCount:     1,
		AvailableDates: map[string]struct{}{"2025-09-10": {}},
	}
	if !f.IsAvailable(day, false, nil) {
		t.Error("expected the explicitly listed date to be available")
	}
	if f.IsAvailable(other, false, nil) {
		t.Error("a date absent from a non-empty availability set must not be available")
	}
}

func TestEligibleForDivision(t *testing.T) {
	shortRimFacility := Facility{ID: "fac-1", CourtCount: 1, HasShortRims: true}
	standardFacility := Facility{ID: "fac-2", CourtCount: 1, HasShortRims: false}

	if !shortRimFacility.EligibleForDivision(DivisionK1Rec) {
		t.Error("a short-rim facility should be eligible for K1_REC")
	}
	if standardFacility.EligibleForDivision(DivisionK1Rec) {
		t.Error("a facility without short rims should not be eligible for K1_REC")
	}
	if !standardFacility.EligibleForDivision(DivisionESBoysComp) {
		t.Error("a standard facility should be eligible for divisions without a short-rim requirement")
	}
}
