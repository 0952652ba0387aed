package domain

import "testing"

func TestAddRivalIsSymmetric(t *testing.T) {
	a := &Team{ID: "team-a"}
	b := &Team{ID: "team-b"}
	AddRival(a, b)

	if !a.IsRival("team-b") {
		t.Error("expected a to list b as a rival")
	}
	if !b.IsRival("team-a") {
		t.Error("expected b to list a as a rival")
	}
}

func TestAddRivalIgnoresSelf(t *testing.T) {
	a := &Team{ID: "team-a"}
	AddRival(a, a)

	if a.IsRival("team-a") {
		t.Error("a team should never be recorded as its own rival")
	}
}

func TestAddDoNotPlaySymmetric(t *testing.T) {
	a := &Team{ID: "team-a"}
	b := &Team{ID: "team-b"}
	AddDoNotPlay(a, b)

	if !a.IsDoNotPlay("team-b") || !b.IsDoNotPlay("team-a") {
		t.Error("expected do_not_play to be recorded on both sides")
	}
	if a.IsRival("team-b") {
		t.Error("do_not_play should not also mark rival")
	}
}
