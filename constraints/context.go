// Package constraints implements the hard (H1-H10) and soft (S1-S8)
// rules from spec.md §4.3 as a per-rule registry, grounded on the
// BaseConstraint/Name/IsHard/Score shape other_examples' nrl-scheduler
// constraint package uses, adapted from match/draw scheduling to this
// engine's team/division/facility model.
package constraints

import (
	"pubgames/leagueschedule/domain"
	"pubgames/leagueschedule/rules"
)

// Context bundles the read-only reference data every rule needs besides
// the Schedule itself. It is built once per generation run and passed by
// value since it only holds maps (cheap to copy, never mutated).
type Context struct {
	Teams      map[string]domain.Team
	Schools    map[string]domain.School
	Facilities map[string]domain.Facility
	Rules      rules.Rules
}

// base gives every rule a Name() without repeating the same one-line
// method on every struct.
type base struct{ name string }

func (b base) Name() string { return b.name }
