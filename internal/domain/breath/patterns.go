// Package breath describes guided breathing patterns.
package breath

import "time"

// Phase is one step of a breathing cycle.
type Phase struct {
	Name     string
	Duration time.Duration
}

// Pattern is a named, repeating sequence of phases.
type Pattern struct {
	Key         string
	Name        string
	Description string
	Phases      []Phase
}

// Cycle returns the length of one full cycle.
func (p Pattern) Cycle() time.Duration {
	var total time.Duration
	for _, ph := range p.Phases {
		total += ph.Duration
	}
	return total
}

// CyclesIn returns how many whole cycles fit in d.
func (p Pattern) CyclesIn(d time.Duration) int {
	c := p.Cycle()
	if c <= 0 || d <= 0 {
		return 0
	}
	return int(d / c)
}

// DefaultKey is the pattern shown when none is selected.
const DefaultKey = "box"

// Patterns returns the built-in patterns in display order.
func Patterns() []Pattern {
	return []Pattern{
		{
			Key:         "box",
			Name:        "Box breathing",
			Description: "Equal counts in, hold, out and hold. Steadies attention.",
			Phases: []Phase{
				{Name: "Inhale", Duration: 4 * time.Second},
				{Name: "Hold", Duration: 4 * time.Second},
				{Name: "Exhale", Duration: 4 * time.Second},
				{Name: "Hold", Duration: 4 * time.Second},
			},
		},
		{
			Key:         "relax",
			Name:        "4-7-8 relax",
			Description: "A long hold and slow exhale to wind down before sleep.",
			Phases: []Phase{
				{Name: "Inhale", Duration: 4 * time.Second},
				{Name: "Hold", Duration: 7 * time.Second},
				{Name: "Exhale", Duration: 8 * time.Second},
			},
		},
		{
			Key:         "coherent",
			Name:        "Coherent breathing",
			Description: "Five seconds in, five seconds out, about six breaths a minute.",
			Phases: []Phase{
				{Name: "Inhale", Duration: 5 * time.Second},
				{Name: "Exhale", Duration: 5 * time.Second},
			},
		},
	}
}

// Lookup returns the pattern for key, falling back to the default pattern.
// ok is false when key was not recognized.
func Lookup(key string) (Pattern, bool) {
	all := Patterns()
	for _, p := range all {
		if p.Key == key {
			return p, true
		}
	}
	for _, p := range all {
		if p.Key == DefaultKey {
			return p, false
		}
	}
	return all[0], false
}
