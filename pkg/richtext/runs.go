package richtext

import "sort"

// Run is a maximal slice of a Text over which the set of active styles
// does not change. A placeholder always forms a run of its own.
type Run struct {
	Start int
	End   int

	// Styles are the styles covering the run, outermost first.
	Styles []Style

	// Placeholder is set when the run is exactly one placeholder slot.
	Placeholder *Placeholder
}

// Text returns the characters of the run within t.
func (r Run) Text(t Text) string {
	return t.Text[r.Start:r.End]
}

// Has reports whether kind is among the run's styles.
func (r Run) Has(kind StyleKind) bool {
	for _, s := range r.Styles {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// Link returns the innermost link key of the run.
func (r Run) Link() (string, bool) {
	for i := len(r.Styles) - 1; i >= 0; i-- {
		if r.Styles[i].Kind == StyleLink {
			return r.Styles[i].Key, true
		}
	}
	return "", false
}

// Runs splits the text at every range and placeholder boundary.
// Empty ranges produce no run. Out-of-bounds ranges are clamped.
func (t Text) Runs() []Run {
	if t.Text == "" {
		return nil
	}
	size := len(t.Text)
	clamp := func(v int) int { return min(max(v, 0), size) }

	cuts := map[int]struct{}{0: {}, size: {}}
	for _, r := range t.Styles {
		cuts[clamp(r.Start)] = struct{}{}
		cuts[clamp(r.End)] = struct{}{}
	}
	slots := make(map[int]*Placeholder, len(t.Placeholders))
	for i := range t.Placeholders {
		p := &t.Placeholders[i]
		if p.Offset < 0 || p.Offset+objectReplacementLen > size {
			continue
		}
		slots[p.Offset] = p
		cuts[p.Offset] = struct{}{}
		cuts[p.Offset+objectReplacementLen] = struct{}{}
	}

	offsets := make([]int, 0, len(cuts))
	for off := range cuts {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	runs := make([]Run, 0, len(offsets)-1)
	for i := 0; i+1 < len(offsets); i++ {
		run := Run{Start: offsets[i], End: offsets[i+1]}
		for _, r := range t.Styles {
			if clamp(r.Start) <= run.Start && clamp(r.End) >= run.End {
				run.Styles = append(run.Styles, r.Style)
			}
		}
		if p, ok := slots[run.Start]; ok && run.End == run.Start+objectReplacementLen {
			run.Placeholder = p
		}
		runs = append(runs, run)
	}
	return runs
}
