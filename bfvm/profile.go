package bfvm

import (
	"cmp"
	"slices"
)

// Profile counts the op sequences executed between a loop entry and each backward jump.
type Profile struct {
	Counts map[string]int
	trace  []Op
}

func NewProfile() *Profile {
	return &Profile{
		Counts: make(map[string]int),
	}
}

func (p *Profile) observe(op Op) {
	switch op.Code() {
	case OpJumpIfZero:
		p.trace = p.trace[:0]
	case OpJumpIfNotZero:
		if len(p.trace) > 0 {
			if p.Counts == nil {
				p.Counts = make(map[string]int)
			}
			p.Counts[formatOps(p.trace)]++
			p.trace = p.trace[:0]
		}
	default:
		p.trace = append(p.trace, op)
	}
}

type ProfileEntry struct {
	Trace string
	Count int
}

// Top returns the n most frequent traces, all of them if n <= 0.
func (p *Profile) Top(n int) []ProfileEntry {
	entries := make([]ProfileEntry, 0, len(p.Counts))
	for trace, count := range p.Counts {
		entries = append(entries, ProfileEntry{
			Trace: trace,
			Count: count,
		})
	}
	slices.SortFunc(entries, func(a, b ProfileEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Trace, b.Trace)
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
