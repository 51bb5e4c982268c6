package registry

import (
	"slices"

	"niedziele/internal/model"
)

// Comparison is the result of checking a published calendar against a
// registry.
type Comparison struct {
	// Missing are registry dates absent from the calendar.
	Missing []model.Date
	// Unexpected are calendar dates not in the registry, including extra
	// copies of a registry date.
	Unexpected []model.Date
	// OrderMatches is true when both lists are identical, order included.
	OrderMatches bool
}

// OK reports whether the calendar lists exactly the registry dates, each
// as many times as the registry does.
func (c Comparison) OK() bool {
	return len(c.Missing) == 0 && len(c.Unexpected) == 0
}

// Compare checks got against want as multisets and as sequences.
func Compare(want, got []model.Date) Comparison {
	var c Comparison

	remaining := make(map[model.Date]int, len(want))
	for _, d := range want {
		remaining[d]++
	}
	for _, d := range got {
		if remaining[d] > 0 {
			remaining[d]--
			continue
		}
		c.Unexpected = append(c.Unexpected, d)
	}
	for _, d := range want {
		if remaining[d] > 0 {
			remaining[d]--
			c.Missing = append(c.Missing, d)
		}
	}

	c.OrderMatches = slices.Equal(want, got)
	return c
}
