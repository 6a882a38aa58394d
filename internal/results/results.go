package results

import (
	"github.com/RuchaTekade/polling-app/internal/domain"
)

// Tally groups votes by option and counts them. Every supplied option appears
// in the result, zero-voted options included, in the order the options were
// given. Votes referencing an option outside the supplied set are skipped.
func Tally(options []domain.Option, votes []domain.Vote) domain.Tally {
	counts := make(map[string]int64, len(options))
	for _, opt := range options {
		counts[opt.ID] = 0
	}

	var total int64
	for _, vote := range votes {
		if _, ok := counts[vote.OptionID]; !ok {
			continue
		}
		counts[vote.OptionID]++
		total++
	}

	out := domain.Tally{
		Counts: make([]domain.OptionCount, 0, len(options)),
		Total:  total,
	}
	for _, opt := range options {
		out.Counts = append(out.Counts, domain.OptionCount{
			OptionID: opt.ID,
			Count:    counts[opt.ID],
		})
	}
	return out
}

// Percent returns count's share of total as a value in [0, 100]. A zero total
// yields 0 rather than dividing by zero.
func Percent(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
