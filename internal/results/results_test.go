package results

import (
	"math"
	"testing"

	"github.com/RuchaTekade/polling-app/internal/domain"
)

func opts(ids ...string) []domain.Option {
	out := make([]domain.Option, 0, len(ids))
	for i, id := range ids {
		out = append(out, domain.Option{ID: id, PollID: "p1", Position: i})
	}
	return out
}

func votesFor(optionIDs ...string) []domain.Vote {
	out := make([]domain.Vote, 0, len(optionIDs))
	for i, id := range optionIDs {
		out = append(out, domain.Vote{PollID: "p1", OptionID: id, VoterID: string(rune('a' + i))})
	}
	return out
}

func TestTally(t *testing.T) {
	tests := []struct {
		name       string
		options    []domain.Option
		votes      []domain.Vote
		wantCounts []int64
		wantTotal  int64
	}{
		{
			name:       "no votes seeds every option at zero",
			options:    opts("a", "b", "c"),
			votes:      nil,
			wantCounts: []int64{0, 0, 0},
			wantTotal:  0,
		},
		{
			name:       "votes grouped per option",
			options:    opts("a", "b"),
			votes:      votesFor("a", "a", "b"),
			wantCounts: []int64{2, 1},
			wantTotal:  3,
		},
		{
			name:       "zero-voted option still present",
			options:    opts("a", "b", "c"),
			votes:      votesFor("b", "b"),
			wantCounts: []int64{0, 2, 0},
			wantTotal:  2,
		},
		{
			name:       "vote for unknown option ignored",
			options:    opts("a", "b"),
			votes:      votesFor("a", "stray"),
			wantCounts: []int64{1, 0},
			wantTotal:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tally(tt.options, tt.votes)
			if got.Total != tt.wantTotal {
				t.Fatalf("Total = %d, want %d", got.Total, tt.wantTotal)
			}
			if len(got.Counts) != len(tt.options) {
				t.Fatalf("len(Counts) = %d, want %d", len(got.Counts), len(tt.options))
			}
			var sum int64
			for i, count := range got.Counts {
				if count.OptionID != tt.options[i].ID {
					t.Fatalf("Counts[%d].OptionID = %s, want %s (order must follow options)", i, count.OptionID, tt.options[i].ID)
				}
				if count.Count != tt.wantCounts[i] {
					t.Fatalf("Counts[%d] = %d, want %d", i, count.Count, tt.wantCounts[i])
				}
				sum += count.Count
			}
			if sum != got.Total {
				t.Fatalf("sum of counts = %d, total = %d", sum, got.Total)
			}
		})
	}
}

func TestTallyDeterministic(t *testing.T) {
	options := opts("a", "b", "c")
	votes := votesFor("a", "c", "c")

	first := Tally(options, votes)
	for i := 0; i < 10; i++ {
		again := Tally(options, votes)
		if again.Total != first.Total {
			t.Fatalf("run %d total = %d, want %d", i, again.Total, first.Total)
		}
		for j := range first.Counts {
			if again.Counts[j] != first.Counts[j] {
				t.Fatalf("run %d counts[%d] = %+v, want %+v", i, j, again.Counts[j], first.Counts[j])
			}
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		total int64
		want  float64
	}{
		{"zero total", 0, 0, 0},
		{"zero count", 0, 5, 0},
		{"half", 1, 2, 50},
		{"all", 4, 4, 100},
		{"third", 1, 3, 100.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(tt.count, tt.total)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Fatalf("Percent(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
			}
		})
	}
}
