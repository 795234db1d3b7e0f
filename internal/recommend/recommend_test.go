package recommend

import (
	"testing"

	"github.com/abhisek/learnbot/internal/curriculum"
	"github.com/abhisek/learnbot/internal/progress"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		scores [5]int
		want   string
	}{
		{"dbms weakest", [5]int{85, 78, 92, 75, 82}, "Suggested content for Dbms: Learn basic concepts of dbms."},
		{"networks weakest", [5]int{72, 68, 88, 80, 67}, "Suggested content for Computer Networks: Learn basic concepts of computer networks."},
		{"tie resolves to first", [5]int{60, 60, 60, 60, 60}, "Suggested content for Data Structures: Learn basic concepts of data structures."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := progress.Snapshot{LearnerID: 1, Scores: map[curriculum.Module]int{}}
			for i, m := range curriculum.AllModules() {
				s.Scores[m] = tt.scores[i]
			}
			got := Suggest(s)
			if got != tt.want {
				t.Errorf("Suggest = %q, want %q", got, tt.want)
			}
			if Suggest(s) != got {
				t.Error("Suggest is not deterministic")
			}
		})
	}
}
