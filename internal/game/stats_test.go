package game

import "testing"

func TestFoldStats(t *testing.T) {
	tests := []struct {
		name  string
		in    UserStats
		score int
		want  UserStats
	}{
		{
			name:  "first game",
			in:    UserStats{UserID: "u1"},
			score: 500,
			want:  UserStats{UserID: "u1", TotalGames: 1, TotalScore: 500, AverageScore: 500, BestScore: 500},
		},
		{
			name:  "existing stats, new best",
			in:    UserStats{UserID: "u1", TotalGames: 4, TotalScore: 400, AverageScore: 100, BestScore: 150},
			score: 300,
			want:  UserStats{UserID: "u1", TotalGames: 5, TotalScore: 700, AverageScore: 140, BestScore: 300},
		},
		{
			name:  "best score unchanged",
			in:    UserStats{UserID: "u1", TotalGames: 1, TotalScore: 900, AverageScore: 900, BestScore: 900},
			score: 100,
			want:  UserStats{UserID: "u1", TotalGames: 2, TotalScore: 1000, AverageScore: 500, BestScore: 900},
		},
		{
			name:  "zero-score game still counts",
			in:    UserStats{UserID: "u1", TotalGames: 2, TotalScore: 600, AverageScore: 300, BestScore: 400},
			score: 0,
			want:  UserStats{UserID: "u1", TotalGames: 3, TotalScore: 600, AverageScore: 200, BestScore: 400},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldStats(tt.in, tt.score); got != tt.want {
				t.Errorf("FoldStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFoldStatsAverageIsExact(t *testing.T) {
	s := UserStats{UserID: "u1"}
	scores := []int{1000, 333, 0, 600, 140}
	total := 0
	for i, sc := range scores {
		s = FoldStats(s, sc)
		total += sc
		want := float64(total) / float64(i+1)
		if s.AverageScore != want {
			t.Fatalf("after %d games: average = %v, want %v", i+1, s.AverageScore, want)
		}
	}
}
