package game

// FoldStats folds one completed game's final score into a user's running
// totals. It is a pure fold, not idempotent: invoking it twice for the
// same game double-counts. Callers rely on the session's absorbing
// COMPLETED state to apply it exactly once per game, and stores must run
// the read-fold-write as a single transaction.
func FoldStats(s UserStats, gameScore int) UserStats {
	s.TotalGames++
	s.TotalScore += gameScore
	s.AverageScore = float64(s.TotalScore) / float64(s.TotalGames)
	if gameScore > s.BestScore {
		s.BestScore = gameScore
	}
	return s
}
