package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID string
	Duration  time.Duration
	Score     int
	Answered  int
	Accuracy  float64
	History   []HistoryEntry
}

// BuildSummary creates a Summary from the current round state.
func BuildSummary(state *State) *Summary {
	var accuracy float64
	if state.Answered > 0 {
		accuracy = float64(state.Score) / float64(state.Answered)
	}

	history := make([]HistoryEntry, len(state.History))
	copy(history, state.History)

	return &Summary{
		SessionID: state.SessionID,
		Duration:  state.Elapsed,
		Score:     state.Score,
		Answered:  state.Answered,
		Accuracy:  accuracy,
		History:   history,
	}
}
