package server

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username  string
	Score     int
	Level     int
	SessionID string
	seq       uint64 // Report order; the earlier report wins a tie
}

// ranksAbove reports whether a belongs before b on the board.
func ranksAbove(a, b TopScoreEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.seq < b.seq
}

// insertScore places e into the sorted board, keeping at most size entries.
// It returns the updated board and e's 1-based rank, or 0 if e fell off.
func insertScore(board []TopScoreEntry, e TopScoreEntry, size int) ([]TopScoreEntry, int, bool) {
	if size <= 0 {
		return board, 0, false
	}

	pos := len(board)
	for i, cur := range board {
		if ranksAbove(e, cur) {
			pos = i
			break
		}
	}
	if pos >= size {
		return board, 0, false
	}

	board = append(board, TopScoreEntry{})
	copy(board[pos+1:], board[pos:])
	board[pos] = e
	if len(board) > size {
		board = board[:size]
	}
	return board, pos + 1, true
}
