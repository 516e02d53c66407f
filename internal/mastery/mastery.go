package mastery

// Config holds the thresholds a learner must satisfy simultaneously for
// the mastery banner. Mastery is a display signal; it never terminates a
// session on its own.
type Config struct {
	// RequiredStreak is the minimum trailing run of correct attempts.
	RequiredStreak int

	// MaxAvgLatencyMs is the maximum mean response latency.
	MaxAvgLatencyMs int64

	// MaxHints is the maximum total hints used across the session.
	MaxHints int
}

// DefaultConfig returns the standard mastery thresholds.
func DefaultConfig() Config {
	return Config{
		RequiredStreak:  3,
		MaxAvgLatencyMs: 30000,
		MaxHints:        1,
	}
}

// Attempt is the slice of an attempt record the calculator reads.
type Attempt struct {
	Correct   bool
	LatencyMs int64
	HintsUsed int
}

// Stats is the derived mastery picture. It is never stored; it is
// recomputed from the full history on every call so it cannot drift.
type Stats struct {
	// Streak is the length of the trailing run of correct attempts.
	Streak int

	// AvgLatencyMs is the mean latency over all attempts.
	AvgLatencyMs int64

	// TotalHints is the sum of hints used over all attempts.
	TotalHints int

	// MasteryMet is true when all three thresholds hold at once.
	MasteryMet bool
}

// Compute derives Stats from an attempt history. Empty history yields zero
// stats with MasteryMet false.
func Compute(history []Attempt, cfg Config) Stats {
	if len(history) == 0 {
		return Stats{}
	}

	var latencySum int64
	var hints int
	for _, a := range history {
		latencySum += a.LatencyMs
		hints += a.HintsUsed
	}

	streak := 0
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Correct {
			break
		}
		streak++
	}

	avg := latencySum / int64(len(history))

	return Stats{
		Streak:       streak,
		AvgLatencyMs: avg,
		TotalHints:   hints,
		MasteryMet:   streak >= cfg.RequiredStreak && avg <= cfg.MaxAvgLatencyMs && hints <= cfg.MaxHints,
	}
}
