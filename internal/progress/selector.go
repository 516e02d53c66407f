package progress

// RecentWindow is how many trailing history entries are excluded from
// remediation candidates to avoid back-to-back repeats. When the exclusion
// would empty the candidate set it is ignored entirely.
const RecentWindow = 2

// ChooseNext picks the next item index to present, or ok=false when no
// further item is needed and the session is complete.
//
// Phase 1, sequential coverage: the lowest index with a zero seen count.
// Every item is attempted once, left to right, before any repeats.
//
// Phase 2, remediation: only items whose latest attempt was incorrect are
// candidates. Among them the least-seen item wins, lowest index on ties.
// (The lineage also contains a uniform-random variant; the deterministic
// least-seen rule was chosen here so remediation pacing is reproducible.)
//
// Termination: an empty incorrect set after full coverage ends the session.
// Mastery thresholds are tracked separately and never end the session.
func ChooseNext(seenCounts []int, incorrectSet map[int]bool, recent []int, itemCount int) (int, bool) {
	// Sequential-coverage phase.
	for i := 0; i < itemCount; i++ {
		if seenCounts[i] == 0 {
			return i, true
		}
	}

	if len(incorrectSet) == 0 {
		return 0, false
	}

	// Remediation phase: drop recently-presented items unless that would
	// leave nothing to pick.
	candidates := excludeRecent(incorrectSet, recent)
	if len(candidates) == 0 {
		candidates = incorrectSet
	}

	best := -1
	for i := 0; i < itemCount; i++ {
		if !candidates[i] {
			continue
		}
		if best == -1 || seenCounts[i] < seenCounts[best] {
			best = i
		}
	}
	return best, best >= 0
}

// CoverageComplete reports whether every item has been seen at least once.
func CoverageComplete(seenCounts []int) bool {
	for _, c := range seenCounts {
		if c == 0 {
			return false
		}
	}
	return true
}

func excludeRecent(incorrectSet map[int]bool, recent []int) map[int]bool {
	window := recent
	if len(window) > RecentWindow {
		window = window[len(window)-RecentWindow:]
	}

	out := make(map[int]bool, len(incorrectSet))
	for i := range incorrectSet {
		out[i] = true
	}
	for _, r := range window {
		delete(out, r)
	}
	return out
}
