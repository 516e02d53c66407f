package progress

import "testing"

func TestSequentialCoverageFirst(t *testing.T) {
	// Nothing seen: strict left-to-right order regardless of misses.
	seen := []int{0, 0, 0}
	incorrect := map[int]bool{}

	idx, ok := ChooseNext(seen, incorrect, nil, 3)
	if !ok || idx != 0 {
		t.Fatalf("ChooseNext = (%d, %v), want (0, true)", idx, ok)
	}

	seen[0] = 1
	incorrect[0] = true
	idx, ok = ChooseNext(seen, incorrect, []int{0}, 3)
	if !ok || idx != 1 {
		t.Fatalf("ChooseNext = (%d, %v), want (1, true): unseen items before remediation", idx, ok)
	}

	seen[1] = 1
	incorrect[1] = true
	idx, ok = ChooseNext(seen, incorrect, []int{0, 1}, 3)
	if !ok || idx != 2 {
		t.Fatalf("ChooseNext = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestRemediationOnlyIncorrectItems(t *testing.T) {
	seen := []int{2, 1, 1}
	incorrect := map[int]bool{0: true}

	idx, ok := ChooseNext(seen, incorrect, []int{2}, 3)
	if !ok || idx != 0 {
		t.Fatalf("ChooseNext = (%d, %v), want the only incorrect item (0, true)", idx, ok)
	}
}

func TestRemediationLeastSeenWins(t *testing.T) {
	seen := []int{3, 1, 2}
	incorrect := map[int]bool{0: true, 1: true, 2: true}

	idx, ok := ChooseNext(seen, incorrect, nil, 3)
	if !ok || idx != 1 {
		t.Fatalf("ChooseNext = (%d, %v), want least-seen (1, true)", idx, ok)
	}
}

func TestRemediationTieBreaksLowestIndex(t *testing.T) {
	seen := []int{1, 1, 1}
	incorrect := map[int]bool{1: true, 2: true}

	idx, ok := ChooseNext(seen, incorrect, nil, 3)
	if !ok || idx != 1 {
		t.Fatalf("ChooseNext = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestRemediationAvoidsRecentRepeat(t *testing.T) {
	seen := []int{1, 2, 1}
	incorrect := map[int]bool{0: true, 2: true}

	// Item 0 was just presented; item 2 should win despite equal seen count.
	idx, ok := ChooseNext(seen, incorrect, []int{1, 0}, 3)
	if !ok || idx != 2 {
		t.Fatalf("ChooseNext = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestRemediationRecentFilterFallsBack(t *testing.T) {
	// The only incorrect item is also the most recent one: the filter would
	// empty the candidate set, so it is ignored.
	seen := []int{2, 1, 1}
	incorrect := map[int]bool{0: true}

	idx, ok := ChooseNext(seen, incorrect, []int{1, 0}, 3)
	if !ok || idx != 0 {
		t.Fatalf("ChooseNext = (%d, %v), want (0, true) via fallback", idx, ok)
	}
}

func TestExhaustionTermination(t *testing.T) {
	// Two items, both seen, nothing incorrect: session complete.
	seen := []int{1, 1}
	_, ok := ChooseNext(seen, map[int]bool{}, []int{0, 1}, 2)
	if ok {
		t.Fatal("ChooseNext ok = true, want false once the incorrect set is empty")
	}
}

func TestCoverageComplete(t *testing.T) {
	if CoverageComplete([]int{1, 0, 1}) {
		t.Error("CoverageComplete = true with unseen item")
	}
	if !CoverageComplete([]int{1, 2, 1}) {
		t.Error("CoverageComplete = false with all items seen")
	}
}
