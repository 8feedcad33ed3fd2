package fd

import "testing"

func TestCellAccumulatorDispatch(t *testing.T) {
	// Handler 0 touches cells 0,1; handler 1 touches cells 1,2.
	cellsPerHandler := [][]int{{0, 1}, {1, 2}}
	acc := NewCellAccumulator(3, cellsPerHandler)

	acc.Add(1)

	seen := map[int]bool{}
	for {
		idx, ok := acc.Pop()
		if !ok {
			break
		}
		seen[idx] = true
	}
	if !seen[0] || !seen[1] {
		t.Fatalf("expected both handlers queued, got %v", seen)
	}
}

func TestCellAccumulatorDoesNotDoubleQueue(t *testing.T) {
	acc := NewCellAccumulator(2, [][]int{{0, 1}})

	acc.Add(0)
	acc.Add(1)

	count := 0
	for {
		if _, ok := acc.Pop(); !ok {
			break
		}
		count++
	}
	if count != 1 {
		t.Fatalf("expected handler 0 queued exactly once, got %d", count)
	}
}

func TestCellAccumulatorHoldPreventsReentry(t *testing.T) {
	acc := NewCellAccumulator(1, [][]int{{0}})

	acc.Add(0)
	idx, ok := acc.Pop()
	if !ok || idx != 0 {
		t.Fatalf("expected to pop handler 0, got %d, %v", idx, ok)
	}
	acc.Hold(idx)

	// While held, re-adding the same cell must not re-queue the handler.
	acc.Add(0)
	if _, ok := acc.Pop(); ok {
		t.Fatalf("handler should not be queued while held")
	}

	acc.ClearHold()
	acc.Add(0)
	if _, ok := acc.Pop(); !ok {
		t.Fatalf("handler should be queueable again after ClearHold")
	}
}

func TestCellAccumulatorClear(t *testing.T) {
	acc := NewCellAccumulator(2, [][]int{{0}, {1}})
	acc.Add(0)
	acc.Add(1)
	acc.Clear()

	if _, ok := acc.Pop(); ok {
		t.Fatalf("expected empty queue after Clear")
	}

	// Handlers must be addressable again after Clear.
	acc.Add(0)
	if _, ok := acc.Pop(); !ok {
		t.Fatalf("expected handler 0 to be queueable after Clear")
	}
}
