package schedule

import (
	"errors"
	"testing"

	"github.com/ivlev/text2video/internal/captions"
)

func caps(texts ...string) []captions.Caption {
	out := make([]captions.Caption, len(texts))
	for i, t := range texts {
		out[i] = captions.Caption{Text: t}
	}
	return out
}

func TestComputeSumInvariant(t *testing.T) {
	cases := []struct {
		totalFrames int
		texts       []string
	}{
		{100, []string{"cat", "elephant"}},
		{10, []string{"ab", "ab"}},
		{3597, []string{"short", "a much longer caption line", "mid size"}},
		{7, []string{"abcdefghij"}},
		{2, []string{"x", "y"}},
		{0, []string{"anything"}},
		{1451, []string{"Empower your evolution.\nEvery step", "of improvement", "is a stride toward power."}},
	}

	for _, tc := range cases {
		sched, err := Compute(tc.totalFrames, caps(tc.texts...))
		if err != nil {
			t.Fatalf("Compute(%d, %v) failed: %v", tc.totalFrames, tc.texts, err)
		}
		if len(sched) != len(tc.texts) {
			t.Errorf("Expected %d entries, got %d", len(tc.texts), len(sched))
		}
		if sched.Total() != tc.totalFrames {
			t.Errorf("Compute(%d, %v): sum = %d, want %d", tc.totalFrames, tc.texts, sched.Total(), tc.totalFrames)
		}
		for i, n := range sched {
			if n < 0 {
				t.Errorf("Compute(%d, %v): entry %d is negative: %d", tc.totalFrames, tc.texts, i, n)
			}
		}
	}
}

func TestComputeProportionality(t *testing.T) {
	sched, err := Compute(1000, caps("tiny", "a considerably longer caption"))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sched[1] < sched[0] {
		t.Errorf("Longer caption got fewer frames: %d < %d", sched[1], sched[0])
	}
}

func TestComputeZeroLength(t *testing.T) {
	_, err := Compute(100, caps(""))
	if !errors.Is(err, ErrZeroLength) {
		t.Errorf("Expected ErrZeroLength, got %v", err)
	}
}

func TestComputeTieBreak(t *testing.T) {
	// totalLength=4, baseRepeat=2, remainder=2, perCaption=1, no unused frames
	sched, err := Compute(10, caps("ab", "ab"))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sched[0] != 5 || sched[1] != 5 {
		t.Errorf("Expected [5 5], got %v", sched)
	}
}

func TestComputeConcrete(t *testing.T) {
	// totalLength=11, baseRepeat=9, remainder=1, perCaption=0,
	// accounted=99, one unused frame lands on the max entry (index 1)
	sched, err := Compute(100, caps("cat", "elephant"))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sched[0] != 27 || sched[1] != 73 {
		t.Errorf("Expected [27 73], got %v", sched)
	}
}

func TestComputeUnusedGoesToFirstMax(t *testing.T) {
	// Equal lengths tie on the maximum; the first caption takes the leftovers.
	sched, err := Compute(11, caps("ab", "ab"))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sched.Total() != 11 {
		t.Fatalf("sum = %d, want 11", sched.Total())
	}
	if sched[0] < sched[1] {
		t.Errorf("Leftover frames should land on the first maximum: %v", sched)
	}
}

func TestComputeRuneLengths(t *testing.T) {
	// Length is counted in code points, not bytes.
	sched, err := Compute(60, caps("ффф", "abc"))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if sched[0] != sched[1] {
		t.Errorf("Equal rune counts must split evenly, got %v", sched)
	}
}
