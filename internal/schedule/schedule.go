package schedule

import (
	"errors"

	"github.com/ivlev/text2video/internal/captions"
)

// ErrZeroLength is returned when the script's summed caption length is zero,
// which would make the length-weighted split undefined.
var ErrZeroLength = errors.New("schedule: total caption length is zero")

// Schedule holds, per caption index, the number of consecutive frames the
// caption stays on screen. The values always sum to the frame count the
// schedule was computed for.
type Schedule []int

// Total returns the sum of all per-caption frame counts.
func (s Schedule) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Compute distributes totalFrames among the captions proportionally to their
// text length. Integer division leaves two remainders: the per-length
// remainder is split evenly across captions, and whatever is still left after
// that second truncation is added to the caption that already holds the
// maximum count (first such caption wins on ties), so the sum matches
// totalFrames exactly.
func Compute(totalFrames int, caps []captions.Caption) (Schedule, error) {
	totalLen := 0
	for _, c := range caps {
		totalLen += c.Len()
	}
	if totalLen == 0 {
		return nil, ErrZeroLength
	}

	baseRepeat := totalFrames / totalLen
	perCaption := (totalFrames % totalLen) / len(caps)

	sched := make(Schedule, len(caps))
	for i, c := range caps {
		sched[i] = c.Len()*baseRepeat + perCaption
	}

	unused := totalFrames - sched.Total()

	maxIdx := 0
	for i, n := range sched {
		if n > sched[maxIdx] {
			maxIdx = i
		}
	}
	sched[maxIdx] += unused

	return sched, nil
}
