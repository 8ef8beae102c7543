package runtime

import (
	"math"
	"time"

	"github.com/aretw0/bigroot/pkg/domain"
)

// progressTracker turns iteration counts into percentage events, emitting only
// when the value in hundredths of a percent changes.
type progressTracker struct {
	total uint64
	last  int
}

func newProgressTracker(total uint64) *progressTracker {
	return &progressTracker{total: total, last: -1}
}

func (p *progressTracker) advance(done uint64) (*domain.ProgressEvent, bool) {
	if p.total == 0 {
		return nil, false
	}
	hundredths := hundredthsOf(done, p.total)
	if hundredths == p.last {
		return nil, false
	}
	p.last = hundredths
	return &domain.ProgressEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventComputeProgress},
		Done:       done,
		Total:      p.total,
		Hundredths: hundredths,
	}, true
}

// hundredthsOf computes 10000*done/total without overflowing for large totals.
func hundredthsOf(done, total uint64) int {
	if done >= total {
		return 10000
	}
	if done > math.MaxUint64/10000 {
		return int(float64(done) / float64(total) * 10000)
	}
	return int(done * 10000 / total)
}
