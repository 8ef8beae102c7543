package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventComputeStart    EventType = "compute_start"
	EventComputeProgress EventType = "compute_progress"
	EventComputeComplete EventType = "compute_complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ComputeEvent marks the start or the end of one engine call.
type ComputeEvent struct {
	EventBase
	InputBits      int           `json:"input_bits"`
	FractionalBits uint64        `json:"fractional_bits"`
	ShiftBits      uint          `json:"shift_bits"`
	Iterations     uint64        `json:"iterations,omitempty"`
	Perfect        bool          `json:"perfect,omitempty"`
	Elapsed        time.Duration `json:"elapsed,omitempty"`
}

// ProgressEvent reports fractional-phase progress in hundredths of a percent.
type ProgressEvent struct {
	EventBase
	Done       uint64 `json:"done"`
	Total      uint64 `json:"total"`
	Hundredths int    `json:"hundredths"`
}

// Percent returns the progress as a percentage.
func (e *ProgressEvent) Percent() float64 {
	return float64(e.Hundredths) / 100
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the computing goroutine.
type LifecycleHooks struct {
	OnStart    func(context.Context, *ComputeEvent)
	OnProgress func(context.Context, *ProgressEvent)
	OnComplete func(context.Context, *ComputeEvent)
}

// MergeHooks combines hook sets; each callback fires in argument order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range sets {
		h := h
		if h.OnStart != nil {
			prev := merged.OnStart
			merged.OnStart = func(ctx context.Context, e *ComputeEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnStart(ctx, e)
			}
		}
		if h.OnProgress != nil {
			prev := merged.OnProgress
			merged.OnProgress = func(ctx context.Context, e *ProgressEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnProgress(ctx, e)
			}
		}
		if h.OnComplete != nil {
			prev := merged.OnComplete
			merged.OnComplete = func(ctx context.Context, e *ComputeEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnComplete(ctx, e)
			}
		}
	}
	return merged
}
