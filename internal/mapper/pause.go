package mapper

import (
	"context"
	"time"
)

// pauseController abstracts how the crawler waits between followed links.
type pauseController interface {
	Pause(ctx context.Context, delay time.Duration)
}

// timerPauseController blocks for the full delay unless the context ends
// first. A zero or negative delay returns immediately.
type timerPauseController struct{}

func (timerPauseController) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
