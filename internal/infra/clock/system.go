package clock

import (
	"time"

	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.Clock = (*System)(nil)

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }
