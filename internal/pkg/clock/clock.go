package clock

import "time"

// Clocker is the time source injected into usecases.
type Clocker interface {
	Now() time.Time
}

// TimeClocker reads the system clock.
type TimeClocker struct{}

func New() *TimeClocker {
	return &TimeClocker{}
}

func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Static always reports the same instant.
type Static struct {
	at time.Time
}

func NewStatic(at time.Time) *Static {
	return &Static{at: at}
}

func (s *Static) Now() time.Time {
	return s.at
}
