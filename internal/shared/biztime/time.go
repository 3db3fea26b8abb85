// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. Business timezone is only used for
// calculating date boundaries (start/end of day, month).
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "America/Sao_Paulo"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to America/Sao_Paulo.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, auto-initializing with
// the default timezone when Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns the UTC instant at which the business-timezone day
// containing t begins.
func StartOfDay(t time.Time) time.Time {
	local := t.In(Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location())
	return start.UTC()
}

// EndOfDay returns the UTC instant at which the business-timezone day
// containing t ends (start of the next day).
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}
