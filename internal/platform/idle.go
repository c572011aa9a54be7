package platform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lookaway/internal/core/cycle"
)

// NewIdleProvider returns the idle checker for the running platform. Where
// idle time cannot be measured the checker returns cycle.ErrIdleUnsupported.
func NewIdleProvider() cycle.IdleChecker {
	return newIdleProvider()
}

type unsupportedIdleProvider struct{}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, cycle.ErrIdleUnsupported
}

// parseIdleMillis reads the millisecond count printed by xprintidle.
func parseIdleMillis(output []byte) (time.Duration, error) {
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
