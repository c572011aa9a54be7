//go:build !linux && !windows

package platform

import "lookaway/internal/core/cycle"

func newIdleProvider() cycle.IdleChecker {
	return unsupportedIdleProvider{}
}
