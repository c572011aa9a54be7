//go:build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"lookaway/internal/core/cycle"
)

type idleProvider struct {
	xprintidlePath string
}

func newIdleProvider() cycle.IdleChecker {
	if strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) == "wayland" {
		return unsupportedIdleProvider{}
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{xprintidlePath: path}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.xprintidlePath).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(output)
}
