//go:build no_bubbletea

package download

import (
	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/core/engine"
)

const teaEnabled = false

func newTeaTracker(c *console.Console) engine.ProgressTracker {
	return newLineTracker(c)
}
