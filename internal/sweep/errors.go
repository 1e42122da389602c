package sweep

import (
	"errors"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
)

var (
	// ErrInvalidRoot means the scan root does not exist.
	ErrInvalidRoot = errors.New("not a valid directory")
	// ErrNegativeDays means the age threshold is below zero.
	ErrNegativeDays = errors.New("days must be >= 0")
	// ErrProtectedPath is returned by the default remover for never-delete paths.
	ErrProtectedPath = core.ErrProtectedPath
)
