package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrDeviceExists  = errors.New("device already exists")
	ErrAllocation    = errors.New("allocation failed")
	ErrInvalidWindow = errors.New("invalid window")
	ErrNotReady      = errors.New("device not ready")
)

// InfoLogLimit caps the diagnostic text fetched on compile and link failure.
const InfoLogLimit = 512

// ShaderError is a failed compile or link step.
type ShaderError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("linker error: %v", e.Log)
	}
	return fmt.Sprintf("%v shader error: %v", e.Stage, e.Log)
}

func truncateLog(s string) string {
	if len(s) > InfoLogLimit {
		return s[:InfoLogLimit]
	}
	return s
}
