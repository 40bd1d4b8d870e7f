package engine

import (
	"errors"
	"fmt"
)

// CheckpointOp names the persistence step that failed.
type CheckpointOp string

const (
	OpSaveProfile CheckpointOp = "save_profile"
	OpRecordRun   CheckpointOp = "record_run"
)

// CheckpointError records a failed persistence write at a checkpoint.
//
// Checkpoint failures are never fatal: the engine logs them, keeps playing
// and exposes the most recent one through Engine.Err. The in-memory profile
// stays authoritative and the next checkpoint writes it again.
type CheckpointError struct {
	Op    CheckpointOp
	State State
	Level int
	Err   error
}

// Error implements the error interface.
func (e *CheckpointError) Error() string {
	return fmt.Sprintf("checkpoint %s at %s (level %d): %v", e.Op, e.State, e.Level, e.Err)
}

func (e *CheckpointError) Unwrap() error {
	return e.Err
}

// IsCheckpointError reports whether err is or wraps a CheckpointError.
func IsCheckpointError(err error) bool {
	var ce *CheckpointError
	return errors.As(err, &ce)
}
