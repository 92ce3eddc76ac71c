package engine

import "errors"

var (
	// Graph construction:
	ErrSelfDependency  = errors.New("question cannot depend on itself")
	ErrCycleDetected   = errors.New("question dependencies contain a cycle")
	ErrUnknownQuestion = errors.New("dependency references an unknown question")

	// Responsibility resolution:
	ErrForbidden = errors.New("user has no grants on this assignment")

	// State machine:
	ErrAssignmentLocked  = errors.New("assignment does not accept response writes in its current status")
	ErrInvalidTransition = errors.New("invalid assignment status transition")
)
