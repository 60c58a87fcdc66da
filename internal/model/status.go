package model

import (
	"fmt"
	"strings"
)

// Backend-reported job statuses. The backend additionally emits "error" on
// its failure branch; NormalizeStatus folds that into StatusFailed.
const (
	StatusQueued     = "queued"
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Client-side tracking phases for one submission.
const (
	PhaseIdle       = "idle"
	PhaseSubmitting = "submitting"
	PhasePolling    = "polling"
	PhaseCompleted  = "completed"
	PhaseFailed     = "failed"
)

var allowedPhaseTransitions = map[string]map[string]bool{
	PhaseIdle: {
		PhaseSubmitting: true,
		PhasePolling:    true, // attaching to an already-submitted job
	},
	PhaseSubmitting: {
		PhasePolling: true,
		PhaseFailed:  true,
	},
	PhasePolling: {
		PhasePolling:    true,
		PhaseCompleted:  true,
		PhaseFailed:     true,
		PhaseSubmitting: true, // superseded by a fresh submission
	},
	PhaseCompleted: {
		PhaseSubmitting: true,
	},
	PhaseFailed: {
		PhaseSubmitting: true,
	},
}

func IsKnownPhase(phase string) bool {
	_, ok := allowedPhaseTransitions[phase]
	return ok
}

func CanTransitionPhase(from, to string) bool {
	next, ok := allowedPhaseTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

func TransitionPhase(job *Job, toPhase string) error {
	from := job.Phase
	if !CanTransitionPhase(from, toPhase) {
		return fmt.Errorf("invalid phase transition: %q -> %q (video_id=%s)", from, toPhase, job.ID)
	}
	job.Phase = toPhase
	return nil
}

// NormalizeStatus maps raw backend status strings onto the canonical set.
// Unknown non-empty values are kept as-is and treated as in-progress.
func NormalizeStatus(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "":
		return StatusProcessing
	case "error":
		return StatusFailed
	default:
		return v
	}
}

func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}
