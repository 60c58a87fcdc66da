package model

import "testing"

func TestCanTransitionPhase_AllowsExpectedPaths(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{PhaseIdle, PhaseSubmitting},
		{PhaseIdle, PhasePolling},
		{PhaseSubmitting, PhasePolling},
		{PhaseSubmitting, PhaseFailed},
		{PhasePolling, PhasePolling},
		{PhasePolling, PhaseCompleted},
		{PhasePolling, PhaseFailed},
		{PhasePolling, PhaseSubmitting},
		{PhaseCompleted, PhaseSubmitting},
		{PhaseFailed, PhaseSubmitting},
	}

	for _, tc := range cases {
		if !CanTransitionPhase(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransitionPhase_RejectsInvalidPaths(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{PhaseIdle, PhaseCompleted},
		{PhaseSubmitting, PhaseCompleted},
		{PhaseCompleted, PhasePolling},
		{PhaseFailed, PhaseCompleted},
		{"not_a_phase", PhaseSubmitting},
	}

	for _, tc := range cases {
		if CanTransitionPhase(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be rejected", tc.from, tc.to)
		}
	}
}

func TestTransitionPhase_BlocksIllegalTransition(t *testing.T) {
	job := Job{
		ID:    "vid-1",
		Phase: PhaseSubmitting,
	}

	if err := TransitionPhase(&job, PhaseCompleted); err == nil {
		t.Fatalf("expected illegal transition error")
	}
	if job.Phase != PhaseSubmitting {
		t.Fatalf("phase mutated on rejected transition: %q", job.Phase)
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"processing", StatusProcessing},
		{" Processing ", StatusProcessing},
		{"error", StatusFailed},
		{"failed", StatusFailed},
		{"", StatusProcessing},
		{"uploaded", StatusUploaded},
		{"queued", StatusQueued},
	}

	for _, tc := range cases {
		if got := NormalizeStatus(tc.raw); got != tc.want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	if !IsTerminalStatus(StatusCompleted) || !IsTerminalStatus(StatusFailed) {
		t.Fatalf("completed and failed must be terminal")
	}
	if IsTerminalStatus(StatusProcessing) || IsTerminalStatus(StatusQueued) || IsTerminalStatus(StatusUploaded) {
		t.Fatalf("in-progress statuses must not be terminal")
	}
}
