package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDegraded(t *testing.T) {
	got := Degraded("durov")
	want := &Profile{Username: "durov", Name: "@durov"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Degraded() mismatch (-want +got):\n%s", diff)
	}
}

func TestCandidateStatus(t *testing.T) {
	if got := CandidateStatus(true); got != StatusConfirmed {
		t.Errorf("CandidateStatus(true) = %q, want %q", got, StatusConfirmed)
	}
	if got := CandidateStatus(false); got != StatusPotential {
		t.Errorf("CandidateStatus(false) = %q, want %q", got, StatusPotential)
	}
}
