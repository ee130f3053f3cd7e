// Package profile defines the common types for Telegram profile lookups.
package profile

// Type classifies what a t.me username points at.
type Type string

// Profile type constants.
const (
	TypeChannel Type = "channel"
	TypeGroup   Type = "group"
	TypeUser    Type = "user"
	TypeUnknown Type = "unknown" // page could not be fetched
)

// Profile represents the facts scraped from a public t.me preview page.
// Only the first 2 MiB of the page are read, so markers past that point are not seen.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Profile struct {
	Username string  // Handle as queried (without @ prefix)
	Name     string  // Display name, "@username" when the page has no title
	Bio      *string // Page description, nil when absent
	Verified bool    // Verified badge marker present anywhere in the page
	Premium  bool    // "premium" present anywhere in the page (best-effort heuristic)
	HasPhoto bool    // Photo image element present
	PhotoURL *string // src of the photo image element, nil when absent
	Public   bool    // True whenever the page was fetched
}

// Degraded returns the profile reported when the page could not be fetched.
func Degraded(username string) *Profile {
	return &Profile{
		Username: username,
		Name:     "@" + username,
	}
}

// Candidate status labels.
const (
	StatusConfirmed = "confirmed"
	StatusPotential = "potential"
)

// Candidate is a handle derived from the queried username and the result of probing it.
type Candidate struct {
	Username string `json:"username"`
	URL      string `json:"url"`
	Status   string `json:"type"`
	Exists   bool   `json:"exists"`
}

// CandidateStatus maps a probe result to its label.
func CandidateStatus(exists bool) string {
	if exists {
		return StatusConfirmed
	}
	return StatusPotential
}
