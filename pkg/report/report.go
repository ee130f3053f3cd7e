// Package report assembles the JSON envelope returned for a username lookup.
//
// The envelope mixes observed facts scraped from the preview page with synthetic filler
// (activity, subscribers, quality, age). Synthetic values are drawn fresh for every call,
// never derive from scraped data, and carry no meaning. Their paths are listed in the
// envelope's "synthetic" field so consumers can tell them apart.
package report

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/tglookup/pkg/profile"
	"github.com/codeGROOVE-dev/tglookup/pkg/telegram"
)

// Defaults for attribution and usage text.
const (
	DefaultDeveloper       = "@istgrehu"
	DefaultMadeBy          = "Rehu"
	DefaultPublicHost      = "your-domain"
	DirectMessageURI       = "tg://resolve?domain="
	MissingUsernameMessage = "Username parameter required"
	LastSeenLayout         = "2006-01-02 15:04:05.000000"
)

// SyntheticFields lists the dotted paths of every randomly generated value.
var SyntheticFields = []string{
	"data.activity.online_status",
	"data.activity.last_seen",
	"data.activity.subscribers",
	"data.activity.activity_score",
	"data.analysis.profile_quality",
	"data.analysis.account_age",
}

var (
	onlineStatuses = []string{"online", "offline", "recently"}
	qualities      = []string{"high", "medium", "low"}
)

// Rand is the randomness source for synthetic fields. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) } //nolint:gosec // filler values, not security sensitive

// Config configures an Assembler. Zero values take defaults.
type Config struct {
	Rand       Rand
	Now        func() time.Time
	BaseURL    string
	Developer  string
	MadeBy     string
	PublicHost string
}

// Assembler builds response envelopes.
type Assembler struct {
	rand       Rand
	now        func() time.Time
	baseURL    string
	developer  string
	madeBy     string
	publicHost string
}

// New creates an Assembler.
func New(cfg Config) *Assembler {
	a := &Assembler{
		rand:       cfg.Rand,
		now:        cfg.Now,
		baseURL:    cfg.BaseURL,
		developer:  cfg.Developer,
		madeBy:     cfg.MadeBy,
		publicHost: cfg.PublicHost,
	}
	if a.rand == nil {
		a.rand = globalRand{}
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.baseURL == "" {
		a.baseURL = telegram.BaseURL
	}
	if a.developer == "" {
		a.developer = DefaultDeveloper
	}
	if a.madeBy == "" {
		a.madeBy = DefaultMadeBy
	}
	if a.publicHost == "" {
		a.publicHost = DefaultPublicHost
	}
	return a
}

// ErrorEnvelope is returned when the request is unusable.
//
//nolint:govet // fieldalignment: field order is the JSON key order
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Usage     string `json:"usage"`
	Developer string `json:"developer"`
	MadeBy    string `json:"api_made_by"`
}

// Envelope is the successful lookup response.
//
//nolint:govet // fieldalignment: field order is the JSON key order
type Envelope struct {
	Success        bool     `json:"success"`
	Username       string   `json:"username"`
	Developer      string   `json:"developer"`
	MadeBy         string   `json:"api_made_by"`
	Timestamp      int64    `json:"timestamp"`
	Data           *Data    `json:"data"`
	ProcessingTime string   `json:"processing_time"`
	Synthetic      []string `json:"synthetic"`
}

// Data is the nested payload of an Envelope.
type Data struct {
	Profile        Profile             `json:"profile"`
	Contacts       Contacts            `json:"contacts"`
	Activity       Activity            `json:"activity"`
	ChannelsGroups []profile.Candidate `json:"channels_groups"`
	Analysis       Analysis            `json:"analysis"`
}

// Profile holds the observed page facts.
//
//nolint:govet // fieldalignment: field order is the JSON key order
type Profile struct {
	Name         string       `json:"name"`
	Bio          *string      `json:"bio"`
	Verified     bool         `json:"verified"`
	Premium      bool         `json:"premium"`
	HasPhoto     bool         `json:"has_photo"`
	ProfileType  profile.Type `json:"profile_type"`
	ProfilePhoto *string      `json:"profile_photo"`
}

// Contacts holds links derived from the username.
type Contacts struct {
	TelegramLink  string `json:"telegram_link"`
	DirectMessage string `json:"direct_message"`
	IsPublic      bool   `json:"is_public"`
}

// Activity is synthetic.
type Activity struct {
	OnlineStatus  string `json:"online_status"`
	LastSeen      string `json:"last_seen"`
	Subscribers   int    `json:"subscribers"`
	ActivityScore int    `json:"activity_score"`
}

// Analysis is synthetic.
type Analysis struct {
	ProfileQuality string `json:"profile_quality"`
	AccountAge     string `json:"account_age"`
}

// MissingUsername builds the envelope for a request without a username.
func (a *Assembler) MissingUsername() *ErrorEnvelope {
	return &ErrorEnvelope{
		Success:   false,
		Error:     MissingUsernameMessage,
		Usage:     a.publicHost + "/api?username=USERNAME",
		Developer: a.developer,
		MadeBy:    a.madeBy,
	}
}

// Build assembles the envelope for username from a lookup that began at start.
// A nil res is reported as a lookup where every fetch failed.
func (a *Assembler) Build(start time.Time, username string, res *telegram.Result) *Envelope {
	if res == nil {
		res = &telegram.Result{Type: profile.TypeUnknown}
	}
	p := res.Profile
	if p == nil {
		p = profile.Degraded(username)
	}
	candidates := res.Candidates
	if candidates == nil {
		candidates = a.unprobed(username)
	}

	now := a.now()
	data := &Data{
		Profile: Profile{
			Name:         p.Name,
			Bio:          p.Bio,
			Verified:     p.Verified,
			Premium:      p.Premium,
			HasPhoto:     p.HasPhoto,
			ProfileType:  res.Type,
			ProfilePhoto: p.PhotoURL,
		},
		Contacts: Contacts{
			TelegramLink:  a.baseURL + username,
			DirectMessage: DirectMessageURI + username,
			IsPublic:      p.Public,
		},
		Activity: Activity{
			OnlineStatus:  a.pick(onlineStatuses),
			LastSeen:      now.Add(-time.Duration(a.between(300, 86400)) * time.Second).Format(LastSeenLayout),
			Subscribers:   a.Subscribers(res.Type),
			ActivityScore: a.between(1, 100),
		},
		ChannelsGroups: candidates,
		Analysis: Analysis{
			ProfileQuality: a.pick(qualities),
			AccountAge:     strconv.Itoa(a.between(1, 60)) + " months",
		},
	}

	return &Envelope{
		Success:        true,
		Username:       username,
		Developer:      a.developer,
		MadeBy:         a.madeBy,
		Timestamp:      now.Unix(),
		Data:           data,
		ProcessingTime: fmt.Sprintf("%.2fs", a.now().Sub(start).Seconds()),
		Synthetic:      SyntheticFields,
	}
}

// unprobed lists every derived handle as not found.
func (a *Assembler) unprobed(username string) []profile.Candidate {
	handles := telegram.Candidates(username)
	out := make([]profile.Candidate, len(handles))
	for i, h := range handles {
		out[i] = profile.Candidate{Username: h, URL: a.baseURL + h, Status: profile.CandidateStatus(false)}
	}
	return out
}

// Subscribers draws a synthetic subscriber count; channels get a larger range.
func (a *Assembler) Subscribers(t profile.Type) int {
	if t == profile.TypeChannel {
		return a.between(1000, 1000000)
	}
	return a.between(100, 50000)
}

// between returns a uniform integer in [lo, hi].
func (a *Assembler) between(lo, hi int) int {
	return lo + a.rand.IntN(hi-lo+1)
}

func (a *Assembler) pick(options []string) string {
	return options[a.rand.IntN(len(options))]
}
