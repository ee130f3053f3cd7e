package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/tglookup/pkg/profile"
)

func TestWriteSummary(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	res := sampleResult(profile.TypeChannel)
	res.Candidates = append(res.Candidates, profile.Candidate{
		Username: "durov_official", URL: "https://t.me/durov_official", Status: profile.StatusConfirmed, Exists: true,
	})
	a := New(Config{Rand: fixedRand{}})
	env := a.Build(time.Now(), "durov", res)

	var buf bytes.Buffer
	if err := WriteSummary(&buf, env); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Telegram @durov (channel)",
		"  name:     Durov's Channel",
		"  bio:      Thoughts",
		"  photo:    https://cdn.example/d.jpg",
		"  verified: yes",
		"  premium:  no",
		"  link:     https://t.me/durov",
		"[-] durov_channel: Not found!",
		"[+] durov_official: https://t.me/durov_official",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("summary contains color escapes with NoColor set:\n%s", out)
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	if err := WriteSummary(&bytes.Buffer{}, nil); err == nil {
		t.Error("WriteSummary(nil) error = nil, want error")
	}
	if err := WriteSummary(&bytes.Buffer{}, &Envelope{}); err == nil {
		t.Error("WriteSummary(no data) error = nil, want error")
	}
}
