package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// WriteSummary prints a human-readable view of env to w.
// Colors follow color.NoColor, so callers disable them globally for non-terminals.
func WriteSummary(w io.Writer, env *Envelope) error {
	if env == nil || env.Data == nil {
		return errors.New("empty envelope")
	}
	d := env.Data
	p := d.Profile

	lines := []string{
		fmt.Sprintf("%s @%s (%s)", color.HiMagentaString("Telegram"), color.HiGreenString(env.Username), p.ProfileType),
		field("name", p.Name),
	}
	if p.Bio != nil {
		lines = append(lines, field("bio", *p.Bio))
	}
	if p.ProfilePhoto != nil {
		lines = append(lines, field("photo", *p.ProfilePhoto))
	}
	lines = append(lines,
		field("verified", yesNo(p.Verified)),
		field("premium", yesNo(p.Premium)),
		field("link", d.Contacts.TelegramLink),
		field("public", yesNo(d.Contacts.IsPublic)),
		"",
		color.HiMagentaString("Related handles:"),
	)
	for _, c := range d.ChannelsGroups {
		if c.Exists {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", color.HiGreenString("+"), color.HiWhiteString(c.Username), c.URL))
		} else {
			lines = append(lines, fmt.Sprintf("[%s] %s: %s", color.HiRedString("-"), c.Username, color.HiYellowString("Not found!")))
		}
	}
	lines = append(lines, "", fmt.Sprintf("%s %s", color.WhiteString("done in"), env.ProcessingTime))

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

func field(name, value string) string {
	return fmt.Sprintf("  %-9s %s", name+":", value)
}

func yesNo(b bool) string {
	if b {
		return color.HiGreenString("yes")
	}
	return "no"
}
