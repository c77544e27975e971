package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/notify"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")) // pink

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// renderEnvelope formats one game event for the terminal
func renderEnvelope(env *notify.Envelope, width int) string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s", env.Type, env.GameID)
	if env.PlayerID != "" {
		header += "  " + env.PlayerID
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString(" ")
	b.WriteString(metaStyle.Render(env.Timestamp.Format("15:04:05")))
	b.WriteString("\n")

	switch env.Type {
	case notify.EventTurnResolved:
		if summary, ok := env.Data["summary"].(string); ok {
			b.WriteString(narratorStyle.Render(wordwrap.String(summary, width)))
			b.WriteString("\n")
		}
		if lines, ok := env.Data["lines"].([]any); ok {
			for _, line := range lines {
				b.WriteString(wordwrap.String(fmt.Sprintf("- %v", line), width))
				b.WriteString("\n")
			}
		}
	case notify.EventActionResolved:
		if desc, ok := env.Data["description"].(string); ok {
			b.WriteString(narratorStyle.Render(wordwrap.String(desc, width)))
			b.WriteString("\n")
		}
		if notice, ok := env.Data["violation_notice"].(string); ok && notice != "" {
			b.WriteString(errorStyle.Render(wordwrap.String(notice, width)))
			b.WriteString("\n")
		}
		if text, ok := env.Data["encounter"].(string); ok && text != "" {
			b.WriteString(wordwrap.String(text, width))
			b.WriteString("\n")
		}
	case notify.EventCommandFailed:
		b.WriteString(errorStyle.Render(fmt.Sprintf("%v", env.Data["error"])))
		b.WriteString("\n")
	default:
		b.WriteString(renderFields(env.Data, width))
	}

	return b.String()
}

// renderFields prints a map as sorted key: value lines
func renderFields(data map[string]any, width int) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if nested, ok := data[k].(map[string]any); ok {
			b.WriteString(metaStyle.Render(k + ":"))
			b.WriteString("\n")
			b.WriteString(indent(renderFields(nested, width-2), "  "))
			continue
		}
		b.WriteString(wordwrap.String(fmt.Sprintf("%s: %v", metaStyle.Render(k), data[k]), width))
		b.WriteString("\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderScenario formats one catalog entry as a bordered panel
func renderScenario(s *catalog.Scenario, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", s.Name(), s.ID)))
	b.WriteString("\n")
	b.WriteString(narratorStyle.Render(wordwrap.String(s.Greeting, width-4)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Floors: %d-%d\n", s.MinFloors, s.MaxFloors))
	if len(s.Objectives) > 0 {
		b.WriteString("Objectives:\n")
		for _, o := range s.Objectives {
			b.WriteString(wordwrap.String("  - "+o, width-4))
			b.WriteString("\n")
		}
	}
	if len(s.Rules) > 0 {
		b.WriteString("Rules:\n")
		for _, r := range s.Rules {
			b.WriteString(wordwrap.String("  - "+r, width-4))
			b.WriteString("\n")
		}
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
