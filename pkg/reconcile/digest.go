package reconcile

import (
	"fmt"
	"strings"
)

// DigestLine formats one decision for the notification digest the chat
// collaborator delivers. Skip and silent updates produce no line.
func DigestLine(d Decision) string {
	switch d.Action {
	case Insert:
		return fmt.Sprintf("✅ <b>Nuevo:</b> %s", d.Event.Title)
	case UpdateNotify:
		return fmt.Sprintf("🔄 <b>Cambio:</b> %s", d.Event.Title)
	default:
		return ""
	}
}

// Digest assembles the full notification message for a cycle. Returns an
// empty string when nothing is notify-worthy, so the caller can skip
// delivery entirely.
func Digest(header string, decisions []Decision) string {
	var lines []string
	for _, d := range decisions {
		if line := DigestLine(d); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return fmt.Sprintf("<b>📅 %s</b>\n\n%s", header, strings.Join(lines, "\n"))
}
