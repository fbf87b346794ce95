package format

import (
	"encoding/json"
	"strings"
)

// Action names for the storefront client.
const (
	ActionRespond  = "respond"
	ActionNavigate = "navigate"
)

// Reply is the final classified output of the pipeline.
type Reply struct {
	Action string
	// Message is set for respond actions, Route for navigate actions.
	Message string
	Route   string
}

// allowedRoutes is the navigation allow-list. A navigate payload whose
// route is not listed here falls back to a plain respond.
var allowedRoutes = map[string]bool{
	"/menu":      true,
	"/art":       true,
	"/workshops": true,
	"/about":     true,
	"/contact":   true,
}

// navigatePayload is the strict schema for model-emitted navigation.
// DisallowUnknownFields makes extra keys invalidate the payload.
type navigatePayload struct {
	Action string `json:"action"`
	Route  string `json:"route"`
}

// Sanitize strips markdown the client does not render: bold markers are
// removed, single emphasis markers become a bullet glyph, and residual
// code fences are dropped. Sanitizing already-sanitized text is a no-op.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "```", "")
	s = replaceEmphasis(s)
	return s
}

// replaceEmphasis converts leading single-asterisk list markers into a
// bullet glyph. Only a "* " at the start of a line is list markup;
// asterisks elsewhere are left alone so the pass stays idempotent.
func replaceEmphasis(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "* ") {
			indent := line[:len(line)-len(trimmed)]
			lines[i] = indent + "• " + trimmed[2:]
		}
	}
	return strings.Join(lines, "\n")
}

// Classify sanitizes the raw reply and decides whether it is a
// navigation action or a conversational response. Model output is
// untrusted input: any parse or validation failure falls back to
// respond, never to an error.
func Classify(raw string) Reply {
	sanitized := strings.TrimSpace(Sanitize(raw))

	if route, ok := parseNavigation(sanitized); ok {
		return Reply{Action: ActionNavigate, Route: route}
	}

	return Reply{Action: ActionRespond, Message: sanitized}
}

func parseNavigation(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return "", false
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()

	var payload navigatePayload
	if err := dec.Decode(&payload); err != nil {
		return "", false
	}
	// Reject trailing content after the object; the payload must be the
	// whole reply, not embedded in prose.
	if dec.More() {
		return "", false
	}

	if payload.Action != ActionNavigate || !allowedRoutes[payload.Route] {
		return "", false
	}

	return payload.Route, true
}
