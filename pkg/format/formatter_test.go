package format

import (
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips bold markers",
			in:   "Try the **Cranberry Tonic** today",
			want: "Try the Cranberry Tonic today",
		},
		{
			name: "list marker becomes bullet",
			in:   "* Espresso\n* Latte",
			want: "• Espresso\n• Latte",
		},
		{
			name: "indented list marker",
			in:   "  * Espresso",
			want: "  • Espresso",
		},
		{
			name: "strips code fences",
			in:   "```\nhello\n```",
			want: "\nhello\n",
		},
		{
			name: "inline asterisk untouched",
			in:   "2 * 3 = 6",
			want: "2 * 3 = 6",
		},
		{
			name: "plain text unchanged",
			in:   "Just a plain reply.",
			want: "Just a plain reply.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"**bold** and * a list\n* two",
		"```code```",
		"plain",
		"* bullet with **bold** inside",
		"",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestClassifyNavigate(t *testing.T) {
	reply := Classify(`{"action":"navigate","route":"/menu"}`)
	if reply.Action != ActionNavigate {
		t.Fatalf("Action = %q, want navigate", reply.Action)
	}
	if reply.Route != "/menu" {
		t.Errorf("Route = %q, want /menu", reply.Route)
	}
}

func TestClassifyFallsBackToRespond(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"route not allow-listed", `{"action":"navigate","route":"/admin"}`},
		{"extra fields", `{"action":"navigate","route":"/menu","x":1}`},
		{"wrong action", `{"action":"order","route":"/menu"}`},
		{"malformed json", `{"action":"navigate",`},
		{"payload embedded in prose", `Sure! {"action":"navigate","route":"/menu"}`},
		{"plain text", "The menu is on the counter."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Classify(tt.in)
			if reply.Action != ActionRespond {
				t.Errorf("Classify(%q).Action = %q, want respond", tt.in, reply.Action)
			}
			if reply.Route != "" {
				t.Errorf("respond reply must not carry a route, got %q", reply.Route)
			}
		})
	}
}

func TestClassifySanitizesMessage(t *testing.T) {
	reply := Classify("**Hello** there")
	if reply.Message != "Hello there" {
		t.Errorf("Message = %q, want sanitized text", reply.Message)
	}
}
