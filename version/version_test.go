package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersionPrefersLinkedValue(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "v1.2.3"
	if got := GetVersion(); got != "v1.2.3" {
		t.Errorf("GetVersion() = %q, want %q", got, "v1.2.3")
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		name     string
		linked   string
		embedded string
		want     string
	}{
		{"linked wins", "v2", "v1", "v2"},
		{"placeholder falls back to embedded", "dev", "v1", "v1"},
		{"empty falls back to embedded", "", "v1", "v1"},
		{"nothing known", "dev", "", "development"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pick(tt.linked, "dev", tt.embedded, "development"); got != tt.want {
				t.Errorf("pick() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"commit and date", Info{Version: "v1.0.0", Commit: "0123456789abcdef", Date: "2026-01-02"}, "v1.0.0 (0123456, built 2026-01-02)"},
		{"commit only", Info{Version: "v1.0.0", Commit: "0123456789abcdef", Date: unknown}, "v1.0.0 (0123456)"},
		{"dirty tree", Info{Version: "v1.0.0", Commit: "0123456789abcdef", Date: unknown, Modified: true}, "v1.0.0 (0123456+dirty)"},
		{"no commit", Info{Version: "development", Commit: unknown, Date: "2026-01-02"}, "development"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "huffarc")
	out := buf.String()
	for _, want := range []string{"huffarc version ", "Package: huffarc", "Commit: ", "Build Date: ", "Go: go"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintVersion() output missing %q:\n%s", want, out)
		}
	}
}
