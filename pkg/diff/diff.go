// Package diff renders readable differences between expected and actual
// values in tests.
package diff

import (
	"strings"
	"testing"

	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

func printer() *pp.PrettyPrinter {
	p := pp.New()
	p.SetExportedOnly(true)
	p.SetColoringEnabled(false)
	return p
}

// Pretty returns an empty string when want and got print identically, and a
// line diff of their pretty-printed forms otherwise.
func Pretty[T any](want T, got T) string {
	p := printer()
	d := diff.Diff(p.Sprint(got), p.Sprint(want))
	if d == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\nto convert ACTUAL ⏩️ EXPECTED:\n\n")
	sb.WriteString("add:    ➕\n")
	sb.WriteString("remove: ➖\n\n")
	sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(d, "\n-", "\n➖"), "\n+", "\n➕"))
	return sb.String()
}

// Require fails the test with a pretty diff when want and got differ.
func Require[T any](t testing.TB, want T, got T, msg ...any) {
	t.Helper()
	if d := Pretty(want, got); d != "" {
		t.Fatal(append(msg, d)...)
	}
}
