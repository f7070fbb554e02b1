package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/fluxmart/catalog"
)

func TestFieldsPassThrough(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, nil))}

	l.Error("request failed", catalog.Fields{"path": "/products/x"})

	out := buf.String()
	if !strings.Contains(out, "request failed") || !strings.Contains(out, "path=/products/x") {
		t.Fatalf("unexpected output: %s", out)
	}
}
