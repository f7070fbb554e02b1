package sloghook

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestFetchErrorSampling(t *testing.T) {
	var buf bytes.Buffer
	h := New(newBufLogger(&buf), Options{FetchErrorEvery: 5})

	err := errors.New("down")
	for i := 0; i < 10; i++ {
		h.FetchError("product:1", err)
	}
	if got := strings.Count(buf.String(), "cache_fetch_error"); got != 2 {
		t.Fatalf("expected 2 sampled logs out of 10, got %d", got)
	}
}

func TestUnsampledEventsAlwaysLog(t *testing.T) {
	var buf bytes.Buffer
	h := New(newBufLogger(&buf), Options{})

	h.SelfHeal("product:1", "decode")
	h.InvalidateError("product:1", errors.New("del failed"))
	h.PopulateRejected("product:1", nil)

	out := buf.String()
	for _, want := range []string{"cache_self_heal", "cache_invalidate_error", "cache_populate_rejected"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.FetchError("k", nil)
	h.SelfHeal("k", "decode")
	h.PopulateRejected("k", nil)
	h.InvalidateError("k", nil)
}
