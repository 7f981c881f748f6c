package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapterWithLogger(zerolog.New(&buf))

	l.Info("loaded",
		String("stage", "Copying"),
		Int("bytes", 4),
		Uint64("len", 28),
		Addr("base", 0x400000),
		Bool("ok", true),
		Duration("took", time.Second),
		Err(errors.New("boom")),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if got["message"] != "loaded" || got["level"] != "info" {
		t.Errorf("message/level = %v/%v", got["message"], got["level"])
	}
	if got["base"] != "0x400000" {
		t.Errorf("base = %v, want 0x400000", got["base"])
	}
	if got["stage"] != "Copying" || got["bytes"] != float64(4) || got["ok"] != true {
		t.Errorf("fields = %v", got)
	}
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("x")
	l.Info("x", String("k", "v"))
	l.Warn("x")
	l.Error("x", Err(errors.New("e")))
}
