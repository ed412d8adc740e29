package logx

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

func TestEmit_RespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetMinLevel(LevelWarn)
	defer func() {
		SetOutput(io.Discard)
		SetMinLevel(LevelInfo)
	}()

	Debugf("dropped %d", 1)
	Infof("dropped %d", 2)
	Warnf("kept %d", 3)
	Errorf("kept %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("line count: got %d, want 2 (%q)", len(lines), buf.String())
	}

	var e entry
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Level != "warn" || e.Msg != "kept 3" {
		t.Fatalf("entry: got %+v", e)
	}
	if e.TS == "" {
		t.Fatalf("entry has no timestamp")
	}
}
