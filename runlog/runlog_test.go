package runlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestStageIncludesStageField(t *testing.T) {
	l := New()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Stage("global_routing").Info("starting")

	out := buf.String()
	if !strings.Contains(out, "stage=global_routing") {
		t.Errorf("expected log line to contain stage field, got %q", out)
	}
	if !strings.Contains(out, "starting") {
		t.Errorf("expected log line to contain message, got %q", out)
	}
}

func TestNetGroupIncludesBothFields(t *testing.T) {
	l := New()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.NetGroup("local_routing", "TRUNK").Info("routed")

	out := buf.String()
	if !strings.Contains(out, "stage=local_routing") || !strings.Contains(out, "net_group=TRUNK") {
		t.Errorf("expected both stage and net_group fields, got %q", out)
	}
}

func TestCountsIncludesCountField(t *testing.T) {
	l := New()
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Counts("write_output", 7).Info("wrote allocations")

	out := buf.String()
	if !strings.Contains(out, "count=7") {
		t.Errorf("expected count field, got %q", out)
	}
}
