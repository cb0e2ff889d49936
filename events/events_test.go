package events

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNopSinkDiscards(t *testing.T) {
	var s Sink = NopSink{}
	s.Emit(Event{Kind: FitStarted})
}

func TestZerologSinkEmitsOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	s := NewZerologSink(&buf)

	s.Emit(Event{Kind: FitStarted, Fields: map[string]any{"epochs": 10}})
	s.Emit(Event{Kind: FitCompleted, Fields: map[string]any{"epochs": 10, "clauses": 24}})

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("line 0 not valid JSON: %v", err)
	}
	if first["kind"] != string(FitStarted) {
		t.Fatalf("kind = %v, want %v", first["kind"], FitStarted)
	}
	if first["epochs"] != float64(10) {
		t.Fatalf("epochs = %v, want 10", first["epochs"])
	}
}
