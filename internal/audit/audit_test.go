package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestRecord(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(zerolog.New(&buf))

	r.Record("task.complete", map[string]int{"index": 2}, OutcomeSuccess, nil)

	var ev map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid event %q: %v", buf.String(), err)
	}
	if ev["action"] != "task.complete" || ev["outcome"] != OutcomeSuccess {
		t.Errorf("unexpected event %v", ev)
	}
	if ev["level"] != "info" || ev["component"] != "audit" {
		t.Errorf("unexpected level/component %v", ev)
	}
	if ev["inputs_hash"] != hashInputs(map[string]int{"index": 2}) {
		t.Errorf("unexpected hash %v", ev["inputs_hash"])
	}
}

func TestRecordFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(zerolog.New(&buf))

	r.Record("task.remove", map[string]int{"index": 9}, OutcomeFailure, errors.New("index out of range"))

	var ev map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid event %q: %v", buf.String(), err)
	}
	if ev["level"] != "warn" || ev["error"] != "index out of range" {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestHashInputs(t *testing.T) {
	a := hashInputs(map[string]string{"item": "Tires"})
	b := hashInputs(map[string]string{"item": "Tires"})
	c := hashInputs(map[string]string{"item": "Oil"})
	if a != b {
		t.Error("hash should be deterministic")
	}
	if a == c {
		t.Error("different inputs should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256, got %q", a)
	}
	if hashInputs(make(chan int)) != "hash_error" {
		t.Error("unmarshalable input should yield hash_error")
	}
}
