// Package audit records state-mutating task actions as structured log events.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Outcomes used by Record.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder writes one event per action.
type Recorder struct {
	logger zerolog.Logger
}

// NewRecorder creates a recorder that writes to logger.
func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger.With().Str("component", "audit").Logger()}
}

// Record writes an audit event for a state-mutating action.
func (r *Recorder) Record(action string, inputs interface{}, outcome string, err error) {
	ev := r.logger.Info()
	if err != nil {
		ev = r.logger.Warn().Err(err)
	}
	ev.Str("action", action).
		Str("inputs_hash", hashInputs(inputs)).
		Str("outcome", outcome).
		Msg("task action")
}

// hashInputs creates a SHA256 hash of the inputs for reproducibility.
func hashInputs(inputs interface{}) string {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "hash_error"
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
