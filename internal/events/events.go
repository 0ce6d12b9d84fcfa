package events

import (
	"encoding/json"
	"time"
)

// Event names the UI subscribes to.
const (
	TypeSearchStarted  = "search_started"
	TypeSearchDone     = "search_done"
	TypeSearchFailed   = "search_failed"
	TypeJobSaved       = "job_saved"
	TypeJobUnsaved     = "job_unsaved"
	TypeSessionCleared = "session_cleared"
	TypeDigestSent     = "digest_sent"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
