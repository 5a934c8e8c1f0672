package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"careerprep/interview/internal/interview"
)

// SSEWriter emits server-sent events. Construction writes the stream
// headers, so callers must finish all request validation first.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Send writes one event and flushes it to the client.
func (s *SSEWriter) Send(event interview.StreamEvent) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SendError emits a terminal error event; consumers stop reading after it.
func (s *SSEWriter) SendError(message string) {
	_ = s.Send(interview.StreamEvent{
		Type: interview.EventError,
		Data: map[string]string{"message": message},
	})
}
