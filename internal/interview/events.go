package interview

// Streaming operations yield a flat event sequence: zero or more chunk
// events (one execution event first for code runs), then exactly one
// complete event. Errors before the first chunk are returned from the
// operation itself so the transport can fail the request outright.
const (
	EventChunk     = "chunk"
	EventExecution = "execution"
	EventComplete  = "complete"
	EventError     = "error"
)

// StreamEvent is one server-sent event. Data must be JSON-marshalable.
type StreamEvent struct {
	Type string
	Data interface{}
}

// EmitFunc delivers one event to the consumer. Returning an error means
// the consumer is gone; the producer stops without writing session state.
type EmitFunc func(event StreamEvent) error

// ChunkData is the payload of a chunk event.
type ChunkData struct {
	Content string `json:"content"`
}
