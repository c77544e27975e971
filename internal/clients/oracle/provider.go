package oracle

import "context"

// Provider is a chat-completion backend
type Provider interface {
	// Name identifies the backend in logs and spans
	Name() string

	// Complete returns the raw assistant reply for a request
	Complete(ctx context.Context, req *Request) (string, error)
}

// Request is one chat completion
type Request struct {
	System      string
	Messages    []Message
	JSON        bool
	Temperature float32
}

// Message is one turn of a chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
