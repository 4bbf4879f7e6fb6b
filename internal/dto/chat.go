package dto

import "encoding/json"

// ChatRequest is the inbound chat endpoint body.
type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ChatResponse is the successful chat endpoint reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// FunctionCall is one structured call selected by the classifier. Args is
// kept raw; the dispatcher validates shape and types before constructing a
// typed intent.
type FunctionCall struct {
	Name string
	Args json.RawMessage
}

// ClassifierResult is the untrusted output of the intent classifier: free
// text, an ordered list of structured calls, or both.
type ClassifierResult struct {
	Text  string
	Calls []FunctionCall
}
