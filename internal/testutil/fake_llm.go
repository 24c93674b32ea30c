package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/parley/internal/llm"
)

// FakeLLMClient returns a canned response or error and records every request.
type FakeLLMClient struct {
	Response string
	Err      error

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func (f *FakeLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	return &llm.GenerateResponse{Text: f.Response, Model: "fake"}, nil
}

func (f *FakeLLMClient) Available(context.Context) bool { return f.Err == nil }

// Requests returns a copy of the requests seen so far.
func (f *FakeLLMClient) Requests() []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.GenerateRequest(nil), f.requests...)
}
