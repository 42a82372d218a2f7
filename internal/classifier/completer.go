package classifier

import (
	"context"
)

// Prompt is the single request sent to a completion provider.
type Prompt struct {
	System string
	User   string
}

// CompletionResult is the outcome of one completion call: either the raw text
// returned by the provider or the reason the call failed.
type CompletionResult struct {
	Text string
	Err  error
}

// Failed reports whether the call did not produce a response.
func (r CompletionResult) Failed() bool {
	return r.Err != nil
}

// Completer abstracts a text completion provider so the classification logic
// can be tested without network access and providers can be swapped.
type Completer interface {
	// Name identifies the provider in logs and warnings.
	Name() string
	// Complete performs exactly one outbound call and never retries.
	Complete(ctx context.Context, prompt Prompt) CompletionResult
}

// Failure builds a failed CompletionResult.
func Failure(err error) CompletionResult {
	return CompletionResult{Err: err}
}

// Success builds a successful CompletionResult.
func Success(text string) CompletionResult {
	return CompletionResult{Text: text}
}
