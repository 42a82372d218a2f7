package classifier

import "context"

// StaticCompleter answers every prompt with a fixed response. It is used when
// AI classification is disabled so every expense lands in the overflow label.
type StaticCompleter struct {
	response string
}

// NewStaticCompleter creates a completer that always returns response.
func NewStaticCompleter(response string) *StaticCompleter {
	return &StaticCompleter{response: response}
}

func (s *StaticCompleter) Name() string {
	return ProviderStatic
}

func (s *StaticCompleter) Complete(ctx context.Context, _ Prompt) CompletionResult {
	if err := ctx.Err(); err != nil {
		return Failure(err)
	}
	return Success(s.response)
}
