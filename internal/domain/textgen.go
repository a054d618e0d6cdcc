package domain

import "context"

// TextGenerator is the generative text backend. Implementations return the
// raw response text, which may be prose, JSON, or JSON wrapped in markdown
// code fences; callers own the parsing. Rate-limit failures must surface an
// error whose message carries a quota indicator (see IsQuotaSignal).
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
