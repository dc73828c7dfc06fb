package generation

import (
	"context"

	"github.com/studyforge/studyforge/internal/domain"
)

type runtimeContextKey struct{}

// WithRuntime annotates the context with the runtime preference of the
// request being served. The runtime router reads it when choosing a
// backend.
func WithRuntime(ctx context.Context, runtime domain.RuntimePreference) context.Context {
	return context.WithValue(ctx, runtimeContextKey{}, runtime)
}

// RuntimeFrom returns the runtime preference carried by the context,
// defaulting to the remote backend.
func RuntimeFrom(ctx context.Context) domain.RuntimePreference {
	if runtime, ok := ctx.Value(runtimeContextKey{}).(domain.RuntimePreference); ok {
		return runtime
	}
	return domain.RuntimeRemote
}

// RuntimeRouter is a TextGenerator that delegates to the remote or local
// backend based on the request's runtime preference. A missing local
// backend falls back to remote, so local stays an optional deployment.
type RuntimeRouter struct {
	Remote TextGenerator
	Local  TextGenerator
}

// GenerateText implements TextGenerator.
func (r *RuntimeRouter) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if RuntimeFrom(ctx) == domain.RuntimeLocal && r.Local != nil {
		return r.Local.GenerateText(ctx, systemPrompt, userPrompt)
	}
	return r.Remote.GenerateText(ctx, systemPrompt, userPrompt)
}

// Compile-time check that RuntimeRouter satisfies TextGenerator.
var _ TextGenerator = (*RuntimeRouter)(nil)
