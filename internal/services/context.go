package services

import "context"

// runScope is the logging identity carried through a run: which video and
// which stage. Each With* call derives a new copy.
type runScope struct {
	source string
	stage  string
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) runScope {
	if ctx == nil {
		return runScope{}
	}
	scope, _ := ctx.Value(scopeKey{}).(runScope)
	return scope
}

func withScope(ctx context.Context, edit func(*runScope)) context.Context {
	scope := scopeFrom(ctx)
	edit(&scope)
	return context.WithValue(ctx, scopeKey{}, scope)
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return withScope(ctx, func(s *runScope) { s.stage = stage })
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	stage := scopeFrom(ctx).stage
	return stage, stage != ""
}

// WithSource annotates context with the input video being processed.
func WithSource(ctx context.Context, source string) context.Context {
	if source == "" {
		return ctx
	}
	return withScope(ctx, func(s *runScope) { s.source = source })
}

// SourceFromContext returns the input video if present.
func SourceFromContext(ctx context.Context) (string, bool) {
	source := scopeFrom(ctx).source
	return source, source != ""
}
