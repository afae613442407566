package routequery

import (
	"context"

	generatetext "cladari-assistant/internal/pipeline/generate-text"
	queryplantdb "cladari-assistant/internal/pipeline/query-plantdb"
)

// localResponder answers from inventory data. It never errors: unreachable
// inventory comes back as its own "not accessible" text.
type localResponder struct {
	handler *queryplantdb.Handler
}

func (r *localResponder) Name() string { return "local-data" }

func (r *localResponder) Respond(ctx context.Context, msg, _ string) (string, error) {
	return r.handler.Answer(ctx, msg), nil
}

// helpResponder serves the local help text as the general-intent fallback.
type helpResponder struct {
	handler *queryplantdb.Handler
}

func (r *helpResponder) Name() string { return "local-help" }

func (r *helpResponder) Respond(ctx context.Context, _, _ string) (string, error) {
	return r.handler.Help(ctx), nil
}

type generativeResponder struct {
	handler *generatetext.Handler
}

func (r *generativeResponder) Name() string { return "generative-" + r.handler.Role() }

func (r *generativeResponder) Respond(ctx context.Context, msg, contextText string) (string, error) {
	return r.handler.Generate(ctx, msg, contextText)
}
