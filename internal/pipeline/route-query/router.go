// Package routequery dispatches a classified query to its authoritative
// responder and applies the fallback policy when that responder fails.
package routequery

import (
	"context"
	"time"

	"cladari-assistant/internal/common/logger"
	"cladari-assistant/internal/common/observability"
	"cladari-assistant/internal/models"
	classifyintent "cladari-assistant/internal/pipeline/classify-intent"
	generatetext "cladari-assistant/internal/pipeline/generate-text"
	queryplantdb "cladari-assistant/internal/pipeline/query-plantdb"
)

// modelsUnavailableText is the best-effort reply when both the primary and
// its fallback responder fail. Every router path returns text.
const modelsUnavailableText = "I'm having trouble reaching my language models right now. Please try again in a moment."

// Responder is one answer source the router can dispatch to.
type Responder interface {
	Name() string
	Respond(ctx context.Context, msg, contextText string) (string, error)
}

// ContextResolver produces the context block accompanying a query.
type ContextResolver interface {
	Resolve(ctx context.Context, msg string, callerCtx *models.QueryContext) string
}

// route pairs an intent's authoritative responder with its single designated
// fallback. A nil fallback means the primary is terminal for that intent.
type route struct {
	primary  Responder
	fallback Responder
}

type Router struct {
	routes   map[classifyintent.Intent]route
	resolver ContextResolver
	obs      *observability.Observability
	logger   logger.Logger
}

// NewRouter wires the fixed routing table:
//   - database -> local data responder, unconditionally (no generative call)
//   - science  -> specialist model, falling back to the general model
//   - general  -> general model, falling back to the local help response
func NewRouter(
	local *queryplantdb.Handler,
	general *generatetext.Handler,
	specialist *generatetext.Handler,
	resolver ContextResolver,
	obs *observability.Observability,
	log logger.Logger,
) *Router {
	localData := &localResponder{handler: local}
	localHelp := &helpResponder{handler: local}
	generalGen := &generativeResponder{handler: general}
	specialistGen := &generativeResponder{handler: specialist}

	return &Router{
		routes: map[classifyintent.Intent]route{
			classifyintent.IntentDatabase: {primary: localData},
			classifyintent.IntentScience:  {primary: specialistGen, fallback: generalGen},
			classifyintent.IntentGeneral:  {primary: generalGen, fallback: localHelp},
		},
		resolver: resolver,
		obs:      obs,
		logger: log.With(map[string]interface{}{
			"component": "route-query",
		}),
	}
}

// Answer classifies the message, resolves its context and dispatches through
// the routing table. At most one fallback hop is taken; the result is always
// text, even with every remote collaborator unreachable.
func (rt *Router) Answer(ctx context.Context, msg string, callerCtx *models.QueryContext) string {
	intent := classifyintent.Classify(msg)
	contextText := rt.resolver.Resolve(ctx, msg, callerCtx)

	r := rt.routes[intent]

	text, err := rt.respond(ctx, r.primary, msg, contextText)
	if err == nil {
		rt.obs.RecordQuery(ctx, string(intent), "ok")
		return text
	}

	if r.fallback == nil {
		rt.logger.Error("responder failed with no fallback", map[string]interface{}{
			"intent":    string(intent),
			"responder": r.primary.Name(),
			"error":     err.Error(),
		})
		rt.obs.RecordQuery(ctx, string(intent), "failed")
		return modelsUnavailableText
	}

	rt.logger.Warn("primary responder failed, falling back", map[string]interface{}{
		"intent": string(intent),
		"from":   r.primary.Name(),
		"to":     r.fallback.Name(),
		"error":  err.Error(),
	})
	rt.obs.RecordFallback(ctx, r.primary.Name(), r.fallback.Name())

	text, err = rt.respond(ctx, r.fallback, msg, contextText)
	if err != nil {
		rt.logger.Error("fallback responder failed", map[string]interface{}{
			"intent":    string(intent),
			"responder": r.fallback.Name(),
			"error":     err.Error(),
		})
		rt.obs.RecordQuery(ctx, string(intent), "failed")
		return modelsUnavailableText
	}

	rt.obs.RecordQuery(ctx, string(intent), "fallback")
	return text
}

func (rt *Router) respond(ctx context.Context, r Responder, msg, contextText string) (string, error) {
	start := time.Now()
	text, err := r.Respond(ctx, msg, contextText)
	status := "ok"
	if err != nil {
		status = "error"
	}
	rt.obs.RecordResponderDuration(ctx, r.Name(), time.Since(start), status)
	return text, err
}
