// Package gate implements the authorization state machine wrapping every
// protected page of the admin app.
//
// Every run walks Init -> AdapterLoading -> AdapterReady -> CheckingAccess and
// terminates in Authorized or Unauthorized. Protected content is never served
// before Authorized, and every failure on the way folds into Unauthorized; no
// authorization-path error escapes to the caller.
package gate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vitrina/internal/gate/bridge"
	"vitrina/internal/gate/sessioncache"
	"vitrina/internal/initdata"
	"vitrina/internal/platform/metrics"
	"vitrina/internal/sentinel"
)

// State is one step of the gate state machine.
type State int

const (
	StateInit State = iota
	StateAdapterLoading
	StateAdapterReady
	StateCheckingAccess
	StateAuthorized
	StateUnauthorized
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAdapterLoading:
		return "adapter_loading"
	case StateAdapterReady:
		return "adapter_ready"
	case StateCheckingAccess:
		return "checking_access"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// UnauthorizedPath is the denial view the gate redirects to.
const UnauthorizedPath = "/unauthorized"

// PolicyChecker is the read-only access policy dependency.
type PolicyChecker interface {
	IsAuthorized(ctx context.Context, telegramID int64) (bool, error)
}

// Request carries the client-supplied material for one gate run.
type Request struct {
	// InitDataRaw is the untrusted launch payload, empty when absent.
	InitDataRaw string
	// SessionToken is the signed session cookie value, empty when absent.
	SessionToken string
}

// Decision is the terminal outcome of a gate run.
type Decision struct {
	State    State
	Identity *initdata.Identity
	Bridge   bridge.Bridge

	// SessionToken is set when the gate minted a fresh session cookie.
	SessionToken string
	// RedirectTo is set on Unauthorized.
	RedirectTo string
}

// Authorized reports whether protected content may render.
func (d *Decision) Authorized() bool {
	return d.State == StateAuthorized
}

// Gate orchestrates payload verification, identity extraction, the session
// cache, and the access policy check.
type Gate struct {
	verifier    *initdata.Verifier
	policy      PolicyChecker
	cache       sessioncache.Store
	tokens      *SessionTokens
	development bool

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures the Gate.
type Option func(*Gate)

// WithLogger sets the gate logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithMetrics enables gate decision counters and latency histograms.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// WithDevelopmentBridge enables the null bridge fallback. This must only be
// set for development runtimes; production absence of a bridge denies access.
func WithDevelopmentBridge() Option {
	return func(g *Gate) {
		g.development = true
	}
}

// New creates a Gate.
func New(verifier *initdata.Verifier, policy PolicyChecker, cache sessioncache.Store, tokens *SessionTokens, opts ...Option) *Gate {
	g := &Gate{
		verifier: verifier,
		policy:   policy,
		cache:    cache,
		tokens:   tokens,
		tracer:   otel.Tracer("vitrina/gate"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Run executes the state machine for one request and returns the terminal
// decision. It never returns an error: every failure is a denial.
func (g *Gate) Run(ctx context.Context, req *Request) *Decision {
	ctx, span := g.tracer.Start(ctx, "gate.Run")
	defer span.End()

	start := time.Now()
	defer func() {
		if g.metrics != nil {
			g.metrics.GateDecisionLatency.Observe(time.Since(start).Seconds())
		}
	}()

	state := StateInit
	state = g.transition(ctx, state, StateAdapterLoading)

	platformBridge := g.resolveBridge(ctx, req)
	state = g.transition(ctx, state, StateAdapterReady)
	state = g.transition(ctx, state, StateCheckingAccess)

	decision := g.checkAccess(ctx, state, req, platformBridge)
	span.SetAttributes(attribute.String("gate.outcome", decision.State.String()))
	if g.metrics != nil {
		g.metrics.GateDecisions.WithLabelValues(decision.State.String()).Inc()
	}
	return decision
}

// resolveBridge selects the platform bridge for this run. A verified payload
// yields the live bridge; anything else yields the null bridge in development
// or no bridge at all in production.
func (g *Gate) resolveBridge(ctx context.Context, req *Request) bridge.Bridge {
	if req.InitDataRaw != "" && g.verifier.Verify(req.InitDataRaw) {
		data, err := initdata.Parse(req.InitDataRaw)
		if err == nil {
			return bridge.NewLive(data)
		}
		g.logger.WarnContext(ctx, "verified payload failed to parse", "error", err)
	}

	if g.development {
		g.logger.DebugContext(ctx, "no platform bridge, substituting development identity")
		return bridge.NewNull()
	}
	return nil
}

// checkAccess runs the CheckingAccess step and produces the terminal decision.
func (g *Gate) checkAccess(ctx context.Context, state State, req *Request, platformBridge bridge.Bridge) *Decision {
	if platformBridge == nil {
		return g.deny(ctx, state, req, "no platform bridge")
	}

	identity, ok := platformBridge.User()
	if !ok {
		// No identity: deny without consulting the policy store.
		return g.deny(ctx, state, req, "payload carries no identity")
	}

	sessionID, _ := g.tokens.SessionID(req.SessionToken) //nolint:errcheck // invalid token == cache miss

	if sessionID != "" {
		entry, err := g.cache.Get(ctx, sessionID)
		if err == nil && entry.Authorized && entry.TelegramID == identity.Key() {
			if g.metrics != nil {
				g.metrics.GateCacheHits.Inc()
			}
			g.logger.DebugContext(ctx, "session cache hit", "telegram_id", identity.Key())
			return g.allow(ctx, state, identity, platformBridge, "")
		}
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			g.logger.WarnContext(ctx, "session cache read failed", "error", err)
		}
		// A cached verdict for a different identity is never honored; fall
		// through to a fresh policy check.
	}
	if g.metrics != nil {
		g.metrics.GateCacheMisses.Inc()
	}

	authorized, err := g.policy.IsAuthorized(ctx, identity.ID)
	if err != nil || !authorized {
		if err != nil {
			g.logger.ErrorContext(ctx, "access check errored, failing closed", "error", err)
		}
		return g.deny(ctx, state, req, "access denied by policy")
	}

	newToken := ""
	if sessionID == "" {
		var token string
		var mintErr error
		sessionID, token, mintErr = g.tokens.Mint()
		if mintErr != nil {
			// Without a session the verdict cannot be cached; the check
			// succeeded, so authorize this request anyway.
			g.logger.ErrorContext(ctx, "session token mint failed", "error", mintErr)
			return g.allow(ctx, state, identity, platformBridge, "")
		}
		newToken = token
	}

	if err := g.cache.Set(ctx, sessionID, sessioncache.Entry{
		TelegramID: identity.Key(),
		Authorized: true,
	}); err != nil {
		g.logger.WarnContext(ctx, "session cache write failed", "error", err)
	}

	return g.allow(ctx, state, identity, platformBridge, newToken)
}

func (g *Gate) allow(ctx context.Context, state State, identity *initdata.Identity, b bridge.Bridge, newToken string) *Decision {
	g.transition(ctx, state, StateAuthorized)
	return &Decision{
		State:        StateAuthorized,
		Identity:     identity,
		Bridge:       b,
		SessionToken: newToken,
	}
}

// deny clears any stale cache entry and produces the redirect decision.
func (g *Gate) deny(ctx context.Context, state State, req *Request, reason string) *Decision {
	if sessionID, err := g.tokens.SessionID(req.SessionToken); err == nil {
		if err := g.cache.Clear(ctx, sessionID); err != nil {
			g.logger.WarnContext(ctx, "session cache clear failed", "error", err)
		}
	}

	g.logger.InfoContext(ctx, "gate denied access", "reason", reason)
	g.transition(ctx, state, StateUnauthorized)
	return &Decision{
		State:      StateUnauthorized,
		RedirectTo: UnauthorizedPath,
	}
}

func (g *Gate) transition(ctx context.Context, from, to State) State {
	g.logger.DebugContext(ctx, "gate transition", "from", from.String(), "to", to.String())
	return to
}
