package navigation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cardspace/internal/navigation/metrics"
	id "cardspace/pkg/domain"
	audit "cardspace/pkg/platform/audit"
	"cardspace/pkg/requestcontext"
)

//go:generate mockgen -source=controller.go -destination=mocks/mocks.go -package=mocks Signal,StatusChecker,Auditor

const (
	// identityWaitAttempts bounds the polls for a user ID after sign-in.
	// Each fresh invocation gets a fresh budget.
	identityWaitAttempts = 10

	identityWaitDelay = 500 * time.Millisecond
	// Android needs longer for the provider's session state to settle.
	identityWaitDelayAndroid = 800 * time.Millisecond
)

const identityWaitMessage = "could not retrieve your account details"

// Signal samples the identity provider's current session state. Each call is
// a fresh observation; the provider propagates identity asynchronously, so
// consecutive snapshots may differ.
type Signal interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// StatusChecker reports whether a user already completed onboarding.
type StatusChecker interface {
	HasCompleted(ctx context.Context, userID id.UserID) bool
}

// Auditor records navigation decisions.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// SleepFunc waits for d or until ctx is done, whichever comes first. Tests
// inject a zero-delay implementation.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Controller turns an authentication completion event into exactly one
// navigation decision. Failure policy is deliberately asymmetric with the
// onboarding store: the store's reads fail closed to "not completed", while
// unexpected errors here fail open to onboarding so the user is never stuck.
type Controller struct {
	onboarding StatusChecker
	logger     *slog.Logger
	metrics    *metrics.Metrics
	audit      Auditor
	sleep      SleepFunc
	tracer     trace.Tracer
}

// Option configures a Controller.
type Option func(*Controller)

// WithSleep replaces the delay between identity polls.
func WithSleep(sleep SleepFunc) Option {
	return func(c *Controller) { c.sleep = sleep }
}

func NewController(onboarding StatusChecker, logger *slog.Logger, m *metrics.Metrics, auditor Auditor, opts ...Option) *Controller {
	c := &Controller{
		onboarding: onboarding,
		logger:     logger,
		metrics:    m,
		audit:      auditor,
		sleep:      defaultSleep,
		tracer:     otel.Tracer("cardspace/navigation"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decide produces the navigation decision for one authentication event.
//
// Sequence: wait for the provider to load, wait (bounded) for the user ID to
// propagate, then decide. Not signed in routes to sign-in without consulting
// the store. An exhausted identity budget is a visible degraded path, not a
// silent fallback. Any panic or unexpected error resolves to onboarding.
func (c *Controller) Decide(ctx context.Context, flow FlowType, sig Signal) (decision Decision) {
	ctx, span := c.tracer.Start(ctx, "navigation.decide",
		trace.WithAttributes(attribute.String("flow_type", string(flow))))
	attempts := 0

	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorContext(ctx, "navigation decision panicked, failing open to onboarding",
				"panic", r,
				"flow_type", string(flow),
			)
			c.metrics.FailOpenDecisions.Inc()
			decision = goToOnboarding()
		}
		span.SetAttributes(
			attribute.Int("identity_wait_attempts", attempts),
			attribute.String("decision_kind", string(decision.Kind)),
		)
		span.End()
		c.metrics.Decisions.WithLabelValues(string(decision.Kind)).Inc()
		c.metrics.IdentityWaitAttempts.Observe(float64(attempts))
	}()

	snap, err := sig.Snapshot(ctx)
	if err != nil {
		return c.failOpen(ctx, flow, err)
	}

	// The provider is trusted to eventually load; only context cancellation
	// (client teardown, request timeout) breaks the wait.
	for !snap.Loaded {
		if err := c.sleep(ctx, c.pollDelay(ctx)); err != nil {
			return errorRedirect(identityWaitMessage)
		}
		if snap, err = sig.Snapshot(ctx); err != nil {
			return c.failOpen(ctx, flow, err)
		}
	}

	for snap.SignedIn && snap.UserID == "" && attempts < identityWaitAttempts {
		attempts++
		if err := c.sleep(ctx, c.pollDelay(ctx)); err != nil {
			return errorRedirect(identityWaitMessage)
		}
		if snap, err = sig.Snapshot(ctx); err != nil {
			return c.failOpen(ctx, flow, err)
		}
	}

	if !snap.SignedIn {
		return goToSignIn()
	}

	if snap.UserID == "" {
		c.metrics.IdentityWaitExhausted.Inc()
		c.logger.ErrorContext(ctx, "identity wait budget exhausted, redirecting to sign-in",
			"attempts", attempts,
			"flow_type", string(flow),
			"request_id", requestcontext.RequestID(ctx),
		)
		c.emit(ctx, "", audit.EventIdentityWaitLapse, flow, DecisionErrorRedirect)
		return errorRedirect(identityWaitMessage)
	}

	userID, err := id.ParseUserID(snap.UserID)
	if err != nil {
		return c.failOpen(ctx, flow, err)
	}

	// A brand-new account always onboards; the store is not consulted.
	if flow == FlowSignUp {
		c.emit(ctx, userID, audit.EventPostAuthDecision, flow, DecisionOnboarding)
		return goToOnboarding()
	}

	if c.onboarding.HasCompleted(ctx, userID) {
		c.emit(ctx, userID, audit.EventPostAuthDecision, flow, DecisionMain)
		return goToMain()
	}
	c.emit(ctx, userID, audit.EventPostAuthDecision, flow, DecisionOnboarding)
	return goToOnboarding()
}

func (c *Controller) failOpen(ctx context.Context, flow FlowType, err error) Decision {
	c.logger.ErrorContext(ctx, "navigation decision failed, failing open to onboarding",
		"error", err,
		"flow_type", string(flow),
		"request_id", requestcontext.RequestID(ctx),
	)
	c.metrics.FailOpenDecisions.Inc()
	return goToOnboarding()
}

func (c *Controller) pollDelay(ctx context.Context) time.Duration {
	if requestcontext.Platform(ctx) == requestcontext.PlatformAndroid {
		return identityWaitDelayAndroid
	}
	return identityWaitDelay
}

func (c *Controller) emit(ctx context.Context, userID id.UserID, action audit.AuditEvent, flow FlowType, kind DecisionKind) {
	err := c.audit.Emit(ctx, audit.Event{
		UserID:    userID,
		Action:    string(action),
		RequestID: requestcontext.RequestID(ctx),
		Metadata: map[string]string{
			"flow_type": string(flow),
			"decision":  string(kind),
		},
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to emit navigation audit event",
			"error", err,
			"action", string(action),
		)
	}
}
