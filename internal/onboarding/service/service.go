// Package service implements onboarding-status persistence on top of the KV
// primitive.
//
// Two deliberate, asymmetric failure policies live here and must not be
// unified:
//   - reads fail CLOSED: unreadable state is treated as "not completed", so a
//     user is re-onboarded rather than skipped past onboarding;
//   - MarkComplete reports success if either targeted key is confirmed, since
//     a confirmed global flag alone still routes the user correctly.
package service

import (
	"context"
	"errors"
	"log/slog"

	"cardspace/internal/onboarding"
	"cardspace/internal/onboarding/metrics"
	"cardspace/internal/onboarding/store"
	id "cardspace/pkg/domain"
	audit "cardspace/pkg/platform/audit"
	"cardspace/pkg/platform/sentinel"
	"cardspace/pkg/requestcontext"
)

const (
	// readRetries is the number of extra read attempts after a failure.
	// Retries are immediate; the KV backends fail fast.
	readRetries = 2
)

// Auditor records onboarding lifecycle events.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service reads and writes the onboarding flags. All public methods return
// plain booleans; store failures are logged and absorbed, never propagated.
type Service struct {
	kv      store.KV
	keys    onboarding.Keys
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   Auditor
}

func New(kv store.KV, keys onboarding.Keys, logger *slog.Logger, m *metrics.Metrics, auditor Auditor) *Service {
	return &Service{
		kv:      kv,
		keys:    keys,
		logger:  logger,
		metrics: m,
		audit:   auditor,
	}
}

// MarkComplete records that the user finished (or explicitly skipped)
// onboarding. The per-user key and the legacy global key are written as two
// independent operations, then read back to verify the value landed; if any
// targeted key fails verification the whole pair is rewritten exactly once.
// Returns true when at least one targeted key is confirmed.
//
// A missing user ID degrades to a global-only write: routing still works on
// this device, but the completion won't follow the account to a new device.
func (s *Service) MarkComplete(ctx context.Context, userID id.UserID) bool {
	targets := []string{s.keys.Global}
	if userID.IsNil() {
		s.logger.WarnContext(ctx, "marking onboarding complete without a user ID, writing global flag only",
			"request_id", requestcontext.RequestID(ctx),
		)
	} else {
		targets = []string{s.keys.ForUser(userID), s.keys.Global}
	}

	s.writePair(ctx, targets)
	confirmed := s.verify(ctx, targets)

	if confirmed < len(targets) {
		s.metrics.WriteRetries.Inc()
		s.writePair(ctx, targets)
		confirmed = s.verify(ctx, targets)
	}

	if confirmed == 0 {
		s.metrics.CompletionFails.Inc()
		s.logger.ErrorContext(ctx, "onboarding completion could not be persisted",
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return false
	}

	s.metrics.Completions.Inc()
	if !userID.IsNil() {
		s.emit(ctx, userID, audit.EventOnboardingCompleted)
	}
	return true
}

// HasCompleted reports whether the user has completed onboarding. The
// per-user flag wins when set; the global flag is only consulted when no
// per-user flag exists (or no user ID is available). Unreadable state counts
// as "not completed".
func (s *Service) HasCompleted(ctx context.Context, userID id.UserID) bool {
	if !userID.IsNil() {
		value, found, ok := s.readFlag(ctx, s.keys.ForUser(userID))
		if ok && found && value == onboarding.FlagValue {
			return true
		}
	}

	value, found, ok := s.readFlag(ctx, s.keys.Global)
	if !ok {
		s.metrics.FailClosedReads.Inc()
		s.logger.ErrorContext(ctx, "onboarding status unreadable, failing closed",
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return false
	}
	return found && value == onboarding.FlagValue
}

// Clear removes the user's flag and the global flag, each best-effort.
// Returns true when at least one removal succeeded. Debug/reset only; the
// normal user flow never clears flags.
func (s *Service) Clear(ctx context.Context, userID id.UserID) bool {
	cleared := 0

	if !userID.IsNil() {
		if err := s.kv.Delete(ctx, s.keys.ForUser(userID)); err != nil {
			s.logger.ErrorContext(ctx, "failed to clear per-user onboarding flag",
				"error", err,
				"user_id", userID.String(),
			)
		} else {
			cleared++
		}
	}

	if err := s.kv.Delete(ctx, s.keys.Global); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear global onboarding flag", "error", err)
	} else {
		cleared++
	}

	if cleared == 0 {
		return false
	}

	s.metrics.Resets.Inc()
	if !userID.IsNil() {
		s.emit(ctx, userID, audit.EventOnboardingReset)
	}
	return true
}

// writePair attempts every targeted key independently; a failure on one key
// must not prevent attempting the other.
func (s *Service) writePair(ctx context.Context, targets []string) {
	for _, key := range targets {
		if err := s.kv.Set(ctx, key, onboarding.FlagValue); err != nil {
			s.logger.ErrorContext(ctx, "onboarding flag write failed",
				"error", err,
				"key", key,
			)
		}
	}
}

// verify reads back each targeted key and counts those holding the flag
// value. Write acknowledgement alone is not trusted: some backends ack before
// the value is visible to a subsequent read.
func (s *Service) verify(ctx context.Context, targets []string) int {
	confirmed := 0
	for _, key := range targets {
		value, err := s.kv.Get(ctx, key)
		if err == nil && value == onboarding.FlagValue {
			confirmed++
		}
	}
	return confirmed
}

// readFlag reads one key with bounded immediate retries.
// found=false with ok=true means the key is definitively absent;
// ok=false means every attempt failed and the caller must fail closed.
func (s *Service) readFlag(ctx context.Context, key string) (value string, found bool, ok bool) {
	var lastErr error
	for attempt := 0; attempt <= readRetries; attempt++ {
		v, err := s.kv.Get(ctx, key)
		if err == nil {
			return v, true, true
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", false, true
		}
		lastErr = err
	}
	s.logger.ErrorContext(ctx, "onboarding flag read failed after retries",
		"error", lastErr,
		"key", key,
	)
	return "", false, false
}

func (s *Service) emit(ctx context.Context, userID id.UserID, action audit.AuditEvent) {
	err := s.audit.Emit(ctx, audit.Event{
		UserID:    userID,
		Action:    string(action),
		RequestID: requestcontext.RequestID(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit onboarding audit event",
			"error", err,
			"action", string(action),
		)
	}
}
