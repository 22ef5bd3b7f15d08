// Package navigation decides where the app goes after an authentication
// event completes. One invocation produces exactly one decision.
package navigation

import (
	dErrors "cardspace/pkg/domain-errors"
)

// FlowType identifies which action triggered authentication. It is passed in
// explicitly by the caller; the provider's session state does not reliably
// distinguish sign-up from sign-in after an OAuth round trip.
type FlowType string

const (
	FlowSignIn FlowType = "sign-in"
	FlowSignUp FlowType = "sign-up"
)

// ParseFlowType validates a raw flow type at the trust boundary.
func ParseFlowType(raw string) (FlowType, error) {
	switch FlowType(raw) {
	case FlowSignIn, FlowSignUp:
		return FlowType(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "flow_type must be \"sign-in\" or \"sign-up\"")
	}
}

// Snapshot is one observation of the identity provider's session state.
// UserID may be empty even when SignedIn is true for a bounded transitional
// period after session creation.
type Snapshot struct {
	Loaded   bool
	SignedIn bool
	UserID   string
}

// DecisionKind enumerates the navigation outcomes.
type DecisionKind string

const (
	DecisionOnboarding    DecisionKind = "onboarding"
	DecisionMain          DecisionKind = "main"
	DecisionSignIn        DecisionKind = "sign_in"
	DecisionErrorRedirect DecisionKind = "error_redirect"
)

// Decision is the single outcome of one controller invocation. Message is
// user-visible and only set on the error-redirect path; Target names where
// the redirect lands.
type Decision struct {
	Kind    DecisionKind `json:"kind"`
	Target  DecisionKind `json:"target,omitempty"`
	Message string       `json:"message,omitempty"`
}

func goToOnboarding() Decision { return Decision{Kind: DecisionOnboarding} }
func goToMain() Decision       { return Decision{Kind: DecisionMain} }
func goToSignIn() Decision     { return Decision{Kind: DecisionSignIn} }

func errorRedirect(message string) Decision {
	return Decision{
		Kind:    DecisionErrorRedirect,
		Target:  DecisionSignIn,
		Message: message,
	}
}
