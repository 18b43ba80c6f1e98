// Package auth implements the console entry gate. Nothing in the console is
// reachable before the stored token passes the identity check, and only the
// SUPER_ADMIN and ADMIN roles may proceed.
package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/feastly/chefdeck/internal/api"
)

// Outcome is the gate's decision.
type Outcome int

const (
	// OutcomeProceed lets the console start.
	OutcomeProceed Outcome = iota
	// OutcomeRedirect sends the operator back to the login boundary; stored
	// credentials have already been cleared when this is returned.
	OutcomeRedirect
)

// IdentityChecker is the slice of the API client the gate needs.
type IdentityChecker interface {
	Me(ctx context.Context) (api.Identity, error)
}

// CredentialClearer removes the stored token pair.
type CredentialClearer interface {
	Clear() error
}

// Result reports the gate decision. Degraded is set when the identity check
// could not be reached and the console proceeds optimistically on the stored
// token; real authorization failure then surfaces on the first API call.
type Result struct {
	Outcome  Outcome
	Identity api.Identity
	Degraded bool
}

// Gate validates the stored credential before the TUI starts.
type Gate struct {
	checker IdentityChecker
	creds   CredentialClearer
	log     *zap.Logger
}

// NewGate wires the gate to the API client and credential store.
func NewGate(checker IdentityChecker, creds CredentialClearer, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{checker: checker, creds: creds, log: log}
}

// Check runs the identity check and decides whether the console may start.
func (g *Gate) Check(ctx context.Context) Result {
	identity, err := g.checker.Me(ctx)
	if err != nil {
		if api.IsTransport(err) {
			// The identity service being unreachable is not an authorization
			// failure; proceed on the stored token.
			g.log.Warn("identity check unreachable, proceeding on stored token", zap.Error(err))
			return Result{Outcome: OutcomeProceed, Degraded: true}
		}
		g.log.Warn("identity check rejected, clearing credentials", zap.Error(err))
		g.clearCredentials()
		return Result{Outcome: OutcomeRedirect}
	}

	switch identity.Role {
	case api.RoleSuperAdmin, api.RoleAdmin:
		g.log.Info("operator authenticated",
			zap.String("name", identity.Name),
			zap.String("role", identity.Role),
		)
		return Result{Outcome: OutcomeProceed, Identity: identity}
	}

	g.log.Warn("role not allowed in admin console, clearing credentials",
		zap.String("role", identity.Role),
	)
	g.clearCredentials()
	return Result{Outcome: OutcomeRedirect}
}

func (g *Gate) clearCredentials() {
	if g.creds == nil {
		return
	}
	if err := g.creds.Clear(); err != nil {
		g.log.Error("clearing credentials failed", zap.Error(err))
	}
}
