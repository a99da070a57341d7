// Package invite implements the access gate. A valid code sets a persisted
// flag that lets every later load of the same scope skip the gate.
package invite

import (
	"context"
	"strings"

	"github.com/fiboy83/vibesphere--sub000/internal/storage"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
	"github.com/fiboy83/vibesphere--sub000/pkg/logger"
)

// FlagKey is the flag of the unscoped gate. Scoped flags append the scope.
const FlagKey = "vibesphere:invite"

// Key returns the flag key for scope, e.g. one chat of the bot.
func Key(scope string) string {
	if scope == "" {
		return FlagKey
	}
	return FlagKey + ":" + scope
}

var ErrInvalidCode = errors.New("invalid invite code")

type Gate struct {
	codes  []string
	store  storage.Store
	logger logger.Logger
}

func New(codes []string, store storage.Store, log logger.Logger) *Gate {
	cleaned := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	return &Gate{codes: cleaned, store: store, logger: log.WithComponent("invite")}
}

// Authorized reports whether a code was accepted before in scope. Read
// failures are treated as not authorized.
func (g *Gate) Authorized(ctx context.Context, scope string) bool {
	v, ok, err := g.store.Get(ctx, Key(scope))
	if err != nil {
		g.logger.Warn("Failed to read invite flag", "scope", scope, "error", err)
		return false
	}
	return ok && v == "true"
}

// Valid matches code against the allow-list ignoring case.
func (g *Gate) Valid(code string) bool {
	code = strings.TrimSpace(code)
	for _, c := range g.codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// Submit checks code and persists the flag of scope on success.
func (g *Gate) Submit(ctx context.Context, scope, code string) error {
	if !g.Valid(code) {
		return ErrInvalidCode
	}
	if err := g.store.Set(ctx, Key(scope), "true"); err != nil {
		return errors.WrapWithCode(err, errors.CodeStorage, "failed to persist invite flag")
	}
	g.logger.Info("Invite code accepted", "scope", scope)
	return nil
}
