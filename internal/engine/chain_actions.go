package engine

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/fiboy83/vibesphere--sub000/internal/account"
	"github.com/fiboy83/vibesphere--sub000/internal/chain"
	"github.com/fiboy83/vibesphere--sub000/internal/domain"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
	"github.com/fiboy83/vibesphere--sub000/pkg/retry"
)

// Draft is what the composer submits. Kind follows the composer tab and
// defaults to text, or media when something is attached.
type Draft struct {
	Text  string
	Kind  domain.Kind
	Media *domain.Media
}

func (d Draft) kind() domain.Kind {
	switch {
	case d.Kind == domain.KindArticle || d.Kind == domain.KindMedia:
		return d.Kind
	case d.Media != nil:
		return domain.KindMedia
	default:
		return domain.KindText
	}
}

// Broadcast writes the draft to the post contract and only after the
// transaction is confirmed adds it to the feed.
func (e *Engine) Broadcast(ctx context.Context, d Draft) (post *domain.Post, err error) {
	d.Text = strings.TrimSpace(d.Text)
	if d.Text == "" && d.Media == nil {
		return nil, errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeInvalidInput, "post is empty")
	}
	address := e.Address()
	if address == "" {
		return nil, errors.ErrNotConnected
	}
	defer func() { e.observe("broadcast", err) }()

	if err := e.requireSigner(ctx, "Broadcast failed", address); err != nil {
		return nil, err
	}

	hash, err := e.chain.CreatePost(ctx, d.Text)
	if err != nil {
		e.chainFailed(ctx, "Broadcast failed", err)
		return nil, errors.WrapWithCode(err, errors.CodeChain, "post was not confirmed")
	}

	media := d.Media
	kind := d.kind()
	if kind != domain.KindMedia {
		media = nil
	}

	e.mu.Lock()
	post = e.newPost(d.Text, kind, media)
	e.feed = append([]*domain.Post{post}, e.feed...)
	e.mu.Unlock()

	if err := e.persistFeed(ctx); err != nil {
		e.logger.Warn("Failed to persist feed after broadcast", "error", err)
	}
	e.logger.Info("Vibe broadcast", "post_id", post.ID, "tx", hash)
	e.notify(ctx, domain.NoticeSuccess, "Vibe broadcast to the network")
	return post, nil
}

// ClaimHandle mints a handle that the availability check cleared, then
// reads the canonical handle back from the contract and stores it on the
// profile. Nothing else on the profile changes.
func (e *Engine) ClaimHandle(ctx context.Context, candidate string) (handle string, err error) {
	candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "@")
	if candidate == "" || e.handles == nil || !e.handles.Available(candidate) {
		return "", errors.WrapWithCode(errors.ErrHandleUnavailable, errors.CodeInvalidInput, "handle not claimable")
	}
	address := e.Address()
	if address == "" {
		return "", errors.ErrNotConnected
	}
	defer func() { e.observe("claim_handle", err) }()

	if err := e.requireSigner(ctx, "Handle claim failed", address); err != nil {
		return "", err
	}

	if _, err := e.chain.MintHandle(ctx, candidate); err != nil {
		e.chainFailed(ctx, "Handle claim failed", err)
		return "", errors.WrapWithCode(err, errors.CodeChain, "mint was not confirmed")
	}

	owner := e.chain.Account()
	handle, err = retry.Value(ctx, e.logger, "fetch claimed handle", e.retry, func() (string, error) {
		h, err := e.chain.HandleOf(ctx, owner)
		var rejected *chain.RejectedError
		switch {
		case errors.As(err, &rejected):
			return "", retry.Permanent(err)
		case err != nil:
			return "", err
		case h == "":
			return "", fmt.Errorf("handle for %s not indexed yet", owner)
		}
		return h, nil
	})
	if err != nil {
		e.notify(ctx, domain.NoticeError, "Handle minted but could not be read back")
		return "", errors.WrapWithCode(err, errors.CodeChain, "failed to read claimed handle")
	}

	e.mu.Lock()
	e.profile.Handle = handle
	profile := e.profile
	e.mu.Unlock()

	if err := e.accounts.SaveProfile(ctx, address, profile); err != nil {
		e.logger.Warn("Failed to persist profile after claim", "error", err)
	}
	e.notify(ctx, domain.NoticeSuccess, "Handle claimed: "+handle)
	return handle, nil
}

// Send transfers wei and records the confirmed transaction for the
// connected account.
func (e *Engine) Send(ctx context.Context, to string, wei *big.Int) (tx domain.Transaction, err error) {
	address := e.Address()
	if address == "" {
		return domain.Transaction{}, errors.ErrNotConnected
	}
	if wei == nil || wei.Sign() <= 0 {
		return domain.Transaction{}, errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeInvalidInput, "amount must be positive")
	}
	defer func() { e.observe("send", err) }()

	if err := e.requireSigner(ctx, "Transfer failed", address); err != nil {
		return domain.Transaction{}, err
	}

	tx, err = e.chain.Transfer(ctx, to, wei)
	if err != nil {
		e.chainFailed(ctx, "Transfer failed", err)
		return domain.Transaction{}, errors.WrapWithCode(err, errors.CodeChain, "transfer was not confirmed")
	}
	if tx.Timestamp == 0 {
		tx.Timestamp = e.clock.Now().Unix()
	}

	txs, err := e.accounts.AppendTransaction(ctx, address, tx)
	if err != nil {
		e.logger.Warn("Failed to persist transaction", "tx", tx.Hash, "error", err)
		e.mu.Lock()
		e.txs = append(e.txs, tx)
		e.mu.Unlock()
		return tx, nil
	}

	e.mu.Lock()
	e.txs = txs
	e.mu.Unlock()
	e.notify(ctx, domain.NoticeSuccess, "Transfer confirmed")
	return tx, nil
}

// ProfileEdit holds the user editable fields. Nil leaves a field as is.
type ProfileEdit struct {
	DisplayName *string
	Avatar      *string
	ThemeColor  *string
}

// UpdateProfile applies user edits. The handle is not editable here.
func (e *Engine) UpdateProfile(ctx context.Context, edit ProfileEdit) (domain.Profile, error) {
	e.mu.Lock()
	p := e.profile
	if edit.DisplayName != nil {
		if name := strings.TrimSpace(*edit.DisplayName); name != "" {
			p.DisplayName = name
		}
	}
	if edit.Avatar != nil {
		p.Avatar = strings.TrimSpace(*edit.Avatar)
	}
	if edit.ThemeColor != nil {
		p.ThemeColor = strings.TrimSpace(*edit.ThemeColor)
	}
	e.profile = p
	address := e.address
	e.mu.Unlock()

	if address == "" {
		return p, nil
	}
	if err := e.accounts.SaveProfile(ctx, address, p); err != nil {
		return p, errors.WrapWithCode(err, errors.CodeStorage, "failed to persist profile")
	}
	return p, nil
}

// requireSigner refuses a write unless the connected account is the one the
// chain client signs for.
func (e *Engine) requireSigner(ctx context.Context, what, address string) error {
	signer := e.chain.Account()
	if signer != "" && account.NormalizeAddress(signer) == account.NormalizeAddress(address) {
		return nil
	}
	e.logger.Warn("Refusing chain write for a non-signing account", "address", address, "signer", signer)
	e.notify(ctx, domain.NoticeError, what+": this wallet cannot sign here")
	return errors.WrapWithCode(chain.ErrNoSigner, errors.CodeChain, "connected account is not the signer")
}

// chainFailed reports the most specific reason the network gave.
func (e *Engine) chainFailed(ctx context.Context, what string, err error) {
	e.logger.Warn(what, "error", err)
	msg := errors.ErrChainRejected.Error()
	if reason := chain.Reason(err); reason != "" {
		msg = reason
	}
	e.notify(ctx, domain.NoticeError, what+": "+msg)
}
