package commandimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fiboy83/vibesphere--sub000/internal/engine"
	"github.com/fiboy83/vibesphere--sub000/internal/session"
	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
	"github.com/fiboy83/vibesphere--sub000/pkg/formatter"
)

// displayHandle adds the network suffix to claimed handles. Default
// handles are shortened addresses and are shown as is.
func (c *CommandImpl) displayHandle(h string) string {
	if strings.HasPrefix(h, "0x") {
		return h
	}
	return formatter.DisplayHandle(h, c.Config.Handle.Suffix)
}

func (c *CommandImpl) handleInvite(ctx context.Context, s *session.Session, chatID int64, code string) {
	if s.Authorized(ctx) {
		c.reply(chatID, "You're already in. Type /help to get started.")
		return
	}
	if err := s.SubmitInvite(ctx, code); err != nil {
		c.reply(chatID, "That invite code is not valid.")
		return
	}
	c.reply(chatID, "🎉 Welcome to the Nexus! Connect a wallet with /connect <address>.")
}

func (c *CommandImpl) handleConnect(ctx context.Context, s *session.Session, chatID int64, address string) {
	if !common.IsHexAddress(address) {
		c.reply(chatID, "Usage: /connect <0x wallet address>")
		return
	}
	if err := s.Connect(ctx, address); err != nil {
		c.Logger.Error("Failed to connect account", "error", err)
		c.reply(chatID, "Could not load your account. Please try again later.")
		return
	}
	p := s.Profile()
	c.reply(chatID, fmt.Sprintf("Connected as %s (%s). %s", p.DisplayName, c.displayHandle(p.Handle), p.JoinLabel))
}

func (c *CommandImpl) handleCheck(s *session.Session, chatID int64, args string) {
	if strings.TrimSpace(args) == "" {
		c.reply(chatID, "Usage: /handle <name>")
		return
	}
	s.TypeHandle(args)
	c.reply(chatID, "🔎 Checking "+c.displayHandle(args)+"...")
}

func (c *CommandImpl) handleClaim(ctx context.Context, s *session.Session, chatID int64, args string) {
	if s.Address() == "" {
		c.reply(chatID, "Connect a wallet with /connect <address> first.")
		return
	}
	c.reply(chatID, "⏳ Minting "+c.displayHandle(args)+", waiting for confirmation...")
	if _, err := s.ClaimHandle(ctx, args); errors.Is(err, errors.ErrHandleUnavailable) {
		c.reply(chatID, "Check the handle with /handle <name> and wait until it shows as available.")
	}
}

func (c *CommandImpl) handleName(ctx context.Context, s *session.Session, chatID int64, name string) {
	if name == "" {
		c.reply(chatID, "Usage: /name <display name>")
		return
	}
	p, err := s.UpdateProfile(ctx, engine.ProfileEdit{DisplayName: &name})
	if err != nil {
		c.reply(chatID, "Could not save your profile: "+errors.GetMessage(err))
		return
	}
	c.reply(chatID, "Display name set to "+p.DisplayName)
}

func (c *CommandImpl) handleTheme(ctx context.Context, s *session.Session, chatID int64, color string) {
	if _, err := s.UpdateProfile(ctx, engine.ProfileEdit{ThemeColor: &color}); err != nil {
		c.reply(chatID, "Usage: /theme <#hex color>, e.g. /theme #22c55e")
		return
	}
	pal := s.Palette()
	c.reply(chatID, fmt.Sprintf("🎨 Theme set to %s (glow %s)", pal.Base, pal.Glow))
}

func (c *CommandImpl) handleBalance(ctx context.Context, s *session.Session, chatID int64, address string) {
	if address == "" {
		address = s.Address()
	}
	if !common.IsHexAddress(address) {
		c.reply(chatID, "Usage: /balance <address>, or /connect first.")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	balance := c.Config.Gateway.FallbackBalance
	if wei, err := c.Chain.Balance(ctx, address); err != nil {
		c.Logger.Warn("Balance lookup failed", "address", address, "error", err)
	} else {
		balance = formatter.Ether(wei, 4)
	}
	c.reply(chatID, fmt.Sprintf("💰 %s: %s OPN", formatter.ShortAddress(address), balance))
}

func (c *CommandImpl) handleSend(ctx context.Context, s *session.Session, chatID int64, args string) {
	to, amount, _ := strings.Cut(args, " ")
	if !common.IsHexAddress(to) {
		c.reply(chatID, "Usage: /send <address> <amount>")
		return
	}
	wei, err := formatter.ParseEther(amount)
	if err != nil || wei.Sign() <= 0 {
		c.reply(chatID, "Amount must be a positive number, e.g. /send 0xabc... 0.5")
		return
	}
	if s.Address() == "" {
		c.reply(chatID, "Connect a wallet with /connect <address> first.")
		return
	}

	c.reply(chatID, "⏳ Sending, waiting for confirmation...")
	if tx, err := s.Send(ctx, to, wei); err == nil {
		c.reply(chatID, fmt.Sprintf("Sent %s OPN to %s\nTx: %s", formatter.Ether(wei, 4), formatter.ShortAddress(tx.To), tx.Hash))
	}
}

func (c *CommandImpl) showTransactions(s *session.Session, chatID int64) {
	txs := s.Transactions()
	if len(txs) == 0 {
		c.reply(chatID, "No transactions yet.")
		return
	}
	var b strings.Builder
	b.WriteString("🧾 Transactions:\n")
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		b.WriteString(fmt.Sprintf("%s → %s  %s\n", time.Unix(tx.Timestamp, 0).UTC().Format("2006-01-02 15:04"),
			formatter.ShortAddress(tx.To), weiText(tx.ValueWei)))
	}
	c.reply(chatID, b.String())
}
