package commandimpl

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/fiboy83/vibesphere--sub000/pkg/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpMessage = `👋 Welcome to Vibesphere, the OPN Nexus feed!

GETTING IN:
/invite <code> - Enter your invite code.
/connect <address> - Connect a wallet address.
/disconnect - Forget the connected wallet in this chat.

FEED:
/feed - Show the current view.
/post [article|media <url>] <text> - Broadcast a vibe on-chain.
/vibe <id> - Open a vibe and its replies.
/like <id>, /bookmark <id>, /repost <id>
/comment <id> <text> - Reply to a vibe.
/liked, /bookmarks - Your engagement lists.

NAVIGATION:
/tab <name> - bookmarks, profile, notifications, defi, swap, settings, wallet, market, inbox or home.
/back, /home

IDENTITY & WALLET:
/handle <name> - Check if a handle is free.
/claim <name> - Mint a handle you checked.
/name <display name>, /theme <#hex>
/balance [address], /send <address> <amount>, /txs

Type /help at any time to see this guide.`

// openCommands work before the invite gate is passed.
var openCommands = map[string]bool{"start": true, "help": true, "invite": true}

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	if !c.Telegram.Enabled() {
		<-ctx.Done()
		return ctx.Err()
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly.")
				return errors.New("telegram updates channel closed")
			}

			go func(u tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
					}
				}()

				if u.Message == nil || !u.Message.IsCommand() {
					return
				}

				c.Logger.Debug("Command received", "chatID", u.Message.Chat.ID, "command", u.Message.Command())
				if err := c.processCommand(ctx, u.Message.Chat.ID, u.Message.Command(), u.Message.CommandArguments()); err != nil {
					c.Logger.Error("Error processing command",
						"command", u.Message.Command(),
						"code", errors.GetCode(err),
						"error", err)
				}
			}(update)
		}
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, chatID int64, command, args string) error {
	args = strings.TrimSpace(args)

	s, err := c.sessionFor(ctx, chatID)
	if err != nil {
		c.reply(chatID, "Something went wrong. Please try again later.")
		return err
	}

	if !openCommands[command] && !s.Authorized(ctx) {
		c.reply(chatID, "🔒 Vibesphere is invite only. Enter your code with /invite <code>.")
		return nil
	}

	switch command {
	case "start", "help":
		c.reply(chatID, helpMessage)
	case "invite":
		c.handleInvite(ctx, s, chatID, args)
	case "connect":
		c.handleConnect(ctx, s, chatID, args)
	case "disconnect":
		s.Disconnect()
		c.reply(chatID, "Wallet disconnected.")
	case "feed":
		c.showView(s, chatID)
	case "post":
		c.handlePost(ctx, s, chatID, args)
	case "vibe":
		c.handleFocus(s, chatID, args)
	case "like":
		c.handleLike(ctx, s, chatID, args)
	case "bookmark":
		c.handleBookmark(ctx, s, chatID, args)
	case "repost":
		c.handleRepost(ctx, s, chatID, args)
	case "comment":
		c.handleComment(ctx, s, chatID, args)
	case "liked":
		c.showList(chatID, "❤️ Liked vibes", s.LikedPosts())
	case "bookmarks":
		c.showList(chatID, "🔖 Bookmarked vibes", s.BookmarkedPosts())
	case "tab":
		c.handleTab(s, chatID, args)
	case "back":
		if !s.Back() {
			c.reply(chatID, "Already at home.")
			return nil
		}
		c.showView(s, chatID)
	case "home":
		s.Home()
		c.showView(s, chatID)
	case "handle":
		c.handleCheck(s, chatID, args)
	case "claim":
		c.handleClaim(ctx, s, chatID, args)
	case "name":
		c.handleName(ctx, s, chatID, args)
	case "theme":
		c.handleTheme(ctx, s, chatID, args)
	case "balance":
		c.handleBalance(ctx, s, chatID, args)
	case "send":
		c.handleSend(ctx, s, chatID, args)
	case "txs":
		c.showTransactions(s, chatID)
	default:
		c.reply(chatID, "Unknown command. Type /help to see the list of available commands.")
	}
	return nil
}
