// Package chathandler orchestrates per-bot chat: replay of the stored
// transcript into the completion prompt, one provider call, one append.
package chathandler

import (
	"context"
	"fmt"
	"strings"

	"converse-server/internal/domain/conversation"
	"converse-server/internal/utils/apperrors"
)

// personaInstruction wraps the rendered transcript. The bot name is caller
// supplied, so each bot name gets an independent persona and transcript.
const personaInstruction = "You are %s, a helpful assistant. Respond to the user's message in a conversational tone:\n\n%s"

// Completer is the outbound completion dependency.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	conversations *conversation.Service
	completer     Completer

	// promptMaxMessages caps how many trailing messages are replayed into
	// the prompt. Zero replays the full transcript. The stored log is never
	// truncated either way.
	promptMaxMessages int
}

func NewChatHandler(conversations *conversation.Service, completer Completer, promptMaxMessages int) *ChatHandler {
	return &ChatHandler{
		conversations:     conversations,
		completer:         completer,
		promptMaxMessages: promptMaxMessages,
	}
}

// ChatResult is the bot reply for one exchange.
type ChatResult struct {
	Response string `json:"response"`
}

// Chat runs one exchange against the named bot. The new user message is
// appended to the prompt after the replayed history, and both sides of the
// exchange are persisted only after the provider call succeeds.
func (h *ChatHandler) Chat(ctx context.Context, userID uint, botName, message string) (*ChatResult, error) {
	botName = strings.TrimSpace(botName)
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.Validation("message is required")
	}
	if botName == "" {
		return nil, apperrors.Validation("botName is required")
	}

	key := conversation.Key{UserID: userID, Kind: conversation.KindChat, BotName: botName}
	history, err := h.conversations.History(ctx, key)
	if err != nil {
		return nil, err
	}

	transcript := conversation.RenderChatPrompt(
		conversation.TailMessages(history, h.promptMaxMessages),
		message,
		botName,
	)

	reply, err := h.completer.Complete(ctx, fmt.Sprintf(personaInstruction, botName, transcript))
	if err != nil {
		return nil, apperrors.Provider("completion provider call failed", err)
	}

	if _, err := h.conversations.AppendTurn(ctx, key, message, reply, nil); err != nil {
		return nil, err
	}

	return &ChatResult{Response: reply}, nil
}

// History returns the transcript for one bot, oldest first.
func (h *ChatHandler) History(ctx context.Context, userID uint, botName string) ([]conversation.Message, error) {
	botName = strings.TrimSpace(botName)
	if botName == "" {
		return nil, apperrors.Validation("botName is required")
	}
	return h.conversations.History(ctx, conversation.Key{UserID: userID, Kind: conversation.KindChat, BotName: botName})
}
