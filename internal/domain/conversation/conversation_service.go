package conversation

import (
	"context"
	"strings"
	"time"

	"converse-server/internal/utils/apperrors"
	"converse-server/internal/utils/idgen"
)

// Service owns turn assembly on top of the repository: public IDs,
// timestamps, sender tagging and key validation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateKey(key Key) error {
	if key.UserID == 0 {
		return apperrors.Validation("user is required")
	}
	switch key.Kind {
	case KindSearch:
		if key.BotName != "" {
			return apperrors.Validation("search conversations are not scoped by bot name")
		}
	case KindChat:
		if strings.TrimSpace(key.BotName) == "" {
			return apperrors.Validation("botName is required for chat conversations")
		}
	default:
		return apperrors.Validation("unknown conversation kind")
	}
	return nil
}

// AppendTurn persists a (user message, bot message) pair as the unit of
// conversation growth, creating the conversation for the key on first use.
func (s *Service) AppendTurn(ctx context.Context, key Key, userText, botText string, sources []Source) (*Conversation, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if userText == "" || botText == "" {
		return nil, apperrors.Validation("both turn messages require text")
	}

	now := time.Now()
	userMsg, err := newMessage(userText, SenderUser, nil, now)
	if err != nil {
		return nil, err
	}
	botMsg, err := newMessage(botText, SenderBot, sources, now)
	if err != nil {
		return nil, err
	}

	conv, err := s.repo.AppendTurn(ctx, key, userMsg, botMsg)
	if err != nil {
		return nil, apperrors.Store("append turn", err)
	}
	return conv, nil
}

// History returns the ordered message log for the key, empty when the
// conversation does not exist yet.
func (s *Service) History(ctx context.Context, key Key) ([]Message, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	messages, err := s.repo.History(ctx, key)
	if err != nil {
		return nil, apperrors.Store("load history", err)
	}
	if messages == nil {
		messages = []Message{}
	}
	return messages, nil
}

// Find returns the conversation for the key, or nil when absent.
func (s *Service) Find(ctx context.Context, key Key) (*Conversation, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	conv, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, apperrors.Store("find conversation", err)
	}
	return conv, nil
}

func newMessage(text string, sender Sender, sources []Source, at time.Time) (Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return Message{}, apperrors.Wrap(apperrors.TypeInternal, "generate message id", err)
	}
	return Message{
		PublicID:  publicID,
		Text:      text,
		Sender:    sender,
		Sources:   sources,
		Timestamp: at,
	}, nil
}
