package chathandler_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"converse-server/internal/domain/conversation"
	"converse-server/internal/interfaces/httpserver/handlers/chathandler"
	"converse-server/internal/utils/apperrors"
)

type memoryRepository struct {
	mu            sync.Mutex
	conversations map[conversation.Key]*conversation.Conversation
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{conversations: make(map[conversation.Key]*conversation.Conversation)}
}

func (m *memoryRepository) FindByKey(_ context.Context, key conversation.Key) (*conversation.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[key]
	if !ok {
		return nil, nil
	}
	copied := *conv
	copied.Messages = append([]conversation.Message(nil), conv.Messages...)
	return &copied, nil
}

func (m *memoryRepository) AppendTurn(_ context.Context, key conversation.Key, userMsg, botMsg conversation.Message) (*conversation.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[key]
	if !ok {
		conv = &conversation.Conversation{UserID: key.UserID, Kind: key.Kind, BotName: key.BotName}
		m.conversations[key] = conv
	}
	conv.Messages = append(conv.Messages, userMsg, botMsg)
	copied := *conv
	copied.Messages = append([]conversation.Message(nil), conv.Messages...)
	return &copied, nil
}

func (m *memoryRepository) History(ctx context.Context, key conversation.Key) ([]conversation.Message, error) {
	conv, err := m.FindByKey(ctx, key)
	if err != nil || conv == nil {
		return nil, err
	}
	return conv.Messages, nil
}

type stubCompleter struct {
	reply     string
	err       error
	calls     int
	gotPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.gotPrompt = prompt
	return s.reply, s.err
}

func TestChatFirstMessagePrompt(t *testing.T) {
	completer := &stubCompleter{reply: "hello there"}
	h := chathandler.NewChatHandler(conversation.NewService(newMemoryRepository()), completer, 0)

	result, err := h.Chat(context.Background(), 1, "Aria", "hi")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}

	want := "You are Aria, a helpful assistant. Respond to the user's message in a conversational tone:\n\nuser: hi\nAria:"
	if completer.gotPrompt != want {
		t.Fatalf("prompt = %q, want %q", completer.gotPrompt, want)
	}
	if result.Response != "hello there" {
		t.Fatalf("response = %q", result.Response)
	}
}

func TestChatReplaysHistoryIntoPrompt(t *testing.T) {
	repo := newMemoryRepository()
	svc := conversation.NewService(repo)
	completer := &stubCompleter{reply: "fine, thanks"}
	h := chathandler.NewChatHandler(svc, completer, 0)

	if _, err := h.Chat(context.Background(), 1, "Aria", "hi"); err != nil {
		t.Fatalf("first chat: %v", err)
	}
	completer.reply = "fine, thanks"
	if _, err := h.Chat(context.Background(), 1, "Aria", "how are you"); err != nil {
		t.Fatalf("second chat: %v", err)
	}

	want := "You are Aria, a helpful assistant. Respond to the user's message in a conversational tone:\n\n" +
		"user: hi\nbot: fine, thanks\nuser: how are you\nAria:"
	if completer.gotPrompt != want {
		t.Fatalf("prompt = %q, want %q", completer.gotPrompt, want)
	}

	history, err := h.History(context.Background(), 1, "Aria")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 stored messages, got %d", len(history))
	}
}

func TestChatPromptCapAppliesToPromptOnly(t *testing.T) {
	repo := newMemoryRepository()
	svc := conversation.NewService(repo)
	completer := &stubCompleter{reply: "ok"}
	h := chathandler.NewChatHandler(svc, completer, 2)

	for i := 0; i < 3; i++ {
		if _, err := h.Chat(context.Background(), 1, "Aria", fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("chat %d: %v", i, err)
		}
	}

	// Only the trailing 2 stored messages are replayed before the new one.
	want := "You are Aria, a helpful assistant. Respond to the user's message in a conversational tone:\n\n" +
		"user: msg 1\nbot: ok\nuser: msg 2\nAria:"
	if completer.gotPrompt != want {
		t.Fatalf("prompt = %q, want %q", completer.gotPrompt, want)
	}

	history, err := h.History(context.Background(), 1, "Aria")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 6 {
		t.Fatalf("stored log must be unbounded, got %d messages", len(history))
	}
}

func TestChatValidation(t *testing.T) {
	completer := &stubCompleter{}
	h := chathandler.NewChatHandler(conversation.NewService(newMemoryRepository()), completer, 0)

	cases := []struct {
		name    string
		botName string
		message string
	}{
		{"empty message", "Aria", "  "},
		{"empty bot name", "", "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Chat(context.Background(), 1, tc.botName, tc.message)
			if apperrors.TypeOf(err) != apperrors.TypeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if completer.calls != 0 {
		t.Fatalf("provider must not be called on validation failure")
	}
}

func TestChatProviderFailureSkipsPersist(t *testing.T) {
	repo := newMemoryRepository()
	h := chathandler.NewChatHandler(conversation.NewService(repo), &stubCompleter{err: errors.New("down")}, 0)

	_, err := h.Chat(context.Background(), 1, "Aria", "hi")
	if apperrors.TypeOf(err) != apperrors.TypeProvider {
		t.Fatalf("expected provider error, got %v", err)
	}
	if len(repo.conversations) != 0 {
		t.Fatalf("nothing should be persisted on provider failure")
	}
}

func TestChatBotsAreIsolated(t *testing.T) {
	repo := newMemoryRepository()
	svc := conversation.NewService(repo)
	completer := &stubCompleter{reply: "yo"}
	h := chathandler.NewChatHandler(svc, completer, 0)

	if _, err := h.Chat(context.Background(), 1, "Aria", "hi aria"); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if _, err := h.Chat(context.Background(), 1, "Bob", "hi bob"); err != nil {
		t.Fatalf("chat: %v", err)
	}

	// Bob's prompt must not contain Aria's transcript.
	want := "You are Bob, a helpful assistant. Respond to the user's message in a conversational tone:\n\nuser: hi bob\nBob:"
	if completer.gotPrompt != want {
		t.Fatalf("prompt = %q, want %q", completer.gotPrompt, want)
	}
}
