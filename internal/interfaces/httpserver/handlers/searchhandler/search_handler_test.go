package searchhandler_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"converse-server/internal/domain/conversation"
	"converse-server/internal/infrastructure/search"
	"converse-server/internal/interfaces/httpserver/handlers/searchhandler"
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

type stubSearcher struct {
	results []search.Result
	err     error
	calls   int
	gotMax  int
}

func (s *stubSearcher) Search(_ context.Context, _ string, maxResults int) ([]search.Result, error) {
	s.calls++
	s.gotMax = maxResults
	return s.results, s.err
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

func newHandler(repo *memoryRepository, searcher *stubSearcher, completer *stubCompleter) *searchhandler.SearchHandler {
	return searchhandler.NewSearchHandler(conversation.NewService(repo), searcher, completer, 5)
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	repo := newMemoryRepository()
	searcher := &stubSearcher{}
	completer := &stubCompleter{}
	h := newHandler(repo, searcher, completer)

	_, err := h.Search(context.Background(), 1, "   ")
	if apperrors.TypeOf(err) != apperrors.TypeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if searcher.calls != 0 || completer.calls != 0 {
		t.Fatalf("providers must not be called for empty query: search=%d complete=%d", searcher.calls, completer.calls)
	}
	if len(repo.conversations) != 0 {
		t.Fatalf("nothing should be persisted on validation failure")
	}
}

func TestSearchNoResultsIsNotFound(t *testing.T) {
	repo := newMemoryRepository()
	searcher := &stubSearcher{results: nil}
	completer := &stubCompleter{}
	h := newHandler(repo, searcher, completer)

	_, err := h.Search(context.Background(), 1, "obscure query")
	if apperrors.TypeOf(err) != apperrors.TypeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if completer.calls != 0 {
		t.Fatalf("completion must not run when search returns nothing")
	}
	if len(repo.conversations) != 0 {
		t.Fatalf("nothing should be persisted when search returns nothing")
	}
}

func TestSearchAssemblesPromptAndPersistsTurn(t *testing.T) {
	repo := newMemoryRepository()
	searcher := &stubSearcher{results: []search.Result{
		{Title: "Go", URL: "https://go.dev", Content: "Go is a language."},
		{Title: "Gopher", URL: "https://go.dev/blog", Content: "Gophers dig."},
	}}
	completer := &stubCompleter{reply: "Go is a language and gophers dig."}
	h := newHandler(repo, searcher, completer)

	result, err := h.Search(context.Background(), 9, "  what is go  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if searcher.gotMax != 5 {
		t.Fatalf("maxResults = %d, want 5", searcher.gotMax)
	}

	wantPrompt := "You are a helpful assistant. Summarize the following content in a concise, conversational tone. Be precise and avoid adding unsupported claims:\n\n" +
		"Go is a language.\n\nGophers dig."
	if completer.gotPrompt != wantPrompt {
		t.Fatalf("prompt = %q, want %q", completer.gotPrompt, wantPrompt)
	}

	if result.Summary != completer.reply {
		t.Fatalf("summary = %q", result.Summary)
	}
	if len(result.Sources) != 2 || result.Sources[0].URL != "https://go.dev" {
		t.Fatalf("sources = %+v", result.Sources)
	}

	history, err := h.History(context.Background(), 9)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected one persisted turn, got %d messages", len(history))
	}
	if history[0].Text != "what is go" {
		t.Fatalf("persisted query = %q, want trimmed original", history[0].Text)
	}
	if len(history[1].Sources) != 2 {
		t.Fatalf("bot message should carry sources, got %+v", history[1].Sources)
	}
}

func TestSearchProviderFailureSurfacesAndSkipsPersist(t *testing.T) {
	repo := newMemoryRepository()
	h := newHandler(repo, &stubSearcher{err: errors.New("boom")}, &stubCompleter{})

	_, err := h.Search(context.Background(), 1, "anything")
	if apperrors.TypeOf(err) != apperrors.TypeProvider {
		t.Fatalf("expected provider error, got %v", err)
	}
	if len(repo.conversations) != 0 {
		t.Fatalf("nothing should be persisted on provider failure")
	}
}

func TestSearchCompletionFailureSkipsPersist(t *testing.T) {
	repo := newMemoryRepository()
	searcher := &stubSearcher{results: []search.Result{{Title: "t", URL: "u", Content: "c"}}}
	h := newHandler(repo, searcher, &stubCompleter{err: errors.New("model down")})

	_, err := h.Search(context.Background(), 1, "anything")
	if apperrors.TypeOf(err) != apperrors.TypeProvider {
		t.Fatalf("expected provider error, got %v", err)
	}
	if !strings.Contains(err.Error(), "completion") {
		t.Fatalf("error should name the completion stage: %v", err)
	}
	if len(repo.conversations) != 0 {
		t.Fatalf("nothing should be persisted on completion failure")
	}
}
