// Package searchhandler orchestrates the search-and-summarize flow: search
// provider, completion provider, then one append to the search-kind
// conversation.
package searchhandler

import (
	"context"
	"strings"

	"converse-server/internal/domain/conversation"
	"converse-server/internal/infrastructure/search"
	"converse-server/internal/utils/apperrors"
	"converse-server/internal/utils/functional"
)

// The instruction prefix is part of the provider contract: stub-provider
// tests assert on the assembled prompt.
const summarizeInstruction = "You are a helpful assistant. Summarize the following content in a concise, conversational tone. Be precise and avoid adding unsupported claims:\n\n"

// SearchProvider is the outbound search dependency.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

// Completer is the outbound completion dependency.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type SearchHandler struct {
	conversations *conversation.Service
	searcher      SearchProvider
	completer     Completer
	maxResults    int
}

func NewSearchHandler(
	conversations *conversation.Service,
	searcher SearchProvider,
	completer Completer,
	maxResults int,
) *SearchHandler {
	return &SearchHandler{
		conversations: conversations,
		searcher:      searcher,
		completer:     completer,
		maxResults:    maxResults,
	}
}

// SearchResult is the synthesized answer returned to the caller. It is also
// what gets persisted; if the append fails the result is returned exactly
// once and never stored.
type SearchResult struct {
	Summary string                `json:"summary"`
	Sources []conversation.Source `json:"sources"`
}

// Search runs the full flow for one query. Validation failures and empty
// provider results short-circuit before any append.
func (h *SearchHandler) Search(ctx context.Context, userID uint, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("query is required")
	}

	results, err := h.searcher.Search(ctx, query, h.maxResults)
	if err != nil {
		return nil, apperrors.Provider("search provider call failed", err)
	}
	if len(results) == 0 {
		return nil, apperrors.NotFound("no search results found")
	}

	excerpts := functional.Map(results, func(r search.Result) string {
		return r.Content
	})
	sources := functional.Map(results, func(r search.Result) conversation.Source {
		return conversation.Source{Title: r.Title, URL: r.URL}
	})

	summary, err := h.completer.Complete(ctx, summarizeInstruction+strings.Join(excerpts, "\n\n"))
	if err != nil {
		return nil, apperrors.Provider("completion provider call failed", err)
	}

	key := conversation.Key{UserID: userID, Kind: conversation.KindSearch}
	if _, err := h.conversations.AppendTurn(ctx, key, query, summary, sources); err != nil {
		return nil, err
	}

	return &SearchResult{Summary: summary, Sources: sources}, nil
}

// History returns the user's search conversation log, oldest first.
func (h *SearchHandler) History(ctx context.Context, userID uint) ([]conversation.Message, error) {
	return h.conversations.History(ctx, conversation.Key{UserID: userID, Kind: conversation.KindSearch})
}
