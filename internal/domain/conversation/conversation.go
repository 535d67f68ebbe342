// Package conversation holds the durable per-user conversation log: an
// append-only sequence of (user, bot) message pairs partitioned by feature
// kind and, for chat, by bot identity.
package conversation

import (
	"context"
	"time"
)

// Kind partitions conversations by feature area.
type Kind string

const (
	KindSearch Kind = "search"
	KindChat   Kind = "chat"
)

// Sender identifies which side of the exchange produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Source is a citation attached to a bot message derived from search results.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Message is a single entry in a conversation log. Messages are never
// mutated or deleted after append.
type Message struct {
	PublicID  string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Sources   []Source  `json:"sources,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the ordered log for one (user, kind, botName) partition
// key. BotName is empty for kind=search. Insertion order of Messages is
// semantic and defines display order.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    uint      `json:"-"`
	Kind      Kind      `json:"kind"`
	BotName   string    `json:"bot_name,omitempty"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key is the partition key: at most one conversation exists per key.
type Key struct {
	UserID  uint
	Kind    Kind
	BotName string
}

// Repository defines storage operations for conversations.
//
// AppendTurn must be atomic with respect to concurrent calls for the same
// key: find-or-create of the conversation row and insertion of both messages
// happen under one storage-level guard, so no append is lost.
type Repository interface {
	// FindByKey returns the conversation for the key, or nil when absent.
	FindByKey(ctx context.Context, key Key) (*Conversation, error)
	// AppendTurn creates the conversation on first use and appends the
	// (user, bot) message pair. It returns the updated conversation.
	AppendTurn(ctx context.Context, key Key, userMsg, botMsg Message) (*Conversation, error)
	// History returns the ordered messages for the key; an empty slice, not
	// an error, when no conversation exists yet.
	History(ctx context.Context, key Key) ([]Message, error)
}
