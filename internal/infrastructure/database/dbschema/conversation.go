package dbschema

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"converse-server/internal/domain/conversation"
	"converse-server/internal/infrastructure/database"
	"converse-server/internal/utils/functional"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Conversation represents the database schema for conversations. The
// composite unique index on (user_id, kind, bot_name) is what makes the
// partition key sound: bot_name is NOT NULL DEFAULT '' rather than nullable
// so search conversations participate in the constraint.
type Conversation struct {
	BaseModel
	PublicID string            `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID   uint              `gorm:"uniqueIndex:ux_conversations_partition_key;not null"`
	User     User              `gorm:"foreignKey:UserID"`
	Kind     conversation.Kind `gorm:"type:varchar(10);uniqueIndex:ux_conversations_partition_key;not null"`
	BotName  string            `gorm:"type:varchar(100);uniqueIndex:ux_conversations_partition_key;not null;default:''"`
	Messages []Message         `gorm:"foreignKey:ConversationID"`
}

// Message represents the database schema for conversation messages.
// SequenceNumber realizes "insertion order is semantic".
type Message struct {
	BaseModel
	ConversationID uint                `gorm:"index:idx_message_conversation_sequence;not null"`
	PublicID       string              `gorm:"type:varchar(50);uniqueIndex;not null"`
	SequenceNumber int                 `gorm:"index:idx_message_conversation_sequence;not null"`
	Sender         conversation.Sender `gorm:"type:varchar(10);not null"`
	Text           string              `gorm:"type:text;not null"`
	Sources        JSONSources         `gorm:"type:jsonb"`
	SentAt         time.Time           `gorm:"not null"`
}

// JSONSources stores []conversation.Source as JSON
type JSONSources []conversation.Source

func (j JSONSources) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONSources) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// NewSchemaMessage converts a domain message into a schema instance.
func NewSchemaMessage(conversationID uint, sequence int, msg conversation.Message) *Message {
	return &Message{
		ConversationID: conversationID,
		PublicID:       msg.PublicID,
		SequenceNumber: sequence,
		Sender:         msg.Sender,
		Text:           msg.Text,
		Sources:        JSONSources(msg.Sources),
		SentAt:         msg.Timestamp,
	}
}

// EtoD converts the schema conversation to its domain representation.
func (c *Conversation) EtoD() *conversation.Conversation {
	return &conversation.Conversation{
		ID:       c.ID,
		PublicID: c.PublicID,
		UserID:   c.UserID,
		Kind:     c.Kind,
		BotName:  c.BotName,
		Messages: functional.Map(c.Messages, func(m Message) conversation.Message {
			return m.EtoD()
		}),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// EtoD converts the schema message to its domain representation.
func (m Message) EtoD() conversation.Message {
	return conversation.Message{
		PublicID:  m.PublicID,
		Text:      m.Text,
		Sender:    m.Sender,
		Sources:   []conversation.Source(m.Sources),
		Timestamp: m.SentAt,
	}
}
