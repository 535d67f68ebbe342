package conversationrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"converse-server/internal/domain/conversation"
	"converse-server/internal/infrastructure/database/dbschema"
	"converse-server/internal/utils/functional"
	"converse-server/internal/utils/idgen"
)

type ConversationGormRepository struct {
	db *gorm.DB
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *gorm.DB) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

// FindByKey implements conversation.Repository.
func (repo *ConversationGormRepository) FindByKey(ctx context.Context, key conversation.Key) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		}).
		Where("user_id = ? AND kind = ? AND bot_name = ?", key.UserID, key.Kind, key.BotName).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation by key: %w", err)
	}
	return entity.EtoD(), nil
}

// AppendTurn implements conversation.Repository.
//
// Find-or-create and the two message inserts run in one transaction. The
// conversation row is upserted with ON CONFLICT on the partition-key unique
// index and then re-read under FOR UPDATE, so concurrent appends for the
// same key serialize on the row lock instead of overwriting each other.
func (repo *ConversationGormRepository) AppendTurn(ctx context.Context, key conversation.Key, userMsg, botMsg conversation.Message) (*conversation.Conversation, error) {
	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, fmt.Errorf("generate conversation id: %w", err)
	}

	var result *conversation.Conversation
	err = repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := &dbschema.Conversation{
			PublicID: publicID,
			UserID:   key.UserID,
			Kind:     key.Kind,
			BotName:  key.BotName,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}, {Name: "bot_name"}},
			DoNothing: true,
		}).Create(seed).Error; err != nil {
			return fmt.Errorf("upsert conversation: %w", err)
		}

		var entity dbschema.Conversation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND kind = ? AND bot_name = ?", key.UserID, key.Kind, key.BotName).
			First(&entity).
			Error; err != nil {
			return fmt.Errorf("lock conversation: %w", err)
		}

		var lastSequence int64
		if err := tx.Model(&dbschema.Message{}).
			Where("conversation_id = ?", entity.ID).
			Select("COALESCE(MAX(sequence_number), 0)").
			Scan(&lastSequence).
			Error; err != nil {
			return fmt.Errorf("read last sequence: %w", err)
		}

		rows := []*dbschema.Message{
			dbschema.NewSchemaMessage(entity.ID, int(lastSequence)+1, userMsg),
			dbschema.NewSchemaMessage(entity.ID, int(lastSequence)+2, botMsg),
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert messages: %w", err)
		}

		if err := tx.Model(&dbschema.Conversation{}).
			Where("id = ?", entity.ID).
			Update("updated_at", botMsg.Timestamp).
			Error; err != nil {
			return fmt.Errorf("bump updated_at: %w", err)
		}

		var updated dbschema.Conversation
		if err := tx.Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_number ASC")
		}).First(&updated, entity.ID).Error; err != nil {
			return fmt.Errorf("reload conversation: %w", err)
		}
		result = updated.EtoD()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// History implements conversation.Repository.
func (repo *ConversationGormRepository) History(ctx context.Context, key conversation.Key) ([]conversation.Message, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND bot_name = ?", key.UserID, key.Kind, key.BotName).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation for history: %w", err)
	}

	var rows []dbschema.Message
	if err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", entity.ID).
		Order("sequence_number ASC").
		Find(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	return functional.Map(rows, func(row dbschema.Message) conversation.Message {
		return row.EtoD()
	}), nil
}
