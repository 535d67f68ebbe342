package userrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"converse-server/internal/domain/user"
	"converse-server/internal/infrastructure/database/dbschema"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) Create(ctx context.Context, usr *user.User) error {
	entity := dbschema.NewSchemaUser(usr)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	usr.ID = entity.ID
	usr.CreatedAt = entity.CreatedAt
	usr.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *UserGormRepository) FindByPublicID(ctx context.Context, publicID string) (*user.User, error) {
	return repo.findOne(ctx, "public_id = ?", publicID)
}

func (repo *UserGormRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).Where(query, arg).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return entity.EtoD(), nil
}
