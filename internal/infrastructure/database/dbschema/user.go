package dbschema

import (
	"converse-server/internal/domain/user"
	"converse-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the database schema for accounts.
type User struct {
	BaseModel
	PublicID     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(320);uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(150)"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(usr *user.User) *User {
	return &User{
		BaseModel: BaseModel{
			ID:        usr.ID,
			CreatedAt: usr.CreatedAt,
			UpdatedAt: usr.UpdatedAt,
		},
		PublicID:     usr.PublicID,
		Email:        usr.Email,
		Name:         usr.Name,
		PasswordHash: usr.PasswordHash,
	}
}

// EtoD converts the schema user to its domain representation.
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
