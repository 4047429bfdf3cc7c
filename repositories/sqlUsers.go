package repositories

import (
	"context"
	"errors"

	"github.com/Jataveda/Agriconnect/db"
	"github.com/Jataveda/Agriconnect/entities"

	"gorm.io/gorm"
)

type userSQLRepository struct {
	db db.Database
}

func NewUserSQLRepository(database db.Database) UserRepository {
	return &userSQLRepository{db: database}
}

func (r *userSQLRepository) Create(ctx context.Context, user *entities.User) error {
	user.ID = newID()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	err := r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.conflict(tx, user); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent insert won between the check and the write.
		if dup := r.conflict(r.db.GetDB().WithContext(ctx), user); dup != nil {
			return dup
		}
		return ErrDuplicateUsername
	}
	return err
}

func (r *userSQLRepository) conflict(tx *gorm.DB, user *entities.User) error {
	taken, err := exists[entities.User](tx, "username = ?", user.Username)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateUsername
	}
	taken, err = exists[entities.User](tx, "email = ?", user.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	return nil
}

func (r *userSQLRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return findOne[entities.User](ctx, r.db, "id = ?", id)
}

func (r *userSQLRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return findOne[entities.User](ctx, r.db, "username = ?", username)
}

func (r *userSQLRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return findOne[entities.User](ctx, r.db, "email = ?", email)
}

func (r *userSQLRepository) GetAll(ctx context.Context) ([]entities.User, error) {
	return findMany[entities.User](ctx, r.db, "created_at ASC", "")
}

func (r *userSQLRepository) Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	return updateRow(ctx, r.db, id, func(user *entities.User) error {
		patch.Apply(user)
		user.UpdatedAt = nextStamp(user.UpdatedAt)
		return nil
	})
}
