package repositories

import (
	"context"
	"errors"

	"github.com/Jataveda/Agriconnect/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewSQLStore wires every repository to the same gorm connection. It works
// for both the Postgres and the SQLite driver.
func NewSQLStore(database db.Database) *Store {
	return &Store{
		Users:      NewUserSQLRepository(database),
		Vehicles:   NewVehicleSQLRepository(database),
		Produce:    NewProduceSQLRepository(database),
		Pesticides: NewPesticideSQLRepository(database),
		Orders:     NewOrderSQLRepository(database),
		Messages:   NewMessageSQLRepository(database),
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func findOne[T any](ctx context.Context, database db.Database, query string, args ...any) (*T, error) {
	var row T
	if err := database.GetDB().WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// findMany returns rows in creation order, ties broken by id so the order is
// stable across calls. An empty query selects everything.
func findMany[T any](ctx context.Context, database db.Database, orderBy, query string, args ...any) ([]T, error) {
	rows := make([]T, 0)
	tx := database.GetDB().WithContext(ctx).Order(orderBy).Order("id ASC")
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// updateRow loads the row under a write lock, lets mutate change it and saves
// the result in the same transaction. An error from mutate aborts the update.
func updateRow[T any](ctx context.Context, database db.Database, id string, mutate func(row *T) error) (*T, error) {
	var row T
	err := database.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error; err != nil {
			return err
		}
		if err := mutate(&row); err != nil {
			return err
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func deleteRow[T any](ctx context.Context, database db.Database, id string) (bool, error) {
	res := database.GetDB().WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func exists[T any](tx *gorm.DB, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(new(T)).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
