package repositories

import (
	"context"

	"sacco-ledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// backupRepository implements BackupRepository interface
type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a new backup repository
func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepository{db: db}
}

// ReplaceCollections overwrites the ledger collections from a snapshot in
// one transaction. Nil collections are left untouched.
func (r *backupRepository) ReplaceCollections(ctx context.Context, snapshot *models.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if snapshot.Members != nil {
			if err := replace(tx, &models.Member{}, snapshot.Members); err != nil {
				return err
			}
		}
		if snapshot.Loans != nil {
			if err := replace(tx, &models.Loan{}, snapshot.Loans); err != nil {
				return err
			}
		}
		if snapshot.Payments != nil {
			if err := replace(tx, &models.Payment{}, snapshot.Payments); err != nil {
				return err
			}
		}
		if snapshot.Savings != nil {
			if err := replace(tx, &models.Saving{}, snapshot.Savings); err != nil {
				return err
			}
		}
		if snapshot.Withdrawals != nil {
			if err := replace(tx, &models.Withdrawal{}, snapshot.Withdrawals); err != nil {
				return err
			}
		}
		if snapshot.AuditLog != nil {
			if err := replace(tx, &models.AuditLog{}, snapshot.AuditLog); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset empties every collection
func (r *backupRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Member{},
			&models.Loan{},
			&models.Payment{},
			&models.Saving{},
			&models.Withdrawal{},
			&models.AuditLog{},
			&models.Setting{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// replace deletes all rows of a model and inserts the given ones
func replace[T any](tx *gorm.DB, model interface{}, rows []T) error {
	if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(rows).Error
}
