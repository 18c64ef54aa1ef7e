package config

import (
	"fmt"
	"log"

	"sacco-ledger/internal/adapters/persistence/models"
	"sacco-ledger/internal/core/domain"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Seeding is idempotent: defaults are written
// only where nothing exists yet, existing data is never overwritten.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDefaultRole(); err != nil {
		return err
	}
	if err := s.healMemberDisplayIDs(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDefaultRole seeds the singleton userRole setting if absent
func (s *Seeder) seedDefaultRole() error {
	var count int64
	if err := s.db.Model(&models.Setting{}).
		Where("`key` = ?", models.SettingUserRole).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	setting := &models.Setting{
		Key:   models.SettingUserRole,
		Value: domain.DefaultRole,
	}
	if err := s.db.Create(setting).Error; err != nil {
		return err
	}

	log.Printf("✅ Default role seeded: %s", domain.DefaultRole)
	return nil
}

// healMemberDisplayIDs assigns a sequential fallback display ID to any
// member whose ID number is blank, persisting the fix
func (s *Seeder) healMemberDisplayIDs() error {
	var members []*models.Member
	if err := s.db.Order("created_at ASC").Find(&members).Error; err != nil {
		return err
	}

	var taken int64
	if err := s.db.Model(&models.Member{}).
		Where("id_no LIKE ?", "MEM-%").
		Count(&taken).Error; err != nil {
		return err
	}

	next := int(taken) + 1
	healed := 0
	for _, m := range members {
		if m.IDNo != "" {
			continue
		}
		m.IDNo = fmt.Sprintf("MEM-%04d", next)
		next++
		if err := s.db.Model(&models.Member{}).
			Where("id = ?", m.ID).
			Update("id_no", m.IDNo).Error; err != nil {
			return err
		}
		healed++
	}

	if healed > 0 {
		log.Printf("✅ Assigned fallback display IDs to %d member(s)", healed)
	}
	return nil
}
