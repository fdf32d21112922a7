package bot

import (
	"gorm.io/gorm"

	"spinnerbot/internal/models"
)

// gormStore is the database-backed Store used in production.
type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle in the engine's Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) BotByUserID(userID uint) (*models.BotConfig, error) {
	var cfg models.BotConfig
	if err := s.db.Where("user_id = ?", userID).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *gormStore) SaveBot(cfg *models.BotConfig) error {
	return s.db.Save(cfg).Error
}

func (s *gormStore) UserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) CreateTransaction(tx *models.Transaction) error {
	return s.db.Create(tx).Error
}

func (s *gormStore) ActiveBotUserIDs() ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.BotConfig{}).
		Where("is_active = ?", true).
		Pluck("user_id", &ids).Error
	return ids, err
}
