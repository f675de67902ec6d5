package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"datachat/internal/model"
)

type TurnRepository struct {
	db *gorm.DB
}

func NewTurnRepository(db *gorm.DB) *TurnRepository {
	return &TurnRepository{db: db}
}

func (r *TurnRepository) Create(turn *model.ChatTurn) error {
	if err := r.db.Create(turn).Error; err != nil {
		return fmt.Errorf("create chat turn failed: %w", err)
	}
	return nil
}

// LatestTurnIndex returns the turn index of the newest turn recorded for the
// dataset, 0 when the dataset has no turns yet. Newest is by timestamp, so
// the next index is always "count of prior turns, plus one" under sequential
// writes.
func (r *TurnRepository) LatestTurnIndex(datasetID string) (int, error) {
	var turn model.ChatTurn
	err := r.db.Where("dataset_id = ?", datasetID).Order("created_at DESC").First(&turn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get latest turn index failed: %w", err)
	}
	return turn.TurnIndex, nil
}

func (r *TurnRepository) ListRecent(limit int) ([]model.ChatTurn, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var turns []model.ChatTurn
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&turns).Error; err != nil {
		return nil, fmt.Errorf("list chat turns failed: %w", err)
	}
	return turns, nil
}

func (r *TurnRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.ChatTurn{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count chat turns failed: %w", err)
	}
	return count, nil
}

// DeleteAllTx removes every chat turn inside the given transaction.
func (r *TurnRepository) DeleteAllTx(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&model.ChatTurn{}).Error; err != nil {
		return fmt.Errorf("delete all chat turns failed: %w", err)
	}
	return nil
}
