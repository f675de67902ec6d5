package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"datachat/internal/model"
)

type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

func (r *DatasetRepository) Create(dataset *model.Dataset) error {
	if err := r.db.Create(dataset).Error; err != nil {
		return fmt.Errorf("create dataset failed: %w", err)
	}
	return nil
}

// GetByID returns nil (no error) when the dataset does not exist.
func (r *DatasetRepository) GetByID(id string) (*model.Dataset, error) {
	var dataset model.Dataset
	if err := r.db.Where("id = ?", id).First(&dataset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dataset failed: %w", err)
	}
	return &dataset, nil
}

func (r *DatasetRepository) List() ([]model.Dataset, error) {
	var datasets []model.Dataset
	if err := r.db.Order("created_at DESC").Find(&datasets).Error; err != nil {
		return nil, fmt.Errorf("list datasets failed: %w", err)
	}
	return datasets, nil
}

func (r *DatasetRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Dataset{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count datasets failed: %w", err)
	}
	return count, nil
}

// DeleteAllTx removes every dataset inside the given transaction.
func (r *DatasetRepository) DeleteAllTx(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&model.Dataset{}).Error; err != nil {
		return fmt.Errorf("delete all datasets failed: %w", err)
	}
	return nil
}
