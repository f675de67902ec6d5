package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"datachat/internal/cache"
	"datachat/internal/model"
	"datachat/internal/repository"
)

const recentActivityLimit = 10

// SystemService serves system statistics and the bulk clear. The clear runs
// as one database transaction over both domain tables, so no partial clear
// is ever visible; file removal and cache invalidation follow the commit.
type SystemService struct {
	db           *gorm.DB
	datasetRepo  *repository.DatasetRepository
	turnRepo     *repository.TurnRepository
	activityRepo *repository.ActivityRepository
	tableCache   *cache.TableCache
	publisher    ActivityPublisher
	uploadDir    string
}

type SystemStats struct {
	TotalDatasets  int64                 `json:"total_structured_documents"`
	TotalChats     int64                 `json:"total_chats"`
	RecentActivity []model.ActivityEvent `json:"recent_activity"`
}

func NewSystemService(
	db *gorm.DB,
	datasetRepo *repository.DatasetRepository,
	turnRepo *repository.TurnRepository,
	activityRepo *repository.ActivityRepository,
	tableCache *cache.TableCache,
	publisher ActivityPublisher,
	uploadDir string,
) *SystemService {
	return &SystemService{
		db:           db,
		datasetRepo:  datasetRepo,
		turnRepo:     turnRepo,
		activityRepo: activityRepo,
		tableCache:   tableCache,
		publisher:    publisher,
		uploadDir:    uploadDir,
	}
}

func (s *SystemService) Stats() (*SystemStats, error) {
	totalDatasets, err := s.datasetRepo.Count()
	if err != nil {
		return nil, err
	}
	totalChats, err := s.turnRepo.Count()
	if err != nil {
		return nil, err
	}
	recent, err := s.activityRepo.ListRecent(recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &SystemStats{
		TotalDatasets:  totalDatasets,
		TotalChats:     totalChats,
		RecentActivity: recent,
	}, nil
}

// ClearAll wipes every dataset and chat turn, then resets the upload
// directory and drops cached tables.
func (s *SystemService) ClearAll(ctx context.Context) error {
	datasets, err := s.datasetRepo.List()
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.datasetRepo.DeleteAllTx(tx); err != nil {
			return err
		}
		return s.turnRepo.DeleteAllTx(tx)
	})
	if err != nil {
		return fmt.Errorf("clear all data failed: %w", err)
	}

	if err := os.RemoveAll(s.uploadDir); err == nil {
		_ = os.MkdirAll(s.uploadDir, 0o755)
	}

	if s.tableCache != nil {
		for _, dataset := range datasets {
			_ = s.tableCache.Invalidate(ctx, dataset.ID)
		}
	}

	if s.publisher != nil {
		event := model.ActivityEvent{
			Type:        model.ActivityClearAll,
			Description: "Cleared all structured documents and chat history",
		}
		_ = s.publisher.Publish(ctx, event)
	}
	return nil
}
