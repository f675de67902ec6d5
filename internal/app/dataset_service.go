package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"datachat/internal/model"
	"datachat/internal/pkg/tabular"
)

const datasetPreviewRows = 5

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedFile = errors.New("only .xlsx, .xls or .csv files are allowed")
)

type DatasetStore interface {
	Create(dataset *model.Dataset) error
	GetByID(id string) (*model.Dataset, error)
	List() ([]model.Dataset, error)
}

// DatasetService handles dataset upload and listing. Uploaded files are
// stored under uploadDir as <uuid><ext>; a dataset whose content fails to
// parse is still accepted, with a zero row count and no preview.
type DatasetService struct {
	store     DatasetStore
	publisher ActivityPublisher
	uploadDir string
}

type UploadInput struct {
	FileName string
	Reader   io.Reader
}

type UploadResult struct {
	Dataset     model.Dataset       `json:"dataset"`
	DataPreview []map[string]string `json:"data_preview"`
}

func NewDatasetService(store DatasetStore, publisher ActivityPublisher, uploadDir string) *DatasetService {
	return &DatasetService{
		store:     store,
		publisher: publisher,
		uploadDir: uploadDir,
	}
}

func (s *DatasetService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" || input.Reader == nil {
		return nil, ErrInvalidInput
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".xlsx", ".xls", ".csv":
	default:
		return nil, ErrUnsupportedFile
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}

	id := uuid.NewString()
	filePath := filepath.Join(s.uploadDir, id+ext)
	if err := writeFile(filePath, input.Reader); err != nil {
		return nil, err
	}

	_, rowCount := tabular.Extract(filePath)

	dataset := &model.Dataset{
		ID:       id,
		FileName: fileName,
		FilePath: filePath,
		RowCount: rowCount,
	}
	if err := s.store.Create(dataset); err != nil {
		_ = os.Remove(filePath)
		return nil, err
	}

	preview := []map[string]string{}
	if table, err := tabular.Load(filePath); err == nil {
		preview = table.PreviewRecords(datasetPreviewRows)
	}

	s.publishActivity(ctx, "Uploaded Data: "+fileName)

	return &UploadResult{
		Dataset:     *dataset,
		DataPreview: preview,
	}, nil
}

func (s *DatasetService) List() ([]model.Dataset, error) {
	return s.store.List()
}

func (s *DatasetService) publishActivity(ctx context.Context, description string) {
	if s.publisher == nil {
		return
	}
	event := model.ActivityEvent{Type: model.ActivityUploadDataset, Description: description}
	_ = s.publisher.Publish(ctx, event)
}

func writeFile(path string, r io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file failed: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write upload file failed: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close upload file failed: %w", err)
	}
	return nil
}
