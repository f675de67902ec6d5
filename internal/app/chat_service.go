package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"datachat/internal/model"
)

const (
	datasetChatMaxTokens = 1500
	generalChatMaxTokens = 500
)

const (
	NextActionContinueChat   = "continue_chat"
	NextActionSearchInternet = "search_internet"
)

var (
	ErrDatasetNotFound = errors.New("structured document not found")
	ErrMessageEmpty    = errors.New("message content is empty")
)

type DatasetSearcher interface {
	Search(ctx context.Context, datasetID, query string) (string, []map[string]string, error)
}

type InternetSearcher interface {
	Search(ctx context.Context, query string) (string, map[string]string)
}

type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) string
}

type TurnStore interface {
	Create(turn *model.ChatTurn) error
	LatestTurnIndex(datasetID string) (int, error)
	ListRecent(limit int) ([]model.ChatTurn, error)
}

type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

// ChatService runs one conversation turn. The strategy is derived from the
// count of prior persisted turns for the dataset: the first turn searches
// the document itself, every later turn escalates to internet search.
type ChatService struct {
	datasets  DatasetFinder
	turns     TurnStore
	searcher  DatasetSearcher
	internet  InternetSearcher
	generator Generator
	publisher ActivityPublisher

	mu           sync.Mutex
	datasetLocks map[string]*sync.Mutex
}

type ChatInput struct {
	Message      string
	DatasetID    string
	IsPredefined bool
}

type ChatResult struct {
	Response          string `json:"response"`
	SourceDatasetName string `json:"source_document_name,omitempty"`
	NextAction        string `json:"next_action"`
}

func NewChatService(
	datasets DatasetFinder,
	turns TurnStore,
	searcher DatasetSearcher,
	internet InternetSearcher,
	generator Generator,
	publisher ActivityPublisher,
) *ChatService {
	return &ChatService{
		datasets:     datasets,
		turns:        turns,
		searcher:     searcher,
		internet:     internet,
		generator:    generator,
		publisher:    publisher,
		datasetLocks: make(map[string]*sync.Mutex),
	}
}

// Chat answers one message and persists the exchange as a single turn
// record. Generation and search failures never abort the turn; they flow
// through as the answer text. Only a missing dataset aborts before
// persistence.
func (s *ChatService) Chat(ctx context.Context, input ChatInput) (*ChatResult, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageEmpty
	}

	var result *ChatResult
	var err error
	if input.DatasetID != "" {
		result, err = s.datasetChat(ctx, input.DatasetID, message, input.IsPredefined)
	} else {
		result, err = s.generalChat(ctx, message, input.IsPredefined)
	}
	if err != nil {
		return nil, err
	}

	s.publishActivity(ctx, model.ActivityChat, "Asked: "+truncate(message, 50))
	return result, nil
}

func (s *ChatService) datasetChat(ctx context.Context, datasetID, message string, isPredefined bool) (*ChatResult, error) {
	dataset, err := s.datasets.GetByID(datasetID)
	if err != nil {
		return nil, err
	}
	if dataset == nil {
		return nil, ErrDatasetNotFound
	}

	// The read-increment-write on the turn index is serialized per dataset
	// so concurrent messages cannot claim the same index.
	unlock := s.lockDataset(datasetID)
	defer unlock()

	lastTurn, err := s.turns.LatestTurnIndex(datasetID)
	if err != nil {
		return nil, err
	}
	turnIndex := lastTurn + 1

	var answer, nextAction string
	if turnIndex == 1 {
		summary, _, searchErr := s.searcher.Search(ctx, datasetID, message)
		if searchErr != nil {
			return nil, searchErr
		}
		answer = s.generator.Generate(ctx, datasetGroundedPrompt(summary, message), datasetChatMaxTokens)
		nextAction = NextActionSearchInternet
	} else {
		summary, _ := s.internet.Search(ctx, message)
		answer = s.generator.Generate(ctx, internetFallbackPrompt(summary, message), datasetChatMaxTokens)
		nextAction = NextActionContinueChat
	}

	turn := &model.ChatTurn{
		Message:      message,
		Response:     answer,
		IsPredefined: isPredefined,
		DatasetID:    &datasetID,
		TurnIndex:    turnIndex,
	}
	if err := s.turns.Create(turn); err != nil {
		return nil, err
	}

	return &ChatResult{
		Response:          answer,
		SourceDatasetName: dataset.FileName,
		NextAction:        nextAction,
	}, nil
}

func (s *ChatService) generalChat(ctx context.Context, message string, isPredefined bool) (*ChatResult, error) {
	answer := s.generator.Generate(ctx, generalPrompt(message), generalChatMaxTokens)

	turn := &model.ChatTurn{
		Message:      message,
		Response:     answer,
		IsPredefined: isPredefined,
	}
	if err := s.turns.Create(turn); err != nil {
		return nil, err
	}

	return &ChatResult{
		Response:   answer,
		NextAction: NextActionContinueChat,
	}, nil
}

// History returns the most recent turns, newest first.
func (s *ChatService) History(limit int) ([]model.ChatTurn, error) {
	return s.turns.ListRecent(limit)
}

func (s *ChatService) lockDataset(datasetID string) func() {
	s.mu.Lock()
	lock, ok := s.datasetLocks[datasetID]
	if !ok {
		lock = &sync.Mutex{}
		s.datasetLocks[datasetID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *ChatService) publishActivity(ctx context.Context, eventType, description string) {
	if s.publisher == nil {
		return
	}
	event := model.ActivityEvent{Type: eventType, Description: description}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish activity event failed: %v", err)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
