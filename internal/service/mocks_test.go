package service

import (
	"context"
	"sync"
	"time"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockConversationRepository mocks the ConversationRepository interface
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockMessageRepository mocks the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int, error) {
	args := m.Called(ctx, conversationID)
	return args.Int(0), args.Error(1)
}

// MockReactionRepository mocks the ReactionRepository interface
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Toggle(ctx context.Context, messageID uuid.UUID, reactionType domain.ReactionType) (*domain.Reaction, bool, error) {
	args := m.Called(ctx, messageID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Reaction), args.Bool(1), args.Error(2)
}

func (m *MockReactionRepository) ListByMessageIDs(ctx context.Context, messageIDs []uuid.UUID) ([]domain.Reaction, error) {
	args := m.Called(ctx, messageIDs)
	return args.Get(0).([]domain.Reaction), args.Error(1)
}

// MockPostRepository mocks the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) AdjustHearts(ctx context.Context, postID uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, postID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) IncrementComments(ctx context.Context, postID uuid.UUID) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.PostComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.PostComment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]domain.PostComment), args.Error(1)
}

func (m *MockCommentRepository) ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]domain.PostComment, error) {
	args := m.Called(ctx, postIDs)
	return args.Get(0).([]domain.PostComment), args.Error(1)
}

// MockPostReactionRepository mocks the PostReactionRepository interface
type MockPostReactionRepository struct {
	mock.Mock
}

func (m *MockPostReactionRepository) Toggle(ctx context.Context, postID uuid.UUID, reactionType domain.PostReactionType) (*domain.PostReaction, bool, error) {
	args := m.Called(ctx, postID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.PostReaction), args.Bool(1), args.Error(2)
}

func (m *MockPostReactionRepository) ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]domain.PostReaction, error) {
	args := m.Called(ctx, postIDs)
	return args.Get(0).([]domain.PostReaction), args.Error(1)
}

// fakeScheduler records scheduled tasks and lets tests run them synchronously
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []fakeTask
}

type fakeTask struct {
	key   string
	delay time.Duration
	fn    func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, fakeTask{key: key, delay: delay, fn: fn})
}

func (s *fakeScheduler) CancelKey(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []fakeTask
	cancelled := 0
	for _, t := range s.tasks {
		if t.key == key {
			cancelled++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return cancelled
}

func (s *fakeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

// runNext pops and runs the oldest pending task, reporting its delay
func (s *fakeScheduler) runNext() (time.Duration, bool) {
	s.mu.Lock()
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		return 0, false
	}
	task := s.tasks[0]
	s.tasks = s.tasks[1:]
	s.mu.Unlock()

	task.fn()
	return task.delay, true
}

func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
