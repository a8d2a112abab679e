package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/auraleaf/aura-api/internal/companion"
	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/auraleaf/aura-api/internal/lexicon"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CompanionOptions are the orchestrator's timing and validation knobs
type CompanionOptions struct {
	// MaxMessageLength caps user message content, in runes
	MaxMessageLength int
	// ReplyDelay is the minimum simulated thinking time before a reply
	ReplyDelay time.Duration
	// ReplyJitter widens the thinking time uniformly: delay ∈ [ReplyDelay, ReplyDelay+ReplyJitter)
	ReplyJitter time.Duration
	// FollowupDelay separates the coping-strategy follow-up from the reply
	FollowupDelay time.Duration
	// ReplyTimeout bounds async persistence so a hung store cannot leave the
	// conversation stuck in the responding state
	ReplyTimeout time.Duration
}

// CompanionService is the stateful conversation orchestrator. It owns the
// current conversation, serializes user submissions against in-flight
// response generation, and schedules the delayed reply and follow-up tasks.
type CompanionService struct {
	convRepo     domain.ConversationRepository
	messageRepo  domain.MessageRepository
	reactionRepo domain.ReactionRepository
	gen          *companion.Generator
	sched        Scheduler
	opts         CompanionOptions
	now          func() time.Time

	mu         sync.Mutex
	current    *domain.Conversation
	responding map[uuid.UUID]bool
}

// NewCompanionService creates the conversation orchestrator
func NewCompanionService(
	convRepo domain.ConversationRepository,
	messageRepo domain.MessageRepository,
	reactionRepo domain.ReactionRepository,
	gen *companion.Generator,
	sched Scheduler,
	opts CompanionOptions,
) *CompanionService {
	if opts.MaxMessageLength <= 0 {
		opts.MaxMessageLength = 500
	}
	if opts.ReplyTimeout <= 0 {
		opts.ReplyTimeout = 10 * time.Second
	}
	return &CompanionService{
		convRepo:     convRepo,
		messageRepo:  messageRepo,
		reactionRepo: reactionRepo,
		gen:          gen,
		sched:        sched,
		opts:         opts,
		now:          time.Now,
		responding:   make(map[uuid.UUID]bool),
	}
}

// Current returns the active conversation, or nil when none has been started
func (s *CompanionService) Current() *domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// IsResponding reports whether a reply is in flight for the active conversation
func (s *CompanionService) IsResponding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	return s.responding[s.current.ID]
}

// EnsureConversation returns the active conversation, creating one lazily on
// first use. Idempotent while a conversation is active: consecutive calls
// without an intervening StartNewConversation yield the same conversation.
func (s *CompanionService) EnsureConversation(ctx context.Context, firstName string) (*domain.Conversation, error) {
	s.mu.Lock()
	if s.current != nil {
		conv := s.current
		s.mu.Unlock()
		return conv, nil
	}
	s.mu.Unlock()

	return s.createConversation(ctx, firstName)
}

// StartNewConversation supersedes the active conversation. The old
// conversation is not deleted and stays queryable; any reply or follow-up
// still pending against it is cancelled rather than allowed to land against
// a stale thread.
func (s *CompanionService) StartNewConversation(ctx context.Context, firstName string) (*domain.Conversation, error) {
	s.mu.Lock()
	old := s.current
	s.current = nil
	s.mu.Unlock()

	if old != nil {
		if n := s.sched.CancelKey(old.ID.String()); n > 0 {
			log.Info().
				Str("conversation_id", old.ID.String()).
				Int("cancelled", n).
				Msg("cancelled pending tasks for superseded conversation")
		}
		s.mu.Lock()
		delete(s.responding, old.ID)
		s.mu.Unlock()
	}

	return s.createConversation(ctx, firstName)
}

// Resume attaches the orchestrator to an existing conversation, e.g. after a
// restart. The welcome message is only injected when the conversation is
// still empty.
func (s *CompanionService) Resume(ctx context.Context, conversationID uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convRepo.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	s.mu.Lock()
	s.current = conv
	s.mu.Unlock()

	count, err := s.messageRepo.CountByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	if count == 0 {
		if err := s.injectWelcome(ctx, conv, ""); err != nil {
			return nil, err
		}
	}

	return conv, nil
}

// SubmitUserMessage validates and persists a user message, then schedules the
// companion reply after a simulated thinking delay. The user write completes
// before any response generation begins; submissions are rejected while a
// reply is in flight.
func (s *CompanionService) SubmitUserMessage(ctx context.Context, firstName, text string) (*domain.Message, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > s.opts.MaxMessageLength {
		return nil, domain.ErrMessageTooLong
	}

	conv, err := s.EnsureConversation(ctx, firstName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.responding[conv.ID] {
		s.mu.Unlock()
		return nil, domain.ErrResponseInFlight
	}
	s.responding[conv.ID] = true
	s.mu.Unlock()

	userMsg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Content:        content,
		IsUser:         true,
		MessageType:    domain.MessageNormal,
		CreatedAt:      s.now(),
		Reactions:      []domain.Reaction{},
	}
	if err := s.messageRepo.Create(ctx, userMsg); err != nil {
		// re-enable input: a failed submission must not leave the
		// conversation stuck responding
		s.clearResponding(conv.ID)
		return nil, fmt.Errorf("%w: failed to save user message: %v", domain.ErrStoreUnavailable, err)
	}

	delay := s.gen.UniformDelay(s.opts.ReplyDelay, s.opts.ReplyJitter)
	s.sched.Schedule(conv.ID.String(), delay, func() {
		s.deliverReply(conv.ID, firstName, content)
	})

	return userMsg, nil
}

// History returns the active conversation's messages in replay order with
// reactions fanned in. No active conversation yields an empty list.
func (s *CompanionService) History(ctx context.Context) ([]domain.Message, error) {
	conv := s.Current()
	if conv == nil {
		return []domain.Message{}, nil
	}

	messages, err := s.messageRepo.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list messages: %v", domain.ErrStoreUnavailable, err)
	}

	ids := make([]uuid.UUID, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	reactions, err := s.reactionRepo.ListByMessageIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list reactions: %v", domain.ErrStoreUnavailable, err)
	}

	byMessage := make(map[uuid.UUID][]domain.Reaction)
	for _, r := range reactions {
		byMessage[r.MessageID] = append(byMessage[r.MessageID], r)
	}
	for i := range messages {
		if rs := byMessage[messages[i].ID]; rs != nil {
			messages[i].Reactions = rs
		} else {
			messages[i].Reactions = []domain.Reaction{}
		}
	}

	return messages, nil
}

// ToggleReaction flips the (message, reactionType) reaction: present becomes
// absent and vice versa. The repository toggle is atomic, so concurrent
// toggles on the same pair cannot produce duplicates.
func (s *CompanionService) ToggleReaction(ctx context.Context, messageID uuid.UUID, reactionType domain.ReactionType) (*domain.Reaction, bool, error) {
	if !domain.ValidReactionType(reactionType) {
		return nil, false, domain.ErrInvalidReaction
	}

	reaction, added, err := s.reactionRepo.Toggle(ctx, messageID, reactionType)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to toggle reaction: %v", domain.ErrStoreUnavailable, err)
	}
	return reaction, added, nil
}

// PostResourceList persists the professional-resource catalog as a resource
// message in the active conversation
func (s *CompanionService) PostResourceList(ctx context.Context, firstName string) (*domain.Message, error) {
	conv, err := s.EnsureConversation(ctx, firstName)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Content:        s.gen.ResourceListMessage(),
		IsUser:         false,
		MessageType:    domain.MessageResource,
		CreatedAt:      s.now(),
		Reactions:      []domain.Reaction{},
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("%w: failed to save resource message: %v", domain.ErrStoreUnavailable, err)
	}
	return msg, nil
}

func (s *CompanionService) createConversation(ctx context.Context, firstName string) (*domain.Conversation, error) {
	now := s.now()
	conv := &domain.Conversation{
		ID:        uuid.New(),
		SessionID: domain.NewSessionID(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("%w: failed to create conversation: %v", domain.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	// another caller may have won the race; keep the first one active
	if s.current != nil {
		conv = s.current
		s.mu.Unlock()
		return conv, nil
	}
	s.current = conv
	s.mu.Unlock()

	if err := s.injectWelcome(ctx, conv, firstName); err != nil {
		return nil, err
	}

	return conv, nil
}

// injectWelcome persists the one-time disclaimer message for a fresh thread
func (s *CompanionService) injectWelcome(ctx context.Context, conv *domain.Conversation, firstName string) error {
	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Content:        s.gen.WelcomeMessage(firstName),
		IsUser:         false,
		MessageType:    domain.MessageWarning,
		CreatedAt:      s.now(),
		Reactions:      []domain.Reaction{},
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("%w: failed to save welcome message: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// deliverReply runs on the scheduler after the simulated thinking delay. It
// generates and persists the companion reply, always clears the responding
// flag, and independently schedules the optional coping-strategy follow-up.
func (s *CompanionService) deliverReply(conversationID uuid.UUID, firstName, userText string) {
	defer s.clearResponding(conversationID)

	reply := s.gen.Generate(userText, firstName)

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ReplyTimeout)
	defer cancel()

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Content:        reply.Content,
		IsUser:         false,
		MessageType:    reply.Type,
		CreatedAt:      s.now(),
		Reactions:      []domain.Reaction{},
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		log.Error().Err(err).
			Str("conversation_id", conversationID.String()).
			Msg("failed to save companion reply")
		return
	}

	if err := s.convRepo.Touch(ctx, conversationID, s.now()); err != nil {
		log.Error().Err(err).
			Str("conversation_id", conversationID.String()).
			Msg("failed to touch conversation")
	}

	// crisis replies never get a playful follow-up
	if reply.Type == domain.MessageWarning {
		return
	}

	if s.gen.ShouldOfferStrategy() {
		theme := s.gen.ThemeOf(userText)
		s.sched.Schedule(conversationID.String(), s.opts.FollowupDelay, func() {
			s.deliverStrategy(conversationID, theme)
		})
	}
}

// deliverStrategy persists the coping-strategy follow-up. It is not gated by
// the responding flag, so it may interleave with a later exchange.
func (s *CompanionService) deliverStrategy(conversationID uuid.UUID, theme lexicon.Theme) {
	content, ok := s.gen.StrategyMessage(theme)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ReplyTimeout)
	defer cancel()

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Content:        content,
		IsUser:         false,
		MessageType:    domain.MessageResource,
		CreatedAt:      s.now(),
		Reactions:      []domain.Reaction{},
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		log.Error().Err(err).
			Str("conversation_id", conversationID.String()).
			Msg("failed to save strategy message")
	}
}

func (s *CompanionService) clearResponding(conversationID uuid.UUID) {
	s.mu.Lock()
	delete(s.responding, conversationID)
	s.mu.Unlock()
}
