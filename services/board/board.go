package board

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"gkmslots/database/events"
	notesRepo "gkmslots/database/repository/notes"
	slotsRepo "gkmslots/database/repository/slots"
	"gkmslots/models"
	"gkmslots/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultBoardService implements BoardService on top of the slot and note
// repositories.
type DefaultBoardService struct {
	slots    slotsRepo.SlotRepository
	notes    notesRepo.NoteRepository
	notifier events.Notifier
	clock    utils.Clock
	drafts   *utils.Debouncer
	validate *validator.Validate
	logger   *zap.Logger

	mu         sync.Mutex
	lastNoteID int64
	lastWeek   string
}

// NewDefaultBoardService wires the board. draftDelay is the quiet period
// before a draft is written.
func NewDefaultBoardService(
	slots slotsRepo.SlotRepository,
	notes notesRepo.NoteRepository,
	notifier events.Notifier,
	clock utils.Clock,
	draftDelay time.Duration,
	logger *zap.Logger,
) *DefaultBoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBoardService{
		slots:    slots,
		notes:    notes,
		notifier: notifier,
		clock:    clock,
		drafts:   utils.NewDebouncer(draftDelay),
		validate: validator.New(),
		logger:   logger,
		lastWeek: utils.CurrentWeekID(clock),
	}
}

func (s *DefaultBoardService) WeekID() string {
	return utils.CurrentWeekID(s.clock)
}

func (s *DefaultBoardService) Summary(ctx context.Context) (models.WeekSummary, error) {
	slots, err := s.slots.ReadAll(ctx)
	if err != nil {
		return models.WeekSummary{}, err
	}
	return models.WeekSummary{
		WeekID: s.WeekID(),
		Booked: len(slots),
		Total:  models.TotalSlots,
	}, nil
}

func (s *DefaultBoardService) Slots(ctx context.Context) (map[string]string, error) {
	return s.slots.ReadAll(ctx)
}

func (s *DefaultBoardService) BookSlot(ctx context.Context, key, name string) error {
	name, err := s.checkBooking(key, name)
	if err != nil {
		return err
	}
	if name == "" {
		return newBoardError(CodeInvalidName, "name is required")
	}
	// Waits for a draft write already in flight so it cannot land last.
	err = s.drafts.Exclusive(key, func() error {
		return s.slots.Write(ctx, key, name)
	})
	if err != nil {
		return err
	}
	s.logger.Debug("slot booked", zap.String("key", key), zap.String("name", name))
	return nil
}

func (s *DefaultBoardService) ClearSlot(ctx context.Context, key string) error {
	if _, err := utils.ParseSlotKey(key); err != nil {
		return newBoardError(CodeInvalidSlot, err.Error())
	}
	return s.drafts.Exclusive(key, func() error {
		return s.slots.Remove(ctx, key)
	})
}

func (s *DefaultBoardService) DraftSlot(key, name string) error {
	name, err := s.checkBooking(key, name)
	if err != nil {
		return err
	}
	s.drafts.Trigger(key, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		if name == "" {
			err = s.slots.Remove(ctx, key)
		} else {
			err = s.slots.Write(ctx, key, name)
		}
		if err != nil {
			s.logger.Error("failed to save draft", zap.String("key", key), zap.Error(err))
		}
	})
	return nil
}

// checkBooking validates key and returns the trimmed name. An empty name
// passes; callers decide whether that is allowed.
func (s *DefaultBoardService) checkBooking(key, name string) (string, error) {
	if _, err := utils.ParseSlotKey(key); err != nil {
		return "", newBoardError(CodeInvalidSlot, err.Error())
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	if err := s.validate.Struct(models.BookingRequest{Name: name}); err != nil {
		return "", newBoardError(CodeInvalidName, describe(err))
	}
	return name, nil
}

func (s *DefaultBoardService) SubscribeSlots(ctx context.Context, fn func(map[string]string)) (func(), error) {
	return s.slots.Subscribe(ctx, fn)
}

func (s *DefaultBoardService) Notes(ctx context.Context) ([]models.Note, error) {
	notes, err := s.notes.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	notesRepo.SortNewestFirst(notes)
	return notes, nil
}

func (s *DefaultBoardService) AddNote(ctx context.Context, text, author string) (models.Note, error) {
	req := models.NoteRequest{
		Text:   strings.TrimSpace(text),
		Author: strings.TrimSpace(author),
	}
	if err := s.validate.Struct(req); err != nil {
		return models.Note{}, newBoardError(CodeInvalidNote, describe(err))
	}

	now := s.clock.Now()
	note := models.Note{
		ID:     s.nextNoteID(now),
		Text:   req.Text,
		Author: req.Author,
		Date:   now.Format(utils.NoteDateLayout),
	}
	if err := s.notes.Add(ctx, note); err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// nextNoteID returns now in Unix milliseconds, bumped past the previous id
// so ids stay unique and increasing within the process.
func (s *DefaultBoardService) nextNoteID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := now.UnixMilli()
	if id <= s.lastNoteID {
		id = s.lastNoteID + 1
	}
	s.lastNoteID = id
	return strconv.FormatInt(id, 10)
}

func (s *DefaultBoardService) RemoveNote(ctx context.Context, id string) error {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return newBoardError(CodeInvalidNote, "note id must be numeric")
	}
	return s.notes.Remove(ctx, id)
}

func (s *DefaultBoardService) SubscribeNotes(ctx context.Context, fn func([]models.Note)) (func(), error) {
	return s.notes.Subscribe(ctx, fn)
}

func (s *DefaultBoardService) Rollover(ctx context.Context) (string, error) {
	week := s.WeekID()

	// Reading runs the local week check.
	_, slotsErr := s.slots.ReadAll(ctx)
	_, notesErr := s.notes.ReadAll(ctx)
	if err := errors.Join(slotsErr, notesErr); err != nil {
		return week, err
	}

	s.mu.Lock()
	previous := s.lastWeek
	s.lastWeek = week
	s.mu.Unlock()

	if previous != week {
		s.logger.Info("board rolled over to a new week",
			zap.String("previousWeek", previous),
			zap.String("week", week))
	}

	for _, topic := range []string{utils.SlotsTopic, utils.NotesTopic} {
		if err := s.notifier.Publish(ctx, topic); err != nil {
			s.logger.Warn("failed to announce rollover", zap.String("topic", topic), zap.Error(err))
		}
	}
	return week, nil
}

func (s *DefaultBoardService) Close() {
	s.drafts.Stop()
}
