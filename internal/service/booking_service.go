package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"interviewprep/internal/errors"
	"interviewprep/internal/model"
	"interviewprep/internal/repository"
)

// FeedbackResult is what a student sees after an interviewer left feedback.
type FeedbackResult struct {
	Feedback    string `json:"feedback"`
	Rating      int    `json:"rating"`
	Interviewer string `json:"interviewer"`
	Company     string `json:"company"`
}

// BookingService couples slot availability to the interview lifecycle. It is
// the only service with a cross-entity invariant: a slot must be unavailable
// exactly while an upcoming interview derived from it exists.
type BookingService interface {
	AvailableSlots(ctx context.Context, filter model.SlotFilter) ([]model.InterviewSlot, error)
	Book(ctx context.Context, userID, slotID uuid.UUID) (*model.Interview, error)
	Cancel(ctx context.Context, interviewID, userID uuid.UUID) error
	CancelUpcomingForUser(ctx context.Context, userID uuid.UUID) (int, error)
	UserInterviews(ctx context.Context, userID uuid.UUID) ([]model.Interview, error)
	SubmitFeedback(ctx context.Context, interviewID uuid.UUID, feedback string, rating int) error
	GetFeedback(ctx context.Context, interviewID, callerID uuid.UUID) (*FeedbackResult, error)
	Stats(ctx context.Context) (*model.InterviewStats, error)
}

type bookingService struct {
	slotRepo      repository.SlotRepository
	interviewRepo repository.InterviewRepository
	eventRepo     repository.EventRepository
	// Mutex map for per-slot locking; serializes the availability
	// check-then-flip against concurrent bookings of the same slot.
	slotMutexes sync.Map
	// Channel for async event logging
	eventChannel chan model.InterviewEvent
}

// NewBookingService creates a new booking service.
func NewBookingService(
	slotRepo repository.SlotRepository,
	interviewRepo repository.InterviewRepository,
	eventRepo repository.EventRepository,
) BookingService {
	service := &bookingService{
		slotRepo:      slotRepo,
		interviewRepo: interviewRepo,
		eventRepo:     eventRepo,
		eventChannel:  make(chan model.InterviewEvent, 100),
	}

	// Start async event worker
	go service.eventWorker(context.Background())

	return service
}

// getMutex returns a mutex for a specific slot ID.
func (s *bookingService) getMutex(slotID uuid.UUID) *sync.Mutex {
	value, _ := s.slotMutexes.LoadOrStore(slotID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// eventWorker persists interview events in batches.
func (s *bookingService) eventWorker(ctx context.Context) {
	batch := make([]model.InterviewEvent, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-s.eventChannel:
			if !ok {
				if len(batch) > 0 {
					_ = s.eventRepo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, event)
			if len(batch) >= 10 {
				_ = s.eventRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = s.eventRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// recordEvent logs an interview event asynchronously.
func (s *bookingService) recordEvent(ctx context.Context, interviewID uuid.UUID, action model.EventAction, detail string) {
	event := model.InterviewEvent{
		InterviewID: interviewID,
		Action:      action,
		Detail:      detail,
	}

	// Non-blocking send; fall back to a synchronous write when full.
	select {
	case s.eventChannel <- event:
	default:
		_ = s.eventRepo.Create(ctx, &event)
	}
}

// AvailableSlots returns available slots matching the (conjunctive) filters.
func (s *bookingService) AvailableSlots(ctx context.Context, filter model.SlotFilter) ([]model.InterviewSlot, error) {
	return s.slotRepo.ListAvailable(ctx, filter)
}

// Book reserves the slot and creates the derived interview. The slot is
// addressed by ID, so there is no ambiguity about which offering is taken.
func (s *bookingService) Book(ctx context.Context, userID, slotID uuid.UUID) (*model.Interview, error) {
	mutex := s.getMutex(slotID)
	mutex.Lock()
	defer mutex.Unlock()

	slot, err := s.slotRepo.FindByIDForUpdate(ctx, slotID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("find slot: %w", err)
	}

	if !slot.Available {
		return nil, errors.ErrSlotUnavailable
	}

	interview := &model.Interview{
		ID:                 uuid.New(),
		UserID:             userID,
		SlotID:             slot.ID,
		InterviewerID:      slot.InterviewerID,
		InterviewerName:    slot.InterviewerName,
		InterviewerCompany: slot.InterviewerCompany,
		Type:               slot.Type,
		Domain:             slot.Domain,
		Profile:            slot.Profile,
		Date:               slot.Date,
		Time:               slot.Time,
		Duration:           slot.Duration,
		Status:             model.InterviewStatusUpcoming,
		PaymentStatus:      model.PaymentStatusPaid, // no real gateway
		MeetingLink:        fmt.Sprintf("https://meet.google.com/mock-interview-%s", uuid.New().String()[:8]),
		Price:              slot.Price,
	}

	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	if err := s.slotRepo.SetAvailability(ctx, slot.ID, false); err != nil {
		// the reservation failed; do not leave an active interview behind
		interview.Status = model.InterviewStatusCancelled
		_ = s.interviewRepo.Update(ctx, interview)
		return nil, fmt.Errorf("reserve slot: %w", err)
	}

	s.recordEvent(ctx, interview.ID, model.EventBooked, "")

	return interview, nil
}

// Cancel flips the interview to cancelled and restores the originating slot.
// Cancelling an already-cancelled interview still succeeds without touching
// the slot, which may have been rebooked since.
func (s *bookingService) Cancel(ctx context.Context, interviewID, userID uuid.UUID) error {
	interview, err := s.interviewRepo.FindByID(ctx, interviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrInterviewNotFound
		}
		return fmt.Errorf("find interview: %w", err)
	}

	if interview.UserID != userID {
		return errors.ErrAccessDenied
	}

	return s.cancel(ctx, interview, "")
}

func (s *bookingService) cancel(ctx context.Context, interview *model.Interview, detail string) error {
	// only the cancel that performs the transition may restore the slot
	if interview.Status == model.InterviewStatusCancelled {
		return nil
	}

	interview.Status = model.InterviewStatusCancelled
	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return fmt.Errorf("update interview: %w", err)
	}

	if err := s.slotRepo.SetAvailability(ctx, interview.SlotID, true); err != nil {
		return fmt.Errorf("restore slot: %w", err)
	}

	s.recordEvent(ctx, interview.ID, model.EventCancelled, detail)
	return nil
}

// CancelUpcomingForUser cancels every upcoming interview of a user, restoring
// the slots. Used when an account is deleted so no orphaned active bookings
// survive.
func (s *bookingService) CancelUpcomingForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	upcoming, err := s.interviewRepo.ListByUserAndStatus(ctx, userID, model.InterviewStatusUpcoming)
	if err != nil {
		return 0, fmt.Errorf("list upcoming interviews: %w", err)
	}

	cancelled := 0
	for i := range upcoming {
		if err := s.cancel(ctx, &upcoming[i], "account deleted"); err != nil {
			return cancelled, err
		}
		cancelled++
	}
	return cancelled, nil
}

// UserInterviews lists a user's interviews in insertion order.
func (s *bookingService) UserInterviews(ctx context.Context, userID uuid.UUID) ([]model.Interview, error) {
	return s.interviewRepo.ListByUser(ctx, userID)
}

// SubmitFeedback records interviewer feedback. Only an upcoming interview can
// transition to completed; feedback on a cancelled or already completed one is
// rejected with a typed reason.
func (s *bookingService) SubmitFeedback(ctx context.Context, interviewID uuid.UUID, feedback string, rating int) error {
	if rating < 1 || rating > 5 {
		return errors.ErrInvalidRating
	}

	interview, err := s.interviewRepo.FindByID(ctx, interviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrInterviewNotFound
		}
		return fmt.Errorf("find interview: %w", err)
	}

	if interview.Status != model.InterviewStatusUpcoming {
		return errors.ErrInterviewNotUpcoming
	}

	interview.Feedback = &feedback
	interview.Rating = &rating
	interview.Status = model.InterviewStatusCompleted

	if err := s.interviewRepo.Update(ctx, interview); err != nil {
		return fmt.Errorf("update interview: %w", err)
	}

	s.recordEvent(ctx, interview.ID, model.EventFeedback, "")
	return nil
}

// GetFeedback returns feedback to the interview's owner once it exists.
func (s *bookingService) GetFeedback(ctx context.Context, interviewID, callerID uuid.UUID) (*FeedbackResult, error) {
	interview, err := s.interviewRepo.FindByID(ctx, interviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("find interview: %w", err)
	}

	if interview.UserID != callerID {
		return nil, errors.ErrAccessDenied
	}

	if interview.Feedback == nil {
		return nil, errors.ErrFeedbackNotAvailable
	}

	rating := 0
	if interview.Rating != nil {
		rating = *interview.Rating
	}

	return &FeedbackResult{
		Feedback:    *interview.Feedback,
		Rating:      rating,
		Interviewer: interview.InterviewerName,
		Company:     interview.InterviewerCompany,
	}, nil
}

// Stats aggregates interview counts and paid revenue.
func (s *bookingService) Stats(ctx context.Context) (*model.InterviewStats, error) {
	return s.interviewRepo.Stats(ctx)
}
