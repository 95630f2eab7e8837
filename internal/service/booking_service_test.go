package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"interviewprep/internal/errors"
	"interviewprep/internal/model"
)

// fakeSlotRepository is an in-memory SlotRepository. The booking flow mutates
// slot state, so a stateful fake beats expectation mocks here.
type fakeSlotRepository struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*model.InterviewSlot
	order []uuid.UUID
	// when set, SetAvailability fails with this error
	setAvailabilityErr error
}

func newFakeSlotRepository() *fakeSlotRepository {
	return &fakeSlotRepository{slots: make(map[uuid.UUID]*model.InterviewSlot)}
}

func (f *fakeSlotRepository) Create(ctx context.Context, slot *model.InterviewSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	copied := *slot
	f.slots[slot.ID] = &copied
	f.order = append(f.order, slot.ID)
	return nil
}

func (f *fakeSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InterviewSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeSlotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InterviewSlot, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeSlotRepository) ListAvailable(ctx context.Context, filter model.SlotFilter) ([]model.InterviewSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.InterviewSlot
	for _, id := range f.order {
		slot := f.slots[id]
		if !slot.Available {
			continue
		}
		if filter.Type != "" && slot.Type != filter.Type {
			continue
		}
		if filter.Domain != "" && slot.Domain != filter.Domain {
			continue
		}
		if filter.Profile != "" && slot.Profile != filter.Profile {
			continue
		}
		if filter.Date != nil {
			y1, m1, d1 := slot.Date.Date()
			y2, m2, d2 := filter.Date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		out = append(out, *slot)
	}
	return out, nil
}

func (f *fakeSlotRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setAvailabilityErr != nil {
		return f.setAvailabilityErr
	}
	slot, ok := f.slots[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	slot.Available = available
	return nil
}

// fakeInterviewRepository is an in-memory InterviewRepository.
type fakeInterviewRepository struct {
	mu         sync.Mutex
	interviews map[uuid.UUID]*model.Interview
	order      []uuid.UUID
}

func newFakeInterviewRepository() *fakeInterviewRepository {
	return &fakeInterviewRepository{interviews: make(map[uuid.UUID]*model.Interview)}
}

func (f *fakeInterviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	copied := *interview
	f.interviews[interview.ID] = &copied
	f.order = append(f.order, interview.ID)
	return nil
}

func (f *fakeInterviewRepository) Update(ctx context.Context, interview *model.Interview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.interviews[interview.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *interview
	f.interviews[interview.ID] = &copied
	return nil
}

func (f *fakeInterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	interview, ok := f.interviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *interview
	return &copied, nil
}

func (f *fakeInterviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Interview
	for _, id := range f.order {
		if f.interviews[id].UserID == userID {
			out = append(out, *f.interviews[id])
		}
	}
	return out, nil
}

func (f *fakeInterviewRepository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status model.InterviewStatus) ([]model.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Interview
	for _, id := range f.order {
		iv := f.interviews[id]
		if iv.UserID == userID && iv.Status == status {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepository) InterviewerAggregates(ctx context.Context, interviewerID uuid.UUID) (int64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var completed int64
	var sum, n float64
	for _, iv := range f.interviews {
		if iv.InterviewerID != interviewerID {
			continue
		}
		if iv.Status == model.InterviewStatusCompleted {
			completed++
		}
		if iv.Rating != nil {
			sum += float64(*iv.Rating)
			n++
		}
	}
	avg := 0.0
	if n > 0 {
		avg = sum / n
	}
	return completed, avg, nil
}

func (f *fakeInterviewRepository) Stats(ctx context.Context) (*model.InterviewStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &model.InterviewStats{TotalRevenue: decimal.Zero}
	for _, iv := range f.interviews {
		stats.Total++
		switch iv.Status {
		case model.InterviewStatusUpcoming:
			stats.Upcoming++
		case model.InterviewStatusCompleted:
			stats.Completed++
		case model.InterviewStatusCancelled:
			stats.Cancelled++
		}
		if iv.PaymentStatus == model.PaymentStatusPaid {
			stats.TotalRevenue = stats.TotalRevenue.Add(iv.Price)
		}
	}
	return stats, nil
}

// fakeEventRepository records events synchronously.
type fakeEventRepository struct {
	mu     sync.Mutex
	events []model.InterviewEvent
}

func (f *fakeEventRepository) Create(ctx context.Context, event *model.InterviewEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventRepository) CreateBatch(ctx context.Context, events []model.InterviewEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeEventRepository) snapshot() []model.InterviewEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.InterviewEvent(nil), f.events...)
}

func newTestBookingService() (BookingService, *fakeSlotRepository, *fakeInterviewRepository) {
	slotRepo := newFakeSlotRepository()
	interviewRepo := newFakeInterviewRepository()
	return NewBookingService(slotRepo, interviewRepo, &fakeEventRepository{}), slotRepo, interviewRepo
}

func seedSlot(t *testing.T, repo *fakeSlotRepository, mutate func(*model.InterviewSlot)) *model.InterviewSlot {
	t.Helper()
	slot := &model.InterviewSlot{
		InterviewerID:      uuid.New(),
		InterviewerName:    "Sarah Chen",
		InterviewerCompany: "Google",
		Date:               time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		Time:               "2:00 PM",
		Duration:           60,
		Price:              decimal.RequireFromString("999.00"),
		Type:               "technical",
		Domain:             "backend",
		Profile:            "sde",
		Available:          true,
	}
	if mutate != nil {
		mutate(slot)
	}
	require.NoError(t, repo.Create(context.Background(), slot))
	return slot
}

func TestBookingService_Book(t *testing.T) {
	ctx := context.Background()

	t.Run("booking copies slot fields and reserves the slot", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		userID := uuid.New()

		interview, err := svc.Book(ctx, userID, slot.ID)
		require.NoError(t, err)

		assert.Equal(t, userID, interview.UserID)
		assert.Equal(t, slot.ID, interview.SlotID)
		assert.Equal(t, slot.InterviewerName, interview.InterviewerName)
		assert.Equal(t, model.InterviewStatusUpcoming, interview.Status)
		assert.Equal(t, model.PaymentStatusPaid, interview.PaymentStatus)
		assert.True(t, slot.Price.Equal(interview.Price))
		assert.True(t, strings.HasPrefix(interview.MeetingLink, "https://meet.google.com/"))

		stored, err := slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.False(t, stored.Available)
	})

	t.Run("double booking the same slot is rejected", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)

		_, err := svc.Book(ctx, uuid.New(), slot.ID)
		require.NoError(t, err)

		_, err = svc.Book(ctx, uuid.New(), slot.ID)
		assert.Equal(t, errors.ErrSlotUnavailable, err)
	})

	t.Run("unknown slot", func(t *testing.T) {
		svc, _, _ := newTestBookingService()
		_, err := svc.Book(ctx, uuid.New(), uuid.New())
		assert.Equal(t, errors.ErrSlotNotFound, err)
	})

	t.Run("failed slot reservation does not leave an active interview", func(t *testing.T) {
		svc, slotRepo, interviewRepo := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		slotRepo.setAvailabilityErr = assert.AnError
		userID := uuid.New()

		_, err := svc.Book(ctx, userID, slot.ID)
		require.Error(t, err)

		upcoming, err := interviewRepo.ListByUserAndStatus(ctx, userID, model.InterviewStatusUpcoming)
		require.NoError(t, err)
		assert.Empty(t, upcoming)

		stored, err := slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.True(t, stored.Available)
	})

	t.Run("concurrent bookings produce exactly one interview", func(t *testing.T) {
		svc, slotRepo, interviewRepo := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)

		const attempts = 20
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Book(ctx, uuid.New(), slot.ID)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.Equal(t, errors.ErrSlotUnavailable, err)
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Len(t, interviewRepo.order, 1)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel restores the slot", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		userID := uuid.New()

		interview, err := svc.Book(ctx, userID, slot.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(ctx, interview.ID, userID))

		stored, err := slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.True(t, stored.Available)

		interviews, err := svc.UserInterviews(ctx, userID)
		require.NoError(t, err)
		require.Len(t, interviews, 1)
		assert.Equal(t, model.InterviewStatusCancelled, interviews[0].Status)
	})

	t.Run("cancelling twice still succeeds", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		userID := uuid.New()

		interview, err := svc.Book(ctx, userID, slot.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(ctx, interview.ID, userID))
		require.NoError(t, svc.Cancel(ctx, interview.ID, userID))

		stored, err := slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.True(t, stored.Available)
	})

	t.Run("repeat cancel does not release a rebooked slot", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		alice := uuid.New()
		bob := uuid.New()

		aliceInterview, err := svc.Book(ctx, alice, slot.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(ctx, aliceInterview.ID, alice))

		bobInterview, err := svc.Book(ctx, bob, slot.ID)
		require.NoError(t, err)

		// Alice cancels again; Bob now owns the slot
		require.NoError(t, svc.Cancel(ctx, aliceInterview.ID, alice))

		stored, err := slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.False(t, stored.Available)

		bobInterviews, err := svc.UserInterviews(ctx, bob)
		require.NoError(t, err)
		require.Len(t, bobInterviews, 1)
		assert.Equal(t, bobInterview.ID, bobInterviews[0].ID)
		assert.Equal(t, model.InterviewStatusUpcoming, bobInterviews[0].Status)
	})

	t.Run("cancelled slot can be rebooked by someone else", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		first := uuid.New()

		interview, err := svc.Book(ctx, first, slot.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(ctx, interview.ID, first))

		_, err = svc.Book(ctx, uuid.New(), slot.ID)
		assert.NoError(t, err)
	})

	t.Run("cannot cancel another user's interview", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)

		interview, err := svc.Book(ctx, uuid.New(), slot.ID)
		require.NoError(t, err)

		err = svc.Cancel(ctx, interview.ID, uuid.New())
		assert.Equal(t, errors.ErrAccessDenied, err)

		stored, err := slotRepo.FindByID(ctx, slot.ID)
		require.NoError(t, err)
		assert.False(t, stored.Available)
	})

	t.Run("unknown interview", func(t *testing.T) {
		svc, _, _ := newTestBookingService()
		err := svc.Cancel(ctx, uuid.New(), uuid.New())
		assert.Equal(t, errors.ErrInterviewNotFound, err)
	})
}

func TestBookingService_CancelUpcomingForUser(t *testing.T) {
	ctx := context.Background()
	svc, slotRepo, _ := newTestBookingService()
	userID := uuid.New()

	first := seedSlot(t, slotRepo, nil)
	second := seedSlot(t, slotRepo, nil)
	other := seedSlot(t, slotRepo, nil)

	_, err := svc.Book(ctx, userID, first.ID)
	require.NoError(t, err)
	completed, err := svc.Book(ctx, userID, second.ID)
	require.NoError(t, err)
	require.NoError(t, svc.SubmitFeedback(ctx, completed.ID, "solid answers", 4))
	_, err = svc.Book(ctx, uuid.New(), other.ID)
	require.NoError(t, err)

	cancelled, err := svc.CancelUpcomingForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)

	// only the upcoming interview's slot is restored
	restored, err := slotRepo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, restored.Available)

	untouched, err := slotRepo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, untouched.Available)
}

func TestBookingService_CancelUpcomingForUser_RecordsTrigger(t *testing.T) {
	ctx := context.Background()
	slotRepo := newFakeSlotRepository()
	interviewRepo := newFakeInterviewRepository()
	eventRepo := &fakeEventRepository{}
	svc := NewBookingService(slotRepo, interviewRepo, eventRepo)
	userID := uuid.New()

	slot := seedSlot(t, slotRepo, nil)
	interview, err := svc.Book(ctx, userID, slot.ID)
	require.NoError(t, err)

	cancelled, err := svc.CancelUpcomingForUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, cancelled)

	// events are written by the batching worker, which flushes on a ticker
	require.Eventually(t, func() bool {
		for _, ev := range eventRepo.snapshot() {
			if ev.InterviewID == interview.ID && ev.Action == model.EventCancelled {
				return ev.Detail == "account deleted"
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond)
}

func TestBookingService_Feedback(t *testing.T) {
	ctx := context.Background()

	t.Run("feedback completes an upcoming interview", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		userID := uuid.New()

		interview, err := svc.Book(ctx, userID, slot.ID)
		require.NoError(t, err)

		require.NoError(t, svc.SubmitFeedback(ctx, interview.ID, "great communication", 5))

		result, err := svc.GetFeedback(ctx, interview.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, "great communication", result.Feedback)
		assert.Equal(t, 5, result.Rating)
		assert.Equal(t, slot.InterviewerName, result.Interviewer)

		interviews, err := svc.UserInterviews(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, model.InterviewStatusCompleted, interviews[0].Status)
	})

	t.Run("feedback on a cancelled interview is rejected", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		userID := uuid.New()

		interview, err := svc.Book(ctx, userID, slot.ID)
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(ctx, interview.ID, userID))

		err = svc.SubmitFeedback(ctx, interview.ID, "late feedback", 3)
		assert.Equal(t, errors.ErrInterviewNotUpcoming, err)
	})

	t.Run("feedback cannot be submitted twice", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)

		interview, err := svc.Book(ctx, uuid.New(), slot.ID)
		require.NoError(t, err)
		require.NoError(t, svc.SubmitFeedback(ctx, interview.ID, "first round", 4))

		err = svc.SubmitFeedback(ctx, interview.ID, "second round", 2)
		assert.Equal(t, errors.ErrInterviewNotUpcoming, err)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc, _, _ := newTestBookingService()
		assert.Equal(t, errors.ErrInvalidRating, svc.SubmitFeedback(ctx, uuid.New(), "x", 0))
		assert.Equal(t, errors.ErrInvalidRating, svc.SubmitFeedback(ctx, uuid.New(), "x", 6))
	})

	t.Run("feedback not available before submission", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		userID := uuid.New()

		interview, err := svc.Book(ctx, userID, slot.ID)
		require.NoError(t, err)

		_, err = svc.GetFeedback(ctx, interview.ID, userID)
		assert.Equal(t, errors.ErrFeedbackNotAvailable, err)
	})

	t.Run("feedback is owner-only", func(t *testing.T) {
		svc, slotRepo, _ := newTestBookingService()
		slot := seedSlot(t, slotRepo, nil)
		userID := uuid.New()

		interview, err := svc.Book(ctx, userID, slot.ID)
		require.NoError(t, err)
		require.NoError(t, svc.SubmitFeedback(ctx, interview.ID, "great", 5))

		_, err = svc.GetFeedback(ctx, interview.ID, uuid.New())
		assert.Equal(t, errors.ErrAccessDenied, err)
	})
}

func TestBookingService_AvailableSlots(t *testing.T) {
	ctx := context.Background()
	svc, slotRepo, _ := newTestBookingService()

	backend := seedSlot(t, slotRepo, nil)
	seedSlot(t, slotRepo, func(s *model.InterviewSlot) {
		s.Type = "behavioral"
		s.Domain = "management"
		s.Profile = "em"
	})
	seedSlot(t, slotRepo, func(s *model.InterviewSlot) {
		s.Domain = "frontend"
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		slots, err := svc.AvailableSlots(ctx, model.SlotFilter{Type: "technical", Domain: "backend"})
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, backend.ID, slots[0].ID)
	})

	t.Run("date filter matches calendar day", func(t *testing.T) {
		sameDay := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
		slots, err := svc.AvailableSlots(ctx, model.SlotFilter{Date: &sameDay})
		require.NoError(t, err)
		assert.Len(t, slots, 3)

		otherDay := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
		slots, err = svc.AvailableSlots(ctx, model.SlotFilter{Date: &otherDay})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("booked slots drop out of the listing", func(t *testing.T) {
		_, err := svc.Book(ctx, uuid.New(), backend.ID)
		require.NoError(t, err)

		slots, err := svc.AvailableSlots(ctx, model.SlotFilter{})
		require.NoError(t, err)
		assert.Len(t, slots, 2)
		for _, s := range slots {
			assert.NotEqual(t, backend.ID, s.ID)
		}
	})
}

func TestBookingService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, slotRepo, _ := newTestBookingService()
	userID := uuid.New()

	a := seedSlot(t, slotRepo, nil)
	b := seedSlot(t, slotRepo, func(s *model.InterviewSlot) {
		s.Price = decimal.RequireFromString("799.00")
	})

	first, err := svc.Book(ctx, userID, a.ID)
	require.NoError(t, err)
	second, err := svc.Book(ctx, userID, b.ID)
	require.NoError(t, err)

	require.NoError(t, svc.SubmitFeedback(ctx, first.ID, "good", 4))
	require.NoError(t, svc.Cancel(ctx, second.ID, userID))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(0), stats.Upcoming)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("1798.00")))
}
