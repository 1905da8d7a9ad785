package booking

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	bookingRepo "fixitnow/database/repository/booking"
	listingRepo "fixitnow/database/repository/listing"
	userRepo "fixitnow/database/repository/user"
	"fixitnow/models"
	"fixitnow/utils"
)

// fakeBookingRepo is an in-memory BookingRepository that enforces the same
// slot-uniqueness constraint the Mongo partial index provides.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func slotKey(providerID string, date time.Time, slot string) string {
	return fmt.Sprintf("%s|%s|%s", providerID, date.Format("2006-01-02"), slot)
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(b.ProviderID, b.BookingDate, b.TimeSlot)
	for _, existing := range r.bookings {
		if existing.Status.Terminal() {
			continue
		}
		if slotKey(existing.ProviderID, existing.BookingDate, existing.TimeSlot) == key {
			return bookingRepo.ErrSlotTaken
		}
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Update(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return bookingRepo.ErrNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) HasConflict(providerID string, date time.Time, timeSlot string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(providerID, date, timeSlot)
	for _, b := range r.bookings {
		if b.Status.Terminal() {
			continue
		}
		if slotKey(b.ProviderID, b.BookingDate, b.TimeSlot) == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ListByParty(partyID string, asProvider bool, status *models.BookingStatus, page models.PageRequest) (*models.Page[models.Booking], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.Booking
	for _, b := range r.bookings {
		if asProvider && b.ProviderID != partyID {
			continue
		}
		if !asProvider && b.CustomerID != partyID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		items = append(items, *b)
	}
	page = page.Normalize()
	return &models.Page[models.Booking]{
		Items: items, Page: page.Page, Size: page.Size, TotalItems: int64(len(items)),
	}, nil
}

func (r *fakeBookingRepo) ListUpcoming(partyID string, asProvider bool, after time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.Booking
	for _, b := range r.bookings {
		if asProvider && b.ProviderID != partyID {
			continue
		}
		if !asProvider && b.CustomerID != partyID {
			continue
		}
		if b.Status.Terminal() || b.BookingDate.Before(after) {
			continue
		}
		items = append(items, *b)
	}
	return items, nil
}

type fakeListingRepo struct {
	listings map[string]*models.ServiceListing
}

func (r *fakeListingRepo) GetByID(id string) (*models.ServiceListing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, listingRepo.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Exists(id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type fakeReminder struct {
	mu        sync.Mutex
	scheduled []string
}

func (f *fakeReminder) ScheduleBookingReminder(b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, b.ID)
	return nil
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeReminder) {
	repo := newFakeBookingRepo()
	reminder := &fakeReminder{}
	svc := &DefaultBookingService{
		Repo: repo,
		ListingRepo: &fakeListingRepo{listings: map[string]*models.ServiceListing{
			"listing-1": {
				ID:             "listing-1",
				ProviderUserID: "provider-1",
				Title:          "Deep cleaning",
				CategoryName:   "Cleaning",
				Active:         true,
			},
			"listing-inactive": {
				ID:             "listing-inactive",
				ProviderUserID: "provider-1",
				Title:          "Retired service",
				Active:         false,
			},
		}},
		UserRepo: &fakeUserRepo{users: map[string]*models.User{
			"customer-1": {ID: "customer-1", Name: "Asha", Email: "asha@example.com", Role: models.RoleCustomer},
			"customer-2": {ID: "customer-2", Name: "Ben", Email: "ben@example.com", Role: models.RoleCustomer},
			"provider-1": {ID: "provider-1", Name: "Maya", Email: "maya@example.com", Role: models.RoleProvider},
		}},
		Reminder: reminder,
	}
	return svc, repo, reminder
}

func testRequest() models.BookingRequest {
	return models.BookingRequest{
		ServiceListingID: "listing-1",
		BookingDate:      time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:         "09:00-12:00",
		TotalPrice:       150,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.CreateBooking("customer-1", testRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if resp.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want PENDING", resp.Status)
	}
	if resp.ProviderID != "provider-1" {
		t.Errorf("provider = %s, want provider-1 (from listing)", resp.ProviderID)
	}
	if resp.ServiceTitle != "Deep cleaning" || resp.CustomerName != "Asha" || resp.ProviderName != "Maya" {
		t.Errorf("denormalized fields not resolved: %+v", resp)
	}
	if resp.ID == "" {
		t.Error("booking id not assigned")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name     string
		customer string
		mutate   func(*models.BookingRequest)
		wantCode string
	}{
		{"missing slot", "customer-1", func(r *models.BookingRequest) { r.TimeSlot = "  " }, utils.CodeValidation},
		{"negative price", "customer-1", func(r *models.BookingRequest) { r.TotalPrice = -1 }, utils.CodeValidation},
		{"unknown listing", "customer-1", func(r *models.BookingRequest) { r.ServiceListingID = "nope" }, utils.CodeNotFound},
		{"inactive listing", "customer-1", func(r *models.BookingRequest) { r.ServiceListingID = "listing-inactive" }, utils.CodeValidation},
		{"unknown customer", "ghost", func(r *models.BookingRequest) {}, utils.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testRequest()
			tc.mutate(&req)
			_, err := svc.CreateBooking(tc.customer, req)
			if !utils.IsCode(err, tc.wantCode) {
				t.Errorf("err = %v, want code %s", err, tc.wantCode)
			}
		})
	}
}

func TestCreateBookingSlotConflict(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.CreateBooking("customer-1", testRequest()); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := svc.CreateBooking("customer-2", testRequest())
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("second booking err = %v, want CONFLICT", err)
	}

	// A different slot on the same day is fine.
	req := testRequest()
	req.TimeSlot = "14:00-16:00"
	if _, err := svc.CreateBooking("customer-2", req); err != nil {
		t.Fatalf("different slot: %v", err)
	}
}

func TestCreateBookingSlotFreedByCancellation(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.CreateBooking("customer-1", testRequest())
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.UpdateStatus(first.ID, "customer-1", models.BookingStatusUpdate{
		Status: models.BookingStatusCancelled, CancellationReason: "changed plans",
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A cancelled booking no longer occupies the slot.
	if _, err := svc.CreateBooking("customer-2", testRequest()); err != nil {
		t.Fatalf("rebook after cancellation: %v", err)
	}
}

func TestCreateBookingConcurrentOneWinner(t *testing.T) {
	svc, repo, _ := newTestService()

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking("customer-1", testRequest())
		}(i)
	}
	wg.Wait()

	var won, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case utils.IsCode(err, utils.CodeConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
	if conflicted != racers-1 {
		t.Errorf("conflicts = %d, want %d", conflicted, racers-1)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("persisted bookings = %d, want 1", len(repo.bookings))
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{models.BookingStatusPending, models.BookingStatusCancelled, true},
		{models.BookingStatusPending, models.BookingStatusCompleted, false},
		{models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{models.BookingStatusConfirmed, models.BookingStatusPending, false},
		{models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{models.BookingStatusCompleted, models.BookingStatusConfirmed, false},
		{models.BookingStatusCancelled, models.BookingStatusPending, false},
		{models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			err := ValidateTransition(tc.from, tc.to)
			if tc.allowed && err != nil {
				t.Errorf("ValidateTransition(%s, %s) = %v, want nil", tc.from, tc.to, err)
			}
			if !tc.allowed && !utils.IsCode(err, utils.CodeInvalidTransition) {
				t.Errorf("ValidateTransition(%s, %s) = %v, want INVALID_TRANSITION", tc.from, tc.to, err)
			}
		})
	}
}

func TestUpdateStatusAuthorization(t *testing.T) {
	svc, _, _ := newTestService()

	b, err := svc.CreateBooking("customer-1", testRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Only a party may touch the booking.
	if _, err := svc.UpdateStatus(b.ID, "customer-2", models.BookingStatusUpdate{Status: models.BookingStatusCancelled}); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Errorf("outsider cancel err = %v, want UNAUTHORIZED", err)
	}
	// Customers cannot confirm.
	if _, err := svc.UpdateStatus(b.ID, "customer-1", models.BookingStatusUpdate{Status: models.BookingStatusConfirmed}); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Errorf("customer confirm err = %v, want UNAUTHORIZED", err)
	}
	// The provider can.
	if _, err := svc.UpdateStatus(b.ID, "provider-1", models.BookingStatusUpdate{Status: models.BookingStatusConfirmed}); err != nil {
		t.Errorf("provider confirm: %v", err)
	}
}

func TestBookingLifecycleHappyPath(t *testing.T) {
	svc, _, reminder := newTestService()

	b, err := svc.CreateBooking("customer-1", testRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	confirmed, err := svc.UpdateStatus(b.ID, "provider-1", models.BookingStatusUpdate{
		Status:        models.BookingStatusConfirmed,
		ProviderNotes: "bringing own supplies",
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.ProviderNotes != "bringing own supplies" {
		t.Errorf("provider notes = %q", confirmed.ProviderNotes)
	}
	if len(reminder.scheduled) != 1 || reminder.scheduled[0] != b.ID {
		t.Errorf("reminder scheduled = %v, want [%s]", reminder.scheduled, b.ID)
	}

	done, err := svc.UpdateStatus(b.ID, "provider-1", models.BookingStatusUpdate{Status: models.BookingStatusCompleted})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != models.BookingStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", done.Status)
	}

	// Terminal bookings admit no further transitions.
	_, err = svc.UpdateStatus(b.ID, "customer-1", models.BookingStatusUpdate{Status: models.BookingStatusCancelled})
	if !utils.IsCode(err, utils.CodeInvalidTransition) {
		t.Errorf("cancel after complete err = %v, want INVALID_TRANSITION", err)
	}
}

func TestUpdateStatusCancellationFields(t *testing.T) {
	svc, _, _ := newTestService()

	b, err := svc.CreateBooking("customer-1", testRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	cancelled, err := svc.UpdateStatus(b.ID, "customer-1", models.BookingStatusUpdate{
		Status:             models.BookingStatusCancelled,
		CancellationReason: "found another provider",
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.CancellationReason != "found another provider" {
		t.Errorf("cancellation reason = %q", cancelled.CancellationReason)
	}
	if cancelled.CancelledBy != "customer-1" {
		t.Errorf("cancelled by = %q, want customer-1", cancelled.CancelledBy)
	}
}

func TestUpdateStatusUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus("nope", "customer-1", models.BookingStatusUpdate{Status: models.BookingStatusCancelled})
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("unknown booking err = %v, want NOT_FOUND", err)
	}

	b, _ := svc.CreateBooking("customer-1", testRequest())
	_, err = svc.UpdateStatus(b.ID, "customer-1", models.BookingStatusUpdate{Status: "SHIPPED"})
	if !utils.IsCode(err, utils.CodeValidation) {
		t.Errorf("unknown status err = %v, want VALIDATION", err)
	}
}

func TestGetBookingAccessControl(t *testing.T) {
	svc, _, _ := newTestService()

	b, _ := svc.CreateBooking("customer-1", testRequest())

	if _, err := svc.GetBooking(b.ID, "customer-1"); err != nil {
		t.Errorf("customer read: %v", err)
	}
	if _, err := svc.GetBooking(b.ID, "provider-1"); err != nil {
		t.Errorf("provider read: %v", err)
	}
	if _, err := svc.GetBooking(b.ID, "customer-2"); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Errorf("outsider read err = %v, want UNAUTHORIZED", err)
	}
	if _, err := svc.GetBooking("missing", "customer-1"); !utils.IsCode(err, utils.CodeNotFound) {
		t.Errorf("missing read err = %v, want NOT_FOUND", err)
	}
}

func TestListBookingsByParty(t *testing.T) {
	svc, _, _ := newTestService()

	req := testRequest()
	if _, err := svc.CreateBooking("customer-1", req); err != nil {
		t.Fatal(err)
	}
	req.TimeSlot = "14:00-16:00"
	if _, err := svc.CreateBooking("customer-2", req); err != nil {
		t.Fatal(err)
	}

	mine, err := svc.ListBookings("customer-1", false, nil, models.PageRequest{})
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if mine.TotalItems != 1 {
		t.Errorf("customer-1 bookings = %d, want 1", mine.TotalItems)
	}

	theirs, err := svc.ListBookings("provider-1", true, nil, models.PageRequest{})
	if err != nil {
		t.Fatalf("ListBookings provider: %v", err)
	}
	if theirs.TotalItems != 2 {
		t.Errorf("provider-1 bookings = %d, want 2", theirs.TotalItems)
	}

	bad := models.BookingStatus("SHIPPED")
	if _, err := svc.ListBookings("customer-1", false, &bad, models.PageRequest{}); !utils.IsCode(err, utils.CodeValidation) {
		t.Errorf("bad status filter err = %v, want VALIDATION", err)
	}
}

func TestRepoErrorsPropagate(t *testing.T) {
	svc, _, _ := newTestService()
	boom := errors.New("mongo down")
	svc.Repo = failingBookingRepo{err: boom}

	_, err := svc.CreateBooking("customer-1", testRequest())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped repo error", err)
	}
}

type failingBookingRepo struct{ err error }

func (r failingBookingRepo) Create(*models.Booking) error                  { return r.err }
func (r failingBookingRepo) Update(*models.Booking) error                  { return r.err }
func (r failingBookingRepo) GetByID(string) (*models.Booking, error)       { return nil, r.err }
func (r failingBookingRepo) HasConflict(string, time.Time, string) (bool, error) {
	return false, r.err
}
func (r failingBookingRepo) ListByParty(string, bool, *models.BookingStatus, models.PageRequest) (*models.Page[models.Booking], error) {
	return nil, r.err
}
func (r failingBookingRepo) ListUpcoming(string, bool, time.Time) ([]models.Booking, error) {
	return nil, r.err
}
