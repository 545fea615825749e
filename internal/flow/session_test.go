package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlgaOrl/massage-booking/internal/entities"
)

// stubBackend is an in-memory rendition of the booking API surface.
type stubBackend struct {
	mu              sync.Mutex
	expiresIn       int
	reserveBlocked  chan struct{} // when non-nil, reservation creates block until closed
	nextReservation int
	reservations    map[int]int // reservation id -> slot id
	released        []int
	nextBooking     int
	bookings        map[int]entities.BookingDetail
	failBookings    bool
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		expiresIn:    600,
		reservations: map[int]int{},
		bookings:     map[int]entities.BookingDetail{},
	}
}

var stubServices = []entities.MassageTypeResponse{
	{ID: 1, Name: "Swedish Massage", Duration: 60, Price: 50.0},
	{ID: 2, Name: "Deep Tissue", Duration: 90, Price: 70.0},
}

func (b *stubBackend) start(t *testing.T) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()

	r.HandleFunc("/api/massage-types", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(stubServices)
	}).Methods("GET")

	r.HandleFunc("/api/slots", func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		serviceID, _ := strconv.Atoi(r.URL.Query().Get("service_id"))
		json.NewEncoder(w).Encode([]entities.SlotResponse{
			{ID: 11, Date: date, Time: "09:00", ServiceID: serviceID, Available: true},
			{ID: 12, Date: date, Time: "10:00", ServiceID: serviceID, Available: false},
			{ID: 13, Date: date, Time: "11:00", ServiceID: serviceID, Available: true},
		})
	}).Methods("GET")

	r.HandleFunc("/api/reservations", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		blocked := b.reserveBlocked
		b.mu.Unlock()
		if blocked != nil {
			<-blocked
		}

		var req entities.ReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		b.mu.Lock()
		b.nextReservation++
		id := b.nextReservation
		b.reservations[id] = req.SlotID
		expiresIn := b.expiresIn
		b.mu.Unlock()

		json.NewEncoder(w).Encode(entities.ReservationResponse{
			ReservationID:    id,
			ExpiresAt:        time.Now().Add(time.Duration(expiresIn) * time.Second),
			ExpiresInSeconds: expiresIn,
		})
	}).Methods("POST")

	r.HandleFunc("/api/reservations/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.reservations[id]; !ok {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		delete(b.reservations, id)
		b.released = append(b.released, id)
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")

	r.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		var req entities.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failBookings {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if _, ok := b.reservations[req.ReservationID]; !ok {
			http.Error(w, "Reservation not found or expired", http.StatusNotFound)
			return
		}
		delete(b.reservations, req.ReservationID)

		var svc entities.MassageTypeResponse
		for _, s := range stubServices {
			if s.ID == req.ServiceID {
				svc = s
			}
		}
		b.nextBooking++
		detail := entities.BookingDetail{
			ID:          b.nextBooking,
			Reference:   fmt.Sprintf("BK-test-%03d", b.nextBooking),
			ClientName:  req.ClientName,
			Email:       req.Email,
			Phone:       req.Phone,
			ServiceID:   req.ServiceID,
			ServiceName: svc.Name,
			Duration:    svc.Duration,
			Price:       svc.Price,
			Date:        req.Date,
			TimeSlot:    req.TimeSlot,
			CreatedAt:   time.Now(),
		}
		b.bookings[detail.ID] = detail
		json.NewEncoder(w).Encode(detail)
	}).Methods("POST")

	r.HandleFunc("/api/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])
		b.mu.Lock()
		defer b.mu.Unlock()
		detail, ok := b.bookings[id]
		if !ok {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(detail)
	}).Methods("GET")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func (b *stubBackend) setFailBookings(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failBookings = fail
}

func (b *stubBackend) releasedIDs() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.released...)
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func newReadySession(t *testing.T, backend *stubBackend) *Session {
	t.Helper()
	srv := backend.start(t)
	s := NewSession(NewClient(srv.URL))
	ctx := context.Background()

	require.NoError(t, s.LoadServices(ctx))
	require.NoError(t, s.SelectService(1))
	require.NoError(t, s.SelectDate(ctx, futureDate()))
	require.NoError(t, s.SelectSlot(11))
	return s
}

func TestFullBookingFlow(t *testing.T) {
	backend := newStubBackend()
	srv := backend.start(t)
	s := NewSession(NewClient(srv.URL))
	ctx := context.Background()

	require.NoError(t, s.LoadServices(ctx))
	require.Len(t, s.Services(), 2)
	assert.Equal(t, StageServices, s.Stage())

	require.NoError(t, s.SelectService(1))
	assert.Equal(t, StageCalendar, s.Stage())
	assert.Equal(t, "Swedish Massage", s.SelectedService().Name)

	date := futureDate()
	require.NoError(t, s.SelectDate(ctx, date))
	assert.Equal(t, StageSlots, s.Stage())
	require.Len(t, s.Slots(), 3)

	require.NoError(t, s.SelectSlot(11))
	summary, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, "Swedish Massage", summary.ServiceName)
	assert.Equal(t, 60, summary.Duration)
	assert.Equal(t, 50.0, summary.Price)
	assert.Equal(t, "09:00", summary.Time)
	assert.Equal(t, date, summary.Date)

	require.NoError(t, s.Reserve(ctx))
	assert.Equal(t, StageForm, s.Stage())
	assert.NotZero(t, s.ReservationID())
	display, warning := s.CountdownDisplay()
	assert.Equal(t, "10:00", display)
	assert.False(t, warning)

	assert.Error(t, s.SetName("A"))
	require.NoError(t, s.SetName("Anna Laine"))
	require.NoError(t, s.SetEmail("anna@example.com"))
	require.NoError(t, s.SetPhone("+372 5123 4567"))
	assert.True(t, s.CanSubmit())

	booking, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StageConfirmed, s.Stage())
	assert.Zero(t, s.ReservationID())
	assert.Equal(t, "Swedish Massage", booking.ServiceName)
	assert.Equal(t, 50.0, booking.Price)
	assert.NotEmpty(t, booking.Reference)

	// Confirmation page fetch shows the same details.
	confirmed, err := LoadConfirmation(ctx, NewClient(srv.URL), strconv.Itoa(booking.ID))
	require.NoError(t, err)
	assert.Equal(t, "Swedish Massage", confirmed.ServiceName)
	assert.Equal(t, 50.0, confirmed.Price)
	assert.Contains(t, ConfirmationTitle(confirmed), confirmed.Reference)
}

func TestStageGating(t *testing.T) {
	backend := newStubBackend()
	srv := backend.start(t)
	s := NewSession(NewClient(srv.URL))
	ctx := context.Background()

	assert.ErrorIs(t, s.SelectDate(ctx, futureDate()), ErrNoServiceSelected)
	assert.ErrorIs(t, s.SelectSlot(11), ErrNoDateSelected)
	assert.ErrorIs(t, s.Reserve(ctx), ErrNoSlotSelected)

	require.NoError(t, s.LoadServices(ctx))
	assert.ErrorIs(t, s.SelectService(99), ErrUnknownService)
	require.NoError(t, s.SelectService(1))
	require.NoError(t, s.SelectDate(ctx, futureDate()))

	assert.ErrorIs(t, s.SelectSlot(12), ErrSlotBooked)
	assert.ErrorIs(t, s.SelectSlot(99), ErrUnknownSlot)

	// A valid form alone is not enough without a reservation.
	require.NoError(t, s.SelectSlot(11))
	s.SetName("Anna Laine")
	s.SetEmail("anna@example.com")
	s.SetPhone("+372 5123 4567")
	_, err := s.Submit(ctx)
	assert.ErrorIs(t, err, ErrNoReservation)
}

func TestSelectDateRejectsPast(t *testing.T) {
	backend := newStubBackend()
	s := newReadySession(t, backend)
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	assert.ErrorIs(t, s.SelectDate(context.Background(), yesterday), ErrPastDate)
}

func TestSelectDateDiscardsPreviousSelection(t *testing.T) {
	backend := newStubBackend()
	s := newReadySession(t, backend)

	_, ok := s.Summary()
	require.True(t, ok)

	otherDate := time.Now().AddDate(0, 0, 8).Format("2006-01-02")
	require.NoError(t, s.SelectDate(context.Background(), otherDate))

	_, ok = s.Summary()
	assert.False(t, ok, "slot selection must be cleared on date change")
}

func TestMonthNavigationRollsYear(t *testing.T) {
	backend := newStubBackend()
	srv := backend.start(t)
	s := NewSession(NewClient(srv.URL))
	s.now = func() time.Time { return time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, s.LoadServices(context.Background()))
	require.NoError(t, s.SelectService(1))

	s.PrevMonth()
	grid := s.Grid()
	assert.Equal(t, 2025, grid.Year)
	assert.Equal(t, time.December, grid.Month)

	s.NextMonth()
	s.NextMonth()
	grid = s.Grid()
	assert.Equal(t, 2026, grid.Year)
	assert.Equal(t, time.February, grid.Month)
}

func TestCanSubmitTogglesPerField(t *testing.T) {
	backend := newStubBackend()
	s := newReadySession(t, backend)
	require.NoError(t, s.Reserve(context.Background()))

	assert.False(t, s.CanSubmit())
	s.SetName("Anna Laine")
	s.SetEmail("anna@example.com")
	assert.False(t, s.CanSubmit())
	s.SetPhone("+372 5123 4567")
	assert.True(t, s.CanSubmit())

	// One field going invalid disables submission again.
	s.SetEmail("anna@example")
	assert.False(t, s.CanSubmit())
	s.SetEmail("anna@example.com")
	assert.True(t, s.CanSubmit())
}

func TestCancelReleasesHoldAndResetsForm(t *testing.T) {
	backend := newStubBackend()
	s := newReadySession(t, backend)
	ctx := context.Background()
	require.NoError(t, s.Reserve(ctx))
	id := s.ReservationID()
	s.SetName("Anna Laine")

	s.Cancel(ctx)

	assert.Equal(t, StageSlots, s.Stage())
	assert.Zero(t, s.ReservationID())
	assert.Equal(t, []int{id}, backend.releasedIDs())
	assert.False(t, s.CanSubmit(), "form must be reset")
}

func TestExpiryRollsBackWithoutRelease(t *testing.T) {
	backend := newStubBackend()
	backend.expiresIn = 3
	s := newReadySession(t, backend)
	require.NoError(t, s.Reserve(context.Background()))

	expiries := 0
	for i := 0; i < 5; i++ {
		if s.Tick() {
			expiries++
		}
	}

	assert.Equal(t, 1, expiries, "expiry handling runs exactly once")
	assert.Equal(t, StageSlots, s.Stage())
	assert.Zero(t, s.ReservationID())
	assert.Empty(t, backend.releasedIDs(), "expired holds are not released client-side")
}

func TestReserveCancelRaceReleasesLateHold(t *testing.T) {
	backend := newStubBackend()
	backend.reserveBlocked = make(chan struct{})
	s := newReadySession(t, backend)
	ctx := context.Background()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Reserve(ctx) }()

	// Let the create call get in flight, then cancel out from under it.
	time.Sleep(50 * time.Millisecond)
	s.Cancel(ctx)
	close(backend.reserveBlocked)

	assert.ErrorIs(t, <-errCh, ErrReservationSuperseded)
	assert.Zero(t, s.ReservationID())

	// The stray hold created by the late response gets released.
	assert.Eventually(t, func() bool {
		return len(backend.releasedIDs()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubmitFailureKeepsFormStage(t *testing.T) {
	backend := newStubBackend()
	s := newReadySession(t, backend)
	ctx := context.Background()
	require.NoError(t, s.Reserve(ctx))
	s.SetName("Anna Laine")
	s.SetEmail("anna@example.com")
	s.SetPhone("+372 5123 4567")

	backend.setFailBookings(true)
	_, err := s.Submit(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Internal server error", apiErr.Message)
	assert.Equal(t, StageForm, s.Stage(), "user can retry")

	backend.setFailBookings(false)
	_, err = s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, StageConfirmed, s.Stage())
}

func TestLoadConfirmationErrorStates(t *testing.T) {
	backend := newStubBackend()
	srv := backend.start(t)
	client := NewClient(srv.URL)
	ctx := context.Background()

	_, err := LoadConfirmation(ctx, client, "")
	assert.ErrorIs(t, err, ErrConfirmationUnavailable)

	_, err = LoadConfirmation(ctx, client, "not-a-number")
	assert.ErrorIs(t, err, ErrConfirmationUnavailable)

	_, err = LoadConfirmation(ctx, client, "12345")
	assert.ErrorIs(t, err, ErrConfirmationUnavailable)
}
