package flow

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/OlgaOrl/massage-booking/internal/entities"
	"github.com/OlgaOrl/massage-booking/internal/validate"
)

// Stage is the position in the booking flow. Each stage gates the
// next; no stage is skippable.
type Stage int

const (
	StageServices Stage = iota
	StageCalendar
	StageSlots
	StageForm
	StageConfirmed
)

var (
	ErrNoServiceSelected     = errors.New("no service selected")
	ErrUnknownService        = errors.New("unknown service")
	ErrPastDate              = errors.New("date is in the past")
	ErrNoDateSelected        = errors.New("no date selected")
	ErrUnknownSlot           = errors.New("unknown time slot")
	ErrSlotBooked            = errors.New("time slot is already booked")
	ErrNoSlotSelected        = errors.New("no time slot selected")
	ErrReservationActive     = errors.New("a reservation is already active")
	ErrNoReservation         = errors.New("no active reservation")
	ErrReservationSuperseded = errors.New("reservation was cancelled while being created")
	ErrFormInvalid           = errors.New("contact form is not valid")
)

// Summary is the selection recap shown before the form stage.
type Summary struct {
	ServiceName string
	Date        string
	Time        string
	Duration    int
	Price       float64
}

// Session owns all booking-flow state and enforces its invariants: no
// reservation without a selected service, date and slot; no submission
// without an active reservation and a fully valid form. It replaces
// the free-floating page globals of the original client with one
// auditable state object.
type Session struct {
	client *Client
	now    func() time.Time

	mu           sync.Mutex
	stage        Stage
	services     []entities.MassageTypeResponse
	service      *entities.MassageTypeResponse
	visibleMonth time.Time // first day of the shown month
	selectedDate string
	slots        []entities.SlotResponse
	slot         *entities.SlotResponse

	reservationID int
	countdown     *Countdown
	// generation guards against a reservation-create response landing
	// after the user already cancelled; Cancel and expiry bump it.
	generation int

	name, email, phone string
	booking            *entities.BookingDetail
}

func NewSession(client *Client) *Session {
	return &Session{
		client: client,
		now:    time.Now,
	}
}

// Stage returns the current flow stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// LoadServices fetches the catalog. On failure the catalog stays
// empty; there is no retry, the caller simply invokes it again.
func (s *Session) LoadServices(ctx context.Context) error {
	services, err := s.client.ListServices(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = services
	return nil
}

func (s *Session) Services() []entities.MassageTypeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.services
}

// SelectService picks a catalog entry, clears any date and slot
// selection, and opens the calendar on the current month.
func (s *Session) SelectService(serviceID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.services {
		if s.services[i].ID == serviceID {
			svc := s.services[i]
			s.service = &svc
			s.selectedDate = ""
			s.slots = nil
			s.slot = nil
			now := s.now()
			s.visibleMonth = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			s.stage = StageCalendar
			return nil
		}
	}
	return ErrUnknownService
}

func (s *Session) SelectedService() *entities.MassageTypeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.service
}

// PrevMonth moves the visible month back one month, rolling the year
// when needed.
func (s *Session) PrevMonth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visibleMonth = s.visibleMonth.AddDate(0, -1, 0)
}

func (s *Session) NextMonth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visibleMonth = s.visibleMonth.AddDate(0, 1, 0)
}

// Grid builds the calendar for the visible month.
func (s *Session) Grid() MonthGrid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildMonthGrid(s.visibleMonth.Year(), s.visibleMonth.Month(), s.now(), s.selectedDate)
}

// SelectDate picks a calendar day, discards the previous slot list and
// loads availability for the service/date pair. Past dates are
// rejected the same way a disabled cell has no click handler.
func (s *Session) SelectDate(ctx context.Context, date string) error {
	s.mu.Lock()
	if s.service == nil {
		s.mu.Unlock()
		return ErrNoServiceSelected
	}
	parsed, err := time.ParseInLocation("2006-01-02", date, s.now().Location())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	now := s.now()
	todayZero := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(todayZero) {
		s.mu.Unlock()
		return ErrPastDate
	}

	s.selectedDate = date
	s.slot = nil
	s.slots = nil
	s.stage = StageSlots
	serviceID := s.service.ID
	s.mu.Unlock()

	slots, err := s.client.ListSlots(ctx, date, serviceID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = slots
	return nil
}

func (s *Session) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

func (s *Session) Slots() []entities.SlotResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots
}

// SelectSlot marks an available slot as the chosen one.
func (s *Session) SelectSlot(slotID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedDate == "" {
		return ErrNoDateSelected
	}
	for i := range s.slots {
		if s.slots[i].ID == slotID {
			if !s.slots[i].Available {
				return ErrSlotBooked
			}
			chosen := s.slots[i]
			s.slot = &chosen
			return nil
		}
	}
	return ErrUnknownSlot
}

// Summary returns the selection recap once service, date and slot are
// all chosen.
func (s *Session) Summary() (*Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.service == nil || s.selectedDate == "" || s.slot == nil {
		return nil, false
	}
	return &Summary{
		ServiceName: s.service.Name,
		Date:        s.selectedDate,
		Time:        s.slot.Time,
		Duration:    s.service.Duration,
		Price:       s.service.Price,
	}, true
}

// Reserve places a temporary hold on the chosen slot and moves to the
// form stage. On failure, state is left exactly as it was. If the
// session was cancelled while the create call was in flight, the
// late-arriving hold is released best-effort and not applied.
func (s *Session) Reserve(ctx context.Context) error {
	s.mu.Lock()
	if s.slot == nil {
		s.mu.Unlock()
		return ErrNoSlotSelected
	}
	if s.reservationID != 0 {
		s.mu.Unlock()
		return ErrReservationActive
	}
	gen := s.generation
	slotID := s.slot.ID
	s.mu.Unlock()

	resp, err := s.client.CreateReservation(ctx, slotID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		go func(id int) {
			if err := s.client.CancelReservation(context.Background(), id); err != nil {
				log.Printf("Failed to release superseded reservation %d: %v", id, err)
			}
		}(resp.ReservationID)
		return ErrReservationSuperseded
	}

	s.reservationID = resp.ReservationID
	s.countdown = NewCountdown(resp.ExpiresInSeconds)
	s.stage = StageForm
	return nil
}

func (s *Session) ReservationID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservationID
}

// Cancel abandons the current reservation: the countdown stops, the
// hold is released best-effort (failure logged, not surfaced), the
// form resets and the flow returns to slot selection.
func (s *Session) Cancel(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	id := s.reservationID
	s.rollbackToSlotsLocked()
	s.mu.Unlock()

	if id != 0 {
		if err := s.client.CancelReservation(ctx, id); err != nil {
			log.Printf("Failed to release reservation %d: %v", id, err)
		}
	}
}

// Tick advances the countdown by one second. When the hold expires it
// reports true exactly once; the flow rolls back to slot selection
// without a release call, the hold being treated as server-expired.
func (s *Session) Tick() (expired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countdown == nil {
		return false
	}
	if s.countdown.Tick() {
		s.generation++
		s.rollbackToSlotsLocked()
		return true
	}
	return false
}

// RunCountdown drives Tick on a one-second ticker until the hold
// expires or the returned stop function is called. onTick receives the
// formatted remaining time and the warning flag after every tick.
func (s *Session) RunCountdown(onTick func(display string, warning bool), onExpire func()) (stop func()) {
	done := make(chan struct{})
	var once sync.Once
	stop = func() { once.Do(func() { close(done) }) }

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				expired := s.Tick()
				if onTick != nil {
					display, warning := s.CountdownDisplay()
					onTick(display, warning)
				}
				if expired {
					if onExpire != nil {
						onExpire()
					}
					return
				}
			}
		}
	}()
	return stop
}

// CountdownDisplay returns the current timer text and warning flag.
func (s *Session) CountdownDisplay() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countdown == nil {
		return "0:00", false
	}
	return s.countdown.Format(), s.countdown.Warning()
}

// SetName records the field and returns its validation state, as does
// every other field setter; each field is validated independently.
func (s *Session) SetName(name string) error {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	return validate.Name(name)
}

func (s *Session) SetEmail(email string) error {
	s.mu.Lock()
	s.email = email
	s.mu.Unlock()
	return validate.Email(email)
}

func (s *Session) SetPhone(phone string) error {
	s.mu.Lock()
	s.phone = phone
	s.mu.Unlock()
	return validate.Phone(phone)
}

// CanSubmit reports whether all three contact fields are currently
// valid. It is recomputed from the stored values on every call.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validate.Name(s.name) == nil &&
		validate.Email(s.email) == nil &&
		validate.Phone(s.phone) == nil
}

// Submit re-validates every field, requires an active unexpired
// reservation, and finalizes the booking. On success the countdown is
// stopped and the booking detail recorded; on failure the session
// stays in the form stage so the user can retry.
func (s *Session) Submit(ctx context.Context) (*entities.BookingDetail, error) {
	s.mu.Lock()
	if validate.Name(s.name) != nil || validate.Email(s.email) != nil || validate.Phone(s.phone) != nil {
		s.mu.Unlock()
		return nil, ErrFormInvalid
	}
	if s.reservationID == 0 || s.countdown == nil || s.countdown.Expired() {
		s.mu.Unlock()
		return nil, ErrNoReservation
	}
	req := entities.BookingRequest{
		ReservationID: s.reservationID,
		ClientName:    s.name,
		Email:         s.email,
		Phone:         s.phone,
		ServiceID:     s.service.ID,
		Date:          s.selectedDate,
		TimeSlot:      s.slot.Time,
	}
	gen := s.generation
	s.mu.Unlock()

	booking, err := s.client.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil, ErrReservationSuperseded
	}
	s.generation++
	s.reservationID = 0
	s.countdown = nil
	s.booking = booking
	s.stage = StageConfirmed
	return booking, nil
}

// Booking returns the confirmed booking, if the flow reached the end.
func (s *Session) Booking() *entities.BookingDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.booking
}

// rollbackToSlotsLocked clears the reservation and form and returns
// the flow to slot selection. Caller holds s.mu.
func (s *Session) rollbackToSlotsLocked() {
	s.reservationID = 0
	s.countdown = nil
	s.name = ""
	s.email = ""
	s.phone = ""
	if s.selectedDate != "" {
		s.stage = StageSlots
	} else if s.service != nil {
		s.stage = StageCalendar
	} else {
		s.stage = StageServices
	}
}
