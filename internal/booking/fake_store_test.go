package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/allowance"
	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
	"github.com/alvimrfg/sistema-socio-40graus/internal/inventory"
	"github.com/alvimrfg/sistema-socio-40graus/internal/member"
)

// fakeStore is an in-memory stand-in for the members, accommodations and
// bookings tables. WithTx serializes transactions and rolls the whole store
// back when the body fails, which is what SERIALIZABLE gives the real engine.
type fakeStore struct {
	mu             sync.Mutex
	members        map[int]*member.Member
	accommodations map[string]int
	bookings       map[int]*Booking
	nextID         int
	// baseline is the usedDays each member started with, before any booking.
	baseline map[int]int

	// failDebit, when set, makes the next Debit fail after the booking row is written.
	failDebit error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:        map[int]*member.Member{},
		accommodations: map[string]int{},
		bookings:       map[int]*Booking{},
		baseline:       map[int]int{},
	}
}

func (s *fakeStore) addMember(id, allowanceDays, usedDays int) {
	s.members[id] = &member.Member{
		ID:            id,
		FullName:      fmt.Sprintf("Member %d", id),
		Email:         fmt.Sprintf("m%d@example.com", id),
		AllowanceDays: allowanceDays,
		UsedDays:      usedDays,
	}
	s.baseline[id] = usedDays
}

func (s *fakeStore) usedDays(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[id].UsedDays
}

func (s *fakeStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *fakeStore) status(id int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id].Status
}

type snapshot struct {
	used     map[int]int
	bookings map[int]Booking
	nextID   int
}

func (s *fakeStore) snapshot() snapshot {
	snap := snapshot{used: map[int]int{}, bookings: map[int]Booking{}, nextID: s.nextID}
	for id, m := range s.members {
		snap.used[id] = m.UsedDays
	}
	for id, b := range s.bookings {
		snap.bookings[id] = *b
	}
	return snap
}

func (s *fakeStore) restore(snap snapshot) {
	for id, used := range snap.used {
		s.members[id].UsedDays = used
	}
	s.bookings = map[int]*Booking{}
	for id, b := range snap.bookings {
		b := b
		s.bookings[id] = &b
	}
	s.nextID = snap.nextID
}

func (s *fakeStore) WithTx(ctx context.Context, fn db.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *fakeStore) newService(notifier Notifier) Service {
	return NewService(s, nil, fakeRepo{s}, fakeAllowance{s}, fakeInventory{s}, fakeMembers{s}, notifier)
}

// checkInvariants reports the first violated ledger invariant, or nil.
func (s *fakeStore) checkInvariants() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.members {
		if m.UsedDays < 0 || m.UsedDays > m.AllowanceDays {
			return fmt.Errorf("member %d: used %d outside [0, %d]", id, m.UsedDays, m.AllowanceDays)
		}
	}

	nights := map[string]map[time.Time]int{}
	for _, b := range s.bookings {
		if b.Status != StatusConfirmed {
			continue
		}
		if nights[b.AccommodationType] == nil {
			nights[b.AccommodationType] = map[time.Time]int{}
		}
		for d := b.StartDate; d.Before(b.EndDate); d = d.AddDate(0, 0, 1) {
			nights[b.AccommodationType][d]++
		}
	}
	for name, perNight := range nights {
		for night, count := range perNight {
			if count > s.accommodations[name] {
				return fmt.Errorf("%s on %s: %d confirmed for %d units", name, night.Format(calendar.DateLayout), count, s.accommodations[name])
			}
		}
	}

	debits := map[int]int{}
	for _, b := range s.bookings {
		if b.Status.HoldsDebit() {
			debits[b.MemberID] += b.Days()
		}
	}
	for id, m := range s.members {
		if m.UsedDays != s.baseline[id]+debits[id] {
			return fmt.Errorf("member %d: used %d but confirmed bookings hold %d over a baseline of %d", id, m.UsedDays, debits[id], s.baseline[id])
		}
	}
	return nil
}

type fakeAllowance struct{ s *fakeStore }

func (f fakeAllowance) Balance(ctx context.Context, q sqlx.QueryerContext, memberID int) (allowance.Balance, error) {
	m, ok := f.s.members[memberID]
	if !ok {
		return allowance.Balance{}, apperror.NotFound("member %d", memberID)
	}
	return allowance.Balance{
		MemberID:  m.ID,
		Total:     m.AllowanceDays,
		Used:      m.UsedDays,
		Available: m.AllowanceDays - m.UsedDays,
	}, nil
}

func (f fakeAllowance) Lock(ctx context.Context, q sqlx.QueryerContext, memberID int) (allowance.Balance, error) {
	return f.Balance(ctx, q, memberID)
}

func (f fakeAllowance) Debit(ctx context.Context, q sqlx.ExtContext, memberID, days int) error {
	if err := f.s.failDebit; err != nil {
		f.s.failDebit = nil
		return err
	}
	m, ok := f.s.members[memberID]
	if !ok {
		return apperror.NotFound("member %d", memberID)
	}
	if m.AllowanceDays-m.UsedDays < days {
		return apperror.ErrInsufficientBalance
	}
	m.UsedDays += days
	return nil
}

func (f fakeAllowance) Credit(ctx context.Context, q sqlx.ExtContext, memberID, days int) error {
	m, ok := f.s.members[memberID]
	if !ok {
		return apperror.NotFound("member %d", memberID)
	}
	m.UsedDays -= days
	if m.UsedDays < 0 {
		m.UsedDays = 0
	}
	return nil
}

type fakeInventory struct{ s *fakeStore }

func (f fakeInventory) Lock(ctx context.Context, q sqlx.QueryerContext, name string) (*inventory.Accommodation, error) {
	total, ok := f.s.accommodations[name]
	if !ok {
		return nil, apperror.NotFound("accommodation type %q", name)
	}
	return &inventory.Accommodation{Type: name, TotalQuantity: total}, nil
}

func (f fakeInventory) FreeUnits(ctx context.Context, q sqlx.QueryerContext, name string, iv calendar.Interval, excludeBookingID int) (int, error) {
	total, ok := f.s.accommodations[name]
	if !ok {
		return 0, nil
	}
	used := 0
	for _, b := range f.s.bookings {
		if b.AccommodationType == name && b.Status == StatusConfirmed && b.ID != excludeBookingID && b.Interval().Overlaps(iv) {
			used++
		}
	}
	if total-used < 0 {
		return 0, nil
	}
	return total - used, nil
}

type fakeRepo struct{ s *fakeStore }

func (f fakeRepo) Insert(ctx context.Context, q sqlx.QueryerContext, b *Booking) error {
	if _, ok := f.s.members[b.MemberID]; !ok {
		return apperror.NotFound("member %d", b.MemberID)
	}
	if _, ok := f.s.accommodations[b.AccommodationType]; !ok {
		return apperror.NotFound("accommodation type %q", b.AccommodationType)
	}
	f.s.nextID++
	b.ID = f.s.nextID
	b.CreatedAt = time.Now()
	stored := *b
	f.s.bookings[b.ID] = &stored
	return nil
}

func (f fakeRepo) GetForUpdate(ctx context.Context, q sqlx.QueryerContext, id int) (*Booking, error) {
	b, ok := f.s.bookings[id]
	if !ok {
		return nil, apperror.NotFound("booking %d", id)
	}
	out := *b
	return &out, nil
}

func (f fakeRepo) UpdateStatus(ctx context.Context, q sqlx.ExecerContext, id int, status Status) error {
	b, ok := f.s.bookings[id]
	if !ok {
		return apperror.NotFound("booking %d", id)
	}
	b.Status = status
	return nil
}

func (f fakeRepo) details(b *Booking) BookingWithDetails {
	return BookingWithDetails{Booking: *b, MemberName: f.s.members[b.MemberID].FullName}
}

func (f fakeRepo) GetByID(ctx context.Context, id int) (*BookingWithDetails, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.bookings[id]
	if !ok {
		return nil, apperror.NotFound("booking %d", id)
	}
	d := f.details(b)
	return &d, nil
}

func (f fakeRepo) List(ctx context.Context) ([]BookingWithDetails, error) {
	return f.ListByMember(ctx, 0)
}

func (f fakeRepo) ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []BookingWithDetails{}
	for _, b := range f.s.bookings {
		if memberID == 0 || b.MemberID == memberID {
			out = append(out, f.details(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeMembers struct{ s *fakeStore }

func (f fakeMembers) GetByID(ctx context.Context, id int) (*member.Member, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.members[id]
	if !ok {
		return nil, apperror.NotFound("member %d", id)
	}
	out := *m
	return &out, nil
}

type sentNotification struct {
	kind              string
	to                string
	accommodationType string
	interval          calendar.Interval
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *recordingNotifier) SendBookingConfirmation(ctx context.Context, to, name, accommodationType string, iv calendar.Interval) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{"confirmation", to, accommodationType, iv})
	return n.err
}

func (n *recordingNotifier) SendBookingCancellation(ctx context.Context, to, name, accommodationType string, iv calendar.Interval) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{"cancellation", to, accommodationType, iv})
	return n.err
}
