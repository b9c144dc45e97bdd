//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/rating"
	"campus-booking/internal/domain/user"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/pg"
	"campus-booking/internal/usecase/shared"
)

// fakeStore is a map-backed stand-in for Postgres. The repository fakes
// below mimic the row-count and unique-violation semantics the real
// SQL produces, so the usecases under test see the same signals.
type fakeStore struct {
	users         map[uuid.UUID]*shared.UserSnapshot
	bookings      map[uuid.UUID]*shared.BookingSnapshot
	rooms         map[uuid.UUID]*shared.RoomSnapshot
	slots         map[uuid.UUID]*shared.SlotSnapshot
	members       map[uuid.UUID][]shared.MemberSnapshot
	tasks         []shared.TaskHandle
	notifications []shared.NotificationRecord
	ratings       map[string]bool

	// blockedFn, when set, replaces the derived conflict lookup. Tests
	// use it to let a submit slip past the availability pre-check and
	// hit the unique index instead.
	blockedFn func(roomID uuid.UUID, date time.Time) []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*shared.UserSnapshot),
		bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
		rooms:    make(map[uuid.UUID]*shared.RoomSnapshot),
		slots:    make(map[uuid.UUID]*shared.SlotSnapshot),
		members:  make(map[uuid.UUID][]shared.MemberSnapshot),
		ratings:  make(map[string]bool),
	}
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func conflict(what string) error {
	return infra.WrapRepoErr(what, nil, infra.KindConflict)
}

// ---- CommandReads ----

type fakeReads struct{ s *fakeStore }

func (r fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	cp := *u
	return &cp, nil
}

func (r fakeReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user")
}

func (r fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	cp := *b
	return &cp, nil
}

func (r fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, notFound("room")
	}
	cp := *rm
	return &cp, nil
}

func (r fakeReads) SlotByID(_ context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	sl, ok := r.s.slots[id]
	if !ok {
		return nil, notFound("time slot")
	}
	cp := *sl
	return &cp, nil
}

func (r fakeReads) BlockedSlotIDs(_ context.Context, roomID uuid.UUID, date time.Time) ([]uuid.UUID, error) {
	if r.s.blockedFn != nil {
		return r.s.blockedFn(roomID, date), nil
	}
	var out []uuid.UUID
	for _, b := range r.s.bookings {
		if b.RoomID == roomID && sameDate(b.BookedDate, date) && b.Status.Blocks() {
			out = append(out, b.SlotID)
		}
	}
	return out, nil
}

func (r fakeReads) MembersByBooking(_ context.Context, bookingID uuid.UUID) ([]shared.MemberSnapshot, error) {
	return append([]shared.MemberSnapshot(nil), r.s.members[bookingID]...), nil
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// ---- write repositories ----

type fakeBookingRepo struct{ s *fakeStore }

func (f fakeBookingRepo) Create(_ context.Context, _ pg.DBTX, b *booking.Booking) error {
	if b.Status() == booking.StatusInitiated {
		for _, ex := range f.s.bookings {
			if ex.OwnerID == b.OwnerID() && ex.Status == booking.StatusInitiated {
				return conflict("draft already exists")
			}
		}
	}
	if b.Status().Blocks() && f.slotTaken(b.ID(), b.RoomID(), b.SlotID(), b.BookedDate()) {
		return conflict("booking conflicts with an existing one")
	}
	f.s.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:         b.ID(),
		Code:       b.Code(),
		OwnerID:    b.OwnerID(),
		RoomID:     b.RoomID(),
		SlotID:     b.SlotID(),
		BookedDate: b.BookedDate(),
		Purpose:    b.Purpose(),
		Status:     b.Status(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
	return nil
}

func (f fakeBookingRepo) slotTaken(id uuid.UUID, roomID, slotID uuid.UUID, date time.Time) bool {
	for _, ex := range f.s.bookings {
		if ex.ID != id && ex.RoomID == roomID && ex.SlotID == slotID &&
			sameDate(ex.BookedDate, date) && ex.Status.Blocks() {
			return true
		}
	}
	return false
}

func (f fakeBookingRepo) UpdateStatus(_ context.Context, _ pg.DBTX, id uuid.UUID, from, to booking.Status, reason *string, now time.Time) (int64, error) {
	b, ok := f.s.bookings[id]
	if !ok || b.Status != from {
		return 0, nil
	}
	if to.Blocks() && f.slotTaken(id, b.RoomID, b.SlotID, b.BookedDate) {
		return 0, conflict("booking conflicts with an existing one")
	}
	b.Status = to
	if reason != nil {
		b.StatusReason = reason
	}
	b.UpdatedAt = now
	return 1, nil
}

func (f fakeBookingRepo) UpdateSlot(_ context.Context, _ pg.DBTX, id uuid.UUID, slotID uuid.UUID, date time.Time, now time.Time) (int64, error) {
	b, ok := f.s.bookings[id]
	if !ok || (b.Status != booking.StatusPending && b.Status != booking.StatusActive) {
		return 0, nil
	}
	for _, ex := range f.s.bookings {
		if ex.ID != id && ex.RoomID == b.RoomID && ex.SlotID == slotID &&
			sameDate(ex.BookedDate, date) && ex.Status.Blocks() {
			return 0, conflict("booking conflicts with an existing one")
		}
	}
	b.SlotID = slotID
	b.BookedDate = date
	b.Status = booking.StatusActive
	b.UpdatedAt = now
	return 1, nil
}

func (f fakeBookingRepo) DeleteDraftByOwner(_ context.Context, _ pg.DBTX, ownerID uuid.UUID) (int64, error) {
	var n int64
	for id, ex := range f.s.bookings {
		if ex.OwnerID == ownerID && ex.Status == booking.StatusInitiated {
			delete(f.s.bookings, id)
			n++
		}
	}
	return n, nil
}

func (f fakeBookingRepo) Delete(_ context.Context, _ pg.DBTX, id uuid.UUID) error {
	if _, ok := f.s.bookings[id]; !ok {
		return notFound("booking")
	}
	delete(f.s.bookings, id)
	return nil
}

type fakeMemberRepo struct{ s *fakeStore }

func (f fakeMemberRepo) Add(_ context.Context, _ pg.DBTX, bookingID, userID uuid.UUID, isOwner bool, _ time.Time) error {
	for _, m := range f.s.members[bookingID] {
		if m.UserID == userID {
			return conflict("user is already a member of this booking")
		}
	}
	var email, name string
	if u, ok := f.s.users[userID]; ok {
		email, name = u.Email, u.FullName
	}
	f.s.members[bookingID] = append(f.s.members[bookingID], shared.MemberSnapshot{
		UserID: userID, Email: email, FullName: name, IsOwner: isOwner,
	})
	return nil
}

func (f fakeMemberRepo) Remove(_ context.Context, _ pg.DBTX, bookingID, userID uuid.UUID) (int64, error) {
	members := f.s.members[bookingID]
	for i, m := range members {
		if m.UserID == userID && !m.IsOwner {
			f.s.members[bookingID] = append(members[:i:i], members[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeTaskRepo struct{ s *fakeStore }

func (f fakeTaskRepo) Add(_ context.Context, _ pg.DBTX, t shared.TaskHandle) error {
	f.s.tasks = append(f.s.tasks, t)
	return nil
}

func (f fakeTaskRepo) deleteWhere(match func(shared.TaskHandle) bool) []shared.TaskHandle {
	var removed []shared.TaskHandle
	kept := f.s.tasks[:0]
	for _, t := range f.s.tasks {
		if match(t) {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	f.s.tasks = kept
	return removed
}

func (f fakeTaskRepo) DeleteByBooking(_ context.Context, _ pg.DBTX, bookingID uuid.UUID) ([]shared.TaskHandle, error) {
	return f.deleteWhere(func(t shared.TaskHandle) bool { return t.BookingID == bookingID }), nil
}

func (f fakeTaskRepo) DeleteByBookingAndUser(_ context.Context, _ pg.DBTX, bookingID, userID uuid.UUID) ([]shared.TaskHandle, error) {
	return f.deleteWhere(func(t shared.TaskHandle) bool {
		return t.BookingID == bookingID && t.UserID != nil && *t.UserID == userID
	}), nil
}

func (f fakeTaskRepo) DeleteByJobID(_ context.Context, _ pg.DBTX, jobID string) error {
	f.deleteWhere(func(t shared.TaskHandle) bool { return t.JobID == jobID })
	return nil
}

type fakeNotificationRepo struct{ s *fakeStore }

func (f fakeNotificationRepo) Create(_ context.Context, _ pg.DBTX, n shared.NotificationRecord) error {
	f.s.notifications = append(f.s.notifications, n)
	return nil
}

func (f fakeNotificationRepo) MarkRead(_ context.Context, _ pg.DBTX, id, userID uuid.UUID) (int64, error) {
	for _, n := range f.s.notifications {
		if n.ID == id && n.UserID == userID {
			return 1, nil
		}
	}
	return 0, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (f fakeUserRepo) Create(_ context.Context, _ pg.DBTX, u *user.User) error {
	for _, ex := range f.s.users {
		if ex.Email == u.Email() {
			return conflict("email already registered")
		}
	}
	f.s.users[u.ID()] = &shared.UserSnapshot{
		ID:             u.ID(),
		Email:          u.Email(),
		PasswordHash:   u.PasswordHash(),
		FullName:       u.FullName(),
		Role:           u.Role(),
		Verification:   u.Verification(),
		EmailConfirmed: u.EmailConfirmed(),
	}
	return nil
}

func (f fakeUserRepo) UpdateVerification(_ context.Context, _ pg.DBTX, id uuid.UUID, to user.VerificationStatus, _ time.Time) (int64, error) {
	u, ok := f.s.users[id]
	if !ok {
		return 0, nil
	}
	u.Verification = to
	return 1, nil
}

func (f fakeUserRepo) ConfirmEmail(_ context.Context, _ pg.DBTX, id uuid.UUID, _ time.Time) error {
	u, ok := f.s.users[id]
	if !ok {
		return notFound("user")
	}
	u.EmailConfirmed = true
	return nil
}

func (f fakeUserRepo) UpdateLastLogin(_ context.Context, _ pg.DBTX, _ uuid.UUID, _ time.Time) error {
	return nil
}

type fakeRatingRepo struct{ s *fakeStore }

func (f fakeRatingRepo) Create(_ context.Context, _ pg.DBTX, r *rating.Rating) error {
	key := r.BookingID().String() + "/" + r.UserID().String()
	if f.s.ratings[key] {
		return conflict("booking already rated")
	}
	f.s.ratings[key] = true
	return nil
}

type fakeContentRepo struct{ s *fakeStore }

func (f fakeContentRepo) CreateArticle(_ context.Context, _ pg.DBTX, _ shared.ArticleRecord) error {
	return nil
}

func (f fakeContentRepo) CreateBanner(_ context.Context, _ pg.DBTX, _ shared.BannerRecord) error {
	return nil
}

func (f fakeContentRepo) CreateRoom(_ context.Context, _ pg.DBTX, r shared.RoomSnapshot) error {
	f.s.rooms[r.ID] = &r
	return nil
}

func (f fakeContentRepo) CreateSlot(_ context.Context, _ pg.DBTX, sl shared.SlotSnapshot) error {
	f.s.slots[sl.ID] = &sl
	return nil
}

// ---- unit of work ----

type fakeTx struct{ s *fakeStore }

func (t fakeTx) Bookings() shared.BookingRepository           { return fakeBookingRepo{t.s} }
func (t fakeTx) Members() shared.MemberRepository             { return fakeMemberRepo{t.s} }
func (t fakeTx) Tasks() shared.TaskRepository                 { return fakeTaskRepo{t.s} }
func (t fakeTx) Notifications() shared.NotificationRepository { return fakeNotificationRepo{t.s} }
func (t fakeTx) Users() shared.UserRepository                 { return fakeUserRepo{t.s} }
func (t fakeTx) Ratings() shared.RatingRepository             { return fakeRatingRepo{t.s} }
func (t fakeTx) Content() shared.ContentRepository            { return fakeContentRepo{t.s} }
func (t fakeTx) Reads() shared.CommandReads                   { return fakeReads{t.s} }
func (t fakeTx) DB() pg.DBTX                                  { return nil }

type fakeUoW struct{ s *fakeStore }

func (u fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, fakeTx{u.s})
}

func (u fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db pg.DBTX) error) error {
	return fn(ctx, nil)
}

func (u fakeUoW) CommandReads() shared.CommandReads { return fakeReads{u.s} }

// ---- scheduler and notifier ----

// fakeScheduler records every call in order so tests can assert that
// revocations land before fresh schedules.
type fakeScheduler struct {
	seq       int
	scheduled []shared.ScheduledJob
	revoked   []string
	calls     []string

	scheduleErr error
}

func (f *fakeScheduler) Schedule(_ context.Context, job shared.ScheduledJob) (string, error) {
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}
	f.seq++
	id := fmt.Sprintf("job-%d", f.seq)
	f.scheduled = append(f.scheduled, job)
	f.calls = append(f.calls, "schedule:"+id)
	return id, nil
}

func (f *fakeScheduler) Revoke(_ context.Context, jobID string) error {
	f.revoked = append(f.revoked, jobID)
	f.calls = append(f.calls, "revoke:"+jobID)
	return nil
}

type fakeNotifier struct {
	pushes []shared.PushMessage
}

func (f *fakeNotifier) Push(_ context.Context, msg shared.PushMessage) error {
	f.pushes = append(f.pushes, msg)
	return nil
}
