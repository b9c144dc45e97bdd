//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/timeslot"
	"campus-booking/internal/domain/user"
	reqdto "campus-booking/internal/handler/dto/request"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/usecase/commands"
	"campus-booking/internal/usecase/shared"
)

type bookingFixture struct {
	store *fakeStore
	sched *fakeScheduler
	notif *fakeNotifier
	clk   *clock.MockClock
	uc    commands.BookingCommands
}

// Fixed clock: the morning of 2026-03-01 UTC. Bookings default to the
// next day so same-day timing rules stay out of the way unless a test
// wants them.
func newBookingFixture() *bookingFixture {
	store := newFakeStore()
	sched := &fakeScheduler{}
	notif := &fakeNotifier{}
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	return &bookingFixture{
		store: store,
		sched: sched,
		notif: notif,
		clk:   clk,
		uc:    commands.NewBookingUseCase(fakeUoW{store}, sched, notif, clk),
	}
}

const tomorrow = "2026-03-02"

func (f *bookingFixture) addUser(verification user.VerificationStatus) uuid.UUID {
	id := uuid.New()
	f.store.users[id] = &shared.UserSnapshot{
		ID:             id,
		Email:          id.String() + "@campus.test",
		FullName:       "Test User",
		Role:           user.RoleStudent,
		Verification:   verification,
		EmailConfirmed: true,
	}
	return id
}

func (f *bookingFixture) addRoom(active bool) uuid.UUID {
	id := uuid.New()
	f.store.rooms[id] = &shared.RoomSnapshot{
		ID: id, Name: "Study Room A", Location: "Library 2F", Capacity: 6, IsActive: active,
	}
	return id
}

func (f *bookingFixture) addSlot(start, end string) uuid.UUID {
	id := uuid.New()
	f.store.slots[id] = &shared.SlotSnapshot{
		ID:    id,
		Start: mustParseTime(start),
		End:   mustParseTime(end),
	}
	return id
}

func mustParseTime(s string) timeslot.TimeOfDay {
	t, err := timeslot.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *bookingFixture) addBooking(ownerID, roomID, slotID uuid.UUID, date string, status booking.Status) uuid.UUID {
	id := uuid.New()
	day, _ := time.Parse("2006-01-02", date)
	f.store.bookings[id] = &shared.BookingSnapshot{
		ID:         id,
		Code:       "BK" + id.String()[:6],
		OwnerID:    ownerID,
		RoomID:     roomID,
		SlotID:     slotID,
		BookedDate: day,
		Purpose:    "study session",
		Status:     status,
		CreatedAt:  f.clk.Now(),
		UpdatedAt:  f.clk.Now(),
	}
	f.store.members[id] = []shared.MemberSnapshot{{UserID: ownerID, IsOwner: true}}
	return id
}

func countJobs(jobs []shared.ScheduledJob, kind shared.JobKind) int {
	n := 0
	for _, j := range jobs {
		if j.Kind == kind {
			n++
		}
	}
	return n
}

func TestInitiate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft with the owner as first member", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")

		snap, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slot, BookedDate: tomorrow, Purpose: "group work",
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusInitiated, snap.Status)
		assert.NotEmpty(t, snap.Code)

		members := f.store.members[snap.ID]
		require.Len(t, members, 1)
		assert.Equal(t, owner, members[0].UserID)
		assert.True(t, members[0].IsOwner)
		assert.Empty(t, f.sched.scheduled, "drafts do not schedule jobs")
	})

	t.Run("unverified owner is rejected", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationPending)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slot, BookedDate: tomorrow,
		})
		assert.ErrorIs(t, err, commands.ErrUserNotVerified)
	})

	t.Run("inactive room is rejected", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(false)
		slot := f.addSlot("10:00", "11:00")

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slot, BookedDate: tomorrow,
		})
		assert.ErrorIs(t, err, commands.ErrRoomInactive)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slot, BookedDate: "2026-02-28",
		})
		assert.ErrorIs(t, err, commands.ErrDateInPast)
	})

	t.Run("slot already started today is rejected", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("07:00", "09:00")

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slot, BookedDate: "2026-03-01",
		})
		assert.ErrorIs(t, err, commands.ErrSlotElapsed)
	})

	t.Run("new draft supersedes the old one", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slotA := f.addSlot("10:00", "11:00")
		slotB := f.addSlot("13:00", "14:00")
		oldID := f.addBooking(owner, room, slotA, tomorrow, booking.StatusInitiated)

		snap, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slotB, BookedDate: tomorrow,
		})
		require.NoError(t, err)

		assert.NotContains(t, f.store.bookings, oldID, "previous draft discarded")
		assert.Equal(t, slotB, f.store.bookings[snap.ID].SlotID)
	})

	t.Run("submitted booking is not superseded by a new draft", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slotA := f.addSlot("10:00", "11:00")
		slotB := f.addSlot("13:00", "14:00")
		pendingID := f.addBooking(owner, room, slotA, tomorrow, booking.StatusPending)

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slotB, BookedDate: tomorrow,
		})
		require.NoError(t, err)
		assert.Contains(t, f.store.bookings, pendingID)
	})

	t.Run("overlapping pending booking blocks the slot", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		other := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		taken := f.addSlot("09:30", "10:30")
		wanted := f.addSlot("10:00", "11:00")
		f.addBooking(other, room, taken, tomorrow, booking.StatusPending)

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: wanted, BookedDate: tomorrow,
		})
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("back to back slots sharing a boundary conflict", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		other := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		taken := f.addSlot("09:00", "10:00")
		wanted := f.addSlot("10:00", "11:00")
		f.addBooking(other, room, taken, tomorrow, booking.StatusActive)

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: wanted, BookedDate: tomorrow,
		})
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("same slot on another date does not conflict", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		other := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		f.addBooking(other, room, slot, tomorrow, booking.StatusActive)

		_, err := f.uc.Initiate(ctx, owner, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slot, BookedDate: "2026-03-03",
		})
		assert.NoError(t, err)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("fans the draft out into a pending booking and schedules the expiry check only", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		friend := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusInitiated)
		f.store.members[id] = append(f.store.members[id], shared.MemberSnapshot{UserID: friend})

		created, err := f.uc.Submit(ctx, owner, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "project kickoff",
		})
		require.NoError(t, err)

		assert.NotContains(t, f.store.bookings, id, "draft deleted on submission")
		require.Len(t, created, 1)
		b := f.store.bookings[created[0].ID]
		require.NotNil(t, b)
		assert.Equal(t, booking.StatusPending, b.Status)
		assert.Equal(t, "project kickoff", b.Purpose)
		assert.Equal(t, slot, b.SlotID)
		assert.NotEqual(t, id, b.ID, "submission creates a fresh booking")

		// The draft's members come along, owner flag intact.
		members := f.store.members[created[0].ID]
		require.Len(t, members, 2)
		assert.True(t, members[0].IsOwner)
		assert.Equal(t, friend, members[1].UserID)

		assert.Equal(t, 1, countJobs(f.sched.scheduled, shared.JobKindExpire))
		assert.Equal(t, 0, countJobs(f.sched.scheduled, shared.JobKindReminder),
			"reminders arrive with approval")
		require.Len(t, f.store.tasks, 1)
		assert.Nil(t, f.store.tasks[0].UserID)
		assert.Equal(t, created[0].ID, f.store.tasks[0].BookingID)

		// Both members are notified in-app and by push.
		assert.Len(t, f.store.notifications, 2)
		assert.Len(t, f.notif.pushes, 2)
	})

	t.Run("one booking per requested slot, each with its own expiry check", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		friend := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slotA := f.addSlot("10:00", "11:00")
		slotB := f.addSlot("11:00", "12:00")
		id := f.addBooking(owner, room, slotA, tomorrow, booking.StatusInitiated)
		f.store.members[id] = append(f.store.members[id], shared.MemberSnapshot{UserID: friend})

		created, err := f.uc.Submit(ctx, owner, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slotA, slotB}, Purpose: "all-day workshop",
		})
		require.NoError(t, err)

		require.Len(t, created, 2)
		assert.Equal(t, slotA, created[0].SlotID)
		assert.Equal(t, slotB, created[1].SlotID)
		assert.NotEqual(t, created[0].Code, created[1].Code)
		for _, snap := range created {
			assert.Equal(t, booking.StatusPending, f.store.bookings[snap.ID].Status)
			assert.Len(t, f.store.members[snap.ID], 2, "members copied into every sibling")
		}

		require.Equal(t, 2, countJobs(f.sched.scheduled, shared.JobKindExpire))
		assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), f.sched.scheduled[0].RunAt)
		assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), f.sched.scheduled[1].RunAt)
	})

	t.Run("the same slot twice is rejected", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusInitiated)

		_, err := f.uc.Submit(ctx, owner, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot, slot}, Purpose: "study",
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.Contains(t, f.store.bookings, id, "draft survives a failed submit")
	})

	t.Run("only the owner can submit", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		stranger := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusInitiated)

		_, err := f.uc.Submit(ctx, stranger, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "study",
		})
		assert.ErrorIs(t, err, commands.ErrNotBookingOwner)
	})

	t.Run("pre-check catches a submitted competitor", func(t *testing.T) {
		f := newBookingFixture()
		alice := f.addUser(user.VerificationVerified)
		bob := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		aliceID := f.addBooking(alice, room, slot, tomorrow, booking.StatusInitiated)
		bobID := f.addBooking(bob, room, slot, tomorrow, booking.StatusInitiated)

		_, err := f.uc.Submit(ctx, alice, aliceID, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "study",
		})
		require.NoError(t, err)

		_, err = f.uc.Submit(ctx, bob, bobID, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "study",
		})
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Equal(t, booking.StatusInitiated, f.store.bookings[bobID].Status)
	})

	t.Run("unique index backstops a race the pre-check missed", func(t *testing.T) {
		f := newBookingFixture()
		alice := f.addUser(user.VerificationVerified)
		bob := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		f.addBooking(alice, room, slot, tomorrow, booking.StatusPending)
		bobID := f.addBooking(bob, room, slot, tomorrow, booking.StatusInitiated)

		// Simulate the read that happened before Alice committed.
		f.store.blockedFn = func(uuid.UUID, time.Time) []uuid.UUID { return nil }

		_, err := f.uc.Submit(ctx, bob, bobID, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "study",
		})
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Equal(t, booking.StatusInitiated, f.store.bookings[bobID].Status)
		assert.Empty(t, f.sched.scheduled, "no jobs for a failed submit")
	})
}

func TestTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("approve moves pending to active and fans out the reminders", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		friendA := f.addUser(user.VerificationVerified)
		friendB := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusInitiated)
		f.store.members[id] = append(f.store.members[id],
			shared.MemberSnapshot{UserID: friendA},
			shared.MemberSnapshot{UserID: friendB})

		created, err := f.uc.Submit(ctx, owner, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "study",
		})
		require.NoError(t, err)
		pid := created[0].ID
		require.NoError(t, f.uc.Approve(ctx, pid))

		assert.Equal(t, booking.StatusActive, f.store.bookings[pid].Status)
		assert.Equal(t, 10, countJobs(f.sched.scheduled, shared.JobKindReminder),
			"five reminders per non-owner member")
		assert.Len(t, f.sched.revoked, 1, "the expiry check is revoked")
		require.Len(t, f.store.tasks, 10)
		for _, task := range f.store.tasks {
			assert.Equal(t, shared.JobKindReminder, task.Kind)
			assert.NotNil(t, task.UserID)
		}

		var added, approved int
		for _, n := range f.store.notifications {
			switch n.Type {
			case "member_added":
				added++
			case "booking_approved":
				approved++
			}
		}
		assert.Equal(t, 2, added, "each non-owner member is told they are on the booking")
		assert.Equal(t, 1, approved, "the owner gets the approval notice")
	})

	t.Run("reminders anchor to the slot boundaries, final at slot end", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		friend := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusPending)
		f.store.members[id] = append(f.store.members[id], shared.MemberSnapshot{UserID: friend})

		require.NoError(t, f.uc.Approve(ctx, id))

		start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)

		var finals int
		runAts := make(map[time.Time]bool)
		for _, j := range f.sched.scheduled {
			runAts[j.RunAt] = true
			if j.Final {
				finals++
				assert.Equal(t, end, j.RunAt)
			}
		}
		assert.Equal(t, 1, finals)
		for _, want := range []time.Time{
			start.Add(-10 * time.Minute), start,
			end.Add(-10 * time.Minute), end.Add(-5 * time.Minute), end,
		} {
			assert.True(t, runAts[want], "missing reminder at %s", want)
		}
	})

	t.Run("approve on an active booking fails validation", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusActive)

		err := f.uc.Approve(ctx, id)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("reject stores the reason", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusPending)

		require.NoError(t, f.uc.Reject(ctx, id, reqdto.RejectBookingRequest{Reason: "room under maintenance"}))
		b := f.store.bookings[id]
		assert.Equal(t, booking.StatusRejected, b.Status)
		require.NotNil(t, b.StatusReason)
		assert.Equal(t, "room under maintenance", *b.StatusReason)
	})

	t.Run("cancel revokes every queued job", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		friend := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusInitiated)
		f.store.members[id] = append(f.store.members[id], shared.MemberSnapshot{UserID: friend})

		created, err := f.uc.Submit(ctx, owner, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "study",
		})
		require.NoError(t, err)
		pid := created[0].ID
		require.NoError(t, f.uc.Approve(ctx, pid))
		queued := len(f.store.tasks)
		require.Equal(t, 5, queued)

		require.NoError(t, f.uc.Cancel(ctx, owner, false, pid, reqdto.CancelBookingRequest{Reason: "plans changed"}))

		assert.Equal(t, booking.StatusCanceled, f.store.bookings[pid].Status)
		assert.Empty(t, f.store.tasks, "tracking rows removed")
		assert.Len(t, f.sched.revoked, queued+1, "the reminders plus the earlier expiry check")
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusPending)

		err := f.uc.Cancel(ctx, owner, false, id, reqdto.CancelBookingRequest{})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("cancel by a non-owner needs admin", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		stranger := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusPending)

		err := f.uc.Cancel(ctx, stranger, false, id, reqdto.CancelBookingRequest{Reason: "nope"})
		assert.ErrorIs(t, err, commands.ErrNotBookingOwner)

		require.NoError(t, f.uc.Cancel(ctx, stranger, true, id, reqdto.CancelBookingRequest{Reason: "policy violation"}))
		assert.Equal(t, booking.StatusCanceled, f.store.bookings[id].Status)
	})

	t.Run("canceled booking frees the slot", func(t *testing.T) {
		f := newBookingFixture()
		alice := f.addUser(user.VerificationVerified)
		bob := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		aliceID := f.addBooking(alice, room, slot, tomorrow, booking.StatusPending)

		require.NoError(t, f.uc.Cancel(ctx, alice, false, aliceID, reqdto.CancelBookingRequest{Reason: "done"}))

		_, err := f.uc.Initiate(ctx, bob, reqdto.InitiateBookingRequest{
			RoomID: room, SlotID: slot, BookedDate: tomorrow,
		})
		assert.NoError(t, err)
	})
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes old jobs before scheduling new ones", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		friend := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slotA := f.addSlot("10:00", "11:00")
		slotB := f.addSlot("14:00", "15:00")
		id := f.addBooking(owner, room, slotA, tomorrow, booking.StatusInitiated)
		f.store.members[id] = append(f.store.members[id], shared.MemberSnapshot{UserID: friend})

		created, err := f.uc.Submit(ctx, owner, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slotA}, Purpose: "study",
		})
		require.NoError(t, err)
		pid := created[0].ID
		require.NoError(t, f.uc.Approve(ctx, pid))
		oldJobs := len(f.store.tasks)
		require.Equal(t, 5, oldJobs)
		priorCalls := len(f.sched.calls)

		require.NoError(t, f.uc.Reschedule(ctx, owner, pid, reqdto.RescheduleBookingRequest{
			SlotID: slotB, BookedDate: tomorrow,
		}))

		b := f.store.bookings[pid]
		assert.Equal(t, slotB, b.SlotID)
		assert.Equal(t, booking.StatusActive, b.Status)

		assert.Len(t, f.store.tasks, oldJobs, "only the new set is tracked")
		assert.Equal(t, 0, countJobs(f.sched.scheduled, shared.JobKindExpire)-1,
			"no new expiry check for an active booking")

		// Every revoke call must precede every post-reschedule schedule
		// call, so a slow revocation can never cancel a fresh job.
		calls := f.sched.calls[priorCalls:]
		lastRevoke, firstSchedule := -1, len(calls)
		for i, c := range calls {
			if c[:6] == "revoke" && i > lastRevoke {
				lastRevoke = i
			}
			if c[:8] == "schedule" && i < firstSchedule {
				firstSchedule = i
			}
		}
		assert.Less(t, lastRevoke, firstSchedule)

		// New reminders anchor to the new slot.
		newJobs := f.sched.scheduled[len(f.sched.scheduled)-oldJobs:]
		for _, j := range newJobs {
			if j.Final {
				assert.Equal(t, time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC), j.RunAt)
			}
		}
	})

	t.Run("rescheduling a pending booking activates it", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slotA := f.addSlot("10:00", "11:00")
		slotB := f.addSlot("14:00", "15:00")
		id := f.addBooking(owner, room, slotA, tomorrow, booking.StatusPending)

		require.NoError(t, f.uc.Reschedule(ctx, owner, id, reqdto.RescheduleBookingRequest{
			SlotID: slotB, BookedDate: tomorrow,
		}))
		assert.Equal(t, booking.StatusActive, f.store.bookings[id].Status)
	})

	t.Run("same slot and date is rejected", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusPending)

		err := f.uc.Reschedule(ctx, owner, id, reqdto.RescheduleBookingRequest{
			SlotID: slot, BookedDate: tomorrow,
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("terminal bookings do not move", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slotA := f.addSlot("10:00", "11:00")
		slotB := f.addSlot("14:00", "15:00")
		id := f.addBooking(owner, room, slotA, tomorrow, booking.StatusCompleted)

		err := f.uc.Reschedule(ctx, owner, id, reqdto.RescheduleBookingRequest{
			SlotID: slotB, BookedDate: tomorrow,
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("target slot must be free", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		other := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slotA := f.addSlot("10:00", "11:00")
		slotB := f.addSlot("14:00", "15:00")
		id := f.addBooking(owner, room, slotA, tomorrow, booking.StatusPending)
		f.addBooking(other, room, slotB, tomorrow, booking.StatusActive)

		err := f.uc.Reschedule(ctx, owner, id, reqdto.RescheduleBookingRequest{
			SlotID: slotB, BookedDate: tomorrow,
		})
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Equal(t, slotA, f.store.bookings[id].SlotID)
	})
}

func TestDeleteDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes an initiated draft", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusInitiated)

		require.NoError(t, f.uc.DeleteDraft(ctx, owner, id))
		assert.NotContains(t, f.store.bookings, id)
	})

	t.Run("submitted bookings cannot be deleted", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusPending)

		err := f.uc.DeleteDraft(ctx, owner, id)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestFinalizers(t *testing.T) {
	ctx := context.Background()

	t.Run("complete moves active to completed once", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusActive)
		f.store.tasks = append(f.store.tasks, shared.TaskHandle{
			ID: uuid.New(), BookingID: id, JobID: "job-old", Kind: shared.JobKindReminder,
		})

		require.NoError(t, f.uc.CompleteIfActive(ctx, id))
		assert.Equal(t, booking.StatusCompleted, f.store.bookings[id].Status)
		assert.Empty(t, f.store.tasks, "tracking rows removed")
		assert.Contains(t, f.sched.revoked, "job-old")
		require.Len(t, f.store.notifications, 1)

		// Second delivery of the same job is a quiet no-op.
		require.NoError(t, f.uc.CompleteIfActive(ctx, id))
		assert.Len(t, f.store.notifications, 1)
	})

	t.Run("complete skips non-active bookings", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusCanceled)

		require.NoError(t, f.uc.CompleteIfActive(ctx, id))
		assert.Equal(t, booking.StatusCanceled, f.store.bookings[id].Status)
	})

	t.Run("complete tolerates a deleted booking", func(t *testing.T) {
		f := newBookingFixture()
		require.NoError(t, f.uc.CompleteIfActive(ctx, uuid.New()))
	})

	t.Run("expire moves pending to expired and drops its jobs", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusInitiated)

		created, err := f.uc.Submit(ctx, owner, id, reqdto.SubmitBookingRequest{
			SlotIDs: []uuid.UUID{slot}, Purpose: "study",
		})
		require.NoError(t, err)
		require.NotEmpty(t, f.store.tasks)

		require.NoError(t, f.uc.ExpireIfPending(ctx, created[0].ID))
		assert.Equal(t, booking.StatusExpired, f.store.bookings[created[0].ID].Status)
		assert.Empty(t, f.store.tasks)
	})

	t.Run("expire skips an approved booking", func(t *testing.T) {
		f := newBookingFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusActive)

		require.NoError(t, f.uc.ExpireIfPending(ctx, id))
		assert.Equal(t, booking.StatusActive, f.store.bookings[id].Status)
	})
}
