package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/timeslot"
	"campus-booking/internal/domain/user"
	reqdto "campus-booking/internal/handler/dto/request"
	"campus-booking/internal/infra"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/pkg/shortcode"
	"campus-booking/internal/usecase/shared"
)

var (
	ErrUserNotFound            = errs.New("user not found")
	ErrUserNotVerified         = errs.New("user is not verified")
	ErrRoomNotFound            = errs.New("room not found")
	ErrRoomInactive            = errs.New("room is not active")
	ErrSlotNotFound            = errs.New("time slot not found")
	ErrSlotUnavailable         = errs.New("time slot is not available")
	ErrSlotElapsed             = errs.New("time slot has already started")
	ErrDateInPast              = errs.New("booked date is in the past")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNotBookingOwner         = errs.New("only the booking owner can do this")
	ErrDraftExists             = errs.New("an unsubmitted draft already exists")
	ErrStateChanged            = errs.New("booking was modified concurrently")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// One expiry check per booking at slot start, five reminders per
// non-owner member spread around the slot boundaries. The reminder at
// slot end is final: its handler completes the booking.
type reminderSpec struct {
	fromStart bool
	offset    time.Duration
	body      string
	final     bool
}

var reminderSpecs = []reminderSpec{
	{fromStart: true, offset: -10 * time.Minute, body: "starts in 10 minutes"},
	{fromStart: true, offset: 0, body: "starts now"},
	{fromStart: false, offset: -10 * time.Minute, body: "ends in 10 minutes"},
	{fromStart: false, offset: -5 * time.Minute, body: "ends in 5 minutes"},
	{fromStart: false, offset: 0, body: "has ended", final: true},
}

type BookingCommands interface {
	Initiate(ctx context.Context, ownerID uuid.UUID, req reqdto.InitiateBookingRequest) (*shared.BookingSnapshot, error)
	Submit(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.SubmitBookingRequest) ([]*shared.BookingSnapshot, error)
	Approve(ctx context.Context, bookingID uuid.UUID) error
	Reject(ctx context.Context, bookingID uuid.UUID, req reqdto.RejectBookingRequest) error
	Cancel(ctx context.Context, actorID uuid.UUID, isAdmin bool, bookingID uuid.UUID, req reqdto.CancelBookingRequest) error
	Reschedule(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.RescheduleBookingRequest) error
	DeleteDraft(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID) error
	CompleteIfActive(ctx context.Context, bookingID uuid.UUID) error
	ExpireIfPending(ctx context.Context, bookingID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	scheduler shared.Scheduler
	notifier  shared.Notifier
	clock     clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	sched shared.Scheduler,
	notifier shared.Notifier,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:       uow,
		scheduler: sched,
		notifier:  notifier,
		clock:     clk,
	}
}

func (r *bookingUseCaseImpl) Initiate(ctx context.Context, ownerID uuid.UUID, req reqdto.InitiateBookingRequest) (*shared.BookingSnapshot, error) {
	reads := r.uow.CommandReads()
	now := r.clock.Now()

	if err := r.requireVerifiedUser(ctx, reads, ownerID); err != nil {
		return nil, err
	}

	room, err := reads.RoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, markRepoErr(err, ErrRoomNotFound)
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}

	slot, err := reads.SlotByID(ctx, req.SlotID)
	if err != nil {
		return nil, markRepoErr(err, ErrSlotNotFound)
	}

	date, err := req.ParseDate()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := checkSlotTiming(slot, date, now); err != nil {
		return nil, err
	}
	if err := r.checkAvailability(ctx, reads, room.ID, slot, date, uuid.Nil); err != nil {
		return nil, err
	}

	draft, err := booking.NewDraft(uuid.New(), shortcode.New(), ownerID, room.ID, slot.ID, date, req.Purpose, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// A fresh initiate supersedes whatever draft the owner already
	// has. The partial unique index still backstops two initiates
	// racing for the same owner.
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Bookings().DeleteDraftByOwner(ctx, tx.DB(), ownerID); err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, tx.DB(), draft); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrDraftExists
			}
			return err
		}
		return tx.Members().Add(ctx, tx.DB(), draft.ID(), ownerID, true, now)
	})
	if err != nil {
		return nil, err
	}

	return bookingSnapshot(draft), nil
}

// Submit fans the draft out into pending bookings, one per requested
// slot, copying the draft's members into each and deleting the draft.
// The creates run inside the transaction with the partial unique index
// as the last line of defense against two bookings racing for the same
// slot. Only the expiry checks are queued here; reminders arrive with
// approval.
func (r *bookingUseCaseImpl) Submit(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.SubmitBookingRequest) ([]*shared.BookingSnapshot, error) {
	reads := r.uow.CommandReads()
	now := r.clock.Now()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return nil, markRepoErr(err, ErrBookingNotFound)
	}
	if snap.OwnerID != actorID {
		return nil, ErrNotBookingOwner
	}
	if err := snap.ToEntity().Submit(req.Purpose, now); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// Distinct slots may overlap on purpose: consecutive slots are how
	// a longer session is booked. Only the identical slot twice is
	// nonsense, and it would trip the unique index between siblings.
	slots := make([]*shared.SlotSnapshot, 0, len(req.SlotIDs))
	seen := make(map[uuid.UUID]struct{}, len(req.SlotIDs))
	for _, slotID := range req.SlotIDs {
		if _, dup := seen[slotID]; dup {
			return nil, errs.Mark(errs.New("the same slot was requested twice"), ErrDomainValidation)
		}
		seen[slotID] = struct{}{}

		slot, err := reads.SlotByID(ctx, slotID)
		if err != nil {
			return nil, markRepoErr(err, ErrSlotNotFound)
		}
		if err := checkSlotTiming(slot, snap.BookedDate, now); err != nil {
			return nil, err
		}
		if err := r.checkAvailability(ctx, reads, snap.RoomID, slot, snap.BookedDate, uuid.Nil); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	room, err := reads.RoomByID(ctx, snap.RoomID)
	if err != nil {
		return nil, markRepoErr(err, ErrRoomNotFound)
	}
	body := fmt.Sprintf("Booking of %s on %s is waiting for approval", room.Name, snap.BookedDate.Format("2006-01-02"))

	var (
		members []shared.MemberSnapshot
		created []*shared.BookingSnapshot
	)
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created = created[:0]
		members, err = tx.Reads().MembersByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			b, err := booking.NewSubmitted(uuid.New(), shortcode.New(),
				snap.OwnerID, snap.RoomID, slot.ID, snap.BookedDate, req.Purpose, now)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
			if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return ErrSlotUnavailable
				}
				return err
			}
			for _, m := range members {
				if err := tx.Members().Add(ctx, tx.DB(), b.ID(), m.UserID, m.IsOwner, now); err != nil {
					return err
				}
			}
			if err := notifyMembers(ctx, tx, b.ID(), members, "booking_submitted",
				"Booking "+b.Code()+" submitted", body); err != nil {
				return err
			}
			created = append(created, bookingSnapshot(b))
		}
		// The draft goes last; a concurrent submit that already consumed
		// it surfaces here and rolls the siblings back.
		if err := tx.Bookings().Delete(ctx, tx.DB(), bookingID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStateChanged
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]shared.ScheduledJob, 0, len(created))
	for i, cs := range created {
		jobs = append(jobs, expireJob(cs, slots[i], now.Location()))
	}
	scheduleJobs(ctx, r.uow, r.scheduler, jobs)
	for _, cs := range created {
		pushMembers(ctx, r.notifier, members, "booking_submitted",
			"Booking "+cs.Code+" submitted", body)
	}
	return created, nil
}

func bookingSnapshot(b *booking.Booking) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:           b.ID(),
		Code:         b.Code(),
		OwnerID:      b.OwnerID(),
		RoomID:       b.RoomID(),
		SlotID:       b.SlotID(),
		BookedDate:   b.BookedDate(),
		Purpose:      b.Purpose(),
		Status:       b.Status(),
		StatusReason: b.StatusReason(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
	}
}

// Approve activates the booking, tells the owner, and fans out the
// five reminders to every non-owner member along with an invitation
// notice. The pending expiry check is revoked first; revocation
// happens-before scheduling within the transition.
func (r *bookingUseCaseImpl) Approve(ctx context.Context, bookingID uuid.UUID) error {
	reads := r.uow.CommandReads()
	now := r.clock.Now()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if err := validateTransition(snap, booking.StatusActive, nil, now); err != nil {
		return err
	}

	room, err := reads.RoomByID(ctx, snap.RoomID)
	if err != nil {
		return markRepoErr(err, ErrRoomNotFound)
	}
	slot, err := reads.SlotByID(ctx, snap.SlotID)
	if err != nil {
		return markRepoErr(err, ErrSlotNotFound)
	}

	memberTitle := "Added to booking " + snap.Code
	memberBody := fmt.Sprintf("You were added to a booking of %s on %s", room.Name, snap.BookedDate.Format("2006-01-02"))

	var (
		owner  []shared.MemberSnapshot
		guests []shared.MemberSnapshot
	)
	var revoked []shared.TaskHandle
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, snap.Status, booking.StatusActive, nil, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrStateChanged
		}
		revoked, err = tx.Tasks().DeleteByBooking(ctx, tx.DB(), bookingID)
		if err != nil {
			return err
		}
		members, err := tx.Reads().MembersByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		owner, guests = splitMembers(members)
		if err := notifyMembers(ctx, tx, bookingID, owner, "booking_approved",
			"Booking approved", "Your room booking has been approved"); err != nil {
			return err
		}
		return notifyMembers(ctx, tx, bookingID, guests, "member_added", memberTitle, memberBody)
	})
	if err != nil {
		return err
	}

	revokeJobs(ctx, r.scheduler, revoked)

	jobs := make([]shared.ScheduledJob, 0, len(guests)*len(reminderSpecs))
	for _, m := range guests {
		jobs = append(jobs, memberReminderJobs(snap, room.Name, slot, m.UserID, now.Location())...)
	}
	scheduleJobs(ctx, r.uow, r.scheduler, jobs)
	pushMembers(ctx, r.notifier, owner, "booking_approved",
		"Booking approved", "Your room booking has been approved")
	pushMembers(ctx, r.notifier, guests, "member_added", memberTitle, memberBody)
	return nil
}

func splitMembers(members []shared.MemberSnapshot) (owner, guests []shared.MemberSnapshot) {
	for _, m := range members {
		if m.IsOwner {
			owner = append(owner, m)
		} else {
			guests = append(guests, m)
		}
	}
	return owner, guests
}

func (r *bookingUseCaseImpl) Reject(ctx context.Context, bookingID uuid.UUID, req reqdto.RejectBookingRequest) error {
	return r.transition(ctx, bookingID, booking.StatusRejected, &req.Reason, "booking_rejected",
		"Booking rejected", "Your room booking was rejected: "+req.Reason)
}

func (r *bookingUseCaseImpl) Cancel(ctx context.Context, actorID uuid.UUID, isAdmin bool, bookingID uuid.UUID, req reqdto.CancelBookingRequest) error {
	snap, err := r.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if !isAdmin && snap.OwnerID != actorID {
		return ErrNotBookingOwner
	}
	return r.transition(ctx, bookingID, booking.StatusCanceled, &req.Reason, "booking_canceled",
		"Booking canceled", "The booking was canceled: "+req.Reason)
}

func (r *bookingUseCaseImpl) Reschedule(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.RescheduleBookingRequest) error {
	reads := r.uow.CommandReads()
	now := r.clock.Now()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if snap.OwnerID != actorID {
		return ErrNotBookingOwner
	}

	date, err := req.ParseDate()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if err := snap.ToEntity().Reschedule(req.SlotID, date, now); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	slot, err := reads.SlotByID(ctx, req.SlotID)
	if err != nil {
		return markRepoErr(err, ErrSlotNotFound)
	}
	if err := checkSlotTiming(slot, date, now); err != nil {
		return err
	}
	ignore := uuid.Nil
	if snap.BookedDate.Year() == date.Year() && snap.BookedDate.YearDay() == date.YearDay() {
		ignore = snap.SlotID
	}
	if err := r.checkAvailability(ctx, reads, snap.RoomID, slot, date, ignore); err != nil {
		return err
	}

	room, err := reads.RoomByID(ctx, snap.RoomID)
	if err != nil {
		return markRepoErr(err, ErrRoomNotFound)
	}

	var (
		members []shared.MemberSnapshot
		revoked []shared.TaskHandle
	)
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Bookings().UpdateSlot(ctx, tx.DB(), bookingID, req.SlotID, date, now)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotUnavailable
			}
			return err
		}
		if rows == 0 {
			return ErrStateChanged
		}
		revoked, err = tx.Tasks().DeleteByBooking(ctx, tx.DB(), bookingID)
		if err != nil {
			return err
		}
		members, err = tx.Reads().MembersByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		return notifyMembers(ctx, tx, bookingID, members, "booking_rescheduled",
			"Booking rescheduled",
			fmt.Sprintf("Booking of %s moved to %s %s", room.Name, date.Format("2006-01-02"), slot.Start.String()))
	})
	if err != nil {
		return err
	}

	// Old jobs go first so a slow revocation can never race a fresh
	// schedule for the same booking.
	revokeJobs(ctx, r.scheduler, revoked)

	// The booking comes out of a reschedule active, so only reminders
	// are recreated; there is no pending state left to expire.
	resnap := *snap
	resnap.SlotID = req.SlotID
	resnap.BookedDate = date
	resnap.Status = booking.StatusActive
	_, guests := splitMembers(members)
	jobs := make([]shared.ScheduledJob, 0, len(guests)*len(reminderSpecs))
	for _, m := range guests {
		jobs = append(jobs, memberReminderJobs(&resnap, room.Name, slot, m.UserID, now.Location())...)
	}
	scheduleJobs(ctx, r.uow, r.scheduler, jobs)
	pushMembers(ctx, r.notifier, members, "booking_rescheduled",
		"Booking rescheduled",
		fmt.Sprintf("Booking of %s moved to %s %s", room.Name, date.Format("2006-01-02"), slot.Start.String()))
	return nil
}

func (r *bookingUseCaseImpl) DeleteDraft(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID) error {
	snap, err := r.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if snap.OwnerID != actorID {
		return ErrNotBookingOwner
	}
	if snap.Status != booking.StatusInitiated {
		return errs.Mark(errs.New("only drafts can be deleted"), ErrDomainValidation)
	}
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Delete(ctx, tx.DB(), bookingID)
	})
}

// CompleteIfActive is the final reminder's follow-through and the
// admin checkout path. Idempotent: anything not active is a no-op.
func (r *bookingUseCaseImpl) CompleteIfActive(ctx context.Context, bookingID uuid.UUID) error {
	return r.finalize(ctx, bookingID, booking.StatusActive, booking.StatusCompleted, "booking_completed",
		"Booking completed", "Your booking has ended. Rate the room to help others!")
}

// ExpireIfPending fires at slot start for bookings never approved.
func (r *bookingUseCaseImpl) ExpireIfPending(ctx context.Context, bookingID uuid.UUID) error {
	return r.finalize(ctx, bookingID, booking.StatusPending, booking.StatusExpired, "booking_expired",
		"Booking expired", "Your booking was not approved before the slot started")
}

// transition handles the common reject/cancel shape: validate against
// the lifecycle table, flip the row with a status guard, drop the
// booking's queued jobs, then notify.
func (r *bookingUseCaseImpl) transition(ctx context.Context, bookingID uuid.UUID, to booking.Status, reason *string, notifType, title, body string) error {
	now := r.clock.Now()

	snap, err := r.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if err := validateTransition(snap, to, reason, now); err != nil {
		return err
	}

	var (
		members []shared.MemberSnapshot
		revoked []shared.TaskHandle
	)
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, snap.Status, to, reason, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrStateChanged
		}
		revoked, err = tx.Tasks().DeleteByBooking(ctx, tx.DB(), bookingID)
		if err != nil {
			return err
		}
		members, err = tx.Reads().MembersByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		return notifyMembers(ctx, tx, bookingID, members, notifType, title, body)
	})
	if err != nil {
		return err
	}

	revokeJobs(ctx, r.scheduler, revoked)
	pushMembers(ctx, r.notifier, members, notifType, title, body)
	return nil
}

// finalize is the queue-driven variant of transition: missing bookings
// and already-moved statuses return nil so stale jobs drain quietly.
func (r *bookingUseCaseImpl) finalize(ctx context.Context, bookingID uuid.UUID, from, to booking.Status, notifType, title, body string) error {
	now := r.clock.Now()

	snap, err := r.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.Status != from {
		return nil
	}

	var (
		members []shared.MemberSnapshot
		revoked []shared.TaskHandle
	)
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, from, to, nil, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Another worker got there first.
			return nil
		}
		revoked, err = tx.Tasks().DeleteByBooking(ctx, tx.DB(), bookingID)
		if err != nil {
			return err
		}
		members, err = tx.Reads().MembersByBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		return notifyMembers(ctx, tx, bookingID, members, notifType, title, body)
	})
	if err != nil {
		return err
	}

	revokeJobs(ctx, r.scheduler, revoked)
	pushMembers(ctx, r.notifier, members, notifType, title, body)
	return nil
}

func validateTransition(snap *shared.BookingSnapshot, to booking.Status, reason *string, now time.Time) error {
	ent := snap.ToEntity()
	var err error
	switch to {
	case booking.StatusActive:
		err = ent.Approve(now)
	case booking.StatusRejected:
		err = ent.Reject(stringOrEmpty(reason), now)
	case booking.StatusCanceled:
		err = ent.Cancel(stringOrEmpty(reason), now)
	case booking.StatusCompleted:
		err = ent.Complete(now)
	case booking.StatusExpired:
		err = ent.Expire(now)
	default:
		err = booking.ErrInvalidTransition
	}
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *bookingUseCaseImpl) requireVerifiedUser(ctx context.Context, reads shared.CommandReads, userID uuid.UUID) error {
	usr, err := reads.UserByID(ctx, userID)
	if err != nil {
		return markRepoErr(err, ErrUserNotFound)
	}
	if usr.Verification != user.VerificationVerified {
		return ErrUserNotVerified
	}
	return nil
}

// checkAvailability compares the chosen slot against every slot held
// by a pending or active booking of the same room and date. Boundaries
// are inclusive, so back-to-back slots sharing an edge still conflict.
// ignoreSlotID skips one blocked slot: a reschedule must not conflict
// with the booking's own current slot (the unique index guarantees it
// is the only blocker on that slot).
func (r *bookingUseCaseImpl) checkAvailability(ctx context.Context, reads shared.CommandReads, roomID uuid.UUID, slot *shared.SlotSnapshot, date time.Time, ignoreSlotID uuid.UUID) error {
	blockedIDs, err := reads.BlockedSlotIDs(ctx, roomID, date)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	chosen := slot.ToEntity()
	for _, id := range blockedIDs {
		if id == ignoreSlotID {
			continue
		}
		if id == slot.ID {
			return ErrSlotUnavailable
		}
		other, err := reads.SlotByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if chosen.Overlaps(other.ToEntity()) {
			return ErrSlotUnavailable
		}
	}
	return nil
}

func checkSlotTiming(slot *shared.SlotSnapshot, date time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrDateInPast
	}
	if day.Equal(today) && !anchor(slot.Start, date, now.Location()).After(now) {
		return ErrSlotElapsed
	}
	return nil
}

// anchor places a wall-clock slot time on the booked date in the
// server's timezone.
func anchor(t timeslot.TimeOfDay, date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func expireJob(snap *shared.BookingSnapshot, slot *shared.SlotSnapshot, loc *time.Location) shared.ScheduledJob {
	return shared.ScheduledJob{
		BookingID: snap.ID,
		Kind:      shared.JobKindExpire,
		RunAt:     anchor(slot.Start, snap.BookedDate, loc),
	}
}

func memberReminderJobs(snap *shared.BookingSnapshot, roomName string, slot *shared.SlotSnapshot, userID uuid.UUID, loc *time.Location) []shared.ScheduledJob {
	start := anchor(slot.Start, snap.BookedDate, loc)
	end := anchor(slot.End, snap.BookedDate, loc)

	jobs := make([]shared.ScheduledJob, 0, len(reminderSpecs))
	for _, spec := range reminderSpecs {
		at := end.Add(spec.offset)
		if spec.fromStart {
			at = start.Add(spec.offset)
		}
		jobs = append(jobs, shared.ScheduledJob{
			BookingID: snap.ID,
			UserID:    userID,
			Kind:      shared.JobKindReminder,
			RunAt:     at,
			Title:     "Booking " + snap.Code,
			Body:      fmt.Sprintf("Your booking of %s %s", roomName, spec.body),
			Final:     spec.final,
		})
	}
	return jobs
}

// scheduleJobs runs after the owning transaction commits. A job that
// fails to enqueue is logged and skipped; a job that enqueues but
// cannot be recorded is revoked so no orphan ever fires untracked.
func scheduleJobs(ctx context.Context, uow shared.UnitOfWork, sched shared.Scheduler, jobs []shared.ScheduledJob) {
	for _, job := range jobs {
		jobID, err := sched.Schedule(ctx, job)
		if err != nil {
			slog.ErrorContext(ctx, "failed to schedule job",
				"booking_id", job.BookingID.String(),
				"kind", string(job.Kind),
				"error", err.Error())
			continue
		}

		handle := shared.TaskHandle{
			ID:        uuid.New(),
			BookingID: job.BookingID,
			JobID:     jobID,
			Kind:      job.Kind,
			RunAt:     job.RunAt,
		}
		if job.Kind == shared.JobKindReminder {
			uid := job.UserID
			handle.UserID = &uid
		}

		err = uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Tasks().Add(ctx, tx.DB(), handle)
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to record scheduled job",
				"booking_id", job.BookingID.String(),
				"job_id", jobID,
				"error", err.Error())
			if revokeErr := sched.Revoke(ctx, jobID); revokeErr != nil {
				slog.WarnContext(ctx, "failed to revoke unrecorded job",
					"job_id", jobID, "error", revokeErr.Error())
			}
		}
	}
}

func revokeJobs(ctx context.Context, sched shared.Scheduler, handles []shared.TaskHandle) {
	for _, h := range handles {
		if err := sched.Revoke(ctx, h.JobID); err != nil {
			slog.WarnContext(ctx, "failed to revoke job",
				"job_id", h.JobID, "error", err.Error())
		}
	}
}

func pushMembers(ctx context.Context, notifier shared.Notifier, members []shared.MemberSnapshot, notifType, title, body string) {
	for _, m := range members {
		uid := m.UserID
		if err := notifier.Push(ctx, shared.PushMessage{
			UserID: &uid,
			Type:   notifType,
			Title:  title,
			Body:   body,
		}); err != nil {
			slog.WarnContext(ctx, "push failed",
				"user_id", uid.String(), "error", err.Error())
		}
	}
}

func notifyMembers(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, members []shared.MemberSnapshot, notifType, title, body string) error {
	for _, m := range members {
		if err := tx.Notifications().Create(ctx, tx.DB(), shared.NotificationRecord{
			ID:        uuid.New(),
			UserID:    m.UserID,
			BookingID: &bookingID,
			Type:      notifType,
			Title:     title,
			Body:      body,
		}); err != nil {
			return err
		}
	}
	return nil
}

func markRepoErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
