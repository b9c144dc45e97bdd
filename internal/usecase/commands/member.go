package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/user"
	reqdto "campus-booking/internal/handler/dto/request"
	"campus-booking/internal/infra"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/usecase/shared"
)

var (
	ErrAlreadyMember       = errs.New("user is already a member of this booking")
	ErrMemberNotFound      = errs.New("user is not a member of this booking")
	ErrCannotRemoveOwner   = errs.New("the booking owner cannot be removed")
	ErrBookingNotEditable  = errs.New("members can no longer be changed on this booking")
	ErrNotAllowedOnBooking = errs.New("not allowed to change members of this booking")
)

type MemberCommands interface {
	AddMember(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.AddMemberRequest) error
	RemoveMember(ctx context.Context, actorID uuid.UUID, bookingID, memberID uuid.UUID) error
}

type memberUseCaseImpl struct {
	uow       shared.UnitOfWork
	scheduler shared.Scheduler
	notifier  shared.Notifier
	clock     clock.Clock
}

func NewMemberUseCase(
	uow shared.UnitOfWork,
	sched shared.Scheduler,
	notifier shared.Notifier,
	clk clock.Clock,
) MemberCommands {
	return &memberUseCaseImpl{
		uow:       uow,
		scheduler: sched,
		notifier:  notifier,
		clock:     clk,
	}
}

// AddMember invites another verified user onto a booking. A member
// joining an active booking immediately gets the same five reminders
// every other member has; members joining while pending are picked up
// when the booking is approved.
func (r *memberUseCaseImpl) AddMember(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.AddMemberRequest) error {
	reads := r.uow.CommandReads()
	now := r.clock.Now()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if snap.OwnerID != actorID {
		return ErrNotAllowedOnBooking
	}
	if snap.Status.IsTerminal() {
		return ErrBookingNotEditable
	}

	target, err := reads.UserByEmail(ctx, req.Email)
	if err != nil {
		return markRepoErr(err, ErrUserNotFound)
	}
	if !targetVerified(target) {
		return ErrUserNotVerified
	}

	room, err := reads.RoomByID(ctx, snap.RoomID)
	if err != nil {
		return markRepoErr(err, ErrRoomNotFound)
	}
	slot, err := reads.SlotByID(ctx, snap.SlotID)
	if err != nil {
		return markRepoErr(err, ErrSlotNotFound)
	}

	title := "Added to booking " + snap.Code
	body := fmt.Sprintf("You were added to a booking of %s on %s", room.Name, snap.BookedDate.Format("2006-01-02"))

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Members().Add(ctx, tx.DB(), bookingID, target.ID, false, now); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrAlreadyMember
			}
			return err
		}
		return tx.Notifications().Create(ctx, tx.DB(), shared.NotificationRecord{
			ID:        uuid.New(),
			UserID:    target.ID,
			BookingID: &bookingID,
			Type:      "member_added",
			Title:     title,
			Body:      body,
		})
	})
	if err != nil {
		return err
	}

	if snap.Status == booking.StatusActive {
		scheduleJobs(ctx, r.uow, r.scheduler,
			memberReminderJobs(snap, room.Name, slot, target.ID, now.Location()))
	}
	pushMembers(ctx, r.notifier,
		[]shared.MemberSnapshot{{UserID: target.ID, Email: target.Email, FullName: target.FullName}},
		"member_added", title, body)
	return nil
}

// RemoveMember takes a member off the booking and revokes their
// pending reminders. The owner row is untouchable; owners leave by
// canceling.
func (r *memberUseCaseImpl) RemoveMember(ctx context.Context, actorID uuid.UUID, bookingID, memberID uuid.UUID) error {
	snap, err := r.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if actorID != snap.OwnerID && actorID != memberID {
		return ErrNotAllowedOnBooking
	}
	if memberID == snap.OwnerID {
		return ErrCannotRemoveOwner
	}
	if snap.Status.IsTerminal() {
		return ErrBookingNotEditable
	}

	var revoked []shared.TaskHandle
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Members().Remove(ctx, tx.DB(), bookingID, memberID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrMemberNotFound
		}
		revoked, err = tx.Tasks().DeleteByBookingAndUser(ctx, tx.DB(), bookingID, memberID)
		if err != nil {
			return err
		}
		return tx.Notifications().Create(ctx, tx.DB(), shared.NotificationRecord{
			ID:        uuid.New(),
			UserID:    memberID,
			BookingID: &bookingID,
			Type:      "member_removed",
			Title:     "Removed from booking " + snap.Code,
			Body:      "You were removed from a room booking",
		})
	})
	if err != nil {
		return err
	}

	revokeJobs(ctx, r.scheduler, revoked)
	return nil
}

func targetVerified(u *shared.UserSnapshot) bool {
	return u.Verification == user.VerificationVerified
}
