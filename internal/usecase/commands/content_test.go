//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/rating"
	"campus-booking/internal/domain/user"
	reqdto "campus-booking/internal/handler/dto/request"
	"campus-booking/internal/usecase/commands"
	"campus-booking/internal/usecase/shared"
)

type contentFixture struct {
	*bookingFixture
	uc commands.ContentCommands
}

func newContentFixture() *contentFixture {
	bf := newBookingFixture()
	return &contentFixture{
		bookingFixture: bf,
		uc:             commands.NewContentUseCase(fakeUoW{bf.store}, bf.notif, bf.clk),
	}
}

func TestRateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("member of a completed booking can rate once", func(t *testing.T) {
		f := newContentFixture()
		owner := f.addUser(user.VerificationVerified)
		friend := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusCompleted)
		f.store.members[id] = append(f.store.members[id], shared.MemberSnapshot{UserID: friend})

		req := reqdto.RateBookingRequest{Score: 4, Review: "good whiteboard"}
		require.NoError(t, f.uc.RateBooking(ctx, friend, id, req))

		err := f.uc.RateBooking(ctx, friend, id, req)
		assert.ErrorIs(t, err, rating.ErrAlreadyRated)

		// The owner still has their own rating to give.
		assert.NoError(t, f.uc.RateBooking(ctx, owner, id, reqdto.RateBookingRequest{Score: 5}))
	})

	t.Run("only completed bookings are rateable", func(t *testing.T) {
		f := newContentFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusActive)

		err := f.uc.RateBooking(ctx, owner, id, reqdto.RateBookingRequest{Score: 5})
		assert.ErrorIs(t, err, rating.ErrBookingNotEligible)
	})

	t.Run("non-members cannot rate", func(t *testing.T) {
		f := newContentFixture()
		owner := f.addUser(user.VerificationVerified)
		stranger := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusCompleted)

		err := f.uc.RateBooking(ctx, stranger, id, reqdto.RateBookingRequest{Score: 3})
		assert.ErrorIs(t, err, commands.ErrNotAllowedOnBooking)
	})

	t.Run("overlong review is rejected", func(t *testing.T) {
		f := newContentFixture()
		owner := f.addUser(user.VerificationVerified)
		room := f.addRoom(true)
		slot := f.addSlot("10:00", "11:00")
		id := f.addBooking(owner, room, slot, tomorrow, booking.StatusCompleted)

		err := f.uc.RateBooking(ctx, owner, id, reqdto.RateBookingRequest{
			Score: 3, Review: strings.Repeat("a", 1001),
		})
		assert.ErrorIs(t, err, rating.ErrReviewTooLong)
	})
}

func TestCreateSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("valid range lands in the catalog", func(t *testing.T) {
		f := newContentFixture()
		id, err := f.uc.CreateSlot(ctx, reqdto.CreateSlotRequest{StartTime: "09:00", EndTime: "10:00"})
		require.NoError(t, err)
		require.Contains(t, f.store.slots, id)
		assert.Equal(t, "09:00", f.store.slots[id].Start.String())
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		f := newContentFixture()
		_, err := f.uc.CreateSlot(ctx, reqdto.CreateSlotRequest{StartTime: "10:00", EndTime: "09:00"})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("garbage time is rejected", func(t *testing.T) {
		f := newContentFixture()
		_, err := f.uc.CreateSlot(ctx, reqdto.CreateSlotRequest{StartTime: "25:99", EndTime: "26:00"})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestCreateRoom(t *testing.T) {
	f := newContentFixture()
	id, err := f.uc.CreateRoom(context.Background(), reqdto.CreateRoomRequest{
		Name: "Seminar Room", Location: "Building C", Capacity: 12,
	})
	require.NoError(t, err)
	room := f.store.rooms[id]
	require.NotNil(t, room)
	assert.True(t, room.IsActive, "new rooms start active")
}

func TestCreateArticle(t *testing.T) {
	f := newContentFixture()
	_, err := f.uc.CreateArticle(context.Background(), reqdto.CreateArticleRequest{
		Title: "Library hours extended", Body: "Open until midnight during exams.",
	})
	require.NoError(t, err)
	require.Len(t, f.notif.pushes, 1)
	require.NotNil(t, f.notif.pushes[0].Topic)
	assert.Equal(t, "articles", *f.notif.pushes[0].Topic)
}
