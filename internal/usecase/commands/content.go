package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/rating"
	"campus-booking/internal/domain/timeslot"
	reqdto "campus-booking/internal/handler/dto/request"
	"campus-booking/internal/infra"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/usecase/shared"
)

type ContentCommands interface {
	RateBooking(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.RateBookingRequest) error
	CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error)
	CreateSlot(ctx context.Context, req reqdto.CreateSlotRequest) (uuid.UUID, error)
	CreateArticle(ctx context.Context, req reqdto.CreateArticleRequest) (uuid.UUID, error)
	CreateBanner(ctx context.Context, req reqdto.CreateBannerRequest) (uuid.UUID, error)
}

type contentUseCaseImpl struct {
	uow      shared.UnitOfWork
	notifier shared.Notifier
	clock    clock.Clock
}

func NewContentUseCase(uow shared.UnitOfWork, notifier shared.Notifier, clk clock.Clock) ContentCommands {
	return &contentUseCaseImpl{uow: uow, notifier: notifier, clock: clk}
}

// RateBooking lets a member of a completed booking review the room.
// One rating per member per booking, enforced by a unique index.
func (c *contentUseCaseImpl) RateBooking(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req reqdto.RateBookingRequest) error {
	reads := c.uow.CommandReads()

	snap, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return markRepoErr(err, ErrBookingNotFound)
	}
	if snap.Status != booking.StatusCompleted {
		return errs.Mark(rating.ErrBookingNotEligible, ErrDomainValidation)
	}

	members, err := reads.MembersByBooking(ctx, bookingID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	isMember := false
	for _, m := range members {
		if m.UserID == actorID {
			isMember = true
			break
		}
	}
	if !isMember {
		return ErrNotAllowedOnBooking
	}

	entity, err := rating.New(uuid.Nil, actorID, snap.RoomID, bookingID, req.Score, req.Review, c.clock.Now())
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Ratings().Create(ctx, tx.DB(), entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(rating.ErrAlreadyRated, ErrDomainValidation)
			}
			return err
		}
		return nil
	})
}

func (c *contentUseCaseImpl) CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error) {
	room := shared.RoomSnapshot{
		ID:       uuid.New(),
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		IsActive: true,
	}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Content().CreateRoom(ctx, tx.DB(), room)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return room.ID, nil
}

func (c *contentUseCaseImpl) CreateSlot(ctx context.Context, req reqdto.CreateSlotRequest) (uuid.UUID, error) {
	start, err := timeslot.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	end, err := timeslot.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	entity, err := timeslot.NewSlot(uuid.New(), start, end)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Content().CreateSlot(ctx, tx.DB(), shared.SlotSnapshot{
			ID:    entity.ID(),
			Start: entity.Start(),
			End:   entity.End(),
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entity.ID(), nil
}

func (c *contentUseCaseImpl) CreateArticle(ctx context.Context, req reqdto.CreateArticleRequest) (uuid.UUID, error) {
	article := shared.ArticleRecord{
		ID:        uuid.New(),
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		CreatedAt: c.clock.Now(),
	}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Content().CreateArticle(ctx, tx.DB(), article)
	})
	if err != nil {
		return uuid.Nil, err
	}

	// New articles fan out to everyone subscribed to the topic.
	// Best effort, the article itself is already stored.
	topic := "articles"
	if pushErr := c.notifier.Push(ctx, shared.PushMessage{
		Topic: &topic,
		Type:  "article_published",
		Title: req.Title,
		Body:  req.Body,
	}); pushErr != nil {
		slog.WarnContext(ctx, "failed to publish article notification",
			"article_id", article.ID.String(), "error", pushErr.Error())
	}
	return article.ID, nil
}

func (c *contentUseCaseImpl) CreateBanner(ctx context.Context, req reqdto.CreateBannerRequest) (uuid.UUID, error) {
	banner := shared.BannerRecord{
		ID:       uuid.New(),
		Title:    req.Title,
		ImageURL: req.ImageURL,
		IsActive: true,
	}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Content().CreateBanner(ctx, tx.DB(), banner)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return banner.ID, nil
}
