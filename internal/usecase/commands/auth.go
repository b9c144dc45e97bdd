package commands

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain/user"
	reqdto "campus-booking/internal/handler/dto/request"
	"campus-booking/internal/infra"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/pkg/jwt"
	"campus-booking/internal/pkg/password"
	"campus-booking/internal/usecase/shared"
)

var (
	ErrEmailTaken             = errs.New("email already registered")
	ErrInvalidCredentials     = errs.New("invalid credentials")
	ErrInvalidOTP             = errs.New("invalid or expired code")
	ErrEmailNotConfirmed      = errs.New("email is not confirmed")
	ErrEmailAlreadyConfirmed  = errs.New("email already confirmed")
	ErrTokenGeneration        = errs.New("token generation failed")
	ErrVerificationNotAllowed = errs.New("verification cannot be requested in the current status")
)

type RegisterResult struct {
	UserID uuid.UUID
}

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*RegisterResult, error)
	VerifyOTP(ctx context.Context, req reqdto.VerifyOTPRequest) error
	ResendOTP(ctx context.Context, req reqdto.ResendOTPRequest) error
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	// RequestVerification moves the caller into the admin review queue.
	RequestVerification(ctx context.Context, userID uuid.UUID) error
	// ChangeVerification is the admin side of the review queue.
	ChangeVerification(ctx context.Context, userID uuid.UUID, req reqdto.ChangeVerificationRequest) error
}

type authUseCaseImpl struct {
	uow        shared.UnitOfWork
	otpStore   shared.OTPStore
	notifier   shared.Notifier
	jwtService *jwt.Service
	otpTTL     time.Duration
	clock      clock.Clock
}

func NewAuthUseCase(
	uow shared.UnitOfWork,
	otpStore shared.OTPStore,
	notifier shared.Notifier,
	jwtService *jwt.Service,
	otpTTL time.Duration,
	clk clock.Clock,
) AuthCommands {
	return &authUseCaseImpl{
		uow:        uow,
		otpStore:   otpStore,
		notifier:   notifier,
		jwtService: jwtService,
		otpTTL:     otpTTL,
		clock:      clk,
	}
}

func (a *authUseCaseImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*RegisterResult, error) {
	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	now := a.clock.Now()
	newUser, err := user.New(uuid.New(), req.Email, hash, req.FullName, user.RoleStudent, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, tx.DB(), newUser); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.sendOTP(ctx, newUser.ID(), newUser.Email())
	return &RegisterResult{UserID: newUser.ID()}, nil
}

func (a *authUseCaseImpl) VerifyOTP(ctx context.Context, req reqdto.VerifyOTPRequest) error {
	snap, err := a.uow.CommandReads().UserByEmail(ctx, req.Email)
	if err != nil {
		return markRepoErr(err, ErrUserNotFound)
	}
	if snap.EmailConfirmed {
		return ErrEmailAlreadyConfirmed
	}

	ok, err := a.otpStore.Verify(ctx, req.Email, req.Code)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !ok {
		return ErrInvalidOTP
	}

	now := a.clock.Now()
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().ConfirmEmail(ctx, tx.DB(), snap.ID, now)
	})
}

func (a *authUseCaseImpl) ResendOTP(ctx context.Context, req reqdto.ResendOTPRequest) error {
	snap, err := a.uow.CommandReads().UserByEmail(ctx, req.Email)
	if err != nil {
		return markRepoErr(err, ErrUserNotFound)
	}
	if snap.EmailConfirmed {
		return ErrEmailAlreadyConfirmed
	}
	a.sendOTP(ctx, snap.ID, snap.Email)
	return nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	snap, err := a.uow.CommandReads().UserByEmail(ctx, req.Email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(snap.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !snap.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	token, err := a.jwtService.GenerateToken(snap.ID, snap.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	now := a.clock.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), snap.ID, now)
	})
	if err != nil {
		// Login already succeeded, the timestamp is bookkeeping.
		slog.WarnContext(ctx, "failed to update last login",
			"user_id", snap.ID.String(), "error", err.Error())
	}

	return &LoginResult{
		UserID:      snap.ID,
		Role:        snap.Role,
		AccessToken: token,
	}, nil
}

func (a *authUseCaseImpl) RequestVerification(ctx context.Context, userID uuid.UUID) error {
	snap, err := a.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		return markRepoErr(err, ErrUserNotFound)
	}
	if !snap.EmailConfirmed {
		return ErrEmailNotConfirmed
	}
	switch snap.Verification {
	case user.VerificationUnverified, user.VerificationRejected:
	default:
		return ErrVerificationNotAllowed
	}

	now := a.clock.Now()
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Users().UpdateVerification(ctx, tx.DB(), userID, user.VerificationPending, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (a *authUseCaseImpl) ChangeVerification(ctx context.Context, userID uuid.UUID, req reqdto.ChangeVerificationRequest) error {
	to, err := user.NewVerificationStatus(req.Status)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	now := a.clock.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Users().UpdateVerification(ctx, tx.DB(), userID, to, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrUserNotFound
		}
		return tx.Notifications().Create(ctx, tx.DB(), shared.NotificationRecord{
			ID:     uuid.New(),
			UserID: userID,
			Type:   "verification_updated",
			Title:  "Verification status updated",
			Body:   "Your account verification status is now: " + to.String(),
		})
	})
	if err != nil {
		return err
	}

	pushMembers(ctx, a.notifier, []shared.MemberSnapshot{{UserID: userID}},
		"verification_updated", "Verification status updated",
		"Your account verification status is now: "+to.String())
	return nil
}

// sendOTP is best effort: a lost code is recoverable through resend,
// so registration never fails on delivery.
func (a *authUseCaseImpl) sendOTP(ctx context.Context, userID uuid.UUID, email string) {
	code := generateOTP()
	if err := a.otpStore.Save(ctx, email, code, a.otpTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store otp",
			"user_id", userID.String(), "error", err.Error())
		return
	}
	if err := a.notifier.Push(ctx, shared.PushMessage{
		UserID: &userID,
		Type:   "email_otp",
		Title:  "Confirm your email",
		Body:   "Your confirmation code is " + code,
	}); err != nil {
		slog.WarnContext(ctx, "failed to send otp",
			"user_id", userID.String(), "error", err.Error())
	}
}

// generateOTP returns a 4-digit code in [1000, 9999].
func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		panic("otp: crypto/rand unavailable: " + err.Error())
	}
	return big.NewInt(0).Add(n, big.NewInt(1000)).String()
}
