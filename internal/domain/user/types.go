package user

import (
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/pkg/errs"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin:
		return true
	}
	return false
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", errs.New("invalid role: " + s)
	}
	return r, nil
}

// VerificationStatus tracks the student-card review workflow. Only
// verified users may create bookings or be added as booking members.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
	VerificationSuspended  VerificationStatus = "suspended"
)

func (v VerificationStatus) String() string { return string(v) }

func (v VerificationStatus) IsValid() bool {
	switch v {
	case VerificationUnverified, VerificationPending, VerificationVerified,
		VerificationRejected, VerificationSuspended:
		return true
	}
	return false
}

func NewVerificationStatus(s string) (VerificationStatus, error) {
	v := VerificationStatus(s)
	if !v.IsValid() {
		return "", errs.New("invalid verification status: " + s)
	}
	return v, nil
}

type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	fullName     string
	role         Role
	verification VerificationStatus
	emailOK      bool
	createdAt    time.Time
}

func New(id uuid.UUID, email, passwordHash, fullName string, role Role, now time.Time) (*User, error) {
	if email == "" {
		return nil, errs.New("email is required")
	}
	if fullName == "" {
		return nil, errs.New("full name is required")
	}
	if !role.IsValid() {
		return nil, errs.New("invalid role: " + role.String())
	}
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		fullName:     fullName,
		role:         role,
		verification: VerificationUnverified,
		createdAt:    now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	email, passwordHash, fullName string,
	role Role,
	verification VerificationStatus,
	emailOK bool,
	createdAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		fullName:     fullName,
		role:         role,
		verification: verification,
		emailOK:      emailOK,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID                    { return u.id }
func (u *User) Email() string                    { return u.email }
func (u *User) PasswordHash() string             { return u.passwordHash }
func (u *User) FullName() string                 { return u.fullName }
func (u *User) Role() Role                       { return u.role }
func (u *User) Verification() VerificationStatus { return u.verification }
func (u *User) EmailConfirmed() bool             { return u.emailOK }
func (u *User) CreatedAt() time.Time             { return u.createdAt }

func (u *User) IsVerified() bool { return u.verification == VerificationVerified }

func (u *User) ConfirmEmail() { u.emailOK = true }

func (u *User) ChangeVerification(to VerificationStatus) error {
	if !to.IsValid() {
		return errs.New("invalid verification status: " + to.String())
	}
	u.verification = to
	return nil
}
