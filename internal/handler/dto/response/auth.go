package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"campus-booking/internal/usecase/queries"
)

type RegisterResponse struct {
	UserID  uuid.UUID `json:"userId"`
	Message string    `json:"message"`
}

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	Role        string    `json:"role"`
	AccessToken string    `json:"accessToken"`
}

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"fullName"`
	Role           string    `json:"role"`
	Verification   string    `json:"verificationStatus"`
	EmailConfirmed bool      `json:"emailConfirmed"`
	CreatedAt      time.Time `json:"createdAt"`
}

type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	BookingID *uuid.UUID `json:"bookingId,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	IsRead    bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromNotificationViews(vs []*queries.NotificationView) []*NotificationResponse {
	out := make([]*NotificationResponse, len(vs))
	for i, v := range vs {
		var resp NotificationResponse
		_ = copier.Copy(&resp, v)
		out[i] = &resp
	}
	return out
}
