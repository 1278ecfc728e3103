package auth

import (
	"time"

	"cineops/internal/users"
)

type AuthResponse struct {
	Employee     EmployeeResponse `json:"employee"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int64            `json:"expires_in"`
}

// employee data without the password hash
type EmployeeResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CinemaID  *string   `json:"cinema_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toEmployeeResponse(e *users.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID.String(),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Role:      string(e.Role),
		CreatedAt: e.CreatedAt,
	}
	if e.CinemaID != nil {
		id := e.CinemaID.String()
		resp.CinemaID = &id
	}
	return resp
}
