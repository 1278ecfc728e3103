package catalog

// ListQuery is the page/limit pair shared by every list endpoint.
type ListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *ListQuery) Normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type CreateCinemaRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=255"`
	Address       string `json:"address" binding:"required,min=3,max=500"`
	EmployeeCount int    `json:"employee_count" binding:"min=0"`
	HallCount     int    `json:"hall_count" binding:"required,min=1,max=100"`
	SeatsPerHall  int    `json:"seats_per_hall" binding:"required,min=1,max=2000"`
	OpeningTime   string `json:"opening_time" binding:"required,datetime=15:04:05"`
	ClosingTime   string `json:"closing_time" binding:"required,datetime=15:04:05"`
}

type UpdateCinemaRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address       *string `json:"address" binding:"omitempty,min=3,max=500"`
	EmployeeCount *int    `json:"employee_count" binding:"omitempty,min=0"`
	HallCount     *int    `json:"hall_count" binding:"omitempty,min=1,max=100"`
	SeatsPerHall  *int    `json:"seats_per_hall" binding:"omitempty,min=1,max=2000"`
	OpeningTime   *string `json:"opening_time" binding:"omitempty,datetime=15:04:05"`
	ClosingTime   *string `json:"closing_time" binding:"omitempty,datetime=15:04:05"`
}

type CreateFilmRequest struct {
	Title              string `json:"title" binding:"required,min=1,max=255"`
	AgeRestriction     int    `json:"age_restriction" binding:"min=0,max=21"`
	IsBookingAvailable *bool  `json:"is_booking_available"`
	StartDate          string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate            string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type UpdateFilmRequest struct {
	Title              *string `json:"title" binding:"omitempty,min=1,max=255"`
	AgeRestriction     *int    `json:"age_restriction" binding:"omitempty,min=0,max=21"`
	IsBookingAvailable *bool   `json:"is_booking_available"`
	StartDate          *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate            *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type CreateCustomerRequest struct {
	FirstName string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string  `json:"last_name" binding:"required,min=1,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     string  `json:"phone" binding:"omitempty,max=32"`
}
