package sessions

type CreateSessionRequest struct {
	FilmID      string `json:"film_id" binding:"required,uuid"`
	CinemaID    string `json:"cinema_id" binding:"required,uuid"`
	HallNumber  int    `json:"hall_number" binding:"required,min=1"`
	StartTime   string `json:"start_time" binding:"required"` // RFC 3339 or "2006-01-02 15:04:05" UTC
	TicketPrice string `json:"ticket_price" binding:"required,money"`
	// Capacity overrides the cinema's seats per hall when set.
	Capacity *int `json:"capacity" binding:"omitempty,min=1"`
}
