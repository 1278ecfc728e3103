package catalog

import "time"

type FilmResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	AgeRestriction     int       `json:"age_restriction"`
	IsBookingAvailable bool      `json:"is_booking_available"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toFilmResponse(f *Film) FilmResponse {
	return FilmResponse{
		ID:                 f.ID.String(),
		Title:              f.Title,
		Slug:               f.Slug,
		AgeRestriction:     f.AgeRestriction,
		IsBookingAvailable: f.IsBookingAvailable,
		StartDate:          f.StartDate.Format(DateLayout),
		EndDate:            f.EndDate.Format(DateLayout),
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

func toFilmResponses(films []Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for i := range films {
		out = append(out, toFilmResponse(&films[i]))
	}
	return out
}
