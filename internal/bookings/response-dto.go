package bookings

// TransitionResult describes the outcome of a confirm or cancel.
type TransitionResult struct {
	Booking *Booking `json:"booking"`
	From    Status   `json:"previous_status"`
	Noop    bool     `json:"noop"`
}
