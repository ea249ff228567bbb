package domain

// AdvisoryResult is one seat's answer from the advisory phase. A seat that
// failed still produces a result whose Answer is a failure marker, so the
// debate and synthesis phases always see the full roster.
type AdvisoryResult struct {
	SeatID string `json:"seat_id"`
	Answer string `json:"answer"`
}

// CouncilTrace carries the intermediate outputs of a consult for
// observability. It is returned to the caller and never stored.
type CouncilTrace struct {
	Seats  []AdvisoryResult `json:"seats"`
	Debate string           `json:"debate"`
}

// ConsultResult is the outcome of a full council run.
type ConsultResult struct {
	Reply string        `json:"reply"`
	Trace *CouncilTrace `json:"trace"`
}
