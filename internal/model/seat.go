package model

// SeatInfo is one seat of a screen layout: a human-facing identifier
// ("A1") tagged with the seat type used for price tier lookup.
type SeatInfo struct {
	SeatID   string `json:"seat_id" db:"seat_id"`
	SeatType string `json:"seat_type" db:"seat_type"`
}

// SeatTypeIndex builds a seat-id -> seat-type lookup from a layout.
func SeatTypeIndex(layout []SeatInfo) map[string]string {
	index := make(map[string]string, len(layout))
	for _, seat := range layout {
		index[seat.SeatID] = seat.SeatType
	}
	return index
}
