package upstream

// User is the session owner as reported by GET /api/me.
type User struct {
	ID   int64  `json:"id"`
	UPN  string `json:"upn"`
	Name string `json:"name"`
	Dept string `json:"dept"`
}

// Floor is one entry of GET /api/floors.
type Floor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Seat is one entry of GET /api/seats. Fields beyond these are ignored.
type Seat struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	FloorID int64  `json:"floor_id"`
}

// Period selects one of the attendance reports.
type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Periods lists the report periods in display order.
var Periods = []Period{Weekly, Monthly, Yearly}

// Valid reports whether p is a known report period.
func (p Period) Valid() bool {
	switch p {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}
