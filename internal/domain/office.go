package domain

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OfficeKind is a seeded category of government office with its display
// offset relative to a locality center.
type OfficeKind struct {
	ID        int
	Name      string
	LatOffset float64
	LngOffset float64
}

// Office is a materialized office marker near a geocoded locality.
type Office struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position Point  `json:"position"`
}
