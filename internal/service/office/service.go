package office

import (
	"context"

	"log/slog"

	"github.com/vrusha-mor/yojanasaathi/internal/domain"
	"github.com/vrusha-mor/yojanasaathi/internal/geocode"
	"github.com/vrusha-mor/yojanasaathi/internal/repository"
)

// Service locates government offices near a free-text place query by
// geocoding the place and materializing the seeded office categories around
// the resolved center.
type Service struct {
	offices  repository.OfficeRepository
	geocoder geocode.Geocoder
	logger   *slog.Logger
}

// New constructs a Service.
func New(offices repository.OfficeRepository, geocoder geocode.Geocoder, logger *slog.Logger) Service {
	return Service{offices: offices, geocoder: geocoder, logger: logger}
}

// Result is the office lookup payload.
type Result struct {
	Center  domain.Point    `json:"center"`
	Offices []domain.Office `json:"offices"`
}

// Locate resolves the place and returns office markers offset from its
// center. Geocoder errors pass through unchanged so the transport can map
// ErrNoMatch and ErrUnavailable distinctly.
func (s Service) Locate(ctx context.Context, place string) (Result, error) {
	center, err := s.geocoder.Search(ctx, place)
	if err != nil {
		s.logger.Warn("geocode lookup failed", "place", place, "error", err)
		return Result{}, err
	}
	kinds, err := s.offices.ListOfficeKinds(ctx)
	if err != nil {
		return Result{}, err
	}

	offices := make([]domain.Office, 0, len(kinds))
	for _, kind := range kinds {
		offices = append(offices, domain.Office{
			ID:   kind.ID,
			Name: kind.Name,
			Position: domain.Point{
				Lat: center.Lat + kind.LatOffset,
				Lng: center.Lng + kind.LngOffset,
			},
		})
	}
	return Result{Center: center, Offices: offices}, nil
}
