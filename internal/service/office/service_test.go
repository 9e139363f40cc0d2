package office

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/vrusha-mor/yojanasaathi/internal/domain"
	"github.com/vrusha-mor/yojanasaathi/internal/geocode"
)

type stubGeocoder struct {
	point domain.Point
	err   error
}

func (s stubGeocoder) Search(ctx context.Context, query string) (domain.Point, error) {
	if s.err != nil {
		return domain.Point{}, s.err
	}
	return s.point, nil
}

type stubOfficeRepository struct {
	kinds []domain.OfficeKind
	err   error
}

func (s stubOfficeRepository) ListOfficeKinds(ctx context.Context) ([]domain.OfficeKind, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.kinds, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocateOffsetsKindsFromCenter(t *testing.T) {
	repo := stubOfficeRepository{kinds: []domain.OfficeKind{
		{ID: 1, Name: "District Collectorate", LatOffset: 0.005, LngOffset: 0.005},
		{ID: 2, Name: "Taluka Office", LatOffset: -0.005, LngOffset: -0.005},
	}}
	geocoder := stubGeocoder{point: domain.Point{Lat: 18.52, Lng: 73.85}}
	svc := New(repo, geocoder, testLogger())

	result, err := svc.Locate(context.Background(), "Pune")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if result.Center != geocoder.point {
		t.Fatalf("center = %+v, want %+v", result.Center, geocoder.point)
	}
	if len(result.Offices) != 2 {
		t.Fatalf("expected 2 offices, got %d", len(result.Offices))
	}
	first := result.Offices[0]
	if first.Name != "District Collectorate" {
		t.Fatalf("unexpected first office %q", first.Name)
	}
	if first.Position.Lat != 18.525 || first.Position.Lng != 73.855 {
		t.Fatalf("unexpected first position %+v", first.Position)
	}
	second := result.Offices[1]
	if second.Position.Lat != 18.515 || second.Position.Lng != 73.845 {
		t.Fatalf("unexpected second position %+v", second.Position)
	}
}

func TestLocatePassesGeocodeErrorsThrough(t *testing.T) {
	svc := New(stubOfficeRepository{}, stubGeocoder{err: geocode.ErrNoMatch}, testLogger())

	if _, err := svc.Locate(context.Background(), "nowhere"); !errors.Is(err, geocode.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestLocateRepositoryFailure(t *testing.T) {
	repoErr := errors.New("connection reset")
	svc := New(stubOfficeRepository{err: repoErr}, stubGeocoder{point: domain.Point{Lat: 1, Lng: 2}}, testLogger())

	if _, err := svc.Locate(context.Background(), "Pune"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
