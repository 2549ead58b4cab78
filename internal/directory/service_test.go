package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/triage"
)

type staticSource struct {
	name       string
	facilities []Facility
	err        error
}

func (s *staticSource) Facilities(ctx context.Context) ([]Facility, error) {
	return s.facilities, s.err
}

func (s *staticSource) Name() string { return s.name }

func fac(id string, venue triage.Venue) Facility {
	return Facility{ID: id, Name: "Facility " + id, Venue: venue, TimeZone: "America/Anchorage"}
}

func TestServiceLoadPrimaryOnly(t *testing.T) {
	svc := NewService(ServiceConfig{
		Primary: &staticSource{name: "primary", facilities: []Facility{
			fac("uc-1", triage.VenueUrgentCare),
			fac("er-1", triage.VenueER),
		}},
		Logger: zerolog.Nop(),
	})

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(svc.All()); got != 2 {
		t.Fatalf("All() = %d facilities, want 2", got)
	}
	if _, ok := svc.Get("uc-1"); !ok {
		t.Fatal("Get(uc-1) not found")
	}
}

func TestServicePartnerReplacesVenue(t *testing.T) {
	svc := NewService(ServiceConfig{
		Primary: &staticSource{name: "primary", facilities: []Facility{
			fac("uc-1", triage.VenueUrgentCare),
			fac("uc-2", triage.VenueUrgentCare),
			fac("er-1", triage.VenueER),
		}},
		Partner: &staticSource{name: "partner", facilities: []Facility{
			fac("kyr-uc-1", triage.VenueUrgentCare),
		}},
		Logger: zerolog.Nop(),
	})

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	urgent := svc.ByVenue(triage.VenueUrgentCare)
	if len(urgent) != 1 || urgent[0].ID != "kyr-uc-1" {
		t.Fatalf("urgent care = %+v, want only kyr-uc-1", urgent)
	}
	// Venues absent from the partner set keep their primary facilities.
	if er := svc.ByVenue(triage.VenueER); len(er) != 1 || er[0].ID != "er-1" {
		t.Fatalf("er = %+v, want only er-1", er)
	}
	if _, ok := svc.Get("uc-1"); ok {
		t.Fatal("replaced primary facility uc-1 still resolvable")
	}
}

func TestServicePartnerFailureFallsBack(t *testing.T) {
	svc := NewService(ServiceConfig{
		Primary: &staticSource{name: "primary", facilities: []Facility{
			fac("uc-1", triage.VenueUrgentCare),
		}},
		Partner: &staticSource{name: "partner", err: errors.New("boom")},
		Logger:  zerolog.Nop(),
	})

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(svc.All()); got != 1 {
		t.Fatalf("All() = %d facilities, want 1", got)
	}
}

func TestServicePrimaryFailure(t *testing.T) {
	svc := NewService(ServiceConfig{
		Primary: &staticSource{name: "primary", err: errors.New("read failed")},
		Logger:  zerolog.Nop(),
	})
	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("Load succeeded with failing primary source")
	}
}

func TestServiceLoadOnce(t *testing.T) {
	src := &staticSource{name: "primary", facilities: []Facility{fac("uc-1", triage.VenueUrgentCare)}}
	svc := NewService(ServiceConfig{Primary: src, Logger: zerolog.Nop()})

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// A second load must not pick up new data.
	src.facilities = append(src.facilities, fac("uc-2", triage.VenueUrgentCare))
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if got := len(svc.All()); got != 1 {
		t.Fatalf("All() after second Load = %d facilities, want 1", got)
	}
}

func TestAcceptsPlan(t *testing.T) {
	f := Facility{InsurancePlanIDs: []string{"plan_a", "plan_c"}}
	if !f.AcceptsPlan("plan_a") {
		t.Error("AcceptsPlan(plan_a) = false")
	}
	if f.AcceptsPlan("plan_b") {
		t.Error("AcceptsPlan(plan_b) = true")
	}
	if f.AcceptsPlan("") {
		t.Error("AcceptsPlan(\"\") = true")
	}
}
