package rig

import (
	"errors"
	"strings"
	"testing"

	"github.com/aemckenna/rig-calc/internal/catalog"
)

func TestPlace_AddressBounds(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		qty      int
		start    int
		wantErr  error
		wantEnd  int
	}{
		{name: "start zero", channels: 1, qty: 1, start: 0, wantErr: ErrAddressOutOfRange},
		{name: "negative start", channels: 1, qty: 1, start: -4, wantErr: ErrAddressOutOfRange},
		{name: "start 513", channels: 1, qty: 1, start: 513, wantErr: ErrAddressOutOfRange},
		{name: "full universe from 1", channels: 1, qty: 512, start: 1, wantEnd: 512},
		{name: "single channel at 512", channels: 1, qty: 1, start: 512, wantEnd: 512},
		{name: "one past the end", channels: 1, qty: 2, start: 512, wantErr: ErrFootprintExceeded},
		{name: "multi channel fits exactly", channels: 18, qty: 4, start: 441, wantEnd: 512},
		{name: "multi channel overflows by one", channels: 18, qty: 4, start: 442, wantErr: ErrFootprintExceeded},
		{name: "huge quantity", channels: 255, qty: 1 << 40, start: 1, wantErr: ErrFootprintExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFixture(tt.channels, 100)
			req := PlacementRequest{
				FixtureID:    f.ID,
				ModeName:     "Mode",
				Quantity:     tt.qty,
				Universe:     1,
				StartAddress: tt.start,
			}

			p, err := Place(f, f.Modes[0], req, 120)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Place() error = %v, want %v", err, tt.wantErr)
				}
				if !IsRejection(err) {
					t.Errorf("IsRejection(%v) = false, want true", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Place() error = %v", err)
			}
			if p.EndAddress != tt.wantEnd {
				t.Errorf("EndAddress = %d, want %d", p.EndAddress, tt.wantEnd)
			}
			if p.EndAddress != p.StartAddress+p.ChannelsPerFixture*p.Quantity-1 {
				t.Errorf("end address invariant broken: %+v", p)
			}
			if p.EndAddress > UniverseSize {
				t.Errorf("admitted line ends past universe: %d", p.EndAddress)
			}
		})
	}
}

func TestPlace_FootprintErrorReportsEndAndUniverse(t *testing.T) {
	f := testFixture(21, 660)
	req := PlacementRequest{Quantity: 4, Universe: 3, StartAddress: 500}

	_, err := Place(f, f.Modes[0], req, 120)

	var fe *FootprintError
	if !errors.As(err, &fe) {
		t.Fatalf("Place() error = %v, want *FootprintError", err)
	}
	if fe.End != 583 {
		t.Errorf("End = %d, want 583", fe.End)
	}
	if fe.Universe != 3 {
		t.Errorf("Universe = %d, want 3", fe.Universe)
	}
	if !strings.Contains(err.Error(), "footprint exceeds universe capacity") {
		t.Errorf("error message = %q, want capacity reason", err.Error())
	}
}

func TestPlace_QuantityAndUniverse(t *testing.T) {
	f := testFixture(6, 150)

	tests := []struct {
		name    string
		req     PlacementRequest
		wantErr error
	}{
		{name: "zero quantity", req: PlacementRequest{Quantity: 0, Universe: 1, StartAddress: 1}, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", req: PlacementRequest{Quantity: -1, Universe: 1, StartAddress: 1}, wantErr: ErrInvalidQuantity},
		{name: "zero universe", req: PlacementRequest{Quantity: 1, Universe: 0, StartAddress: 1}, wantErr: ErrInvalidUniverse},
		{name: "start checked first", req: PlacementRequest{Quantity: 0, Universe: 0, StartAddress: 0}, wantErr: ErrAddressOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Place(f, f.Modes[0], tt.req, 120)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Place() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlace_DerivedFields(t *testing.T) {
	f := testFixture(18, 240)
	req := PlacementRequest{Quantity: 4, Universe: 2, StartAddress: 10, Circuit: "  Dimmer 3 "}

	p, err := Place(f, f.Modes[0], req, 230)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	if p.TotalChannels != 72 {
		t.Errorf("TotalChannels = %d, want 72", p.TotalChannels)
	}
	if p.TotalWatts != 960 {
		t.Errorf("TotalWatts = %v, want 960", p.TotalWatts)
	}
	if p.EndAddress != 81 {
		t.Errorf("EndAddress = %d, want 81", p.EndAddress)
	}
	if p.Circuit != "Dimmer 3" {
		t.Errorf("Circuit = %q, want trimmed %q", p.Circuit, "Dimmer 3")
	}
	if p.Voltage != 120 {
		t.Errorf("Voltage = %v, want fixture default 120", p.Voltage)
	}
	if p.FixtureName != "Fixture" || p.ModeName != "Mode" || p.Brand != "Test" {
		t.Errorf("denormalised names not copied: %+v", p)
	}
}

func TestPlace_DefaultsCircuitAndVoltage(t *testing.T) {
	f := testFixture(3, 92)
	f.DefaultVoltage = 0
	req := PlacementRequest{Quantity: 1, Universe: 1, StartAddress: 1, Circuit: "   "}

	p, err := Place(f, f.Modes[0], req, 230)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if p.Circuit != DefaultCircuit {
		t.Errorf("Circuit = %q, want %q", p.Circuit, DefaultCircuit)
	}
	if p.Voltage != 230 {
		t.Errorf("Voltage = %v, want fallback 230", p.Voltage)
	}

	p, err = Place(f, f.Modes[0], req, 0)
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if p.Voltage != DefaultSupplyVoltage {
		t.Errorf("Voltage = %v, want %v", p.Voltage, DefaultSupplyVoltage)
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(catalog.Default(), 120)

	p, err := v.Validate(PlacementRequest{
		FixtureID:    "chauvet_r3_wash",
		ModeName:     "Complex",
		Quantity:     4,
		Universe:     1,
		StartAddress: 1,
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if p.EndAddress != 428 {
		t.Errorf("EndAddress = %d, want 428", p.EndAddress)
	}
	if p.TotalWatts != 2640 {
		t.Errorf("TotalWatts = %v, want 2640", p.TotalWatts)
	}

	_, err = v.Validate(PlacementRequest{FixtureID: "missing", ModeName: "Basic", Quantity: 1, Universe: 1, StartAddress: 1})
	if !errors.Is(err, catalog.ErrFixtureNotFound) {
		t.Errorf("unknown fixture error = %v, want ErrFixtureNotFound", err)
	}

	_, err = v.Validate(PlacementRequest{FixtureID: "chauvet_r2_spot", ModeName: "Nope", Quantity: 1, Universe: 1, StartAddress: 1})
	if !errors.Is(err, catalog.ErrModeNotFound) {
		t.Errorf("unknown mode error = %v, want ErrModeNotFound", err)
	}
}

func TestValidator_DoesNotRejectOverlap(t *testing.T) {
	v := NewValidator(catalog.Default(), 120)
	store := NewStore()

	req := PlacementRequest{FixtureID: "chauvet_r2_spot", ModeName: "Basic", Quantity: 2, Universe: 1, StartAddress: 1}
	for i := 0; i < 2; i++ {
		p, err := v.Validate(req)
		if err != nil {
			t.Fatalf("Validate() #%d error = %v", i+1, err)
		}
		store.Append(p)
	}

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2 overlapping lines admitted", store.Len())
	}
}

func TestValidateLine(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *Line)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Line) {}},
		{name: "zero id", mutate: func(l *Line) { l.ID = 0 }, wantErr: true},
		{name: "start zero", mutate: func(l *Line) { l.StartAddress = 0; l.EndAddress = 17 }, wantErr: true},
		{name: "end mismatch", mutate: func(l *Line) { l.EndAddress++ }, wantErr: true},
		{name: "end past universe", mutate: func(l *Line) { l.StartAddress = 500; l.EndAddress = 535 }, wantErr: true},
		{name: "total channels mismatch", mutate: func(l *Line) { l.TotalChannels = 1 }, wantErr: true},
		{name: "zero quantity", mutate: func(l *Line) { l.Quantity = 0 }, wantErr: true},
		{name: "zero universe", mutate: func(l *Line) { l.Universe = 0 }, wantErr: true},
		{name: "negative watts", mutate: func(l *Line) { l.TotalWatts = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLine(1, 1, 1, 18, 2, "A", 240)
			tt.mutate(&l)
			err := ValidateLine(l)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("error = %v, want ErrInvalidSnapshot", err)
			}
		})
	}
}
