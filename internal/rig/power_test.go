package rig

import (
	"errors"
	"math"
	"testing"
)

func TestPowerByCircuit_Bands(t *testing.T) {
	tests := []struct {
		name    string
		watts   float64
		want    Band
		display float64
	}{
		{name: "exactly 15A", watts: 1800, want: BandNormal, display: 15},
		{name: "just over 15A", watts: 1801, want: BandWarning, display: 15},
		{name: "exactly 20A", watts: 2400, want: BandWarning, display: 20},
		{name: "just over 20A", watts: 2401, want: BandOver, display: 20},
		{name: "zero", watts: 0, want: BandNormal, display: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loads, err := PowerByCircuit([]Line{testLine(1, 1, 1, 1, 1, "A", tt.watts)}, 120)
			if err != nil {
				t.Fatalf("PowerByCircuit() error = %v", err)
			}
			if len(loads) != 1 {
				t.Fatalf("len(loads) = %d, want 1", len(loads))
			}
			c := loads[0]
			if c.Band != tt.want {
				t.Errorf("Band = %q, want %q (amps %v)", c.Band, tt.want, c.Amps)
			}
			if c.DisplayAmps != tt.display {
				t.Errorf("DisplayAmps = %v, want %v", c.DisplayAmps, tt.display)
			}
		})
	}
}

func TestPowerByCircuit_GroupsAndSorts(t *testing.T) {
	lines := []Line{
		testLine(1, 1, 1, 18, 4, "Stage Left", 240),
		testLine(2, 2, 1, 15, 3, " Truss ", 413),
		testLine(3, 2, 46, 48, 8, "Truss", 92),
		testLine(4, 3, 1, 8, 2, "", 150),
		testLine(5, 3, 17, 8, 1, "   ", 150),
	}

	loads, err := PowerByCircuit(lines, 120)
	if err != nil {
		t.Fatalf("PowerByCircuit() error = %v", err)
	}

	want := []struct {
		circuit string
		lines   int
		watts   float64
		band    Band
	}{
		{"Stage Left", 1, 960, BandNormal},
		{"Truss", 2, 1975, BandWarning},
		{DefaultCircuit, 2, 450, BandNormal},
	}
	if len(loads) != len(want) {
		t.Fatalf("len(loads) = %d, want %d: %+v", len(loads), len(want), loads)
	}
	for i, w := range want {
		c := loads[i]
		if c.Circuit != w.circuit || c.Lines != w.lines || c.Watts != w.watts || c.Band != w.band {
			t.Errorf("loads[%d] = %+v, want %s lines=%d watts=%v band=%s",
				i, c, w.circuit, w.lines, w.watts, w.band)
		}
	}

	// 1975 / 120 = 16.458...
	if loads[1].DisplayAmps != 16.5 {
		t.Errorf("Truss DisplayAmps = %v, want 16.5", loads[1].DisplayAmps)
	}
}

func TestPowerByCircuit_InvalidVoltage(t *testing.T) {
	for _, v := range []float64{0, -120, math.NaN(), math.Inf(1)} {
		if _, err := PowerByCircuit(nil, v); !errors.Is(err, ErrInvalidVoltage) {
			t.Errorf("PowerByCircuit(nil, %v) error = %v, want ErrInvalidVoltage", v, err)
		}
	}
}

func TestPowerByCircuit_OtherVoltage(t *testing.T) {
	loads, err := PowerByCircuit([]Line{testLine(1, 1, 1, 1, 1, "A", 2401)}, 230)
	if err != nil {
		t.Fatalf("PowerByCircuit() error = %v", err)
	}
	if loads[0].Band != BandNormal {
		t.Errorf("Band at 230V = %q, want normal", loads[0].Band)
	}
}

func TestRoundAmps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{15.04, 15},
		{15.05, 15.1},
		{22, 22},
		{16.458333, 16.5},
	}
	for _, tt := range tests {
		if got := RoundAmps(tt.in); got != tt.want {
			t.Errorf("RoundAmps(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBand_Description(t *testing.T) {
	tests := map[Band]string{
		BandNormal:  "within normal",
		BandWarning: "warning",
		BandOver:    "over limit",
		Band("odd"): "odd",
	}
	for b, want := range tests {
		if got := b.Description(); got != want {
			t.Errorf("%q.Description() = %q, want %q", b, got, want)
		}
	}
}
