package hohmann

import (
	"errors"
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestVisViva(t *testing.T) {
	μ := Sun.GM()
	for _, r := range []float64{0.4 * AU, AU, 5.2 * AU} {
		v, err := VisViva(r, r, μ)
		if err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinRel(v, math.Sqrt(μ/r), 1e-14) {
			t.Fatalf("circular speed at %g: %f != %f", r, v, math.Sqrt(μ/r))
		}
	}
	// On an ellipse, the vehicle is faster at periapsis.
	a, _ := Radii2ae(AU, 1.5*AU)
	vP, _ := VisViva(AU, a, μ)
	vA, _ := VisViva(1.5*AU, a, μ)
	if vP <= vA {
		t.Fatalf("periapsis speed %f should be greater than apoapsis speed %f", vP, vA)
	}
	// Conservation of the angular momentum between the apsides.
	if !scalar.EqualWithinRel(vP*AU, vA*1.5*AU, 1e-12) {
		t.Fatalf("angular momentum not conserved: %f != %f", vP*AU, vA*1.5*AU)
	}
}

func TestVisVivaErrors(t *testing.T) {
	for _, args := range [][3]float64{{0, AU, 1}, {AU, -1, 1}, {AU, AU, 0}, {3 * AU, AU, Sun.GM()}} {
		if _, err := VisViva(args[0], args[1], args[2]); !errors.Is(err, ErrNumeric) {
			t.Fatalf("VisViva(%v) should return a numeric error, got %v", args, err)
		}
	}
}

func TestRadii2ae(t *testing.T) {
	a, e := Radii2ae(AU, 1.5*AU)
	a1, e1 := Radii2ae(1.5*AU, AU)
	if a != a1 || e != e1 {
		t.Fatal("Radii2ae depends on the order of the radii")
	}
	if !scalar.EqualWithinRel(a, 1.25*AU, 1e-15) || !scalar.EqualWithinRel(e, 0.2, 1e-14) {
		t.Fatalf("a=%f e=%f", a, e)
	}
}

func TestHohmannEarthToMarsRadius(t *testing.T) {
	r1, r2 := AU, 1.5*AU
	p, err := SolveHohmann(Sun, r1, r2)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Outbound() || p.Degenerate() || p.ArgPeriapsis() != 0 {
		t.Fatalf("expected an outbound transfer: %s", p)
	}
	if !scalar.EqualWithinRel(p.V1, 29.78e3, 1e-3) {
		t.Fatalf("v1=%f", p.V1)
	}
	if !scalar.EqualWithinRel(p.V2, 24.31e3, 1e-3) {
		t.Fatalf("v2=%f", p.V2)
	}
	// Closed form from Vallado.
	ΔV1 := p.V1 * (math.Sqrt(2*r2/(r1+r2)) - 1)
	ΔV2 := p.V2 * (1 - math.Sqrt(2*r1/(r1+r2)))
	if !scalar.EqualWithinRel(p.ΔV1, ΔV1, 1e-12) {
		t.Fatalf("Δv1=%f != %f", p.ΔV1, ΔV1)
	}
	if !scalar.EqualWithinRel(p.ΔV2, ΔV2, 1e-12) {
		t.Fatalf("Δv2=%f != %f", p.ΔV2, ΔV2)
	}
	if p.ΔV1 < 2.8e3 || p.ΔV1 > 2.9e3 || p.ΔV2 < 2.5e3 || p.ΔV2 > 2.6e3 {
		t.Fatalf("unexpected burns %s", p)
	}
	if p.VPeri != p.VDeparture || p.VApo != p.VArrival {
		t.Fatal("departure should be at periapsis and arrival at apoapsis")
	}
	tof := math.Pi * math.Sqrt(math.Pow(1.25*AU, 3)/Sun.GM())
	if math.Abs(p.TOF.Seconds()-tof) > 1e-3 {
		t.Fatalf("tof=%s != %fs", p.TOF, tof)
	}
	if days := p.TOF.Hours() / 24; days < 250 || days > 260 {
		t.Fatalf("tof=%f days", days)
	}
	if !scalar.EqualWithinRel(p.TotalΔv(), ΔV1+ΔV2, 1e-12) {
		t.Fatalf("total Δv=%f", p.TotalΔv())
	}
}

func TestHohmannSymmetry(t *testing.T) {
	for _, body := range []CentralBody{Sun, Earth} {
		r1, r2 := 7000e3, 42164e3
		if body.Equals(Sun) {
			r1, r2 = AU, 5.2*AU
		}
		up, err := SolveHohmann(body, r1, r2)
		if err != nil {
			t.Fatal(err)
		}
		down, err := SolveHohmann(body, r2, r1)
		if err != nil {
			t.Fatal(err)
		}
		if down.Outbound() || down.ArgPeriapsis() != math.Pi {
			t.Fatalf("expected an inbound transfer: %s", down)
		}
		if !scalar.EqualWithinRel(up.ΔV1, -down.ΔV2, 1e-12) || !scalar.EqualWithinRel(up.ΔV2, -down.ΔV1, 1e-12) {
			t.Fatalf("asymmetric burns:\n%s\n%s", up, down)
		}
		if up.ΔV1 <= 0 || up.ΔV2 <= 0 || down.ΔV1 >= 0 || down.ΔV2 >= 0 {
			t.Fatalf("raising must accelerate and lowering must slow down:\n%s\n%s", up, down)
		}
		if up.TOF != down.TOF || up.A != down.A || up.E != down.E {
			t.Fatalf("different transfer ellipses:\n%s\n%s", up, down)
		}
		if !scalar.EqualWithinRel(up.TotalΔv(), down.TotalΔv(), 1e-12) {
			t.Fatal("different total Δv")
		}
	}
}

func TestHohmannGEO(t *testing.T) {
	// Vallado 4th edition, example 6-1: LEO (191.34411 km altitude) to GEO.
	r1, r2 := 6378.137e3+191.34411e3, 6378.137e3+35781.34857e3
	p, err := SolveHohmann(Earth, r1, r2)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(p.ΔV1, 2.457038e3, 1) || !scalar.EqualWithinAbs(p.ΔV2, 1.478187e3, 1) {
		t.Fatalf("unexpected burns %s", p)
	}
	if !scalar.EqualWithinAbs(p.TOF.Minutes(), 315.6, 0.5) {
		t.Fatalf("tof=%s", p.TOF)
	}
}

func TestHohmannDegenerate(t *testing.T) {
	p, err := SolveHohmann(Sun, AU, AU)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Degenerate() || p.E != 0 || p.A != AU {
		t.Fatalf("expected a degenerate transfer: %s", p)
	}
	if !scalar.EqualWithinAbs(p.ΔV1, 0, 1e-9) || !scalar.EqualWithinAbs(p.ΔV2, 0, 1e-9) {
		t.Fatalf("expected no Δv: %s", p)
	}
	year := 365.25 * 24 * time.Hour
	if p.TOF < year/2-24*time.Hour || p.TOF > year/2+24*time.Hour {
		t.Fatalf("tof=%s should be half a year", p.TOF)
	}
}

func TestHohmannRoundedSun(t *testing.T) {
	sun, err := NewCentralBody("Sun", 1.327e20)
	if err != nil {
		t.Fatal(err)
	}
	p, err := SolveHohmann(sun, AU, 1.5*AU)
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name     string
		got, exp float64
	}{
		{"v1", p.V1, 29783.0839},
		{"v2", p.V2, 24317.7862},
		{"Δv1", p.ΔV1, 2842.6499},
		{"Δv2", p.ΔV2, 2567.2970},
		{"a", p.A, 1.87e11},
		{"e", p.E, 0.2},
	} {
		if !scalar.EqualWithinRel(tc.got, tc.exp, 1e-8) {
			t.Fatalf("%s=%f != %f", tc.name, tc.got, tc.exp)
		}
	}
	if days := p.TOF.Hours() / 24; !scalar.EqualWithinAbs(days, 255.2484, 1e-4) {
		t.Fatalf("tof=%f days", days)
	}
}

func TestHohmannErrors(t *testing.T) {
	for _, r := range [][2]float64{{0, AU}, {AU, 0}, {-AU, AU}, {AU, math.NaN()}, {AU, math.Inf(1)}, {math.Inf(1), AU}, {math.Inf(-1), AU}} {
		if _, err := SolveHohmann(Sun, r[0], r[1]); !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%v: expected a configuration error, got %v", r, err)
		}
	}
}

func TestTransferArc(t *testing.T) {
	for _, tc := range []struct {
		r1, r2, λd float64
	}{{AU, 1.5 * AU, 0}, {1.5 * AU, AU, 0}, {AU, 1.5 * AU, math.Pi / 3}, {1.5 * AU, AU, 4}} {
		p, err := SolveHohmann(Sun, tc.r1, tc.r2)
		if err != nil {
			t.Fatal(err)
		}
		arc, err := p.Arc(50, tc.λd)
		if err != nil {
			t.Fatal(err)
		}
		if len(arc) != 50 {
			t.Fatalf("got %d points", len(arc))
		}
		start := MxV22(R3(tc.λd), Vec2{tc.r1, 0})
		end := MxV22(R3(tc.λd+math.Pi), Vec2{tc.r2, 0})
		if !vectorsEqual(arc[0], start) {
			t.Fatalf("%+v: arc starts at %+v instead of %+v", tc, arc[0], start)
		}
		if !vectorsEqual(arc[49], end) {
			t.Fatalf("%+v: arc ends at %+v instead of %+v", tc, arc[49], end)
		}
		for _, pt := range arc {
			if r := pt.Norm(); r < math.Min(tc.r1, tc.r2)*(1-1e-12) || r > math.Max(tc.r1, tc.r2)*(1+1e-12) {
				t.Fatalf("point %+v outside of the transfer radii", pt)
			}
		}
	}
	p, _ := SolveHohmann(Sun, AU, 2*AU)
	if _, err := p.Arc(1, 0); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
}
