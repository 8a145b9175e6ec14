package vec

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestScaleTruncates(t *testing.T) {
	got := Scale(Vec2D{X: 1.23456, Y: -1.23456}, 1)
	if got.X != 1.234 {
		t.Fatalf("expected x=1.234, got=%v", got.X)
	}
	// floor goes towards negative infinity
	if got.Y != -1.235 {
		t.Fatalf("expected y=-1.235, got=%v", got.Y)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	cases := []Vec2D{{3, 4}, {-1, 0}, {0.001, 0.002}, {1e6, -1e6}, {-7, -24}}
	for _, v := range cases {
		n, err := Normalize(v)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", v, err)
		}
		if math.Abs(Length(n)-1) > epsilon {
			t.Fatalf("expected unit length for %v, got=%f", v, Length(n))
		}
	}
}

func TestDegenerateInputsFail(t *testing.T) {
	if _, err := Normalize(Zero); !errors.Is(err, ErrDegenerateVector) {
		t.Fatalf("expected ErrDegenerateVector from Normalize, got=%v", err)
	}
	if _, err := CosineSimilarity(Zero, Vec2D{X: 1}); !errors.Is(err, ErrDegenerateVector) {
		t.Fatalf("expected ErrDegenerateVector from CosineSimilarity, got=%v", err)
	}
	if _, err := DegreesBetween(Vec2D{Y: 2}, Zero); !errors.Is(err, ErrDegenerateVector) {
		t.Fatalf("expected ErrDegenerateVector from DegreesBetween, got=%v", err)
	}
}

func TestFromAngleRoundTrip(t *testing.T) {
	cases := []Vec2D{{3, 4}, {-2, 5}, {-1, -1}, {10, 0}, {0, -3}}
	for _, v := range cases {
		got := FromAngle(Length(v), Angle(v))
		if math.Abs(got.X-v.X) > 1e-9 || math.Abs(got.Y-v.Y) > 1e-9 {
			t.Fatalf("expected %v, got=%v", v, got)
		}
	}
}

func TestDegreesBetween(t *testing.T) {
	got, err := DegreesBetween(Vec2D{X: 1}, Vec2D{Y: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-90) > 1e-9 {
		t.Fatalf("expected 90, got=%f", got)
	}
	got, _ = DegreesBetween(Vec2D{X: 1}, Vec2D{X: -3})
	if math.Abs(got-180) > 1e-9 {
		t.Fatalf("expected 180, got=%f", got)
	}
}

func TestSubtractFromLength(t *testing.T) {
	got := SubtractFromLength(Vec2D{X: 10}, 4)
	if got.X != 6 || got.Y != 0 {
		t.Fatalf("expected (6,0), got=%v", got)
	}
	got = SubtractFromLength(Vec2D{X: 10}, 40)
	if Length(got) != 0 {
		t.Fatalf("expected zero vector, got=%v", got)
	}
	if got := SubtractFromLength(Zero, 3); got != Zero {
		t.Fatalf("expected zero vector unchanged, got=%v", got)
	}
}

func TestAngleHelpers(t *testing.T) {
	if got := NormalizeAngle(-math.Pi / 2); math.Abs(got-3*math.Pi/2) > epsilon {
		t.Fatalf("expected 3π/2, got=%f", got)
	}
	if got := WrapAngle(3 * math.Pi / 2); math.Abs(got+math.Pi/2) > epsilon {
		t.Fatalf("expected -π/2, got=%f", got)
	}
	if got := AngleBetween(Vec2D{1, 1}, Vec2D{1, 3}); math.Abs(got-math.Pi/2) > epsilon {
		t.Fatalf("expected π/2, got=%f", got)
	}
	if got := Perpendicular(Vec2D{X: 2, Y: 1}); got != (Vec2D{X: -1, Y: 2}) {
		t.Fatalf("expected (-1,2), got=%v", got)
	}
}

func TestWrapAngleOutOfRange(t *testing.T) {
	for _, a := range []float64{1e18, -1e18, 3 * math.Pi, -7.5 * math.Pi} {
		if got := WrapAngle(a); got < -math.Pi || got > math.Pi {
			t.Fatalf("expected %g wrapped into [-π, π], got=%f", a, got)
		}
	}
	if got := WrapAngle(3 * math.Pi); math.Abs(math.Abs(got)-math.Pi) > epsilon {
		t.Fatalf("expected ±π, got=%f", got)
	}
	if got := WrapAngle(-7.5 * math.Pi); math.Abs(got-math.Pi/2) > epsilon {
		t.Fatalf("expected π/2, got=%f", got)
	}
	for _, a := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if got := WrapAngle(a); !math.IsNaN(got) {
			t.Fatalf("expected NaN for %f, got=%f", a, got)
		}
	}
}

func TestMaxLengthAndDistanceToLine(t *testing.T) {
	got := MaxLength(Vec2D{X: 30, Y: 40}, 5)
	if math.Abs(Length(got)-5) > epsilon {
		t.Fatalf("expected length 5, got=%f", Length(got))
	}
	if got := MaxLength(Vec2D{X: 1}, 5); got != (Vec2D{X: 1}) {
		t.Fatalf("expected vector unchanged, got=%v", got)
	}
	if d := DistanceToLine(Vec2D{X: 1}, Vec2D{X: 5, Y: -3}); d != 3 {
		t.Fatalf("expected 3, got=%f", d)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatalf("clamp returned unexpected values")
	}
	if Clamp(1.5, -1.0, 1.0) != 1.0 {
		t.Fatalf("expected float clamp to 1")
	}
}
