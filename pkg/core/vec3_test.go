package core

import (
	"math"
	"math/rand"
	"testing"
)

func vecNear(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply scalar", a.Multiply(2), NewVec3(2, 4, 6)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"divide scalar", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"divide vec", b.DivideVec(a), NewVec3(4, -2.5, 2)},
		{"add scalar", a.AddScalar(1), NewVec3(2, 3, 4)},
		{"subtract scalar", a.SubtractScalar(1), NewVec3(0, 1, 2)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"cross anticommutes", NewVec3(0, 1, 0).Cross(NewVec3(1, 0, 0)), NewVec3(0, 0, -1)},
		{"lerp midpoint", NewVec3(0, 0, 0).Lerp(NewVec3(2, 4, 6), 0.5), NewVec3(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_LengthAndDot(t *testing.T) {
	v := NewVec3(2, 3, 6)
	if v.LengthSquared() != 49 {
		t.Errorf("Expected squared length 49, got %f", v.LengthSquared())
	}
	if v.Length() != 7 {
		t.Errorf("Expected length 7, got %f", v.Length())
	}
	if d := v.Dot(NewVec3(1, 1, 1)); d != 11 {
		t.Errorf("Expected dot 11, got %f", d)
	}
}

func TestVec3_UnitOfZeroIsNaN(t *testing.T) {
	u := Vec3{}.Unit()
	if !math.IsNaN(u.X) || !math.IsNaN(u.Y) || !math.IsNaN(u.Z) {
		t.Errorf("Expected NaN components for zero-length normalization, got %v", u)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", Vec3{}, true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"boundary is not near zero", NewVec3(1e-8, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestReflect_FlipsNormalComponent(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	for i := 0; i < 500; i++ {
		v := RandomVec3Range(sampler, -3, 3)
		n := RandomUnitVector(sampler)
		r := Reflect(v, n)
		if math.Abs(r.Dot(n)+v.Dot(n)) > 1e-9 {
			t.Fatalf("reflect(%v, %v) dot n = %f, expected %f", v, n, r.Dot(n), -v.Dot(n))
		}
		if math.Abs(r.Length()-v.Length()) > 1e-9 {
			t.Fatalf("reflection changed length: %f vs %f", r.Length(), v.Length())
		}
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incoming := NewVec3(1, -1, 0).Unit() // 45 degrees
	eta := 1.0 / 1.5

	refracted := Refract(incoming, normal, eta)

	sinIn := math.Sqrt(1 - math.Pow(incoming.Negate().Dot(normal), 2))
	sinOut := math.Sqrt(1 - math.Pow(refracted.Negate().Dot(normal)/refracted.Length(), 2))
	if math.Abs(sinOut-eta*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%f expected %f", sinOut, eta*sinIn)
	}
	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Expected unit refracted vector, got length %f", refracted.Length())
	}
	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue through the surface, got %v", refracted)
	}
}

func TestRefract_NormalIncidencePassesStraight(t *testing.T) {
	n := NewVec3(0, 0, 1)
	in := NewVec3(0, 0, -1)
	out := Refract(in, n, 1/1.5)
	if !vecNear(out, in, 1e-12) {
		t.Errorf("Expected straight-through refraction %v, got %v", in, out)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(3, 5, 2), NewVec3(8, -2, 1))
	expected := NewVec3(83, -15, 12)
	if got := ray.At(10); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
