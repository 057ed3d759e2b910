package scene

import (
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

func TestRandomScene_DeterministicPerSeed(t *testing.T) {
	a := NewRandomScene(7)
	b := NewRandomScene(7)
	c := NewRandomScene(8)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Same seed produced %d and %d objects", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	for i := range a.World.Objects {
		sa := a.World.Objects[i].(*geometry.Sphere)
		sb := b.World.Objects[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Object %d differs between identical seeds", i)
		}
	}

	same := a.GetPrimitiveCount() == c.GetPrimitiveCount()
	if same {
		for i := range a.World.Objects {
			if a.World.Objects[i].(*geometry.Sphere).Center != c.World.Objects[i].(*geometry.Sphere).Center {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Different seeds should produce different scenes")
	}
}

func TestRandomScene_SmallSpheresClearOfMetalSphere(t *testing.T) {
	s := NewRandomScene(1)
	// Ground plus three large spheres come first
	if s.GetPrimitiveCount() < 4 {
		t.Fatalf("Expected at least 4 objects, got %d", s.GetPrimitiveCount())
	}
	boundary := core.NewVec3(4, 0.2, 0)
	for _, obj := range s.World.Objects[4:] {
		sphere := obj.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			t.Fatalf("Expected small sphere radius 0.2, got %f", sphere.Radius)
		}
		if sphere.Center.Subtract(boundary).Length() <= 0.9 {
			t.Errorf("Small sphere at %v too close to %v", sphere.Center, boundary)
		}
	}
}

func TestTenSphereScene_TintsFromSeed(t *testing.T) {
	a := NewTenSphereScene(3)
	b := NewTenSphereScene(3)

	if a.GetPrimitiveCount() != 11 {
		t.Fatalf("Expected 11 objects (10 spheres plus ground), got %d", a.GetPrimitiveCount())
	}
	for i := 5; i < 10; i++ {
		ga := a.World.Objects[i].(*geometry.Sphere).Material.(*material.Dielectric)
		gb := b.World.Objects[i].(*geometry.Sphere).Material.(*material.Dielectric)
		if ga.Albedo != gb.Albedo {
			t.Errorf("Bead %d tint differs for the same seed", i)
		}
	}
}

func TestReferenceScene_Layout(t *testing.T) {
	s := NewReferenceScene()
	if s.Settings.Width != 2 || s.Settings.SamplesPerPixel != 1 {
		t.Errorf("Unexpected reference settings: %+v", s.Settings)
	}
	small := s.World.Objects[1].(*geometry.Sphere)
	if small.Center != ReferenceSphereCenter {
		t.Errorf("Expected small sphere at %v, got %v", ReferenceSphereCenter, small.Center)
	}
	lambertian, ok := small.Material.(*material.Lambertian)
	if !ok || lambertian.Albedo != ReferenceAlbedo {
		t.Errorf("Expected lambertian with albedo %v, got %#v", ReferenceAlbedo, small.Material)
	}
}
