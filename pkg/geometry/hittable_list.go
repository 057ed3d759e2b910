package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// HittableList is a flat, ordered collection of objects.
// It is built before rendering and only read afterwards, so it is safe to
// share between render workers.
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.Objects = nil
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit scans every object and leaves the nearest hit in rec.
// tMax shrinks to each accepted hit, so exact ties go to the earlier object.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := tMax

	for _, object := range l.Objects {
		if object.Hit(ray, tMin, closestSoFar, rec) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}

	return hitAnything
}
