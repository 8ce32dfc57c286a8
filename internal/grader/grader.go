// Package grader provides a grade-bucketed collection: values are grouped
// under an ordered grade and consumed lowest grade first, preserving
// insertion order within a bucket.
package grader

import (
	"cmp"
	"slices"
)

// Grader maps grades to insertion-ordered buckets. The grade index is kept
// sorted, so Add and SplitOff are amortized logarithmic in the number of
// distinct grades.
type Grader[K cmp.Ordered, V any] struct {
	grades []K // ascending, one entry per occupied bucket
	rows   map[K][]V
}

func New[K cmp.Ordered, V any]() *Grader[K, V] {
	return &Grader[K, V]{rows: make(map[K][]V)}
}

// Len returns the total number of values over all buckets.
func (g *Grader[K, V]) Len() int {
	n := 0
	for _, row := range g.rows {
		n += len(row)
	}
	return n
}

// GradeNum returns the number of occupied buckets.
func (g *Grader[K, V]) GradeNum() int {
	return len(g.grades)
}

// Add appends the value to the grade's bucket, creating it if absent.
func (g *Grader[K, V]) Add(grade K, value V) {
	if _, ok := g.rows[grade]; !ok {
		at, _ := slices.BinarySearch(g.grades, grade)
		g.grades = slices.Insert(g.grades, at, grade)
	}
	g.rows[grade] = append(g.rows[grade], value)
}

// Grades returns the occupied grades in ascending order. The slice is
// owned by the grader.
func (g *Grader[K, V]) Grades() []K {
	return g.grades
}

// First returns the lowest occupied grade.
func (g *Grader[K, V]) First() (K, bool) {
	if len(g.grades) == 0 {
		var zero K
		return zero, false
	}
	return g.grades[0], true
}

// SplitOff removes and returns up to limit values from the grade's bucket,
// oldest first. Excess values stay under the same grade; a bucket emptied
// exactly is removed entirely.
func (g *Grader[K, V]) SplitOff(grade K, limit int) ([]V, bool) {
	row, ok := g.rows[grade]
	if !ok {
		return nil, false
	}
	if limit < len(row) {
		if limit < 0 {
			limit = 0
		}
		g.rows[grade] = row[limit:]
		return row[:limit:limit], true
	}
	delete(g.rows, grade)
	if at, found := slices.BinarySearch(g.grades, grade); found {
		g.grades = slices.Delete(g.grades, at, at+1)
	}
	return row, true
}

// Retain filters every bucket in place, keeping values the predicate
// accepts and dropping buckets left empty.
func (g *Grader[K, V]) Retain(keep func(grade K, value V) bool) {
	kept := g.grades[:0]
	for _, grade := range g.grades {
		row := g.rows[grade]
		out := row[:0]
		for _, value := range row {
			if keep(grade, value) {
				out = append(out, value)
			}
		}
		if len(out) == 0 {
			delete(g.rows, grade)
		} else {
			g.rows[grade] = out
			kept = append(kept, grade)
		}
	}
	g.grades = kept
}

// Clear drops every bucket.
func (g *Grader[K, V]) Clear() {
	g.grades = g.grades[:0]
	clear(g.rows)
}
