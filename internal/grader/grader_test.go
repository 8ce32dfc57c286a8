package grader

import (
	"slices"
	"testing"
)

func TestGraderBasics(t *testing.T) {
	g := New[int, string]()
	if g.Len() != 0 || g.GradeNum() != 0 {
		t.Fatalf("new grader should be empty, got len=%d grades=%d", g.Len(), g.GradeNum())
	}
	if _, ok := g.First(); ok {
		t.Fatal("empty grader should have no first grade")
	}

	g.Add(3, "c")
	g.Add(1, "a")
	g.Add(2, "b")
	g.Add(1, "aa")

	if g.Len() != 4 {
		t.Fatalf("expected 4 values, got %d", g.Len())
	}
	if g.GradeNum() != 3 {
		t.Fatalf("expected 3 grades, got %d", g.GradeNum())
	}
	if !slices.Equal(g.Grades(), []int{1, 2, 3}) {
		t.Fatalf("grades should be ascending, got %v", g.Grades())
	}
	if first, ok := g.First(); !ok || first != 1 {
		t.Fatalf("expected first grade 1, got %d (%t)", first, ok)
	}
}

func TestGraderSplitOff(t *testing.T) {
	g := New[int, string]()
	g.Add(1, "a")
	g.Add(1, "b")
	g.Add(1, "c")
	g.Add(2, "d")

	if _, ok := g.SplitOff(5, 10); ok {
		t.Fatal("splitting a missing grade should fail")
	}

	head, ok := g.SplitOff(1, 2)
	if !ok || !slices.Equal(head, []string{"a", "b"}) {
		t.Fatalf("expected oldest-first head [a b], got %v (%t)", head, ok)
	}
	if g.Len() != 2 || g.GradeNum() != 2 {
		t.Fatalf("expected the tail to stay, got len=%d grades=%d", g.Len(), g.GradeNum())
	}

	head, ok = g.SplitOff(1, 10)
	if !ok || !slices.Equal(head, []string{"c"}) {
		t.Fatalf("expected the remaining tail [c], got %v (%t)", head, ok)
	}
	if g.GradeNum() != 1 {
		t.Fatalf("emptied bucket should be removed, grades=%v", g.Grades())
	}
	if first, ok := g.First(); !ok || first != 2 {
		t.Fatalf("expected first grade 2, got %d (%t)", first, ok)
	}
}

func TestGraderRetain(t *testing.T) {
	g := New[int, int]()
	for i := 0; i < 10; i++ {
		g.Add(i%3, i)
	}

	g.Retain(func(grade, value int) bool { return value%2 == 0 })
	if g.Len() != 5 {
		t.Fatalf("expected 5 even values, got %d", g.Len())
	}
	for _, grade := range slices.Clone(g.Grades()) {
		row, _ := g.SplitOff(grade, g.Len())
		for _, value := range row {
			if value%2 != 0 {
				t.Fatalf("grade %d kept odd value %d", grade, value)
			}
		}
	}

	g.Add(1, 1)
	g.Retain(func(grade, value int) bool { return false })
	if g.Len() != 0 || g.GradeNum() != 0 {
		t.Fatalf("retain(false) should empty the grader, len=%d grades=%d", g.Len(), g.GradeNum())
	}
}

func TestGraderClear(t *testing.T) {
	g := New[int, string]()
	g.Add(1, "a")
	g.Add(2, "b")
	g.Clear()
	if g.Len() != 0 || g.GradeNum() != 0 {
		t.Fatalf("clear should empty the grader, len=%d grades=%d", g.Len(), g.GradeNum())
	}
	g.Add(7, "c")
	if first, ok := g.First(); !ok || first != 7 {
		t.Fatalf("grader should be reusable after clear, got %d (%t)", first, ok)
	}
}
