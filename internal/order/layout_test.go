package order

import (
	"testing"

	"github.com/babarot/imgsort/internal/core/types"
)

func TestResolveDropSide(t *testing.T) {
	rect := types.Rect{X0: 100, W: 40}
	tests := []struct {
		name string
		x    int
		rect types.Rect
		want bool
	}{
		{"left edge", 100, rect, false},
		{"just before middle", 119, rect, false},
		{"middle", 120, rect, true},
		{"right edge", 139, rect, true},
		{"zero width", 120, types.Rect{X0: 100, W: 0}, false},
		{"negative width", 90, types.Rect{X0: 100, W: -10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDropSide(tt.x, tt.rect); got != tt.want {
				t.Errorf("ResolveDropSide(%d, %+v) = %v, want %v", tt.x, tt.rect, got, tt.want)
			}
		})
	}
}

func TestResolveDropSideIdempotent(t *testing.T) {
	l := Snapshot(6, 3, 20, 4, 0, 2)
	for x := 0; x < 60; x++ {
		first, ok1 := l.Request(0, x, 7)
		second, ok2 := l.Request(0, x, 7)
		if ok1 != ok2 || first != second {
			t.Fatalf("Request at x=%d not stable: %+v/%v vs %+v/%v", x, first, ok1, second, ok2)
		}
	}
}

func TestLayoutHitTest(t *testing.T) {
	// 5 cells, 2 columns of 10x3 starting at (1, 2):
	// [0][1]
	// [2][3]
	// [4]
	l := Snapshot(5, 2, 10, 3, 1, 2)

	tests := []struct {
		name   string
		x, y   int
		want   int
		wantOK bool
	}{
		{"first cell", 1, 2, 0, true},
		{"second column", 11, 4, 1, true},
		{"second row", 5, 5, 2, true},
		{"last cell", 10, 8, 4, true},
		{"empty slot after last", 15, 8, -1, false},
		{"right of grid", 21, 2, -1, false},
		{"above grid", 5, 1, -1, false},
		{"left of grid", 0, 3, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rect, ok := l.HitTest(tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("HitTest(%d, %d) = %d, %v; want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
			if ok && !rect.Contains(tt.x, tt.y) {
				t.Errorf("HitTest(%d, %d) rect %+v does not contain the point", tt.x, tt.y, rect)
			}
		})
	}
}

func TestLayoutRequest(t *testing.T) {
	l := Snapshot(4, 4, 10, 1, 0, 0)

	req, ok := l.Request(0, 37, 0)
	if !ok {
		t.Fatal("Request() ok = false")
	}
	want := types.MoveRequest{SourceIndex: 0, TargetIndex: 3, InsertAfter: true}
	if req != want {
		t.Errorf("Request() = %+v, want %+v", req, want)
	}

	if _, ok := l.Request(0, 50, 0); ok {
		t.Error("Request() outside the grid should not produce a request")
	}
}
