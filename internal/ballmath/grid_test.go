package ballmath

import "testing"

func TestToColumn(t *testing.T) {
	const colWidth = 55

	tests := []struct {
		x, want int
	}{
		{0, 0},
		{54, 0},
		{55, 1},
		{494, 8},
		{600, 10}, // no bounds checking
	}

	for _, tc := range tests {
		if got := ToColumn(tc.x, colWidth); got != tc.want {
			t.Errorf("ToColumn(%d, %d) = %d, expected %d", tc.x, colWidth, got, tc.want)
		}
	}
}

func TestToRow(t *testing.T) {
	const rowHeight = 32

	tests := []struct {
		y, want int
	}{
		{0, 0},
		{31, 0},
		{32, 1},
		{575, 17},
	}

	for _, tc := range tests {
		if got := ToRow(tc.y, rowHeight); got != tc.want {
			t.Errorf("ToRow(%d, %d) = %d, expected %d", tc.y, rowHeight, got, tc.want)
		}
	}
}

func TestToCell(t *testing.T) {
	row, col := ToCell(Vec{X: 120, Y: 70}, 55, 32)
	if row != 2 || col != 2 {
		t.Errorf("ToCell() = (%d, %d), expected (2, 2)", row, col)
	}
}

func TestToColumnMonotonic(t *testing.T) {
	prev := ToColumn(-200, 55)
	for x := -199; x <= 1000; x++ {
		col := ToColumn(x, 55)
		if col < prev {
			t.Fatalf("ToColumn(%d) = %d < ToColumn(%d) = %d", x, col, x-1, prev)
		}
		prev = col
	}
}
