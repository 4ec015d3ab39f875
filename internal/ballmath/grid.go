package ballmath

// ToColumn maps a pixel x coordinate to a block grid column.
// Out-of-range coordinates yield out-of-range columns; callers bounds-check.
func ToColumn(x, colWidth int) int {
	return x / colWidth
}

// ToRow maps a pixel y coordinate to a block grid row.
func ToRow(y, rowHeight int) int {
	return y / rowHeight
}

// ToCell returns the (row, col) cell containing pos.
func ToCell(pos Vec, colWidth, rowHeight int) (row, col int) {
	return ToRow(pos.Y, rowHeight), ToColumn(pos.X, colWidth)
}
