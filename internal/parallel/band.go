package parallel

// Band is a horizontal strip of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// Bands splits height rows into at most n contiguous bands of nearly
// equal size. Earlier bands receive the remainder rows. It returns nil
// when there is nothing to split.
func Bands(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	if n > height {
		n = height
	}

	bands := make([]Band, n)
	size, rem := height/n, height%n
	y := 0
	for i := range bands {
		rows := size
		if i < rem {
			rows++
		}
		bands[i] = Band{Y0: y, Y1: y + rows}
		y += rows
	}
	return bands
}

// BandsFor picks a band count for a frame: a few bands per worker so that
// work stealing can even out uneven bands, but never fewer than minRows
// rows per band.
func BandsFor(height, workers, minRows int) []Band {
	if minRows < 1 {
		minRows = 1
	}
	n := workers * 4
	if maxBands := height / minRows; n > maxBands {
		n = maxBands
	}
	return Bands(height, n)
}
