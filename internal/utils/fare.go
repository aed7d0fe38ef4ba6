package utils

// ComputeFare returns the amount due for a visitor group. Negative counts
// are treated as zero.
func ComputeFare(adults, children int, adultRate, childRate int64) int64 {
	if adults < 0 {
		adults = 0
	}
	if children < 0 {
		children = 0
	}
	return int64(adults)*adultRate + int64(children)*childRate
}
