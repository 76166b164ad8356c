package utils

const (
	// ENDIANTAG is written after the header of point files so readers can
	// detect the byte order.
	ENDIANTAG = 6.54321
)
