package utils

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with two decimals and a 1024 divisor,
// capping at terabytes ("512.00 B", "1.50 MB").
func FormatBytes(n uint64) string {
	size := float64(n)
	idx := 0
	for size >= 1024 && idx < len(byteUnits)-1 {
		size /= 1024
		idx++
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[idx])
}
