package core

import "fmt"

const (
	bytesPerMB = 1024 * 1024

	// gbCrossoverMB is the MB value above which sizes are shown in GB.
	gbCrossoverMB = 1000
)

// FormatSize renders a byte count as "12.34 MB", switching to GB once the
// MB value exceeds 1000.
func FormatSize(bytes int64) string {
	mb := float64(bytes) / bytesPerMB
	if mb > gbCrossoverMB {
		return fmt.Sprintf("%.2f GB", mb/1024)
	}
	return fmt.Sprintf("%.2f MB", mb)
}
