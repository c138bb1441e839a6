// Package util holds small formatting helpers for startup and storage logs.
package util

import (
	"fmt"
	"time"
)

var byteUnits = [...]string{"KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders a size in binary units with one decimal, e.g. "5.0 MB".
func FormatBytes(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes) / 1024
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}

// FormatDuration renders token lifetimes and timeouts compactly: "45s", "5m10s", "1h30m".
func FormatDuration(d time.Duration) string {
	total := int64(d.Round(time.Second) / time.Second)
	hours, minutes, seconds := total/3600, total/60%60, total%60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
