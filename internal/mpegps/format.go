package mpegps

import (
	"fmt"
	"math"
	"strings"
)

func formatFrameRate(rate float64) string {
	if rate <= 0 {
		return ""
	}
	if math.Abs(rate-math.Round(rate)) < 0.0005 {
		return fmt.Sprintf("%.0f FPS", rate)
	}
	return fmt.Sprintf("%.3f FPS", rate)
}

func formatResolution(width, height uint) string {
	if width == 0 || height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", width, height)
}

func formatBitrateKbps(kbps int64) string {
	if kbps <= 0 {
		return ""
	}
	return fmt.Sprintf("%s kb/s", formatThousands(kbps))
}

func formatThousands(value int64) string {
	if value < 1000 {
		return fmt.Sprintf("%d", value)
	}
	parts := []string{}
	for value > 0 {
		chunk := value % 1000
		value /= 1000
		if value > 0 {
			parts = append(parts, fmt.Sprintf("%03d", chunk))
		} else {
			parts = append(parts, fmt.Sprintf("%d", chunk))
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " ")
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}
