package daemon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/username/weekday-tracker/internal/snapshot"
)

const iconSize = 16

// calendarIcon renders a small calendar glyph wrapped in an ICO container
func calendarIcon() ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	paper := color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	header := color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	weekend := color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}

	for y := 1; y < iconSize-1; y++ {
		for x := 1; x < iconSize-1; x++ {
			switch {
			case y < 5:
				img.Set(x, y, header)
			case x >= 11 && (y-5)%3 != 2:
				img.Set(x, y, weekend)
			default:
				img.Set(x, y, paper)
			}
		}
	}

	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}

	// ICONDIR followed by a single ICONDIRENTRY pointing at the PNG payload
	var buf bytes.Buffer
	fields := []any{
		uint16(0), uint16(1), uint16(1),
		uint8(iconSize), uint8(iconSize), uint8(0), uint8(0),
		uint16(1), uint16(32),
		uint32(payload.Len()), uint32(6 + 16),
	}
	for _, f := range fields {
		if err := binary.Write(&buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("failed to write icon header: %w", err)
		}
	}
	buf.Write(payload.Bytes())

	return buf.Bytes(), nil
}

// tooltip is the one-line summary shown on hover
func tooltip(snap *snapshot.Snapshot) string {
	if snap == nil {
		return "Weekday Tracker"
	}
	return fmt.Sprintf("%s: %d weekdays left, Saturday in %s",
		snap.Month, snap.Stats.WeekdaysRemaining, snap.NextSaturdayCountdown)
}
