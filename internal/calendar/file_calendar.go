package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileHolidays implements Holidays using a local text file.
//
// One entry per line: "YYYY-MM-DD type [note]" where type is one of
// holiday, workday, shortened or weekend. Only holiday lines are kept;
// the other types are accepted so production-calendar exports load as is.
type FileHolidays struct {
	filePath string
	logger   *zap.Logger
	data     StaticHolidays
}

// NewFileHolidays creates a new FileHolidays instance
func NewFileHolidays(filePath string, logger *zap.Logger) *FileHolidays {
	return &FileHolidays{
		filePath: filePath,
		logger:   logger,
		data:     make(StaticHolidays),
	}
}

// Load loads holiday data from file
func (fh *FileHolidays) Load() error {
	file, err := os.Open(fh.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	if err := fh.read(file); err != nil {
		return err
	}

	fh.logger.Info("Holiday file loaded",
		zap.String("file", fh.filePath),
		zap.Int("holidays", len(fh.data)))

	return nil
}

func (fh *FileHolidays) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Example: 2025-01-01 holiday New Year
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fh.logger.Warn("Invalid line format",
				zap.Int("line", lineNo),
				zap.String("text", line))
			continue
		}

		date, err := time.ParseInLocation(dateKeyLayout, parts[0], time.Local)
		if err != nil {
			fh.logger.Warn("Failed to parse date",
				zap.Int("line", lineNo),
				zap.String("date", parts[0]),
				zap.Error(err))
			continue
		}

		note := ""
		if len(parts) == 3 {
			note = strings.TrimSpace(parts[2])
		}

		switch parts[1] {
		case "holiday":
			fh.data.Add(Holiday{Date: date, Note: note})
		case "workday", "shortened", "weekend":
			// Working days and regular weekends need no table entry
		default:
			fh.logger.Warn("Unknown day type",
				zap.Int("line", lineNo),
				zap.String("type", parts[1]))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	return nil
}

// Lookup returns the holiday for date, if any
func (fh *FileHolidays) Lookup(date time.Time) (*Holiday, bool) {
	return fh.data.Lookup(date)
}

// Len returns the number of loaded holidays
func (fh *FileHolidays) Len() int {
	return len(fh.data)
}
