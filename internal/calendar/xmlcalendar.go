package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// xmlCalendarYear represents the xmlcalendar.ru JSON year structure
type xmlCalendarYear struct {
	Year        int                `json:"year"`
	Months      []xmlCalendarMonth `json:"months"`
	Transitions []xmlTransition    `json:"transitions"`
}

type xmlCalendarMonth struct {
	Month int    `json:"month"`
	Days  string `json:"days"` // "1*,2,3+,4,8,9,..." where * = shortened, + = transferred
}

type xmlTransition struct {
	From string `json:"from"` // "MM.DD"
	To   string `json:"to"`   // "MM.DD"
}

// XMLCalendarHolidays implements Holidays from a locally stored
// xmlcalendar.ru year file. Non-working days that fall on a weekday
// become holidays; shortened days stay working days.
type XMLCalendarHolidays struct {
	filePath string
	logger   *zap.Logger
	data     StaticHolidays
}

// NewXMLCalendarHolidays creates a new XMLCalendarHolidays instance
func NewXMLCalendarHolidays(filePath string, logger *zap.Logger) *XMLCalendarHolidays {
	return &XMLCalendarHolidays{
		filePath: filePath,
		logger:   logger,
		data:     make(StaticHolidays),
	}
}

// Load reads and parses the year file
func (xc *XMLCalendarHolidays) Load() error {
	file, err := os.Open(xc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open xmlcalendar file: %w", err)
	}
	defer file.Close()

	yearData, err := decodeXMLCalendarYear(file)
	if err != nil {
		return err
	}

	for i := range yearData.Months {
		if err := xc.addMonth(yearData.Year, &yearData.Months[i]); err != nil {
			return err
		}
	}

	xc.logger.Info("xmlcalendar file loaded",
		zap.String("file", xc.filePath),
		zap.Int("year", yearData.Year),
		zap.Int("months", len(yearData.Months)),
		zap.Int("holidays", len(xc.data)))

	return nil
}

func decodeXMLCalendarYear(r io.Reader) (*xmlCalendarYear, error) {
	var yearData xmlCalendarYear
	if err := json.NewDecoder(r).Decode(&yearData); err != nil {
		return nil, fmt.Errorf("failed to parse xmlcalendar JSON: %w", err)
	}
	if yearData.Year == 0 {
		return nil, fmt.Errorf("xmlcalendar JSON has no year")
	}
	return &yearData, nil
}

// addMonth parses the compact day list of one month.
// Format: "1*,2,3+,4,8,9,15,16,22,23,29,30"
// * = shortened day, + = transferred day, others = weekends/holidays
func (xc *XMLCalendarHolidays) addMonth(year int, xmlMonth *xmlCalendarMonth) error {
	month, err := NewMonth(year, xmlMonth.Month-1)
	if err != nil {
		return fmt.Errorf("xmlcalendar month %d: %w", xmlMonth.Month, err)
	}

	if xmlMonth.Days == "" {
		return nil
	}

	for _, part := range strings.Split(xmlMonth.Days, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		marker := rune(0)
		dayStr := part
		if strings.HasSuffix(part, "*") {
			marker = '*'
			dayStr = strings.TrimSuffix(part, "*")
		} else if strings.HasSuffix(part, "+") {
			marker = '+'
			dayStr = strings.TrimSuffix(part, "+")
		}

		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 1 || day > month.Days() {
			xc.logger.Warn("Failed to parse day number",
				zap.String("month", month.String()),
				zap.String("part", part))
			continue
		}

		if marker == '*' {
			// Shortened days are still working days
			continue
		}

		date := time.Date(year, month.TimeMonth(), day, 0, 0, 0, 0, time.Local)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}

		note := "Public holiday"
		if marker == '+' {
			note = "Transferred day off"
		}
		xc.data.Add(Holiday{Date: date, Note: note})
	}

	return nil
}

// Lookup returns the holiday for date, if any
func (xc *XMLCalendarHolidays) Lookup(date time.Time) (*Holiday, bool) {
	return xc.data.Lookup(date)
}

// Len returns the number of loaded holidays
func (xc *XMLCalendarHolidays) Len() int {
	return len(xc.data)
}
