package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/emersion/go-ical"

	"github.com/username/weekday-tracker/internal/snapshot"
)

const (
	icsVersion = "2.0"
	icsProdID  = "-//Weekday Tracker//Report//EN"
	icsCalName = "Remaining weekends"
	icsScale   = "GREGORIAN"
	icsMethod  = "PUBLISH"
	icsUIDHost = "weekday-tracker"

	propVersion  = "VERSION"
	propProdID   = "PRODID"
	propCalName  = "X-WR-CALNAME"
	propCalScale = "CALSCALE"
	propMethod   = "METHOD"
	propUID      = "UID"
	propSummary  = "SUMMARY"
	propDTStamp  = "DTSTAMP"
	propDTStart  = "DTSTART"
	propDTEnd    = "DTEND"
	propTransp   = "TRANSP"
	transparent  = "TRANSPARENT"
	stubCalendar = "BEGIN:VCALENDAR\r\nVERSION:" + icsVersion + "\r\nPRODID:" + icsProdID + "\r\nEND:VCALENDAR\r\n"
)

// BuildICS encodes the snapshot's remaining weekends as all-day events.
// A month without remaining weekends yields an empty but valid calendar.
func BuildICS(snap *snapshot.Snapshot) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(propVersion, icsVersion)
	cal.Props.SetText(propProdID, icsProdID)
	cal.Props.SetText(propCalName, icsCalName)
	cal.Props.SetText(propCalScale, icsScale)
	cal.Props.SetText(propMethod, icsMethod)

	stamp := ical.NewProp(propDTStamp)
	stamp.SetDateTime(snap.Now.UTC())

	for _, d := range snap.AllDates {
		if !d.IsWeekend || d.IsPast {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(propUID, fmt.Sprintf("%s@%s", d.Date.Format("20060102"), icsUIDHost))
		event.Props.SetText(propSummary, fmt.Sprintf("%s (%s)", d.Date.Format("Monday"), d.Label.Text))
		event.Props.Set(stamp)
		event.Props.SetText(propTransp, transparent)

		start := ical.NewProp(propDTStart)
		start.SetDate(d.Date)
		event.Props.Set(start)

		end := ical.NewProp(propDTEnd)
		end.SetDate(d.Date.AddDate(0, 0, 1))
		event.Props.Set(end)

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(stubCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode iCalendar data: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteICS writes BuildICS output to w
func WriteICS(w io.Writer, snap *snapshot.Snapshot) error {
	data, err := BuildICS(snap)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write iCalendar data: %w", err)
	}
	return nil
}
