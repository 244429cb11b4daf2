// Package labeling maps the whole-day distance from today to a date onto a
// descriptive tier ("Today", "Tomorrow", "In 3 days", ...).
//
// Tiers are data: a Policy is built from an ordered table of inclusive
// [Min, Max] ranges, each with a text template and a rank. Templates may
// reference {days} (the day offset) and {date} (e.g. "Mar 8").
package labeling

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/username/weekday-tracker/pkg/dateutil"
)

// Rank is the styling bucket of a tier
type Rank int

const (
	RankToday Rank = iota + 1
	RankTomorrow
	RankSoon
	RankNextWeek
	RankLater
)

var rankNames = map[Rank]string{
	RankToday:    "today",
	RankTomorrow: "tomorrow",
	RankSoon:     "soon",
	RankNextWeek: "next_week",
	RankLater:    "later",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "rank(" + strconv.Itoa(int(r)) + ")"
}

// ParseRank parses the lower-case rank name
func ParseRank(s string) (Rank, error) {
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// Unbounded ends of a tier range
const (
	MinDays = math.MinInt
	MaxDays = math.MaxInt
)

// ErrInvalidTiers is returned for a tier table that does not cover every
// day offset exactly once
var ErrInvalidTiers = errors.New("invalid label tiers")

// Tier is one row of the label table; Min and Max are inclusive
type Tier struct {
	Min      int
	Max      int
	Template string
	Rank     Rank
}

// Label is the descriptive text for one date
type Label struct {
	Text      string
	Rank      Rank
	DaysUntil int
}

// DefaultTiers returns the canonical table. Past dates read "Today": the
// policy works at day granularity and never says "Past".
func DefaultTiers() []Tier {
	return []Tier{
		{Min: MinDays, Max: 0, Template: "Today", Rank: RankToday},
		{Min: 1, Max: 1, Template: "Tomorrow", Rank: RankTomorrow},
		{Min: 2, Max: 3, Template: "In {days} days", Rank: RankSoon},
		{Min: 4, Max: 7, Template: "Next week ({days}d)", Rank: RankNextWeek},
		{Min: 8, Max: 14, Template: "In {days} days", Rank: RankLater},
		{Min: 15, Max: MaxDays, Template: "{date} ({days}d)", Rank: RankLater},
	}
}

// Policy labels dates using a validated tier table
type Policy struct {
	tiers []Tier
}

// NewPolicy validates tiers: ordered ascending, contiguous and covering
// every integer offset from MinDays to MaxDays
func NewPolicy(tiers []Tier) (*Policy, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrInvalidTiers)
	}
	if tiers[0].Min != MinDays {
		return nil, fmt.Errorf("%w: first tier must be unbounded below", ErrInvalidTiers)
	}
	if last := tiers[len(tiers)-1]; last.Max != MaxDays {
		return nil, fmt.Errorf("%w: last tier must be unbounded above", ErrInvalidTiers)
	}

	for i, tier := range tiers {
		if tier.Min > tier.Max {
			return nil, fmt.Errorf("%w: tier %d has min %d > max %d", ErrInvalidTiers, i, tier.Min, tier.Max)
		}
		if tier.Template == "" {
			return nil, fmt.Errorf("%w: tier %d has no template", ErrInvalidTiers, i)
		}
		if _, ok := rankNames[tier.Rank]; !ok {
			return nil, fmt.Errorf("%w: tier %d has unknown rank %d", ErrInvalidTiers, i, tier.Rank)
		}
		if i > 0 && tiers[i-1].Max == MaxDays {
			return nil, fmt.Errorf("%w: tier %d follows an unbounded tier", ErrInvalidTiers, i)
		}
		if i > 0 && tiers[i-1].Max+1 != tier.Min {
			return nil, fmt.Errorf("%w: tier %d starts at %d, want %d", ErrInvalidTiers, i, tier.Min, tiers[i-1].Max+1)
		}
	}

	p := &Policy{tiers: make([]Tier, len(tiers))}
	copy(p.tiers, tiers)
	return p, nil
}

// DefaultPolicy returns the policy built from DefaultTiers
func DefaultPolicy() *Policy {
	p, err := NewPolicy(DefaultTiers())
	if err != nil {
		panic(err)
	}
	return p
}

// Tiers returns a copy of the policy's table
func (p *Policy) Tiers() []Tier {
	out := make([]Tier, len(p.tiers))
	copy(out, p.tiers)
	return out
}

// DaysUntil returns the whole calendar days from the day of now to the day
// of date, negative for past dates
func DaysUntil(date, now time.Time) int {
	return dateutil.DaysBetween(now, date)
}

// LabelFor labels date relative to now; the first matching tier wins
func (p *Policy) LabelFor(date, now time.Time) Label {
	days := DaysUntil(date, now)
	for _, tier := range p.tiers {
		if days >= tier.Min && days <= tier.Max {
			return Label{
				Text:      render(tier.Template, days, date.In(now.Location())),
				Rank:      tier.Rank,
				DaysUntil: days,
			}
		}
	}
	// Unreachable for a validated table
	return Label{Text: strconv.Itoa(days) + "d", Rank: RankLater, DaysUntil: days}
}

func render(template string, days int, date time.Time) string {
	return strings.NewReplacer(
		"{days}", strconv.Itoa(days),
		"{date}", date.Format("Jan 2"),
	).Replace(template)
}
