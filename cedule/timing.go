package cedule

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// TravelPerHop is the flat inter-site travel estimate between consecutive
// visits, pending real geocoded routing.
const TravelPerHop = 0.5

// Timing is the derived workload of one team on one day. Never stored;
// recomputed on every read because item order and membership change often.
type Timing struct {
	WorkTime   float64 `json:"workTime"`
	TravelTime float64 `json:"travelTime"`
	TotalTime  float64 `json:"totalTime"`
	ItemCount  int     `json:"itemCount"`
}

// TeamTiming sums member item durations plus a fixed travel increment per
// adjacent item pair.
func (s *Store) TeamTiming(day, teamID string) (Timing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teamLocked(day, teamID)
	if t == nil {
		return Timing{}, fmt.Errorf("team %s not found on %s", teamID, day)
	}

	var work float64
	for _, key := range t.Items {
		if it, ok := s.items[key]; ok {
			work += ParseDurationHint(it.DurationHint)
		}
	}

	var travel float64
	if n := len(t.Items); n > 1 {
		travel = float64(n-1) * TravelPerHop
	}

	return Timing{
		WorkTime:   round1(work),
		TravelTime: round1(travel),
		TotalTime:  round1(work + travel),
		ItemCount:  len(t.Items),
	}, nil
}

var durationRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:[hH]\s*(\d{1,2}))?`)

// ParseDurationHint extracts hours from a free-text duration hint such as
// "2h", "1h30" or "3.5". Non-numeric or missing hints contribute zero.
func ParseDurationHint(hint string) float64 {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(hint))
	if m == nil || m[1] == "" {
		return 0
	}
	hours, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0
	}
	if m[2] != "" {
		if mins, err := strconv.ParseFloat(m[2], 64); err == nil {
			hours += mins / 60
		}
	}
	return hours
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
