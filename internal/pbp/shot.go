package pbp

import (
	"strconv"
	"strings"
)

const freeThrowCategory = "freethrow"

// classifyShot reads shot attributes out of the action text. Non-shots
// return nil.
func classifyShot(ev *Event) *Shot {
	text := strings.ToLower(strings.TrimSpace(ev.Action))
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	compact := strings.Join(fields, "")

	if m := shotToken.FindStringSubmatch(fields[0]); m != nil {
		value, _ := strconv.Atoi(m[1])
		shot := &Shot{
			Value:        value,
			Made:         fields[len(fields)-1] == "made",
			Transition:   strings.Contains(compact, "fastbreak") || strings.Contains(compact, "fromturnover"),
			Paint:        strings.Contains(compact, "pointsinthepaint"),
			SecondChance: strings.Contains(text, "2nd"),
		}
		if len(fields) > 1 {
			shot.Category = fields[1]
		}
		return shot
	}

	if strings.Contains(compact, freeThrowCategory) || ev.Kind.IsFreeThrow() {
		return &Shot{
			Value:      1,
			Category:   freeThrowCategory,
			Made:       strings.Contains(text, "made"),
			Transition: strings.Contains(compact, "fromturnover"),
		}
	}
	return nil
}

func classifyShots(events []Event) {
	for i := range events {
		if events[i].IsMarker() {
			continue
		}
		events[i].Shot = classifyShot(&events[i])
	}
}
