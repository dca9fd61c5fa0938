package pbp

import (
	"regexp"
	"strings"
)

// ActionKind is the closed set of play types the feed produces.
type ActionKind int

const (
	KindOther ActionKind = iota
	KindGameStart
	KindPeriodStart
	KindJumpballStartPeriod
	KindJumpballLost
	KindJumpballWon
	KindJumpball
	KindAssist
	KindSteal
	KindTurnover
	KindFoul
	KindFoulOn
	KindBlock
	KindTipIn
	KindTwoPointer
	KindThreePointer
	KindFreeThrow1of2
	KindFreeThrow1of3
	KindRebound
	KindFreeThrow2of3
	KindFreeThrow1of1
	KindFreeThrow2of2
	KindFreeThrow3of3
	KindFreeThrow
	KindTimeout
	KindEnd
	KindSubstitutionIn
	KindSubstitutionOut
)

var kindNames = map[ActionKind]string{
	KindOther:               "other",
	KindGameStart:           "game_start",
	KindPeriodStart:         "period_start",
	KindJumpballStartPeriod: "jumpball_startperiod",
	KindJumpballLost:        "jumpball_lost",
	KindJumpballWon:         "jumpball_won",
	KindJumpball:            "jumpball",
	KindAssist:              "assist",
	KindSteal:               "steal",
	KindTurnover:            "turnover",
	KindFoul:                "foul",
	KindFoulOn:              "foulon",
	KindBlock:               "block",
	KindTipIn:               "tipin",
	KindTwoPointer:          "2pt",
	KindThreePointer:        "3pt",
	KindFreeThrow1of2:       "1of2",
	KindFreeThrow1of3:       "1of3",
	KindRebound:             "rebound",
	KindFreeThrow2of3:       "2of3",
	KindFreeThrow1of1:       "1of1",
	KindFreeThrow2of2:       "2of2",
	KindFreeThrow3of3:       "3of3",
	KindFreeThrow:           "freethrow",
	KindTimeout:             "timeout",
	KindEnd:                 "end",
	KindSubstitutionIn:      "substitution_in",
	KindSubstitutionOut:     "substitution_out",
}

func (k ActionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// kindRank orders plays that share a timestamp. A second or third free
// throw follows the rebound of a missed first attempt, and a tip-in follows
// the rebound it came from.
var kindRank = map[ActionKind]int{
	KindGameStart:           0,
	KindPeriodStart:         1,
	KindJumpballStartPeriod: 2,
	KindJumpballLost:        3,
	KindJumpballWon:         4,
	KindJumpball:            5,
	KindAssist:              6,
	KindSteal:               7,
	KindTurnover:            8,
	KindFoul:                9,
	KindFoulOn:              10,
	KindBlock:               11,
	KindTwoPointer:          13,
	KindThreePointer:        14,
	KindFreeThrow1of2:       15,
	KindFreeThrow1of3:       16,
	KindRebound:             17,
	KindTipIn:               18,
	KindFreeThrow2of3:       18,
	KindFreeThrow1of1:       19,
	KindFreeThrow2of2:       20,
	KindFreeThrow3of3:       21,
	KindFreeThrow:           21,
	KindOther:               22,
	KindSubstitutionIn:      22,
	KindSubstitutionOut:     22,
	KindTimeout:             23,
	KindEnd:                 24,
}

// rank returns the same-timestamp sort key for an event. A block logged
// without a credited player always goes first.
func rank(e *Event) int {
	if e.Kind == KindBlock && e.Actor == "" {
		return -1
	}
	return kindRank[e.Kind]
}

var (
	shotToken      = regexp.MustCompile(`^([123])pt$`)
	freeThrowToken = regexp.MustCompile(`\b([123])of([123])\b`)
)

var freeThrowKinds = map[string]ActionKind{
	"1of1": KindFreeThrow1of1,
	"1of2": KindFreeThrow1of2,
	"2of2": KindFreeThrow2of2,
	"1of3": KindFreeThrow1of3,
	"2of3": KindFreeThrow2of3,
	"3of3": KindFreeThrow3of3,
}

// substringKinds is consulted, in order, when the leading token of an action
// is not one the feed normally uses.
var substringKinds = []struct {
	needle string
	kind   ActionKind
}{
	{"game start", KindGameStart},
	{"period start", KindPeriodStart},
	{"jumpball startperiod", KindJumpballStartPeriod},
	{"jumpball lost", KindJumpballLost},
	{"jumpball won", KindJumpballWon},
	{"assist", KindAssist},
	{"jumpball", KindJumpball},
	{"steal", KindSteal},
	{"turnover ", KindTurnover},
	{"foul ", KindFoul},
	{"foulon", KindFoulOn},
	{"block", KindBlock},
	{"tipin", KindTipIn},
	{"2pt", KindTwoPointer},
	{"3pt", KindThreePointer},
	{"rebound", KindRebound},
	{"timeout", KindTimeout},
	{"end", KindEnd},
}

// Classify maps free action text to an ActionKind.
func Classify(action string) ActionKind {
	text := strings.ToLower(strings.TrimSpace(action))
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return KindOther
	}

	if m := shotToken.FindStringSubmatch(fields[0]); m != nil {
		switch {
		case strings.Contains(text, "tipin"):
			return KindTipIn
		case m[1] == "3":
			return KindThreePointer
		default:
			return KindTwoPointer
		}
	}

	second := ""
	if len(fields) > 1 {
		second = fields[1]
	}

	switch fields[0] {
	case "freethrow":
		if m := freeThrowToken.FindString(text); m != "" {
			if kind, ok := freeThrowKinds[m]; ok {
				return kind
			}
		}
		return KindFreeThrow
	case "substitution":
		if second == "out" {
			return KindSubstitutionOut
		}
		return KindSubstitutionIn
	case "jumpball":
		switch second {
		case "startperiod":
			return KindJumpballStartPeriod
		case "lost":
			return KindJumpballLost
		case "won":
			return KindJumpballWon
		}
		return KindJumpball
	case "assist":
		return KindAssist
	case "steal":
		return KindSteal
	case "turnover":
		return KindTurnover
	case "foul":
		return KindFoul
	case "foulon", "fouled":
		return KindFoulOn
	case "block":
		return KindBlock
	case "rebound":
		return KindRebound
	case "timeout":
		return KindTimeout
	}

	if m := freeThrowToken.FindString(text); m != "" {
		if kind, ok := freeThrowKinds[m]; ok {
			return kind
		}
	}
	for _, sk := range substringKinds {
		if strings.Contains(text, sk.needle) {
			return sk.kind
		}
	}
	return KindOther
}

// IsFreeThrow reports whether the kind is any free throw attempt.
func (k ActionKind) IsFreeThrow() bool {
	switch k {
	case KindFreeThrow, KindFreeThrow1of1, KindFreeThrow1of2, KindFreeThrow2of2,
		KindFreeThrow1of3, KindFreeThrow2of3, KindFreeThrow3of3:
		return true
	}
	return false
}

// IsFieldGoal reports whether the kind is a two or three point attempt.
func (k ActionKind) IsFieldGoal() bool {
	return k == KindTwoPointer || k == KindThreePointer || k == KindTipIn
}
