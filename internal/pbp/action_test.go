package pbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		action string
		want   ActionKind
	}{
		{"2pt jumpshot made", KindTwoPointer},
		{"3pt jumpshot 2ndchance missed", KindThreePointer},
		{"2pt tipin made", KindTipIn},
		{"2pt layup fromturnover made", KindTwoPointer},
		{"freethrow 1of2 made", KindFreeThrow1of2},
		{"freethrow 2of2 missed", KindFreeThrow2of2},
		{"1of2 made", KindFreeThrow1of2},
		{"freethrow made", KindFreeThrow},
		{"assist", KindAssist},
		{"steal", KindSteal},
		{"turnover badpass", KindTurnover},
		{"foul personal 2freethrow", KindFoul},
		{"foulon", KindFoulOn},
		{"fouled", KindFoulOn},
		{"block", KindBlock},
		{"rebound defensive", KindRebound},
		{"jumpball startperiod", KindJumpballStartPeriod},
		{"jumpball lost", KindJumpballLost},
		{"jumpball won", KindJumpballWon},
		{"jumpball heldball", KindJumpball},
		{"timeout short", KindTimeout},
		{"substitution in", KindSubstitutionIn},
		{"substitution out", KindSubstitutionOut},
		{"Game Start", KindGameStart},
		{"period start", KindPeriodStart},
		{"Period End", KindEnd},
		{"game end", KindEnd},
		{"", KindOther},
		{"instant replay", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.action))
		})
	}
}

func TestRankPriorityOrder(t *testing.T) {
	ordered := []ActionKind{
		KindGameStart, KindPeriodStart, KindJumpballStartPeriod, KindJumpballLost,
		KindJumpballWon, KindJumpball, KindAssist, KindSteal, KindTurnover, KindFoul,
		KindFoulOn, KindBlock, KindTwoPointer, KindThreePointer, KindFreeThrow1of2,
		KindRebound, KindFreeThrow2of2, KindTimeout, KindEnd,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, kindRank[ordered[i-1]], kindRank[ordered[i]], "%s before %s", ordered[i-1], ordered[i])
	}
}

func TestRankEmptyActorBlockFirst(t *testing.T) {
	block := Event{Kind: KindBlock}
	start := Event{Kind: KindGameStart}
	credited := Event{Kind: KindBlock, Actor: "Cole"}

	assert.Less(t, rank(&block), rank(&start))
	assert.Equal(t, kindRank[KindBlock], rank(&credited))
}
