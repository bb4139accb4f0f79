package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8954sood/overwatch-civilwar/internal/models"
)

func TestParseRosterNameThenTierLine(t *testing.T) {
	players := ParseRoster("페이커\n그마1 다3 플2\n")

	require.Len(t, players, 1)
	assert.Equal(t, "페이커", players[0].Name)
	assert.Equal(t, models.TierSet{Tank: "그마1", DPS: "다3", Supp: "플2"}, players[0].Tiers)
}

func TestParseRosterCombinedLine(t *testing.T) {
	players := ParseRoster("홍길동 마1 다2 골4")

	require.Len(t, players, 1)
	assert.Equal(t, "홍길동", players[0].Name)
	assert.Equal(t, models.TierSet{Tank: "마1", DPS: "다2", Supp: "골4"}, players[0].Tiers)
}

func TestParseRosterLongPrefixesNormalized(t *testing.T) {
	players := ParseRoster("선수\n그랜드마스터2 다이아1 플레티넘3")

	require.Len(t, players, 1)
	assert.Equal(t, models.TierSet{Tank: "그마2", DPS: "다1", Supp: "플3"}, players[0].Tiers)
}

func TestParseRosterRoleTaggedTiers(t *testing.T) {
	players := ParseRoster("선수\n다1 탱3 딜1 힐2")

	require.Len(t, players, 1)
	assert.Equal(t, models.TierSet{Tank: "다3", DPS: "다1", Supp: "다2"}, players[0].Tiers)
}

func TestParseRosterRoleTagsWithoutRank(t *testing.T) {
	players := ParseRoster("선수\n딜2 힐4")

	require.Len(t, players, 1)
	assert.Equal(t, models.TierSet{Tank: "N/A", DPS: "N/A", Supp: "N/A"}, players[0].Tiers)
}

func TestParseRosterMissingRoleMarker(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.TierSet
	}{
		{"x then two ranks", "X 다2 플1", models.TierSet{Tank: "N/A", DPS: "다2", Supp: "플1"}},
		{"x then one rank", "x 마3", models.TierSet{Tank: "N/A", DPS: "마3", Supp: "N/A"}},
		{"two ranks no marker", "다2 플1", models.TierSet{Tank: "다2", DPS: "플1", Supp: "N/A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := ParseRoster("선수\n" + tt.line)
			require.Len(t, players, 1)
			assert.Equal(t, tt.want, players[0].Tiers)
		})
	}
}

func TestParseRosterSingleRankRoleHint(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.TierSet
	}{
		{"dps hint", "딜러 다3", models.TierSet{Tank: "N/A", DPS: "다3", Supp: "N/A"}},
		{"supp hint", "힐러 플2", models.TierSet{Tank: "N/A", DPS: "N/A", Supp: "플2"}},
		{"no hint defaults to tank", "그마4", models.TierSet{Tank: "그마4", DPS: "N/A", Supp: "N/A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := ParseRoster("선수\n" + tt.line)
			require.Len(t, players, 1)
			assert.Equal(t, tt.want, players[0].Tiers)
		})
	}
}

func TestParseRosterMultiplePlayersAndNoise(t *testing.T) {
	text := "공지사항\n\n김철수 — 오후 9:12\n다1 플2 골3\n이영희\n마2, 다4, 다5\n"
	players := ParseRoster(text)

	require.Len(t, players, 2)
	assert.Equal(t, "김철수", players[0].Name)
	assert.Equal(t, models.TierSet{Tank: "다1", DPS: "플2", Supp: "골3"}, players[0].Tiers)
	assert.Equal(t, "이영희", players[1].Name)
	assert.Equal(t, models.TierSet{Tank: "마2", DPS: "다4", Supp: "다5"}, players[1].Tiers)
}

func TestParseRosterTierOnlyLineFallsBackToUnknown(t *testing.T) {
	players := ParseRoster("다1 플2 골3")

	require.Len(t, players, 1)
	assert.Equal(t, "Unknown", players[0].Name)
}

func TestParseRosterEmptyInput(t *testing.T) {
	assert.Empty(t, ParseRoster(""))
	assert.Empty(t, ParseRoster("이름만 있는 줄\n또 다른 줄"))
}
