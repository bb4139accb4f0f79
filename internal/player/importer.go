package player

import (
	"regexp"
	"strings"

	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// Free-text roster import. Admins paste chat logs where each player is a
// name line followed by a tier line (or a single combined line), with tier
// tokens written in Korean ladder shorthand, e.g. "그마1 다3 플2" or
// "탱3 딜1 힐2". Lines that carry no tier tokens are held as the pending
// name for the next tier line.

const naTier = "N/A"

var (
	tierPrefixes = `(그랜드마스터|그마|그|챔피언|챔|마스터|마|다이아|다야|다|플레티넘|플레|플|골드|골|실버|실|브론즈|브)`

	rankTokenRe  = regexp.MustCompile(tierPrefixes + `\s*(\d+)`)
	roleTokenRe  = regexp.MustCompile(`(탱|딜|힐)\s*(\d+)`)
	symbolRe     = regexp.MustCompile(`(^|\s)[Xx]\b`)
	stripTokenRe = regexp.MustCompile(tierPrefixes + `\s*\d+|(탱|딜|힐)\s*\d+`)
)

// Long-form or sloppy prefixes collapse to the canonical shorthand.
var tierPrefixAliases = map[string]string{
	"그랜드마스터": "그마",
	"그마":     "그마",
	"그":      "그마",
	"챔피언":    "챔",
	"챔":      "챔",
	"마스터":    "마",
	"마":      "마",
	"다이아":    "다",
	"다야":     "다",
	"다":      "다",
	"플레티넘":   "플",
	"플레":     "플",
	"플":      "플",
	"골드":     "골",
	"골":      "골",
	"실버":     "실",
	"실":      "실",
	"브론즈":    "브",
	"브":      "브",
}

// ParseRoster turns pasted roster text into player create requests.
func ParseRoster(text string) []CreatePlayerRequest {
	var players []CreatePlayerRequest
	var pendingName string

	for _, raw := range strings.Split(text, "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		if !hasTiers(line) {
			pendingName = line
			continue
		}

		tiers := extractTiers(line)
		name := pendingName
		if name == "" {
			name = strings.TrimSpace(stripTokenRe.ReplaceAllString(line, ""))
		}
		if name == "" {
			name = "Unknown"
		}
		players = append(players, CreatePlayerRequest{
			Name:  name,
			Tiers: models.TierSet{Tank: tiers[0], DPS: tiers[1], Supp: tiers[2]},
		})
		pendingName = ""
	}
	return players
}

func cleanLine(raw string) string {
	line := strings.TrimSpace(raw)
	if idx := strings.Index(line, "—"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	return line
}

func hasTiers(line string) bool {
	return rankTokenRe.MatchString(line) || roleTokenRe.MatchString(line)
}

func normalizeTierPrefix(prefix string) string {
	if canonical, ok := tierPrefixAliases[prefix]; ok {
		return canonical
	}
	return prefix
}

// extractTiers returns the [tank, dps, supp] triple for one line, trying
// the token shapes in decreasing order of information.
func extractTiers(line string) [3]string {
	normalized := strings.NewReplacer(",", " ", "/", " ").Replace(line)
	normalized = strings.NewReplacer("탱", " 탱", "딜", " 딜", "힐", " 힐").Replace(normalized)

	rankTokens := rankTokenRe.FindAllStringSubmatch(normalized, -1)
	roleTokens := roleTokenRe.FindAllStringSubmatch(normalized, -1)
	symbolCount := len(symbolRe.FindAllString(normalized, -1))

	ranks := make([]string, len(rankTokens))
	for i, tok := range rankTokens {
		ranks[i] = normalizeTierPrefix(tok[1]) + tok[2]
	}

	// Three or more explicit ranks: take them positionally.
	if len(ranks) >= 3 {
		return [3]string{ranks[0], ranks[1], ranks[2]}
	}

	// Role-tagged numbers, optionally sharing the first rank's prefix.
	if len(roleTokens) > 0 {
		basePrefix := ""
		if len(rankTokens) > 0 {
			basePrefix = normalizeTierPrefix(rankTokens[0][1])
		}
		out := [3]string{naTier, naTier, naTier}
		for _, tok := range roleTokens {
			value := naTier
			if basePrefix != "" {
				value = basePrefix + tok[2]
			}
			switch tok[1] {
			case "탱":
				out[0] = value
			case "딜":
				out[1] = value
			case "힐":
				out[2] = value
			}
		}
		return out
	}

	// An X marks a role the player does not fill.
	if symbolCount > 0 {
		switch len(ranks) {
		case 1:
			return [3]string{naTier, ranks[0], naTier}
		case 2:
			return [3]string{naTier, ranks[0], ranks[1]}
		}
	}

	switch len(ranks) {
	case 2:
		return [3]string{ranks[0], ranks[1], naTier}
	case 1:
		switch {
		case strings.Contains(normalized, "딜"):
			return [3]string{naTier, ranks[0], naTier}
		case strings.Contains(normalized, "힐"):
			return [3]string{naTier, naTier, ranks[0]}
		default:
			return [3]string{ranks[0], naTier, naTier}
		}
	}

	return [3]string{naTier, naTier, naTier}
}
