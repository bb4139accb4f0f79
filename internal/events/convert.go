package events

import "github.com/8954sood/overwatch-civilwar/internal/models"

// FromPlayer converts a domain player to its wire payload.
func FromPlayer(p models.Player) PlayerPayload {
	return PlayerPayload{
		ID:           p.ID,
		Name:         p.Name,
		Tiers:        TierTriple{Tank: p.Tiers.Tank, DPS: p.Tiers.DPS, Supp: p.Tiers.Supp},
		Status:       string(p.Status),
		SoldToTeamID: p.SoldToTeamID,
		SoldPrice:    p.SoldPrice,
		OrderIndex:   p.OrderIndex,
	}
}

// FromPlayers converts a slice of domain players.
func FromPlayers(players []models.Player) []PlayerPayload {
	out := make([]PlayerPayload, len(players))
	for i, p := range players {
		out[i] = FromPlayer(p)
	}
	return out
}

// FromTeam converts a domain team and its roster to the wire payload.
func FromTeam(t models.Team, roster []models.Player) TeamPayload {
	return TeamPayload{
		ID:           t.ID,
		Name:         t.Name,
		CaptainName:  t.CaptainName,
		Points:       t.Points,
		CaptainStats: TierTriple{Tank: t.CaptainStats.Tank, DPS: t.CaptainStats.DPS, Supp: t.CaptainStats.Supp},
		Roster:       FromPlayers(roster),
	}
}

// SlimTeam converts a domain team to its id+name projection.
func SlimTeam(t models.Team) TeamSlim {
	return TeamSlim{ID: t.ID, Name: t.Name}
}
