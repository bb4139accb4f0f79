package gateway

import (
	"net/http"

	"github.com/8954sood/overwatch-civilwar/internal/events"
	"github.com/8954sood/overwatch-civilwar/internal/models"
	"github.com/8954sood/overwatch-civilwar/internal/team"
)

func (g *Gateway) writeTeam(w http.ResponseWriter, r *http.Request, status int, t models.Team) {
	payload, err := g.teams.Payload(r.Context(), t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, payload)
}

func (g *Gateway) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req team.CreateTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := g.teams.Create(r.Context(), roomID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	g.writeTeam(w, r, http.StatusCreated, *t)
}

func (g *Gateway) handleJoinLobby(w http.ResponseWriter, r *http.Request) {
	var req team.JoinRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := g.teams.Join(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	g.writeTeam(w, r, http.StatusCreated, *t)
}

func (g *Gateway) handleListTeams(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	teams, err := g.teams.List(r.Context(), roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]events.TeamPayload, 0, len(teams))
	for _, t := range teams {
		payload, err := g.teams.Payload(r.Context(), t)
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, payload)
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := g.teams.Get(r.Context(), roomID, teamID)
	if err != nil {
		writeError(w, err)
		return
	}
	g.writeTeam(w, r, http.StatusOK, *t)
}

func (g *Gateway) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req team.UpdateTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := g.teams.Update(r.Context(), roomID, teamID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	g.writeTeam(w, r, http.StatusOK, *t)
}

type updatePointsRequest struct {
	Points int `json:"points"`
}

func (g *Gateway) handleUpdateTeamPoints(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updatePointsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := g.teams.SetPoints(r.Context(), roomID, teamID, req.Points)
	if err != nil {
		writeError(w, err)
		return
	}
	g.writeTeam(w, r, http.StatusOK, *t)
}

func (g *Gateway) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	roomID, err := auctionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	teamID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := g.teams.Delete(r.Context(), roomID, teamID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
