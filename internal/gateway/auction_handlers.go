package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/8954sood/overwatch-civilwar/internal/models"
)

type loginRequest struct {
	AdminID  string `json:"id"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token uuid.UUID `json:"token"`
}

func (g *Gateway) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	token, err := g.auth.Login(r.Context(), req.AdminID, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

type createAuctionRequest struct {
	Title string `json:"title"`
}

type auctionOut struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	InviteCode string    `json:"inviteCode"`
	CreatedAt  string    `json:"createdAt"`
	InviteLink string    `json:"inviteLink,omitempty"`
}

func auctionToOut(a models.Auction) auctionOut {
	return auctionOut{
		ID:         a.ID,
		Title:      a.Title,
		Status:     string(a.Status),
		InviteCode: a.InviteCode,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

func (g *Gateway) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	var req createAuctionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, err := g.auctions.Create(r.Context(), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	out := auctionToOut(*a)
	out.InviteLink = g.auctions.InviteLink(a.InviteCode)
	writeJSON(w, http.StatusCreated, out)
}

func (g *Gateway) handleListAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := g.auctions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]auctionOut, len(auctions))
	for i, a := range auctions {
		out[i] = auctionToOut(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (g *Gateway) handleGetAuction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := g.auctions.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auctionToOut(*a))
}

type inviteValidateResponse struct {
	Valid     bool       `json:"valid"`
	AuctionID *uuid.UUID `json:"auctionId"`
}

func (g *Gateway) handleValidateInvite(w http.ResponseWriter, r *http.Request) {
	a, err := g.auctions.ValidateInvite(r.Context(), r.PathValue("code"))
	if err != nil {
		writeJSON(w, http.StatusOK, inviteValidateResponse{Valid: false})
		return
	}
	writeJSON(w, http.StatusOK, inviteValidateResponse{Valid: true, AuctionID: &a.ID})
}
