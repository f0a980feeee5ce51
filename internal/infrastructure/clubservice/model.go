package clubservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
)

type profilePayload struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Elo             float64        `json:"elo"`
	RatingDeviation float64        `json:"ratingDeviation"`
	CaptainID       int64          `json:"captainId"`
	Players         []int64        `json:"players"`
	PenaltyStatus   *penaltyStatus `json:"penaltyStatus"`
}

type penaltyStatus struct {
	BanUntil    string `json:"banUntil"`
	PenaltyType string `json:"penaltyType"`
}

type ratingPayload struct {
	Rating          float64 `json:"rating"`
	RatingDeviation float64 `json:"ratingDeviation"`
}

// banUntil arrives either as RFC3339 or as a zone-less local timestamp,
// which is read as UTC.
var banUntilLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"}

func (p profilePayload) toDomain() (club.Profile, error) {
	profile := club.Profile{
		ID:              p.ID,
		Name:            strings.TrimSpace(p.Name),
		Elo:             p.Elo,
		RatingDeviation: p.RatingDeviation,
		CaptainID:       p.CaptainID,
		PlayerIDs:       append([]int64(nil), p.Players...),
		Penalty:         club.PenaltyStatus{Type: club.PenaltyNone},
	}
	if p.PenaltyStatus == nil {
		return profile, nil
	}

	if kind := strings.ToUpper(strings.TrimSpace(p.PenaltyStatus.PenaltyType)); kind != "" {
		profile.Penalty.Type = club.PenaltyType(kind)
	}
	raw := strings.TrimSpace(p.PenaltyStatus.BanUntil)
	if raw == "" {
		return profile, nil
	}
	for _, layout := range banUntilLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			ts = ts.UTC()
			profile.Penalty.BanUntil = &ts
			return profile, nil
		}
	}
	return club.Profile{}, fmt.Errorf("parse banUntil %q for club %d", raw, p.ID)
}
