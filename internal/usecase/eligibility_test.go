package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	clubmock "github.com/riskibarqy/kickoff-tournaments/internal/mocks/domain/club"
	"github.com/stretchr/testify/mock"
)

func eligibilityTournament() tournament.Tournament {
	return tournament.Tournament{
		ID:            "t-1",
		MaxTeams:      4,
		MinRank:       1200,
		MaxRank:       1800,
		JoinedClubIDs: []int64{1, 2},
	}
}

func TestEligibilityChecker_CanJoinUsingMockery(t *testing.T) {
	t.Parallel()

	const clubID, captainID = int64(9), int64(90)

	tests := []struct {
		name    string
		mutate  func(*tournament.Tournament)
		setup   func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver)
		wantErr []error
	}{
		{
			name: "eligible captain joins",
			setup: func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
				ratings.On("GetClubProfile", mock.Anything, clubID).Return(club.Profile{ID: clubID, Elo: 1500}, nil).Once()
				ratings.On("VerifyNoPenalty", mock.Anything, clubID).Return(true, nil).Once()
			},
		},
		{
			name: "member cannot join",
			setup: func(_ *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleMember, nil).Once()
			},
			wantErr: []error{tournament.ErrInvalidJoinRole},
		},
		{
			name:   "already joined stops before rating lookup",
			mutate: func(t *tournament.Tournament) { t.JoinedClubIDs = append(t.JoinedClubIDs, clubID) },
			setup: func(_ *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
			},
			wantErr: []error{tournament.ErrClubAlreadyJoined},
		},
		{
			name:   "full tournament",
			mutate: func(t *tournament.Tournament) { t.MaxTeams = 2 },
			setup: func(_ *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
			},
			wantErr: []error{tournament.ErrTournamentFull},
		},
		{
			name: "elo below window",
			setup: func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
				ratings.On("GetClubProfile", mock.Anything, clubID).Return(club.Profile{ID: clubID, Elo: 1199}, nil).Once()
			},
			wantErr: []error{tournament.ErrClubEloTooLow},
		},
		{
			name: "elo above window",
			setup: func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
				ratings.On("GetClubProfile", mock.Anything, clubID).Return(club.Profile{ID: clubID, Elo: 1801}, nil).Once()
			},
			wantErr: []error{tournament.ErrClubEloTooHigh},
		},
		{
			name: "elo on window edge is accepted",
			setup: func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
				ratings.On("GetClubProfile", mock.Anything, clubID).Return(club.Profile{ID: clubID, Elo: 1800}, nil).Once()
				ratings.On("VerifyNoPenalty", mock.Anything, clubID).Return(true, nil).Once()
			},
		},
		{
			name: "penalized club",
			setup: func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
				ratings.On("GetClubProfile", mock.Anything, clubID).Return(club.Profile{ID: clubID, Elo: 1500}, nil).Once()
				ratings.On("VerifyNoPenalty", mock.Anything, clubID).Return(false, nil).Once()
			},
			wantErr: []error{tournament.ErrClubBlacklisted},
		},
		{
			name: "club service down",
			setup: func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
				ratings.On("GetClubProfile", mock.Anything, clubID).Return(club.Profile{}, club.ErrServiceUnavailable).Once()
			},
			wantErr: []error{tournament.ErrEligibilityCheckFailed, club.ErrServiceUnavailable},
		},
		{
			name: "penalty lookup fails",
			setup: func(ratings *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleCaptain, nil).Once()
				ratings.On("GetClubProfile", mock.Anything, clubID).Return(club.Profile{ID: clubID, Elo: 1500}, nil).Once()
				ratings.On("VerifyNoPenalty", mock.Anything, clubID).Return(false, club.ErrPenaltyVerificationFailed).Once()
			},
			wantErr: []error{tournament.ErrEligibilityCheckFailed, club.ErrPenaltyVerificationFailed},
		},
		{
			name: "role lookup fails",
			setup: func(_ *clubmock.RatingClient, roles *clubmock.RoleResolver) {
				roles.On("RoleOf", mock.Anything, captainID, clubID).Return(club.RoleNone, club.ErrProfileNotFound).Once()
			},
			wantErr: []error{tournament.ErrEligibilityCheckFailed, club.ErrProfileNotFound},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ratings := clubmock.NewRatingClient(t)
			roles := clubmock.NewRoleResolver(t)
			tc.setup(ratings, roles)

			tt := eligibilityTournament()
			if tc.mutate != nil {
				tc.mutate(&tt)
			}

			err := NewEligibilityChecker(ratings, roles).CanJoin(context.Background(), tt, clubID, captainID)
			if len(tc.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			for _, want := range tc.wantErr {
				if !errors.Is(err, want) {
					t.Fatalf("expected %v in chain, got %v", want, err)
				}
			}
		})
	}
}
