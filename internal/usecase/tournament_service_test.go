package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/club"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/repository/memory"
)

const hostID = int64(1)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) NewID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%04d", s.n), nil
}

// fakeEligibility rejects the clubs listed in deny and accepts everyone else.
type fakeEligibility struct {
	deny map[int64]error
}

func (f fakeEligibility) CanJoin(_ context.Context, t tournament.Tournament, clubID, _ int64) error {
	if err, ok := f.deny[clubID]; ok {
		return err
	}
	if t.HasClub(clubID) {
		return tournament.ErrClubAlreadyJoined
	}
	if t.Full() {
		return tournament.ErrTournamentFull
	}
	return nil
}

// captainRoles makes user id clubID*10 the captain and clubID*10+1 a member.
type captainRoles struct{}

func (captainRoles) RoleOf(_ context.Context, userID, clubID int64) (club.Role, error) {
	switch userID {
	case clubID * 10:
		return club.RoleCaptain, nil
	case clubID*10 + 1:
		return club.RoleMember, nil
	default:
		return club.RoleNone, nil
	}
}

type recordingRatings struct {
	mu     sync.Mutex
	finals []bracket.FinalResult
}

func (r *recordingRatings) UpdateFinalists(_ context.Context, _ string, final bracket.FinalResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finals = append(r.finals, final)
}

type serviceFixture struct {
	svc     *TournamentService
	ratings *recordingRatings
	now     time.Time
}

func newServiceFixture(t *testing.T, deny map[int64]error) serviceFixture {
	t.Helper()
	store := memory.NewStore()
	ratings := &recordingRatings{}
	svc := NewTournamentService(TournamentDependencies{
		Tournaments:  memory.NewTournamentRepository(store),
		Brackets:     memory.NewBracketRepository(store),
		Availability: memory.NewAvailabilityRepository(store),
		Eligibility:  fakeEligibility{deny: deny},
		Roles:        captainRoles{},
		Ratings:      ratings,
		IDGen:        &sequenceIDs{},
	})
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return serviceFixture{svc: svc, ratings: ratings, now: now}
}

func (f serviceFixture) createTournament(t *testing.T, knockout bracket.Format, maxTeams int) tournament.Tournament {
	t.Helper()
	created, err := f.svc.CreateTournament(context.Background(), CreateTournamentInput{
		HostID:         hostID,
		Name:           "Sunday Cup",
		StartAt:        f.now.Add(24 * time.Hour),
		EndAt:          f.now.Add(30 * time.Hour),
		LocationID:     "pitch-7",
		MaxTeams:       maxTeams,
		Format:         tournament.FormatFiveSide,
		KnockoutFormat: knockout,
		MinRank:        0,
		MaxRank:        3000,
		PrizePool:      []float64{500, 200},
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return created
}

func (f serviceFixture) join(t *testing.T, tournamentID string, clubIDs ...int64) {
	t.Helper()
	for _, clubID := range clubIDs {
		if _, err := f.svc.JoinTournament(context.Background(), MembershipInput{TournamentID: tournamentID, ClubID: clubID, RequesterID: clubID * 10}); err != nil {
			t.Fatalf("join club %d: %v", clubID, err)
		}
	}
}

func playable(b bracket.Bracket) (bracket.Match, bool) {
	for _, m := range b.Matches() {
		if !m.IsOver && m.Club1ID != nil && m.Club2ID != nil {
			return m, true
		}
	}
	return bracket.Match{}, false
}

func TestTournamentService_CreateTournamentDefaults(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	created := f.createTournament(t, bracket.FormatSingleElimination, 8)

	if created.VerificationStatus != tournament.VerificationAwaitingPayment {
		t.Fatalf("new tournaments await payment, got %s", created.VerificationStatus)
	}
	if created.HostID != hostID || created.HasBracket() || created.IsOver {
		t.Fatalf("unexpected new tournament %+v", created)
	}

	_, err := f.svc.CreateTournament(context.Background(), CreateTournamentInput{HostID: hostID, Name: "x", MaxTeams: 1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTournamentService_JoinKeepsOrderAndRejectsIneligible(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, map[int64]error{
		7: tournament.ErrClubBlacklisted,
		8: fmt.Errorf("%w: %w", tournament.ErrEligibilityCheckFailed, club.ErrServiceUnavailable),
	})
	tt := f.createTournament(t, bracket.FormatSingleElimination, 3)
	ctx := context.Background()

	f.join(t, tt.ID, 5, 3)

	_, err := f.svc.JoinTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 7, RequesterID: 70})
	if !errors.Is(err, tournament.ErrClubBlacklisted) {
		t.Fatalf("expected ErrClubBlacklisted, got %v", err)
	}

	_, err = f.svc.JoinTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 8, RequesterID: 80})
	if !errors.Is(err, tournament.ErrEligibilityCheckFailed) || !errors.Is(err, club.ErrServiceUnavailable) {
		t.Fatalf("expected ErrEligibilityCheckFailed from club service, got %v", err)
	}
	unchanged, err := f.svc.GetTournament(ctx, tt.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if fmt.Sprint(unchanged.JoinedClubIDs) != "[5 3]" || unchanged.Version != tt.Version+2 {
		t.Fatalf("failed eligibility check must not change the roster: %+v", unchanged)
	}

	f.join(t, tt.ID, 9)
	_, err = f.svc.JoinTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 4, RequesterID: 40})
	if !errors.Is(err, tournament.ErrTournamentFull) {
		t.Fatalf("expected ErrTournamentFull, got %v", err)
	}

	clubs, err := f.svc.ListClubs(ctx, tt.ID)
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	if fmt.Sprint(clubs) != "[5 3 9]" {
		t.Fatalf("join order not preserved: %v", clubs)
	}
}

func TestTournamentService_LeaveTournament(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 8)
	ctx := context.Background()
	f.join(t, tt.ID, 2, 4, 6)

	_, err := f.svc.LeaveTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 4, RequesterID: 41})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("members cannot remove their club, got %v", err)
	}

	updated, err := f.svc.LeaveTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 4, RequesterID: 40})
	if err != nil {
		t.Fatalf("captain leave: %v", err)
	}
	if fmt.Sprint(updated.JoinedClubIDs) != "[2 6]" {
		t.Fatalf("remaining order changed: %v", updated.JoinedClubIDs)
	}

	_, err = f.svc.LeaveTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 4, RequesterID: hostID})
	if !errors.Is(err, tournament.ErrClubNotJoined) {
		t.Fatalf("expected ErrClubNotJoined, got %v", err)
	}

	if _, err := f.svc.CreateBracket(ctx, tt.ID, hostID); err != nil {
		t.Fatalf("create bracket: %v", err)
	}
	_, err = f.svc.LeaveTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 2, RequesterID: hostID})
	if !errors.Is(err, tournament.ErrBracketLocked) {
		t.Fatalf("expected ErrBracketLocked after the draw, got %v", err)
	}
}

func TestTournamentService_CreateBracketGuards(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatDoubleElimination, 8)
	ctx := context.Background()

	f.join(t, tt.ID, 11)
	if _, err := f.svc.CreateBracket(ctx, tt.ID, hostID); !errors.Is(err, bracket.ErrInsufficientMatches) {
		t.Fatalf("expected ErrInsufficientMatches, got %v", err)
	}

	f.join(t, tt.ID, 12, 13)
	if _, err := f.svc.CreateBracket(ctx, tt.ID, 99); !errors.Is(err, tournament.ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}

	b, err := f.svc.CreateBracket(ctx, tt.ID, hostID)
	if err != nil {
		t.Fatalf("create bracket: %v", err)
	}
	if b.Format != bracket.FormatDoubleElimination || b.TournamentID != tt.ID {
		t.Fatalf("unexpected bracket %+v", b)
	}

	if _, err := f.svc.CreateBracket(ctx, tt.ID, hostID); !errors.Is(err, bracket.ErrBracketAlreadyCreated) {
		t.Fatalf("expected ErrBracketAlreadyCreated, got %v", err)
	}
	_, err = f.svc.JoinTournament(ctx, MembershipInput{TournamentID: tt.ID, ClubID: 14, RequesterID: 140})
	if !errors.Is(err, tournament.ErrBracketLocked) {
		t.Fatalf("expected joining to close after the draw, got %v", err)
	}

	got, err := f.svc.GetBracket(ctx, tt.ID)
	if err != nil {
		t.Fatalf("get bracket: %v", err)
	}
	if got.ID != b.ID {
		t.Fatalf("stored bracket differs")
	}
}

func TestTournamentService_PlaysFiveClubCupToTheEnd(t *testing.T) {
	t.Parallel()
	for _, format := range []bracket.Format{bracket.FormatSingleElimination, bracket.FormatDoubleElimination} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			f := newServiceFixture(t, nil)
			tt := f.createTournament(t, format, 8)
			ctx := context.Background()
			f.join(t, tt.ID, 1, 2, 3, 4, 5)

			b, err := f.svc.CreateBracket(ctx, tt.ID, hostID)
			if err != nil {
				t.Fatalf("create bracket: %v", err)
			}

			first, _ := playable(b)
			if _, err := f.svc.ReportMatchResult(ctx, ReportMatchResultInput{
				TournamentID: tt.ID, MatchID: first.ID, RequesterID: 40, WinningClubID: *first.Club1ID,
			}); !errors.Is(err, tournament.ErrNotHost) {
				t.Fatalf("only the host reports results, got %v", err)
			}

			var last MatchReport
			for i := 0; !b.Decided(); i++ {
				if i > 20 {
					t.Fatalf("cup did not finish")
				}
				m, ok := playable(b)
				if !ok {
					t.Fatalf("no playable match left")
				}
				last, err = f.svc.ReportMatchResult(ctx, ReportMatchResultInput{
					TournamentID:  tt.ID,
					MatchID:       m.ID,
					RequesterID:   hostID,
					Club1Score:    2,
					Club2Score:    1,
					WinningClubID: *m.Club1ID,
				})
				if err != nil {
					t.Fatalf("report %s: %v", m.ID, err)
				}
				b = last.Bracket
			}

			if last.Progression.Final == nil {
				t.Fatalf("last report should carry the final result")
			}
			if len(f.ratings.finals) != 1 || f.ratings.finals[0].WinnerID != *b.WinningClubID {
				t.Fatalf("expected exactly one rating update round for the finalists, got %+v", f.ratings.finals)
			}

			over, err := f.svc.GetTournament(ctx, tt.ID)
			if err != nil {
				t.Fatalf("get tournament: %v", err)
			}
			if !over.IsOver {
				t.Fatalf("tournament should be over")
			}

			_, err = f.svc.ReportMatchResult(ctx, ReportMatchResultInput{
				TournamentID: tt.ID, MatchID: first.ID, RequesterID: hostID, WinningClubID: *first.Club1ID,
			})
			if !errors.Is(err, tournament.ErrTournamentOver) {
				t.Fatalf("expected ErrTournamentOver, got %v", err)
			}
			_, err = f.svc.UpdateTournament(ctx, UpdateTournamentInput{TournamentID: tt.ID, RequesterID: hostID})
			if !errors.Is(err, tournament.ErrTournamentOver) {
				t.Fatalf("expected ErrTournamentOver on update, got %v", err)
			}
			_, err = f.svc.MarkPaymentCompleted(ctx, tt.ID, hostID)
			if !errors.Is(err, tournament.ErrTournamentOver) {
				t.Fatalf("expected ErrTournamentOver on verification move, got %v", err)
			}
			if _, err := f.svc.ApproveVerification(ctx, tt.ID); !errors.Is(err, tournament.ErrTournamentOver) {
				t.Fatalf("expected ErrTournamentOver on approval, got %v", err)
			}
			if err := f.svc.DeleteTournament(ctx, tt.ID, hostID); !errors.Is(err, tournament.ErrTournamentOver) {
				t.Fatalf("expected ErrTournamentOver on delete, got %v", err)
			}
			if _, err := f.svc.GetTournament(ctx, tt.ID); err != nil {
				t.Fatalf("completed tournament must survive: %v", err)
			}
		})
	}
}

func TestTournamentService_ReportMatchResultRejectsBadReports(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 8)
	ctx := context.Background()
	f.join(t, tt.ID, 1, 2, 3)

	_, err := f.svc.ReportMatchResult(ctx, ReportMatchResultInput{TournamentID: tt.ID, MatchID: "m", RequesterID: hostID, WinningClubID: 1})
	if !errors.Is(err, tournament.ErrBracketNotCreated) {
		t.Fatalf("expected ErrBracketNotCreated, got %v", err)
	}

	b, err := f.svc.CreateBracket(ctx, tt.ID, hostID)
	if err != nil {
		t.Fatalf("create bracket: %v", err)
	}
	bye := b.Rounds[0].Matches[0]
	live := b.Rounds[0].Matches[1]

	tests := []struct {
		name    string
		input   ReportMatchResultInput
		wantErr error
	}{
		{name: "bye", input: ReportMatchResultInput{MatchID: bye.ID, WinningClubID: 1}, wantErr: bracket.ErrMatchAutoResolved},
		{name: "unknown", input: ReportMatchResultInput{MatchID: "nope", WinningClubID: 1}, wantErr: bracket.ErrMatchNotFound},
		{name: "outsider", input: ReportMatchResultInput{MatchID: live.ID, WinningClubID: 1}, wantErr: bracket.ErrInvalidWinningClub},
		{name: "negative", input: ReportMatchResultInput{MatchID: live.ID, WinningClubID: 2, Club1Score: -2}, wantErr: bracket.ErrInvalidScore},
	}
	for _, tc := range tests {
		tc.input.TournamentID = tt.ID
		tc.input.RequesterID = hostID
		if _, err := f.svc.ReportMatchResult(ctx, tc.input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	unchanged, _ := f.svc.GetBracket(ctx, tt.ID)
	m, _ := unchanged.Match(live.ID)
	if m.IsOver {
		t.Fatalf("rejected reports must not change the bracket")
	}

	if _, err := f.svc.ReportMatchResult(ctx, ReportMatchResultInput{TournamentID: tt.ID, MatchID: live.ID, RequesterID: hostID, WinningClubID: 2}); err != nil {
		t.Fatalf("report: %v", err)
	}
	_, err = f.svc.ReportMatchResult(ctx, ReportMatchResultInput{TournamentID: tt.ID, MatchID: live.ID, RequesterID: hostID, WinningClubID: 3})
	if !errors.Is(err, bracket.ErrMatchAlreadyFinalized) {
		t.Fatalf("expected ErrMatchAlreadyFinalized, got %v", err)
	}
}

func TestTournamentService_ConcurrentReportsOnSameMatch(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 8)
	ctx := context.Background()
	f.join(t, tt.ID, 1, 2, 3, 4)

	b, err := f.svc.CreateBracket(ctx, tt.ID, hostID)
	if err != nil {
		t.Fatalf("create bracket: %v", err)
	}
	m := b.Rounds[0].Matches[0]

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, winner := range []int64{*m.Club1ID, *m.Club2ID} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ReportMatchResult(ctx, ReportMatchResultInput{TournamentID: tt.ID, MatchID: m.ID, RequesterID: hostID, WinningClubID: winner})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok, finalized := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, bracket.ErrMatchAlreadyFinalized):
			finalized++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || finalized != 1 {
		t.Fatalf("expected one success and one rejection, got ok=%d finalized=%d", ok, finalized)
	}
}

func TestTournamentService_UpdateTournament(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 4)
	ctx := context.Background()
	f.join(t, tt.ID, 1, 2, 3)

	two := 2
	if _, err := f.svc.UpdateTournament(ctx, UpdateTournamentInput{TournamentID: tt.ID, RequesterID: hostID, MaxTeams: &two}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("cannot shrink below joined clubs, got %v", err)
	}

	name := "Monday Cup"
	updated, err := f.svc.UpdateTournament(ctx, UpdateTournamentInput{TournamentID: tt.ID, RequesterID: hostID, Name: &name})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Name != name || len(updated.JoinedClubIDs) != 3 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := f.svc.UpdateTournament(ctx, UpdateTournamentInput{TournamentID: tt.ID, RequesterID: 2, Name: &name}); !errors.Is(err, tournament.ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}

	if _, err := f.svc.CreateBracket(ctx, tt.ID, hostID); err != nil {
		t.Fatalf("create bracket: %v", err)
	}
	knockout := bracket.FormatDoubleElimination
	if _, err := f.svc.UpdateTournament(ctx, UpdateTournamentInput{TournamentID: tt.ID, RequesterID: hostID, KnockoutFormat: &knockout}); !errors.Is(err, tournament.ErrBracketLocked) {
		t.Fatalf("expected ErrBracketLocked, got %v", err)
	}
}

func TestTournamentService_DeleteTournament(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 4)
	ctx := context.Background()

	if err := f.svc.DeleteTournament(ctx, tt.ID, 2); !errors.Is(err, tournament.ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if err := f.svc.DeleteTournament(ctx, tt.ID, hostID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.GetTournament(ctx, tt.ID); !errors.Is(err, tournament.ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestTournamentService_VerificationWorkflow(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 4)
	ctx := context.Background()

	if _, err := f.svc.SubmitVerification(ctx, tt.ID, hostID, "https://cdn.example.com/proof.png"); !errors.Is(err, tournament.ErrInvalidVerificationTransition) {
		t.Fatalf("cannot submit before payment, got %v", err)
	}
	if _, err := f.svc.MarkPaymentCompleted(ctx, tt.ID, 2); !errors.Is(err, tournament.ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if _, err := f.svc.MarkPaymentCompleted(ctx, tt.ID, hostID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if _, err := f.svc.SubmitVerification(ctx, tt.ID, hostID, "not a url"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad url, got %v", err)
	}
	pending, err := f.svc.SubmitVerification(ctx, tt.ID, hostID, "https://cdn.example.com/proof.png")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if pending.VerificationStatus != tournament.VerificationPending || pending.VerificationImageURL == "" {
		t.Fatalf("unexpected pending tournament %+v", pending)
	}

	listed, err := f.svc.ListByVerificationStatus(ctx, tournament.VerificationPending)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one pending tournament, got %d (%v)", len(listed), err)
	}

	approved, err := f.svc.ApproveVerification(ctx, tt.ID)
	if err != nil || approved.VerificationStatus != tournament.VerificationApproved {
		t.Fatalf("approve: %+v %v", approved, err)
	}
	if _, err := f.svc.RejectVerification(ctx, tt.ID); !errors.Is(err, tournament.ErrInvalidVerificationTransition) {
		t.Fatalf("approved tournaments cannot be rejected, got %v", err)
	}
}

func TestTournamentService_PlayerAvailability(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 4)
	ctx := context.Background()
	f.join(t, tt.ID, 3)

	if _, err := f.svc.UpdatePlayerAvailability(ctx, UpdatePlayerAvailabilityInput{TournamentID: tt.ID, PlayerID: 31, RequesterID: 31}); !errors.Is(err, tournament.ErrNoClubIndicated) {
		t.Fatalf("expected ErrNoClubIndicated, got %v", err)
	}
	if _, err := f.svc.UpdatePlayerAvailability(ctx, UpdatePlayerAvailabilityInput{TournamentID: tt.ID, ClubID: 4, PlayerID: 41, RequesterID: 41}); !errors.Is(err, tournament.ErrClubNotJoined) {
		t.Fatalf("expected ErrClubNotJoined, got %v", err)
	}
	if _, err := f.svc.UpdatePlayerAvailability(ctx, UpdatePlayerAvailabilityInput{TournamentID: tt.ID, ClubID: 3, PlayerID: 99, RequesterID: 31}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("members only set their own availability, got %v", err)
	}

	if _, err := f.svc.UpdatePlayerAvailability(ctx, UpdatePlayerAvailabilityInput{TournamentID: tt.ID, ClubID: 3, PlayerID: 31, RequesterID: 31, Available: true}); err != nil {
		t.Fatalf("member sets own availability: %v", err)
	}
	if _, err := f.svc.UpdatePlayerAvailability(ctx, UpdatePlayerAvailabilityInput{TournamentID: tt.ID, ClubID: 3, PlayerID: 35, RequesterID: 30}); err != nil {
		t.Fatalf("captain sets player availability: %v", err)
	}

	items, err := f.svc.ListPlayerAvailability(ctx, tt.ID, 3)
	if err != nil {
		t.Fatalf("list availability: %v", err)
	}
	if len(items) != 2 || !items[0].Available || items[1].Available {
		t.Fatalf("unexpected availability %+v", items)
	}

	overview, err := f.svc.GetTournamentOverview(ctx, tt.ID)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Tournament.ID != tt.ID || overview.Bracket != nil || len(overview.Availability) != 2 {
		t.Fatalf("unexpected overview %+v", overview)
	}
	if _, err := f.svc.GetTournamentOverview(ctx, "missing"); !errors.Is(err, tournament.ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestTournamentService_ListTournamentsForClub(t *testing.T) {
	t.Parallel()
	f := newServiceFixture(t, nil)
	tt := f.createTournament(t, bracket.FormatSingleElimination, 4)
	ctx := context.Background()
	f.join(t, tt.ID, 8)

	upcoming, err := f.svc.ListTournamentsForClub(ctx, 8, tournament.TimelineUpcoming)
	if err != nil || len(upcoming) != 1 {
		t.Fatalf("expected the tournament to be upcoming, got %d (%v)", len(upcoming), err)
	}
	current, _ := f.svc.ListTournamentsForClub(ctx, 8, tournament.TimelineCurrent)
	if len(current) != 0 {
		t.Fatalf("tournament has not started yet")
	}
	other, _ := f.svc.ListTournamentsForClub(ctx, 9, tournament.TimelineUpcoming)
	if len(other) != 0 {
		t.Fatalf("club 9 never joined")
	}
	if _, err := f.svc.ListTournamentsForClub(ctx, 8, "SOON"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown timeline, got %v", err)
	}

	hosted, err := f.svc.ListHostedTournaments(ctx, hostID)
	if err != nil || len(hosted) != 1 {
		t.Fatalf("expected one hosted tournament, got %d (%v)", len(hosted), err)
	}
	isHost, err := f.svc.IsHost(ctx, tt.ID, hostID)
	if err != nil || !isHost {
		t.Fatalf("expected host check to pass: %v", err)
	}
}
