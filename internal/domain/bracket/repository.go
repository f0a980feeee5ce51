package bracket

import "context"

// Repository persists whole bracket trees.
type Repository interface {
	// Create stores the tree and links it to its tournament in one step.
	// It fails with ErrBracketAlreadyCreated when the tournament has one.
	Create(ctx context.Context, b Bracket) error
	GetByID(ctx context.Context, bracketID string) (Bracket, bool, error)
	GetByTournament(ctx context.Context, tournamentID string) (Bracket, bool, error)
	// SaveProgression commits the touched matches when each stored version
	// still equals the loaded one, and closes the tournament when the
	// progression carries a final result.
	SaveProgression(ctx context.Context, b Bracket, p Progression) error
}
