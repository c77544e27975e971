// Package errors provides coded errors for the horror-bot game core.
//
// Every layer returns *errors.Error values so callers can branch on a Code
// instead of matching strings:
//   - repositories return NotFound for missing rows and wrap driver errors
//   - orchestrators return InvalidArgument for bad input and
//     FailedPrecondition when a game is not in the right state
//   - the oracle client returns Unavailable or DeadlineExceeded, which the
//     orchestrators swallow and replace with fallback narration
//
// # Basic Usage
//
//	err := errors.NotFound("player not found").
//	    WithMeta("game_id", gameID).
//	    WithMeta("player_id", playerID)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load player")
//	}
//
//	if errors.IsNotFound(err) {
//	    // treat as nothing to do
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("game_id", input.GameID, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
