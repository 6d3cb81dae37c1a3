// Package lottery implements the giveaway flow: a login state machine with an
// optional two-factor round-trip, bounded pagination over a post's comments,
// mention-threshold filtering, and the random winner draw.
//
// The two-step login is correlated by an opaque challenge token. StartDraw
// returns the token when the service demands a one-time code; the caller
// passes it back to CompleteChallenge along with the code. A stored challenge
// is consumed by its first completion attempt whatever the outcome.
package lottery
