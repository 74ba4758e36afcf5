package services

// Point awards. Posting credits the author, liking credits the liker, and
// commenting credits the commenter. Unlike removes the like itself but never
// claws the point back, and synthetic ai-* identities are never credited.
const (
	PointsPerPost    = 10
	PointsPerLike    = 1
	PointsPerComment = 2
)

// SyntheticProfilePoints is the fixed total shown for synthetic authors,
// which have no users row to accumulate points in.
const SyntheticProfilePoints = 150
