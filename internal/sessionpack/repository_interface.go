package sessionpack

import "context"

type Repository interface {
	Create(ctx context.Context, userID, totalCount, serviceCount int) (*SessionPack, error)
	ListForUser(ctx context.Context, userID int) ([]SessionPack, error)
	// ConsumeOldest marks one session used on the oldest pack that still has
	// sessions left and returns the updated pack.
	ConsumeOldest(ctx context.Context, userID int) (*SessionPack, error)
}
