//go:build integration

package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ptslot/internal/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationConcurrentBookingsOneWinner(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	const members = 8
	ids := make([]int, members)
	for i := range ids {
		ids[i] = dbtest.CreateUser(t, conn, "member"+string(rune('a'+i))+"@example.com", "member")
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		won     int
		taken   int
		unknown []error
	)
	start := make(chan struct{})
	for _, id := range ids {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			<-start
			_, err := repo.CreateBooking(ctx, userID, "2030-01-07", "10:00")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case errors.Is(err, ErrSlotTaken):
				taken++
			default:
				unknown = append(unknown, err)
			}
		}(id)
	}
	close(start)
	wg.Wait()

	require.Empty(t, unknown)
	assert.Equal(t, 1, won)
	assert.Equal(t, members-1, taken)
}

func TestIntegrationCancelledSlotCanBeRebooked(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	first := dbtest.CreateUser(t, conn, "first@example.com", "First")
	second := dbtest.CreateUser(t, conn, "second@example.com", "Second")

	b, err := repo.CreateBooking(ctx, first, "2030-01-07", "14:00")
	require.NoError(t, err)
	require.NoError(t, repo.CancelBooking(ctx, b.ID))

	times, err := repo.GetBookingTimesForDate(ctx, "2030-01-07")
	require.NoError(t, err)
	assert.Empty(t, times)

	_, err = repo.CreateBooking(ctx, second, "2030-01-07", "14:00")
	require.NoError(t, err)

	rows, err := repo.GetBookingsByDate(ctx, "2030-01-07")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, StatusCancelled, rows[0].Status)
	assert.Equal(t, "Second", rows[1].UserName)
}
