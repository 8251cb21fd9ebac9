//go:build integration

package sessionpack

import (
	"context"
	"sync"
	"testing"

	"ptslot/internal/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationConsumeOldestFirst(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	member := dbtest.CreateUser(t, conn, "member@example.com", "Member")
	older, err := repo.Create(ctx, member, 1, 1)
	require.NoError(t, err)
	newer, err := repo.Create(ctx, member, 1, 0)
	require.NoError(t, err)

	var used []int
	for i := 0; i < 3; i++ {
		p, err := repo.ConsumeOldest(ctx, member)
		require.NoError(t, err)
		used = append(used, p.ID)
	}
	assert.Equal(t, []int{older.ID, older.ID, newer.ID}, used)

	_, err = repo.ConsumeOldest(ctx, member)
	assert.ErrorIs(t, err, ErrNoRemainingSessions)
}

func TestIntegrationConcurrentCheckinsNeverOverdraw(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	member := dbtest.CreateUser(t, conn, "member@example.com", "Member")
	_, err := repo.Create(ctx, member, 3, 0)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		consumed int
		empty    int
	)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ConsumeOldest(ctx, member)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				consumed++
			} else if assert.ErrorIs(t, err, ErrNoRemainingSessions) {
				empty++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, consumed)
	assert.Equal(t, 3, empty)

	packs, err := repo.ListForUser(ctx, member)
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, 3, packs[0].UsedCount)
}

func TestIntegrationConcurrentCheckinsFallThroughToNewerPack(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	member := dbtest.CreateUser(t, conn, "member@example.com", "Member")
	older, err := repo.Create(ctx, member, 1, 0)
	require.NoError(t, err)
	newer, err := repo.Create(ctx, member, 4, 0)
	require.NoError(t, err)

	errs := make(chan error, 4)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.ConsumeOldest(ctx, member)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	packs, err := repo.ListForUser(ctx, member)
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, older.ID, packs[0].ID)
	assert.Equal(t, 1, packs[0].UsedCount)
	assert.Equal(t, newer.ID, packs[1].ID)
	assert.Equal(t, 3, packs[1].UsedCount)
}
