package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenSim_Go/internal/domain"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded, "no prior save")

	state := domain.NewGameState()
	state.Inventory.Add("Carrot", 2)
	require.NoError(t, repo.Save(ctx, state))

	state.Inventory.Add("Carrot", 5)
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 2, loaded.Inventory.Count("Carrot"), "save stores a copy")

	loaded.Coins = 0
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(domain.StartingCoins), again.Coins, "load returns a copy")
	assert.Equal(t, 1, repo.Saves())
}

func TestMemory_FailSaves(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	boom := errors.New("disk full")

	repo.FailSaves(boom)
	assert.ErrorIs(t, repo.Save(ctx, domain.NewGameState()), boom)
	assert.Equal(t, 0, repo.Saves())

	repo.FailSaves(nil)
	assert.NoError(t, repo.Save(ctx, domain.NewGameState()))
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemory()
	assert.ErrorIs(t, repo.Save(ctx, domain.NewGameState()), context.Canceled)
	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeTx struct {
	rollbackErr error
	rolledBack  bool
}

func (f *fakeTx) Commit(context.Context) error { return nil }

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return f.rollbackErr
}

func TestSafeRollbackAlwaysRollsBack(t *testing.T) {
	for _, rollbackErr := range []error{nil, errors.New(ErrMsgTxClosed), errors.New("connection reset")} {
		tx := &fakeTx{rollbackErr: rollbackErr}
		SafeRollback(context.Background(), tx)
		assert.True(t, tx.rolledBack)
	}
}
