package ports

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore
// implementation adheres to the interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	frac, _ := new(big.Int).SetString("18446743972252459210", 10)
	approx := &domain.SquareRootResult{
		IntegerPart:        big.NewInt(999999999),
		FractionalPart:     frac,
		FractionalBitWidth: 64,
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, approx), "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "999999999", loaded.IntegerPart.String())
		assert.Equal(t, "18446743972252459210", loaded.FractionalPart.String())
		assert.Equal(t, uint64(64), loaded.FractionalBitWidth)
		assert.False(t, loaded.IsPerfectSquare)
	})

	t.Run("Loaded values are independent", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, approx))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.IntegerPart.SetInt64(0)
		loaded.FractionalPart.SetInt64(0)

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "999999999", again.IntegerPart.String())
		assert.Equal(t, "18446743972252459210", again.FractionalPart.String())
	})

	t.Run("Perfect square", func(t *testing.T) {
		perfect := &domain.SquareRootResult{IntegerPart: big.NewInt(2), IsPerfectSquare: true}
		require.NoError(t, store.Save(ctx, key+"-perfect", perfect))
		defer func() { _ = store.Delete(ctx, key+"-perfect") }()

		loaded, err := store.Load(ctx, key+"-perfect")
		require.NoError(t, err)
		assert.True(t, loaded.IsPerfectSquare)
		assert.Nil(t, loaded.FractionalPart)
		assert.Equal(t, int64(2), loaded.IntegerPart.Int64())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, approx))

		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")

		assert.NoError(t, store.Delete(ctx, key), "deleting twice is fine")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		require.NoError(t, store.Save(ctx, k1, approx))
		require.NoError(t, store.Save(ctx, k2, approx))
		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})
}
