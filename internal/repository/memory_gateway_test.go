package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidshare/fixture-seeder/internal/db"
	seedErr "github.com/vidshare/fixture-seeder/internal/errors"
	"github.com/vidshare/fixture-seeder/internal/repository"
	"github.com/vidshare/fixture-seeder/internal/schema"
	"github.com/vidshare/fixture-seeder/internal/seed"
)

func seedUserAndVideo(t *testing.T, gw seed.Gateway) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, gw.Create(ctx, &db.User{ID: 1, Username: "u1", Email: "u1@test.com", Password: "x", Gender: "M"}))
	require.NoError(t, gw.Create(ctx, &db.Category{ID: 1, Name: "Football"}))
	require.NoError(t, gw.Create(ctx, &db.Video{ID: 1, Title: "v", UserID: 1, CategoryID: 1}))
}

func TestMemoryGateway_CreateRequiresParents(t *testing.T) {
	ctx := context.Background()
	gw := repository.NewMemoryGateway()

	err := gw.Create(ctx, &db.Login{ID: 1, Status: "success", UserID: 1})
	require.ErrorIs(t, err, seedErr.ErrForeignKey)
	assert.Contains(t, err.Error(), "user#1")
	assert.Zero(t, gw.Count(schema.Login))

	seedUserAndVideo(t, gw)
	assert.NoError(t, gw.Create(ctx, &db.Login{ID: 1, Status: "success", UserID: 1}))
}

func TestMemoryGateway_DuplicateID(t *testing.T) {
	ctx := context.Background()
	gw := repository.NewMemoryGateway()

	require.NoError(t, gw.Create(ctx, &db.Hashtag{ID: 1, Name: "a"}))
	err := gw.Create(ctx, &db.Hashtag{ID: 1, Name: "b"})
	assert.ErrorIs(t, err, seedErr.ErrDuplicateKey)
}

func TestMemoryGateway_DeleteParentWithChildrenFails(t *testing.T) {
	ctx := context.Background()
	gw := repository.NewMemoryGateway()
	seedUserAndVideo(t, gw)

	err := gw.DeleteAll(ctx, schema.User)
	require.ErrorIs(t, err, seedErr.ErrForeignKey)
	assert.Equal(t, 1, gw.Count(schema.User))

	require.NoError(t, gw.DeleteAll(ctx, schema.Video))
	require.NoError(t, gw.DeleteAll(ctx, schema.User))
	require.NoError(t, gw.DeleteAll(ctx, schema.Category))
	assert.Zero(t, gw.Count(schema.User))
}

func TestMemoryGateway_DeleteAllEmptyIsNoop(t *testing.T) {
	gw := repository.NewMemoryGateway()
	assert.NoError(t, gw.DeleteAll(context.Background(), schema.CommentDislike))
}

func TestMemoryGateway_StoresCopies(t *testing.T) {
	ctx := context.Background()
	gw := repository.NewMemoryGateway()

	c := &db.Category{ID: 1, Name: "Football"}
	require.NoError(t, gw.Create(ctx, c))
	c.Name = "changed"

	got, ok := gw.Get(schema.Category, 1)
	require.True(t, ok)
	assert.Equal(t, "Football", got.(*db.Category).Name)

	_, ok = gw.Get(schema.Category, 2)
	assert.False(t, ok)
}

func TestMemoryGateway_AllOrderedByID(t *testing.T) {
	ctx := context.Background()
	gw := repository.NewMemoryGateway()
	for _, id := range []uint64{3, 1, 2} {
		require.NoError(t, gw.Create(ctx, &db.Hashtag{ID: id}))
	}

	var ids []uint64
	for _, r := range gw.All(schema.Hashtag) {
		ids = append(ids, r.Key())
	}
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestMemoryGateway_InTxRollsBack(t *testing.T) {
	ctx := context.Background()
	gw := repository.NewMemoryGateway()
	seedUserAndVideo(t, gw)

	boom := errors.New("boom")
	err := gw.InTx(ctx, func(tx seed.Gateway) error {
		require.NoError(t, tx.DeleteAll(ctx, schema.Video))
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, gw.Count(schema.Video))

	require.NoError(t, gw.InTx(ctx, func(tx seed.Gateway) error {
		return tx.DeleteAll(ctx, schema.Video)
	}))
	assert.Zero(t, gw.Count(schema.Video))
}

func TestMemoryGateway_FailCreateAndOps(t *testing.T) {
	ctx := context.Background()
	gw := repository.NewMemoryGateway()

	boom := errors.New("disk full")
	gw.FailCreate(schema.Category, 2, boom)

	require.NoError(t, gw.Create(ctx, &db.Category{ID: 1, Name: "a"}))
	require.ErrorIs(t, gw.Create(ctx, &db.Category{ID: 2, Name: "b"}), boom)
	require.NoError(t, gw.Create(ctx, &db.Category{ID: 2, Name: "b"}), "failure fires once")
	require.NoError(t, gw.DeleteAll(ctx, schema.Hashtag))

	assert.Equal(t, []repository.Op{
		{Action: "create", Kind: schema.Category, ID: 1},
		{Action: "create", Kind: schema.Category, ID: 2},
		{Action: "create", Kind: schema.Category, ID: 2},
		{Action: "delete_all", Kind: schema.Hashtag},
	}, gw.Ops())

	gw.ResetOps()
	assert.Empty(t, gw.Ops())
}
