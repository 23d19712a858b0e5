package db_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidshare/fixture-seeder/internal/config"
	"github.com/vidshare/fixture-seeder/internal/db"
	"github.com/vidshare/fixture-seeder/internal/schema"
)

func newSQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.DB.Driver = "sqlite"
	cfg.DB.DSN = config.SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	return cfg
}

func TestNewDB_SQLiteMigratesEveryModel(t *testing.T) {
	gdb, err := db.NewDB(newSQLiteConfig(t))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	for _, m := range db.Models() {
		assert.True(t, gdb.Migrator().HasTable(m), "table %s", m.TableName())
	}

	var fk int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestNewDB_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = "oracle"

	_, err := db.NewDB(cfg)
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestModelsCoverGraph(t *testing.T) {
	models := db.Models()
	require.Len(t, models, len(schema.Graph))

	for i, n := range schema.Graph {
		assert.Equal(t, n.Kind, models[i].Kind())

		m, ok := db.ModelFor(n.Kind)
		require.True(t, ok)
		assert.Equal(t, n.Kind, m.Kind())
	}

	_, ok := db.ModelFor("ghost")
	assert.False(t, ok)
}

// Refs must only point at kinds the graph declares as dependencies.
func TestRefsMatchGraph(t *testing.T) {
	samples := []db.Record{
		db.Login{UserID: 1},
		db.Avatar{UserID: 1},
		db.Video{UserID: 1, CategoryID: 1},
		db.Comment{UserID: 1, VideoID: 1},
		db.CommentLike{UserID: 1, CommentID: 1},
		db.CommentDislike{UserID: 1, CommentID: 1},
		db.VideoLike{UserID: 1, VideoID: 1},
		db.VideoDislike{UserID: 1, VideoID: 1},
		db.VideoHashtag{VideoID: 1, HashtagID: 1},
		db.Subscription{SubscriberID: 1, SubscribingID: 2},
	}
	for _, r := range samples {
		require.NotEmpty(t, r.Refs(), r.Kind())
		for _, ref := range r.Refs() {
			assert.True(t, schema.DependsOn(schema.Graph, r.Kind(), ref.Kind), "%s -> %s", r.Kind(), ref.Kind)
		}
	}

	assert.Equal(t, []schema.Ref{
		{Kind: schema.User, ID: 1},
		{Kind: schema.User, ID: 2},
	}, db.Subscription{SubscriberID: 1, SubscribingID: 2}.Refs())
}
