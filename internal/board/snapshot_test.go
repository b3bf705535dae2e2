package board_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"qualiboard/internal/board"
	"qualiboard/internal/model"
)

func TestSnapshotCache_StoreFetchEvict(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := board.NewSnapshotCache(client, time.Minute)
	colID := uuid.New()
	state := &board.State{
		Board:   model.Board{ID: uuid.New(), Type: model.BoardTypeMaintenance},
		Columns: []model.Column{{ID: colID, Title: "Pendiente"}},
		Tasks: map[uuid.UUID][]model.Task{
			colID: {{ID: uuid.New(), ColumnID: colID, Title: "Fuga"}},
		},
	}

	// Miss before store
	_, ok := cache.Fetch(context.Background(), model.BoardTypeMaintenance)
	assert.False(t, ok)

	cache.Store(context.Background(), model.BoardTypeMaintenance, state)

	got, ok := cache.Fetch(context.Background(), model.BoardTypeMaintenance)
	assert.True(t, ok)
	assert.Equal(t, state.Board.ID, got.Board.ID)
	assert.Len(t, got.Tasks[colID], 1)
	assert.Equal(t, "Fuga", got.Tasks[colID][0].Title)

	cache.Evict(context.Background(), model.BoardTypeMaintenance)
	_, ok = cache.Fetch(context.Background(), model.BoardTypeMaintenance)
	assert.False(t, ok)
}

func TestSnapshotCache_CorruptPayloadIsDropped(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := board.NewSnapshotCache(client, time.Minute)
	mr.Set("board:snapshot:maintenance", "{not json")

	_, ok := cache.Fetch(context.Background(), "maintenance")
	assert.False(t, ok)
	// The bad key was deleted on read
	assert.False(t, mr.Exists("board:snapshot:maintenance"))
}

func TestSnapshotCache_NilClientIsSilent(t *testing.T) {
	cache := board.NewSnapshotCache(nil, time.Minute)

	cache.Store(context.Background(), "maintenance", &board.State{})
	_, ok := cache.Fetch(context.Background(), "maintenance")
	assert.False(t, ok)
	cache.Evict(context.Background(), "maintenance")
}
