package board_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"qualiboard/internal/board"
)

func TestRedisNotifier_PublishesToChannel(t *testing.T) {
	// Arrange
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	notifier := board.NewRedisNotifier(client, "board:notifications", log)

	sub := client.Subscribe(context.Background(), "board:notifications")
	defer sub.Close()
	// Wait for the subscription to be established
	_, err := sub.Receive(context.Background())
	assert.NoError(t, err)

	// Act
	notifier.Publish(context.Background(), board.Notification{
		Type:    board.NoteSuccess,
		Title:   "Tarea creada",
		Message: "Fuga Hidráulica T1",
	})

	// Assert
	select {
	case msg := <-sub.Channel():
		var note board.Notification
		assert.NoError(t, json.Unmarshal([]byte(msg.Payload), &note))
		assert.Equal(t, board.NoteSuccess, note.Type)
		assert.Equal(t, "Tarea creada", note.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestRedisNotifier_NilClientFallsBackToLog(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	notifier := board.NewRedisNotifier(nil, "board:notifications", log)

	// Must not panic without a redis client
	notifier.Publish(context.Background(), board.Notification{
		Type:    board.NoteError,
		Title:   "Error",
		Message: "sin conexión",
	})
}
