package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/newscatcher/internal/notify"
)

type fakePublisher struct {
	channel string
	payload []byte
	err     error
	sent    chan struct{}
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	if f.sent != nil {
		defer close(f.sent)
	}
	return redis.NewIntResult(1, f.err)
}

func TestClient_Publish(t *testing.T) {
	pub := &fakePublisher{}
	c := newClient(pub, nil, "")

	n := notify.New(notify.KindOffline, "connection refused")
	receivers, err := c.Publish(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, int64(1), receivers)
	assert.Equal(t, DefaultChannel, pub.channel)

	var got notify.Notification
	require.NoError(t, json.Unmarshal(pub.payload, &got))
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, notify.KindOffline, got.Kind)
}

func TestClient_PublishError(t *testing.T) {
	c := newClient(&fakePublisher{err: errors.New("READONLY")}, nil, "dash")

	_, err := c.Publish(context.Background(), notify.New(notify.KindRestored, ""))
	require.Error(t, err)
	assert.Equal(t, "dash", c.Channel())
}

func TestClient_NotifyIsAsync(t *testing.T) {
	pub := &fakePublisher{sent: make(chan struct{})}
	c := newClient(pub, nil, "dash")

	c.Notify(context.Background(), notify.New(notify.KindRestored, ""))

	select {
	case <-pub.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not published")
	}
	assert.Equal(t, "dash", pub.channel)
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{URL: "redis://localhost:6379/0"}.Enabled())
	assert.NoError(t, newClient(&fakePublisher{}, nil, "").Close())
}
