package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	off := New(KindOffline, "dial tcp: connection refused")
	assert.Equal(t, KindOffline, off.Kind)
	assert.Equal(t, MessageOffline, off.Message)
	assert.NotEmpty(t, off.ID)
	assert.False(t, off.At.IsZero())

	on := New(KindRestored, "")
	assert.Equal(t, MessageRestored, on.Message)
	assert.NotEqual(t, off.ID, on.ID)
}

func TestMulti_SkipsNil(t *testing.T) {
	var got []Kind
	rec := Func(func(_ context.Context, n Notification) { got = append(got, n.Kind) })

	Multi{rec, nil, rec}.Notify(context.Background(), New(KindRestored, ""))
	assert.Equal(t, []Kind{KindRestored, KindRestored}, got)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	NewLogNotifier(log).Notify(context.Background(), New(KindOffline, "timeout"))
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=offline")
	assert.Contains(t, out, "reason=timeout")
}
