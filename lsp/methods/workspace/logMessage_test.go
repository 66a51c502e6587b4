package workspace

import (
	"bytes"
	"testing"
	"time"

	"bennypowers.dev/lessls/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type sent struct {
	method string
	params any
}

func recorder() (*glsp.Context, <-chan sent) {
	ch := make(chan sent, 4)
	return &glsp.Context{
		Notify: func(method string, params any) {
			ch <- sent{method, params}
		},
	}, ch
}

func receive(t *testing.T, ch <-chan sent) sent {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		require.FailNow(t, "no notification sent")
		return sent{}
	}
}

func TestLogNilContext(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(nil) })

	LogError(nil, "test error: %s", "message")
	LogWarning(&glsp.Context{}, "test warning: %s", "message")
	ShowMessage(nil, protocol.MessageTypeInfo, "test message")

	assert.Equal(t, "[LESS] test error: message\n[LESS] test warning: message\n", buf.String())
}

func TestLogError(t *testing.T) {
	ctx, ch := recorder()
	LogError(ctx, "parse failed: %d", 3)

	s := receive(t, ch)
	assert.Equal(t, protocol.ServerWindowLogMessage, s.method)
	assert.Equal(t, &protocol.LogMessageParams{Type: protocol.MessageTypeError, Message: "parse failed: 3"}, s.params)
}

func TestLogWarning(t *testing.T) {
	ctx, ch := recorder()
	LogWarning(ctx, "careful")

	s := receive(t, ch)
	assert.Equal(t, &protocol.LogMessageParams{Type: protocol.MessageTypeWarning, Message: "careful"}, s.params)
}

func TestShowMessage(t *testing.T) {
	ctx, ch := recorder()
	ShowMessage(ctx, protocol.MessageTypeInfo, "indexed 3 files")

	s := receive(t, ch)
	assert.Equal(t, protocol.ServerWindowShowMessage, s.method)
	assert.Equal(t, &protocol.ShowMessageParams{Type: protocol.MessageTypeInfo, Message: "indexed 3 files"}, s.params)
}
