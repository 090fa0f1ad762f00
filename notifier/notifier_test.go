package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfeed/logger"
)

type recordingTransport struct {
	sent []Message
	err  error
}

func (r *recordingTransport) Name() string { return "recording" }

func (r *recordingTransport) Deliver(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func TestSendFillsAddresses(t *testing.T) {
	tr := &recordingTransport{}
	n := New(tr, "me@example.com", "", logger.NewNop())

	ok := n.Send(context.Background(), Message{Subject: "s", HTML: "<p>h</p>", Text: "t"})

	require.True(t, ok)
	require.Len(t, tr.sent, 1)
	assert.Equal(t, "me@example.com", tr.sent[0].To)
	assert.Equal(t, "me@example.com", tr.sent[0].From)
}

func TestSendUsesConfiguredSender(t *testing.T) {
	tr := &recordingTransport{}
	n := New(tr, "me@example.com", "bot@example.com", logger.NewNop())

	require.True(t, n.Send(context.Background(), Message{Subject: "s"}))
	assert.Equal(t, "bot@example.com", tr.sent[0].From)
}

func TestSendWithoutRecipient(t *testing.T) {
	log, logs := logger.NewObserved()
	tr := &recordingTransport{}
	n := New(tr, "", "", log)

	ok := n.Send(context.Background(), Message{Subject: "s"})

	assert.False(t, ok)
	assert.Empty(t, tr.sent)
	assert.Equal(t, 1, logs.FilterMessage("cannot send email").Len())
}

func TestSendTransportFailure(t *testing.T) {
	log, logs := logger.NewObserved()
	tr := &recordingTransport{err: errors.New("boom")}
	n := New(tr, "me@example.com", "", log)

	assert.False(t, n.Send(context.Background(), Message{Subject: "s"}))
	assert.Equal(t, 1, logs.FilterMessage("failed to send email").Len())
}
