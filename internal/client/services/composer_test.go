package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndemidova/chattr/internal/client/models"
)

// fakeThread lets composer tests fail the cache on demand.
type fakeThread struct {
	appendErr error
	appended  []string
}

func (f *fakeThread) Messages(ctx context.Context, chatID string) ([]models.Message, error) {
	return nil, nil
}

func (f *fakeThread) Append(ctx context.Context, chatID, text string, author models.Author) (*models.Message, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	f.appended = append(f.appended, text)
	return &models.Message{ID: "m", Text: text, Author: author}, nil
}

func TestComposer_StartsIdle(t *testing.T) {
	c := NewComposer("chat-7", &fakeThread{})
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.CanSend())
}

func TestComposer_DraftMovesBetweenIdleAndComposing(t *testing.T) {
	c := NewComposer("chat-7", &fakeThread{})

	c.SetDraft("hel")
	assert.Equal(t, StateComposing, c.State())
	assert.True(t, c.CanSend())

	c.SetDraft("hello")
	assert.Equal(t, StateComposing, c.State())

	c.SetDraft("")
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.CanSend())
}

func TestComposer_SendFromIdleForbidden(t *testing.T) {
	ft := &fakeThread{}
	c := NewComposer("chat-7", ft)

	_, err := c.Send(context.Background())
	require.Error(t, err)
	assert.Empty(t, ft.appended)
}

func TestComposer_SendAppendsAndReturnsToIdle(t *testing.T) {
	ft := &fakeThread{}
	c := NewComposer("chat-7", ft)
	c.SetDraft("hi")

	m, err := c.Send(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hi", m.Text)
	assert.Equal(t, models.AuthorSelf, m.Author)
	assert.Equal(t, []string{"hi"}, ft.appended)

	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, c.Draft())
}

func TestComposer_CacheFailureKeepsDraft(t *testing.T) {
	boom := errors.New("disk full")
	ft := &fakeThread{appendErr: boom}
	c := NewComposer("chat-7", ft)
	c.SetDraft("precious")

	_, err := c.Send(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, StateComposing, c.State())
	assert.Equal(t, "precious", c.Draft())
	assert.True(t, c.CanSend())
}
