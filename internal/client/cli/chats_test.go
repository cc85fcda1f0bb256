package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndemidova/chattr/internal/client/models"
)

type fakeThread struct {
	msgs     map[string][]models.Message
	appended []string
}

func (f *fakeThread) Messages(ctx context.Context, chatID string) ([]models.Message, error) {
	return f.msgs[chatID], nil
}

func (f *fakeThread) Append(ctx context.Context, chatID, text string, author models.Author) (*models.Message, error) {
	f.appended = append(f.appended, text)
	return &models.Message{ID: "m", Text: text, CreatedAt: time.Now().UTC(), Author: author}, nil
}

func TestChats_PrintsOverviewWithLastMessage(t *testing.T) {
	out := capturePrintln(t)

	fs := &fakeSession{chats: []models.Chat{
		{
			UUID:  "c1",
			Name:  "friends",
			Users: []string{"nina", "bob"},
			Messages: []models.Message{
				{ID: "m1", Text: "see you tomorrow", Author: models.AuthorPeer},
			},
		},
		{UUID: "c2", Name: "empty room", Users: []string{"nina"}},
	}}
	app := newTestApp(fs)

	err := app.Chats(context.Background())
	require.NoError(t, err)

	joined := strings.Join(*out, "\n")
	require.Contains(t, joined, "c1")
	require.Contains(t, joined, "friends")
	require.Contains(t, joined, "see you tomorrow")
	require.Contains(t, joined, "empty room")
}

func TestChats_EmptyList(t *testing.T) {
	out := capturePrintln(t)

	app := newTestApp(&fakeSession{})

	err := app.Chats(context.Background())
	require.NoError(t, err)
	require.Contains(t, strings.Join(*out, "\n"), "No chats yet")
}

func TestRunThread_PrintsCachedAndSendsInput(t *testing.T) {
	out := capturePrintln(t)

	ft := &fakeThread{msgs: map[string][]models.Message{
		"c1": {
			{ID: "m2", Text: "newest", Author: models.AuthorSelf, CreatedAt: time.Now().UTC()},
			{ID: "m1", Text: "oldest", Author: models.AuthorPeer, CreatedAt: time.Now().UTC()},
		},
	}}
	app := &App{session: &fakeSession{}, thread: ft}

	input := bufio.NewReader(strings.NewReader("hello there\n:q\n"))
	err := app.runThread(context.Background(), "c1", input)
	require.NoError(t, err)

	require.Equal(t, []string{"hello there"}, ft.appended)
	joined := strings.Join(*out, "\n")
	require.Contains(t, joined, "newest")
	require.Contains(t, joined, "oldest")
	require.Contains(t, joined, "hello there")
}

func TestRunThread_BlankLinesAreNotSent(t *testing.T) {
	capturePrintln(t)

	ft := &fakeThread{msgs: map[string][]models.Message{}}
	app := &App{session: &fakeSession{}, thread: ft}

	input := bufio.NewReader(strings.NewReader("\n   \n:q\n"))
	err := app.runThread(context.Background(), "c1", input)
	require.NoError(t, err)
	require.Empty(t, ft.appended)
}

func TestRunThread_ExitsOnEOF(t *testing.T) {
	capturePrintln(t)

	ft := &fakeThread{msgs: map[string][]models.Message{}}
	app := &App{session: &fakeSession{}, thread: ft}

	input := bufio.NewReader(strings.NewReader("last words"))
	err := app.runThread(context.Background(), "c1", input)
	require.NoError(t, err)
	require.Equal(t, []string{"last words"}, ft.appended)
}
