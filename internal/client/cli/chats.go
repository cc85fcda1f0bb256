package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ndemidova/chattr/internal/client/models"
	"github.com/ndemidova/chattr/internal/client/services"
)

// Chats fetches the conversation list from the server and prints one line
// per chat: id, name, participants and the latest message if there is one.
func (a *App) Chats(ctx context.Context) error {
	chats, err := a.session.Chats(ctx)
	if err != nil {
		reportAuthError("Loading chats", err)
		return err
	}

	if len(chats) == 0 {
		printlnFn("No chats yet.")
		return nil
	}

	for _, chat := range chats {
		line := fmt.Sprintf("%s  %s [%s]", chat.UUID, chat.Name, strings.Join(chat.Users, ", "))
		if last := chat.LastMessage(); last != nil {
			line += "  — " + last.Text
		}
		printlnFn(line)
	}
	return nil
}

// OpenThread prompts for a chat id and enters the thread view: cached
// messages are printed newest first, then every non-empty input line is sent
// through the composer. The view exits on ":q" or EOF.
func (a *App) OpenThread(ctx context.Context) error {
	chatID, err := getSimpleText(a.reader, "Enter chat id", os.Stdout)
	if err != nil {
		return err
	}
	if chatID == "" {
		printlnFn("No chat id given.")
		return nil
	}

	return a.runThread(ctx, chatID, a.reader)
}

// runThread drives one thread view over the given input stream.
func (a *App) runThread(ctx context.Context, chatID string, reader *bufio.Reader) error {
	if err := a.printThread(ctx, chatID); err != nil {
		return err
	}

	composer := services.NewComposer(chatID, a.thread)

	printlnFn("Type a message and press Enter to send, ':q' to leave the thread.")
	for {
		line, err := reader.ReadString('\n')
		text := strings.TrimSpace(line)
		if text == ":q" {
			return nil
		}

		if text != "" {
			composer.SetDraft(text)
			if m, sendErr := composer.Send(ctx); sendErr != nil {
				printlnFn("Could not store message:", sendErr.Error())
			} else {
				printlnFn(formatMessage(*m))
			}
		}

		if err != nil {
			return nil
		}
	}
}

func (a *App) printThread(ctx context.Context, chatID string) error {
	msgs, err := a.thread.Messages(ctx, chatID)
	if err != nil {
		printlnFn("Could not load thread:", err.Error())
		return err
	}

	if len(msgs) == 0 {
		printlnFn("No messages in this thread yet.")
		return nil
	}

	for _, m := range msgs {
		printlnFn(formatMessage(m))
	}
	return nil
}

func formatMessage(m models.Message) string {
	who := "me"
	if m.Author == models.AuthorPeer {
		who = "peer"
	}
	return fmt.Sprintf("[%s] %s: %s", m.CreatedAt.Format("15:04:05"), who, m.Text)
}
