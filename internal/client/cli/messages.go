package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/gophmessenger/internal/api"
)

const timeLayout = "2006-01-02 15:04:05"

func formatReadAt(t *time.Time) string {
	if t == nil {
		return "unread"
	}
	return "read " + t.Local().Format(timeLayout)
}

func formatSnippet(u api.UserSnippet) string {
	return fmt.Sprintf("%s (%s %s, %s)", u.UserName, u.FirstName, u.LastName, u.Phone)
}

func (a *App) Users(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s\t%s %s\n", u.UserName, u.FirstName, u.LastName)
	}
	return nil
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	u, err := a.client.Me(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Fprintf(a.out, "%s: %s %s, phone %s\njoined %s, last login %s\n",
		u.UserName, u.FirstName, u.LastName, u.Phone,
		u.JoinAt.Local().Format(timeLayout), u.LastLoginAt.Local().Format(timeLayout))
	return nil
}

// Inbox lists received messages, newest first.
func (a *App) Inbox(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	msgs, err := a.client.Inbox(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages")
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "[%s] %s from %s (%s): %s\n",
			m.ID, m.SentAt.Local().Format(timeLayout), m.FromUser.UserName, formatReadAt(m.ReadAt), m.Body)
	}
	return nil
}

// Outbox lists sent messages, newest first.
func (a *App) Outbox(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	msgs, err := a.client.Outbox(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages")
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "[%s] %s to %s (%s): %s\n",
			m.ID, m.SentAt.Local().Format(timeLayout), m.ToUser.UserName, formatReadAt(m.ReadAt), m.Body)
	}
	return nil
}

func (a *App) Send(ctx context.Context) error {
	to, err := getSimpleText(a.reader, "Enter recipient", a.out)
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Enter message", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	m, err := a.client.Send(ctx, to, body)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Sent %s\n", m.ID)
	return nil
}

// Show prints a single message the user sent or received.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter message ID", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	m, err := a.client.GetMessage(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Fprintf(a.out, "ID:   %s\nFrom: %s\nTo:   %s\nSent: %s\n%s\n\n%s\n",
		m.ID, formatSnippet(m.FromUser), formatSnippet(m.ToUser),
		m.SentAt.Local().Format(timeLayout), formatReadAt(m.ReadAt), m.Body)
	return nil
}
