package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/gophmessenger/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for the account fields, creates the account and stays
// logged in as the new user.
func (a *App) Register(ctx context.Context) error {
	var p client.RegisterParams
	var err error

	if p.UserName, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if p.Password, err = getPassword(a.out); err != nil {
		return err
	}
	if p.FirstName, err = getSimpleText(a.reader, "Enter first name", a.out); err != nil {
		return err
	}
	if p.LastName, err = getSimpleText(a.reader, "Enter last name", a.out); err != nil {
		return err
	}
	if p.Phone, err = getSimpleText(a.reader, "Enter phone", a.out); err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	user, err := a.client.Register(ctx, p)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.userName = user.UserName
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.client.Login(ctx, userName, password); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	a.userName = userName
	a.setMode(ModeOnline)
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	return nil
}
