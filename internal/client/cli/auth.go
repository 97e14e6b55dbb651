package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/petswap/internal/client/models"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errAlreadyLoggedIn = errors.New("already logged in")

// Register prompts for the account details, creates the account and signs
// in as it.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in, logout first")
		return errAlreadyLoggedIn
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	firstName, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}

	lastName, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}

	phone, err := getSimpleText(a.reader, "Phone (optional)", a.out)
	if err != nil {
		return err
	}

	req := models.RegisterRequest{
		Email:     strings.TrimSpace(email),
		Password:  string(password),
		FirstName: firstName,
		LastName:  lastName,
	}
	if phone != "" {
		req.Phone = &phone
	}

	s, err := a.session.Register(ctx, req)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Welcome,", s.User.DisplayName())
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.session.Login(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("Signed in as", s.User.DisplayName())
	return nil
}

// Logout forgets the session locally. Tokens are stateless, so the server
// is not contacted.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	printlnFn("Logged out")
	return nil
}

// Me fetches the current identity from the server.
func (a *App) Me(ctx context.Context) error {
	token, ok := a.token()
	if !ok {
		return nil
	}

	u, err := a.api.Me(ctx, token)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn("ID:   ", u.ID)
	printlnFn("Email:", u.Email)
	printlnFn("Name: ", strings.TrimSpace(u.FirstName+" "+u.LastName))
	if u.Phone != nil && *u.Phone != "" {
		printlnFn("Phone:", *u.Phone)
	}
	return nil
}
