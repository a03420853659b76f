package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/caffetrack/internal/client/api"
	"github.com/dmitrijs2005/caffetrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for account details and attempts to create a
// new account. Signing up does not log the user in.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	weightStr, err := getSimpleText(a.reader, "Enter weight (kg)", os.Stdout)
	if err != nil {
		return err
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		printlnFn("Weight must be a number")
		return err
	}

	err = a.session.Register(ctx, api.RegisterRequest{
		Email:    email,
		Password: string(password),
		Name:     name,
		Weight:   weight,
	})
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		printlnFn("An account with this email already exists")
		return err
	case errors.Is(err, common.ErrValidation):
		printlnFn(fmt.Sprintf("Registration rejected: %v", err))
		return err
	case err != nil:
		printlnFn(fmt.Sprintf("Registration failed: %v", err))
		return err
	}

	printlnFn("Account created, you can log in now")
	return nil
}

// Login prompts for credentials and authenticates against the server.
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.session.Login(ctx, email, string(password))
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		printlnFn("Invalid email or password")
		return err
	case errors.Is(err, common.ErrNetwork):
		printlnFn("Server unreachable, try again later")
		return err
	case err != nil:
		printlnFn(fmt.Sprintf("Login failed: %v", err))
		return err
	}

	printlnFn("Logged in")
	return nil
}

// Logout ends the session. Local state is cleared even when the server call
// fails, so this never leaves the user half signed in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}
