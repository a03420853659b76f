package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/common"
)

// Info fetches the user profile from the server and prints it.
func (a *App) Info(ctx context.Context) error {
	user, err := a.session.FetchUser(ctx)
	switch {
	case errors.Is(err, common.ErrNotAuthenticated):
		printlnFn("Not logged in")
		return err
	case errors.Is(err, common.ErrAuthExpired):
		printlnFn("Session expired, please log in again")
		return err
	case err != nil:
		printlnFn(fmt.Sprintf("Could not load profile: %v", err))
		return err
	}

	printlnFn(fmt.Sprintf("Email:                %s", user.Email))
	printlnFn(fmt.Sprintf("Name:                 %s", user.Name))
	printlnFn(fmt.Sprintf("Weight:               %.1f kg", user.Weight))
	printlnFn(fmt.Sprintf("Daily caffeine limit: %d mg", user.DailyCaffeineLimit))
	return nil
}

// Edit interactively collects profile changes and submits them. Fields left
// empty keep their current value.
func (a *App) Edit(ctx context.Context) error {
	var patch models.ProfilePatch

	name, set, err := GetOptionalText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	if set {
		patch.Name = &name
	}

	weightStr, set, err := GetOptionalText(a.reader, "Enter weight (kg)", os.Stdout)
	if err != nil {
		return err
	}
	if set {
		weight, perr := strconv.ParseFloat(weightStr, 64)
		if perr != nil {
			printlnFn("Weight must be a number")
			return perr
		}
		patch.Weight = &weight
	}

	limitStr, set, err := GetOptionalText(a.reader, "Enter daily caffeine limit (mg)", os.Stdout)
	if err != nil {
		return err
	}
	if set {
		limit, perr := strconv.Atoi(limitStr)
		if perr != nil {
			printlnFn("Limit must be an integer")
			return perr
		}
		patch.DailyCaffeineLimit = &limit
	}

	if patch == (models.ProfilePatch{}) {
		printlnFn("Nothing to change")
		return nil
	}

	user, err := a.session.UpdateProfile(ctx, patch)
	switch {
	case errors.Is(err, common.ErrValidation):
		printlnFn(fmt.Sprintf("Edit rejected: %v", err))
		return err
	case errors.Is(err, common.ErrAuthExpired):
		printlnFn("Session expired, please log in again")
		return err
	case err != nil:
		printlnFn(fmt.Sprintf("Edit failed: %v", err))
		return err
	}

	printlnFn(fmt.Sprintf("Profile updated: %s, %.1f kg, %d mg/day", user.Name, user.Weight, user.DailyCaffeineLimit))
	return nil
}
