package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/labtable/internal/repository"
)

var timeNow = time.Now

// resolveSemesterID accepts a full semester ID, a case-insensitive name or
// a unique ID prefix.
func resolveSemesterID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("semester is required")
	}
	semesters, err := app.Semesters.List(ctx)
	if err != nil {
		return "", err
	}
	for _, s := range semesters {
		if s.ID == input {
			return s.ID, nil
		}
	}
	for _, s := range semesters {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range semesters {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("semester not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("semester ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// defaultSemesterID picks the semester containing today, or the only
// semester when there is exactly one.
func defaultSemesterID(ctx context.Context, app *App) (string, error) {
	semesters, err := app.Semesters.List(ctx)
	if err != nil {
		return "", err
	}
	today := app.today()
	for _, s := range semesters {
		if s.Contains(today) {
			return s.ID, nil
		}
	}
	if len(semesters) == 1 {
		return semesters[0].ID, nil
	}
	return "", fmt.Errorf("--semester is required (%d semesters, none contains %s)", len(semesters), today)
}

// resolveSessionID accepts a full session ID or a unique prefix.
func resolveSessionID(ctx context.Context, app *App, input string) (string, error) {
	if _, err := app.Sessions.GetByID(ctx, input); err == nil {
		return input, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	semesters, err := app.Semesters.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, sem := range semesters {
		sessions, err := app.Sessions.List(ctx, sem.ID, "")
		if err != nil {
			return "", err
		}
		for _, s := range sessions {
			if strings.HasPrefix(s.ID, input) {
				matches = append(matches, s.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
