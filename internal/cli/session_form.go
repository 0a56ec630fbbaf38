package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/labtable/internal/cli/formatter"
	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// labtableHuhTheme returns a huh theme using the formatter palette.
func labtableHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// sessionForm asks for the fields of in that are still empty. Semester and
// room become selects when the database has any to choose from.
func sessionForm(ctx context.Context, app *App, in *sessionInput) *huh.Form {
	var fields []huh.Field

	if in.Semester == "" {
		if opts := semesterOptions(ctx, app); len(opts) > 0 {
			fields = append(fields, huh.NewSelect[string]().Title("Semester").Options(opts...).Value(&in.Semester))
		} else {
			fields = append(fields, huh.NewInput().Title("Semester").Value(&in.Semester).Validate(validateRequired("semester")))
		}
	}
	if in.Room == "" {
		if opts := roomOptions(ctx, app); len(opts) > 0 {
			fields = append(fields, huh.NewSelect[string]().Title("Room").Options(opts...).Value(&in.Room))
		} else {
			fields = append(fields, huh.NewInput().Title("Room").Value(&in.Room).Validate(validateRequired("room")))
		}
	}
	if in.Day == "" {
		opts := make([]huh.Option[string], len(domain.WeekDays))
		for i, d := range domain.WeekDays {
			opts[i] = huh.NewOption(string(d), string(d))
		}
		fields = append(fields, huh.NewSelect[string]().Title("Day").Options(opts...).Value(&in.Day))
	}
	if in.Start == "" {
		fields = append(fields, periodInput("First period", &in.Start))
	}
	if in.End == "" {
		fields = append(fields, periodInput("Last period", &in.End))
	}
	if in.Course == "" {
		fields = append(fields, huh.NewInput().Title("Course").Value(&in.Course).Validate(validateRequired("course")))
	}
	if in.Instructor == "" {
		fields = append(fields, huh.NewInput().Title("Instructor (optional)").Value(&in.Instructor))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(labtableHuhTheme()).WithShowHelp(false)
}

func semesterOptions(ctx context.Context, app *App) []huh.Option[string] {
	semesters, err := app.Semesters.List(ctx)
	if err != nil {
		return nil
	}
	opts := make([]huh.Option[string], 0, len(semesters))
	for _, s := range semesters {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", s.Name, s.FirstWeekStart), s.ID))
	}
	return opts
}

func roomOptions(ctx context.Context, app *App) []huh.Option[string] {
	rooms, err := app.Rooms.List(ctx)
	if err != nil {
		return nil
	}
	opts := make([]huh.Option[string], 0, len(rooms))
	for _, r := range rooms {
		opts = append(opts, huh.NewOption(r.Name, r.Name))
	}
	return opts
}

func periodInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("1").
		Value(value).
		Validate(validatePeriod)
}

func validatePeriod(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a period number of 1 or more")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
