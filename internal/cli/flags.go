package cli

import (
	"fmt"

	"github.com/alexanderramin/labtable/internal/domain"
	"github.com/alexanderramin/labtable/internal/timetable"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateFlag is a pflag.Value accepting dd/MM/yyyy.
type dateFlag struct {
	name  string
	value domain.Date
	set   bool
}

var _ pflag.Value = (*dateFlag)(nil)

func (f *dateFlag) String() string {
	if !f.set {
		return ""
	}
	return f.value.String()
}

func (f *dateFlag) Set(s string) error {
	d, err := domain.ParseDate(f.name, s)
	if err != nil {
		return err
	}
	f.value, f.set = d, true
	return nil
}

func (f *dateFlag) Type() string { return "dd/MM/yyyy" }

// Ptr returns the parsed date, or nil when the flag was not given.
func (f *dateFlag) Ptr() *domain.Date {
	if !f.set {
		return nil
	}
	d := f.value
	return &d
}

// dayFlag is a pflag.Value accepting day names, three-letter abbreviations
// and localized labels ("Thứ Hai") in any case.
type dayFlag struct {
	value domain.DayOfWeek
}

var _ pflag.Value = (*dayFlag)(nil)

func (f *dayFlag) String() string { return string(f.value) }

func (f *dayFlag) Set(s string) error {
	d, ok := timetable.ParseDayInput(s)
	if !ok {
		return fmt.Errorf("unknown day %q (use MONDAY..SUNDAY or MON..SUN)", s)
	}
	f.value = d
	return nil
}

func (f *dayFlag) Type() string { return "day" }

func addDateFlag(cmd *cobra.Command, name, usage string) *dateFlag {
	f := &dateFlag{name: name}
	cmd.Flags().Var(f, name, usage)
	return f
}
