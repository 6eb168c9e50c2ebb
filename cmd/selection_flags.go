package cmd

import (
	"github.com/spf13/pflag"

	"billsheet/internal/selection"
)

// selectionFlags carries the person choices shared by process and persons.
type selectionFlags struct {
	only    []string
	include []string
	exclude []string
}

func (f *selectionFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("selection", pflag.ContinueOnError)
	fs.StringSliceVar(&f.only, "select", nil, "Select exactly these person ids (comma separated, replaces the defaults)")
	fs.StringSliceVar(&f.include, "include", nil, "Add person ids to the selection (comma separated)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "Remove person ids from the selection (comma separated, applied last)")
	return fs
}

func (f *selectionFlags) overrides(candidates []selection.Candidate) map[string]bool {
	return selection.Overrides(candidates, f.only, f.include, f.exclude)
}

func (f *selectionFlags) reset() {
	f.only, f.include, f.exclude = nil, nil, nil
}
