package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"billsheet/internal/selection"
)

func isInteractiveTerminal() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
}

func personOptions(candidates []selection.Candidate, preselected selection.Set) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(candidates))
	for _, candidate := range candidates {
		label := fmt.Sprintf("%s (%s)", candidate.Name, candidate.ID)
		if !candidate.Included {
			label += " - excluded by default"
		}
		options = append(options, huh.NewOption(label, candidate.ID).Selected(preselected.Contains(candidate.ID)))
	}
	return options
}

// promptSelection lets the operator toggle people starting from preselected.
// The form renders on stderr so stdout stays clean for the preview.
func promptSelection(candidates []selection.Candidate, preselected selection.Set) (selection.Set, error) {
	if len(candidates) == 0 {
		return selection.NewSet(), nil
	}

	chosen := make([]string, 0, len(preselected))
	for _, candidate := range candidates {
		if preselected.Contains(candidate.ID) {
			chosen = append(chosen, candidate.ID)
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("People to export").
				Description("Space toggles a person, enter confirms.").
				Value(&chosen).
				Options(personOptions(candidates, preselected)...).
				Height(min(len(candidates)+2, 20)),
		),
	).WithTheme(huh.ThemeCharm()).
		WithProgramOptions(tea.WithOutput(os.Stderr))

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("person selection: %w", err)
	}
	return selection.NewSet(chosen...), nil
}
