package cmd

import (
	"fmt"
	"io"
	"strings"

	"billsheet/config"
	"billsheet/timesheet"
)

// listDiff compares one configured list with its built-in default. A list
// set in the config file replaces the default entirely, so Missing names
// defaults that no longer apply.
type listDiff struct {
	Key     string
	Added   []string
	Missing []string
}

type listEntry struct {
	key     string
	display string
}

func diffAgainstDefaults(cfg config.Config) []listDiff {
	defaults := config.Default()

	pairs := []struct {
		key      string
		current  []listEntry
		defaults []listEntry
	}{
		{config.KeyInputBillableColumns, plainEntries(cfg.Input.BillableColumns), plainEntries(defaults.Input.BillableColumns)},
		{config.KeyActivityExclusions, exclusionEntries(cfg.Rules.ActivityExclusions), exclusionEntries(defaults.Rules.ActivityExclusions)},
		{config.KeyProjectCodes, projectCodeEntries(cfg.Rules.ProjectCodes), projectCodeEntries(defaults.Rules.ProjectCodes)},
		{config.KeyNonBillableClients, idEntries(cfg.Rules.NonBillableClients), idEntries(defaults.Rules.NonBillableClients)},
		{config.KeyNonBillableActivities, idEntries(cfg.Rules.NonBillableActivities), idEntries(defaults.Rules.NonBillableActivities)},
		{config.KeyExcludedPrefixes, plainEntries(cfg.Selection.ExcludedPrefixes), plainEntries(defaults.Selection.ExcludedPrefixes)},
		{config.KeyExcludedIDs, idEntries(cfg.Selection.ExcludedIDs), idEntries(defaults.Selection.ExcludedIDs)},
		{config.KeyIncludedIDs, idEntries(cfg.Selection.IncludedIDs), idEntries(defaults.Selection.IncludedIDs)},
	}

	diffs := make([]listDiff, 0)
	for _, pair := range pairs {
		diff := listDiff{
			Key:     pair.key,
			Added:   subtractEntries(pair.current, pair.defaults),
			Missing: subtractEntries(pair.defaults, pair.current),
		}
		if len(diff.Added) > 0 || len(diff.Missing) > 0 {
			diffs = append(diffs, diff)
		}
	}
	return diffs
}

func subtractEntries(from, remove []listEntry) []string {
	removed := make(map[string]struct{}, len(remove))
	for _, entry := range remove {
		removed[entry.key] = struct{}{}
	}
	out := make([]string, 0)
	for _, entry := range from {
		if _, ok := removed[entry.key]; !ok {
			out = append(out, entry.display)
		}
	}
	return out
}

func plainEntries(values []string) []listEntry {
	entries := make([]listEntry, 0, len(values))
	for _, value := range values {
		entries = append(entries, listEntry{key: strings.TrimSpace(value), display: value})
	}
	return entries
}

// idEntries compares ids in canonical form so "01001" matches "1001".
func idEntries(values []string) []listEntry {
	entries := make([]listEntry, 0, len(values))
	for _, value := range values {
		entries = append(entries, listEntry{key: timesheet.CanonicalID(value), display: value})
	}
	return entries
}

func exclusionEntries(rules []config.ExclusionRule) []listEntry {
	entries := make([]listEntry, 0, len(rules))
	for _, rule := range rules {
		display := fmt.Sprintf("%s contains %q", rule.Field, rule.Contains)
		key := rule.Field + "\x00" + strings.ToLower(rule.Contains)
		if rule.CaseSensitive {
			display += " (case sensitive)"
			key = rule.Field + "\x00" + rule.Contains + "\x00cs"
		}
		entries = append(entries, listEntry{key: key, display: display})
	}
	return entries
}

func projectCodeEntries(codes []config.ProjectCode) []listEntry {
	entries := make([]listEntry, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, listEntry{
			key:     strings.ToLower(strings.TrimSpace(code.Match)) + "\x00" + code.Code,
			display: fmt.Sprintf("%q -> %s", code.Match, code.Code),
		})
	}
	return entries
}

// writeRuleReport summarizes the effective rule tables and selection sets
// and warns about lists that drop built-in defaults.
func writeRuleReport(out io.Writer, cfg config.Config) {
	fmt.Fprintf(out, "Rules: %d activity exclusions, %d project codes, non-billable clients [%s], non-billable activities [%s]\n",
		len(cfg.Rules.ActivityExclusions),
		len(cfg.Rules.ProjectCodes),
		strings.Join(cfg.Rules.NonBillableClients, ", "),
		strings.Join(cfg.Rules.NonBillableActivities, ", "),
	)
	fmt.Fprintf(out, "Selection: excluded prefixes [%s], %d excluded ids, always included [%s]\n",
		strings.Join(cfg.Selection.ExcludedPrefixes, ", "),
		len(cfg.Selection.ExcludedIDs),
		strings.Join(cfg.Selection.IncludedIDs, ", "),
	)

	diffs := diffAgainstDefaults(cfg)
	if len(diffs) == 0 {
		fmt.Fprintln(out, "All lists match the built-in defaults.")
		return
	}
	for _, diff := range diffs {
		if len(diff.Missing) > 0 {
			fmt.Fprintf(out, "Warning: %s replaces the built-in list; defaults no longer applied: %s\n", diff.Key, strings.Join(diff.Missing, ", "))
		}
		if len(diff.Added) > 0 {
			fmt.Fprintf(out, "%s adds: %s\n", diff.Key, strings.Join(diff.Added, ", "))
		}
	}
}

// customEntries lists every configured entry that is not a built-in default.
func customEntries(cfg config.Config) []string {
	out := make([]string, 0)
	for _, diff := range diffAgainstDefaults(cfg) {
		for _, added := range diff.Added {
			out = append(out, diff.Key+": "+added)
		}
	}
	return out
}
