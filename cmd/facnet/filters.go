package main

import (
	"github.com/spf13/cobra"

	"github.com/ucvm/facnet/internal/config"
	"github.com/ucvm/facnet/internal/filter"
	"github.com/ucvm/facnet/internal/normalize"
	"github.com/ucvm/facnet/internal/textmatch"
)

// filterFlags holds the shared filter flag values for compute, graph,
// and export.
type filterFlags struct {
	levels       []string
	categories   []string
	appointments []string
	groups       []string
	yearFrom     int
	yearTo       int
	topic        string
	focus        string
	policy       string
}

// register adds the shared filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.levels, "level", nil, "Faculty level (repeatable)")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "Faculty category (repeatable)")
	cmd.Flags().StringSliceVar(&f.appointments, "appointment", nil, "Appointment type (repeatable)")
	cmd.Flags().StringSliceVar(&f.groups, "group", nil, "Research group (repeatable)")
	cmd.Flags().IntVar(&f.yearFrom, "year-from", 0, "Earliest publication year (default: window start)")
	cmd.Flags().IntVar(&f.yearTo, "year-to", 0, "Latest publication year (default: window end)")
	cmd.Flags().StringVar(&f.topic, "topic", "", "Free-text topic query")
	cmd.Flags().StringVar(&f.focus, "focus", "", "Focus on one member's publications (OpenAlex author ID)")
	cmd.Flags().StringVar(&f.policy, "match", "", "Topic match policy: strict or loose (default: config)")
}

// state builds a filter.State from the flags, falling back to the
// configured match policy when --match is unset.
func (f *filterFlags) state(cfg *config.Config) filter.State {
	policy := f.policy
	if policy == "" {
		policy = cfg.MatchPolicy
	}
	return filter.State{
		Levels:          f.levels,
		Categories:      f.categories,
		Appointments:    f.appointments,
		Groups:          f.groups,
		YearFrom:        f.yearFrom,
		YearTo:          f.yearTo,
		Topic:           f.topic,
		FocusedAuthorID: normalize.ID(f.focus),
		Policy:          textmatch.ParsePolicy(policy),
	}
}
