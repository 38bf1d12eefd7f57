package handler

import (
	"context"
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
)

// FilterOptions holds the selectable values of every filter group.
type FilterOptions struct {
	Cities      []string `json:"ville"`
	Departments []string `json:"departement"`
	Regions     []string `json:"region"`
	Contracts   []string `json:"contrat"`
	Skills      []string `json:"skill"`
}

// loadOptions fetches every lookup. The first failure aborts the load.
func loadOptions(ctx context.Context, api jobsapi.Source) (FilterOptions, error) {
	var opts FilterOptions
	targets := map[jobsapi.LookupKind]*[]string{
		jobsapi.LookupCity:       &opts.Cities,
		jobsapi.LookupDepartment: &opts.Departments,
		jobsapi.LookupRegion:     &opts.Regions,
		jobsapi.LookupContract:   &opts.Contracts,
	}
	for _, kind := range jobsapi.LookupKinds {
		values, err := api.Lookup(ctx, kind)
		if err != nil {
			return FilterOptions{}, fmt.Errorf("load %s options: %w", kind, err)
		}
		*targets[kind] = values
	}
	skills, err := api.Skills(ctx)
	if err != nil {
		return FilterOptions{}, fmt.Errorf("load skill options: %w", err)
	}
	opts.Skills = skills

	sortFrench(opts.Cities, opts.Departments, opts.Regions, opts.Contracts, opts.Skills)
	return opts, nil
}

// sortFrench orders labels the way a French reader expects, so accented names sit next
// to their unaccented neighbours.
func sortFrench(groups ...[]string) {
	col := collate.New(language.French, collate.IgnoreCase, collate.Loose)
	for _, g := range groups {
		col.SortStrings(g)
	}
}
