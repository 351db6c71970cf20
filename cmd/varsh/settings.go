package main

import (
	"maps"
	"os"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/apstndb/namedvars/parser"
)

// settings holds the state exposed as variables.
type settings struct {
	Retries     int           `namedvar:"name=retries,desc='Number of attempts per request.'"`
	Timeout     time.Duration `namedvar:"name=timeout,desc='Per request timeout, e.g. 1m30s.'"`
	SampleRatio *float64      `namedvar:"name=sample_ratio,desc='Fraction of requests to trace. NULL disables tracing.'"`
	Verbose     bool          `namedvar:"name=verbose,desc='Display verbose output.'"`
	Separator   parser.Char   `namedvar:"name=separator,desc='Field separator character.'"`
	Prompt      string        `namedvar:"name=prompt,desc='Prompt text, unused in batch mode.'"`
	User        string        `namedvar:"name=user,desc='Current user.',readonly"`
	Tags        tagSet        `namedvar:"name=tags,desc='Comma separated labels, stored sorted and deduplicated.'"`
}

// tagSet is exposed as a sorted []string variable.
type tagSet map[string]struct{}

func (ts tagSet) sorted() []string {
	return slices.Sorted(maps.Keys(ts))
}

func newTagSet(tags []string) tagSet {
	return lo.SliceToMap(tags, func(tag string) (string, struct{}) { return tag, struct{}{} })
}

func newSettings() *settings {
	return &settings{
		Retries:   3,
		Timeout:   30 * time.Second,
		Separator: '\t',
		Prompt:    "varsh> ",
		User:      os.Getenv("USER"),
	}
}
