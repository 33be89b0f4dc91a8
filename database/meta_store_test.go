package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugifyFileName(t *testing.T) {
	cases := map[string]string{
		"Monthly New Registration of Cars by Make.zip": "monthly-new-registration-of-cars-by-make-zip",
		"COE Bidding Results.zip":                      "coe-bidding-results-zip",
		"  already-slugged ":                           "already-slugged",
		"a//b\\c":                                      "a-b-c",
	}
	for in, want := range cases {
		assert.Equal(t, want, SlugifyFileName(in), "input %q", in)
	}
}

func TestSlugifyFileNameAvoidsDelimiterCollisions(t *testing.T) {
	// Distinct raw names must not collapse to empty keys.
	assert.NotEmpty(t, SlugifyFileName("a.zip"))
	assert.NotEqual(t, SlugifyFileName("cars 2024.zip"), SlugifyFileName("coe 2024.zip"))
}
