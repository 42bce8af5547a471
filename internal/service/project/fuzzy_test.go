package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fightlight/fightlight/internal/models"
)

func TestTagContains(t *testing.T) {
	testCases := []struct {
		desc      string
		highlight models.Highlight
		tagNames  []string
		expect    bool
	}{
		{
			desc:      "source == target != 0",
			highlight: models.Highlight{Tags: []string{"round1"}},
			tagNames:  []string{"round1"},
			expect:    true,
		},
		{
			desc:      "source > target",
			highlight: models.Highlight{Tags: []string{"round1", "knockdown"}},
			tagNames:  []string{"round1"},
			expect:    true,
		},
		{
			desc:      "source < target",
			highlight: models.Highlight{Tags: []string{"round1"}},
			tagNames:  []string{"round1", "knockdown"}, expect: false,
		},
		{
			desc:      "source & target != 0",
			highlight: models.Highlight{Tags: []string{"round1", "knockdown"}},
			tagNames:  []string{"round1", "ko"},
			expect:    false,
		},
		{
			desc:      "source == 0; target != 0",
			highlight: models.Highlight{Tags: []string{}},
			tagNames:  []string{"ko"},
			expect:    false,
		},
		{
			desc:      "source != 0; target == 0",
			highlight: models.Highlight{Tags: []string{"round1"}},
			tagNames:  []string{},
			expect:    true,
		},
		{
			desc:      "source == target == 0",
			highlight: models.Highlight{Tags: []string{}},
			tagNames:  []string{},
			expect:    true,
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			res := tagContains(tC.highlight, tC.tagNames)
			assert.Equal(t, tC.expect, res)
		})
	}
}

func TestFilterRank(t *testing.T) {
	testCases := []struct {
		desc   string
		source []models.Highlight
		filter models.HighlightFilter
		expect []highlightRank
	}{
		{
			desc: "name ordering",
			source: []models.Highlight{
				{ID: "h1", Name: "uppercut"},
				{ID: "h2", Name: "Jábs"},
				{ID: "h3", Name: "jab"},
			},
			filter: models.HighlightFilter{Name: "jab"},
			expect: []highlightRank{
				{highlight: models.Highlight{ID: "h3", Name: "jab"}, rank: 0},
				{highlight: models.Highlight{ID: "h2", Name: "Jábs"}, rank: 1},
				{highlight: models.Highlight{ID: "h1", Name: "uppercut"}, rank: 8},
			},
		},
		{
			desc: "tag filtering",
			source: []models.Highlight{
				{ID: "h1", Name: "jab", Tags: []string{"round1", "combo"}},
				{ID: "h2", Name: "jab", Tags: []string{"round2"}},
				{ID: "h3", Name: "jab"},
			},
			filter: models.HighlightFilter{Name: "jab", Tags: []string{"combo"}},
			expect: []highlightRank{
				{highlight: models.Highlight{ID: "h1", Name: "jab", Tags: []string{"round1", "combo"}}, rank: 0},
			},
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			res := filterRank(tC.source, tC.filter)
			assert.Equal(t, tC.expect, res)
		})
	}
}
