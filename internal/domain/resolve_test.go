package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceDoc is a trimmed cmip6 document covering the lookup outcomes:
// a resolvable window, a not-reached sentinel, and a duplicated tuple.
const referenceDoc = `warming_level_15:
  - {model: ACCESS-ESM1-5, ensemble: r1i1p1f1, exp: ssp585, start_year: 2022, end_year: 2041}
  - {model: CanESM5, ensemble: r1i1p1f1, exp: ssp245, start_year: 2013, end_year: 2032}
warming_level_20:
  - {model: ACCESS-ESM1-5, ensemble: r1i1p1f1, exp: ssp585, start_year: 2032, end_year: 2051}
  - {model: ACCESS-ESM1-5, ensemble: r2i1p1f1, exp: ssp585, start_year: 2034, end_year: 2053}
  - {model: CanESM5, ensemble: r1i1p1f1, exp: ssp585, start_year: 2021, end_year: 2040}
  - {model: NorESM2-LM, ensemble: r1i1p1f1, exp: ssp585, start_year: 2046, end_year: 2065}
warming_level_40:
  # {model: NorESM2-LM, ensemble: r1i1p1f1, exp: ssp126} -- did not reach 4.0°C
  - {model: CanESM5, ensemble: r1i1p1f1, exp: ssp585, start_year: 2041, end_year: 2060}
  - {model: Duped, ensemble: r1i1p1f1, exp: ssp585, start_year: 2050, end_year: 2069}
  - {model: Duped, ensemble: r1i1p1f1, exp: ssp585, start_year: 2052, end_year: 2071}
`

func mustParse(t *testing.T, text, phase string) *Document {
	t.Helper()
	doc, err := ParseDocument(text, phase)
	require.NoError(t, err)
	return doc
}

func TestBucketName(t *testing.T) {
	tests := []struct {
		level    float64
		expected string
	}{
		{1.0, "warming_level_10"},
		{1.2, "warming_level_12"},
		{1.5, "warming_level_15"},
		{2.0, "warming_level_20"},
		{3.0, "warming_level_30"},
		{4.0, "warming_level_40"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, BucketName(tt.level))
		})
	}
}

func TestLevelKey(t *testing.T) {
	// 1.2*10 evaluates to slightly under 12 in floating point; the key must
	// come out as 12 regardless.
	assert.Equal(t, 12, LevelKey(1.2))
	assert.Equal(t, 10, LevelKey(1.0))
	assert.Equal(t, 40, LevelKey(4.0))
}

func TestGWLLabel(t *testing.T) {
	assert.Equal(t, "gwl15", GWLLabel("warming_level_15"))
	assert.Equal(t, "gwl20", GWLLabel("warming_level_20"))
	assert.Equal(t, "gwl40", GWLLabel("warming_level_40"))
}

func TestResolveYearRange(t *testing.T) {
	doc := mustParse(t, referenceDoc, PhaseCMIP6)

	t.Run("resolves crossing window", func(t *testing.T) {
		got, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "ACCESS-ESM1-5", Ensemble: "r1i1p1f1", Pathway: "ssp585", Level: 2.0,
		})

		require.NoError(t, err)
		assert.Equal(t, YearRange{Start: 2032, End: 2051}, got)
	})

	t.Run("normalizes phase and pathway case", func(t *testing.T) {
		got, err := ResolveYearRange(doc, Query{
			Phase: "CMIP6", Model: "ACCESS-ESM1-5", Ensemble: "r1i1p1f1", Pathway: "SSP585", Level: 2.0,
		})

		require.NoError(t, err)
		assert.Equal(t, YearRange{Start: 2032, End: 2051}, got)
	})

	t.Run("deterministic", func(t *testing.T) {
		q := Query{Phase: "cmip6", Model: "CanESM5", Ensemble: "r1i1p1f1", Pathway: "ssp585", Level: 2.0}

		first, err := ResolveYearRange(doc, q)
		require.NoError(t, err)
		second, err := ResolveYearRange(doc, q)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("threshold not reached", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "NorESM2-LM", Ensemble: "r1i1p1f1", Pathway: "ssp126", Level: 4.0,
		})

		require.Error(t, err)
		assert.True(t, IsThresholdNotReached(err))
		assert.Contains(t, err.Error(), "does not reach a global warming level of 4.0°C")
	})

	t.Run("unknown model lists known models", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "NoSuchModel", Ensemble: "r1i1p1f1", Pathway: "ssp585", Level: 2.0,
		})

		require.Error(t, err)
		assert.True(t, IsUnknownModel(err))

		var ume *UnknownModelError
		require.ErrorAs(t, err, &ume)
		assert.Equal(t, []string{"ACCESS-ESM1-5", "CanESM5", "NorESM2-LM"}, ume.Known)
	})

	t.Run("model names are case-sensitive", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "access-esm1-5", Ensemble: "r1i1p1f1", Pathway: "ssp585", Level: 2.0,
		})

		require.Error(t, err)
		assert.True(t, IsUnknownModel(err))
	})

	t.Run("combination not calculated", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "NorESM2-LM", Ensemble: "r9i1p1f1", Pathway: "ssp585", Level: 2.0,
		})

		require.Error(t, err)
		assert.True(t, IsNotCalculated(err))
		assert.False(t, IsUnknownModel(err))
	})

	t.Run("ambiguous entries are never resolved silently", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "Duped", Ensemble: "r1i1p1f1", Pathway: "ssp585", Level: 4.0,
		})

		require.Error(t, err)
		assert.True(t, IsAmbiguousEntry(err))

		var aee *AmbiguousEntryError
		require.ErrorAs(t, err, &aee)
		assert.Equal(t, 2, aee.Count)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "CanESM5", Ensemble: "r1i1p1f1", Pathway: "ssp585", Level: 2.5,
		})

		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "2.5")
	})

	t.Run("invalid phase", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip7", Model: "CanESM5", Ensemble: "r1i1p1f1", Pathway: "ssp585", Level: 2.0,
		})

		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))
	})

	t.Run("invalid pathway", func(t *testing.T) {
		_, err := ResolveYearRange(doc, Query{
			Phase: "cmip6", Model: "CanESM5", Ensemble: "r1i1p1f1", Pathway: "ssp999", Level: 2.0,
		})

		require.Error(t, err)
		assert.True(t, IsInvalidArgument(err))
	})

	t.Run("missing bucket is a document defect", func(t *testing.T) {
		trimmed := mustParse(t, "warming_level_20:\n  - {model: A, ensemble: r1, exp: ssp585, start_year: 2030, end_year: 2049}\n", PhaseCMIP6)

		_, err := ResolveYearRange(trimmed, Query{
			Phase: "cmip6", Model: "A", Ensemble: "r1", Pathway: "ssp585", Level: 3.0,
		})

		require.Error(t, err)
		assert.True(t, IsParseFailure(err))
		assert.False(t, IsInvalidArgument(err))
		assert.Contains(t, err.Error(), "warming_level_30")
	})
}

func TestBuildTable(t *testing.T) {
	doc := mustParse(t, referenceDoc, PhaseCMIP6)

	SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)))
	defer SetClock(nil)

	table := BuildTable(doc)

	t.Run("row count is the sum of bucket sizes", func(t *testing.T) {
		want := 0
		for _, b := range doc.Buckets {
			want += len(b.Records)
		}
		assert.Len(t, table.Rows, want)
	})

	t.Run("rows carry bucket-derived labels in document order", func(t *testing.T) {
		assert.Equal(t, "gwl15", table.Rows[0].GWL)
		assert.Equal(t, "gwl20", table.Rows[2].GWL)
		assert.Equal(t, "gwl40", table.Rows[6].GWL)

		seen := map[string]int{}
		for _, row := range table.Rows {
			seen[row.GWL]++
		}
		assert.Equal(t, map[string]int{"gwl15": 2, "gwl20": 4, "gwl40": 4}, seen)
	})

	t.Run("sentinel rows survive flattening", func(t *testing.T) {
		var sentinels []TableRow
		for _, row := range table.Rows {
			if row.EndYear == NotReachedYear {
				sentinels = append(sentinels, row)
			}
		}
		require.Len(t, sentinels, 1)
		assert.Equal(t, "NorESM2-LM", sentinels[0].Model)
		assert.Equal(t, "gwl40", sentinels[0].GWL)
	})

	t.Run("stamps generation time from the package clock", func(t *testing.T) {
		assert.Equal(t, time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC), table.GeneratedAt)
		assert.Equal(t, PhaseCMIP6, table.Phase)
	})
}
