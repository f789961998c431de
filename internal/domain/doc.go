// Package domain models the cmip_warming_levels reference data and the
// lookup operations over it.
//
// # Data Source
//
// Warming level windows originate from the mathause/cmip_warming_levels
// GitHub repository, which publishes, for each CMIP phase, the 20-year
// period during which each model simulation first crosses a set of global
// warming thresholds relative to the 1850-1900 pre-industrial baseline.
// One YAML document per phase:
//
//	warming_levels/cmip5_all_ens/cmip5_warming_levels_all_ens_1850_1900.yml
//	warming_levels/cmip6_all_ens/cmip6_warming_levels_all_ens_1850_1900.yml
//
// # Reference Document Conventions
//
// Bucket keys:
//
//	One top-level mapping key per warming level, named "warming_level_"
//	followed by ten times the level: warming_level_10 (1.0°C),
//	warming_level_12, warming_level_15, warming_level_20, warming_level_30,
//	warming_level_40. See [BucketName].
//
// Entries:
//
//	Each bucket holds a sequence of flow-style mappings:
//
//	  - {model: ACCESS-ESM1-5, ensemble: r1i1p1f1, exp: ssp585, start_year: 2032, end_year: 2051}
//
//	The window is always 20 calendar years (end_year = start_year + 19),
//	centred on the year the simulation's running-mean temperature first
//	crosses the level. The "exp" key is the emissions pathway.
//
// Not-reached annotations:
//
//	Simulations that never cross a level appear as YAML comments with a
//	trailing annotation instead of year fields:
//
//	  # {model: ACCESS1-0, ensemble: r1i1p1, exp: rcp26} -- did not reach 2.0°C
//
//	[Tidy] rewrites these into parseable sequence items carrying the
//	sentinel start_year: 9999, end_year: 9999, so "never reaches the level"
//	stays distinguishable from "combination absent" after parsing.
//
// Identity:
//
//	Within one bucket a simulation is identified by the (model, ensemble,
//	exp) tuple, expected unique. Model and ensemble names are
//	case-sensitive, matching the upstream spelling (ACCESS-ESM1-5,
//	r1i1p1f1). Phase and pathway names are lowercase; queries are
//	normalized before lookup.
//
// # Lookup Semantics
//
// [ResolveYearRange] resolves one (phase, model, ensemble, pathway, level)
// query to its 20-year window and distinguishes four lookup failures: the
// model is absent from the bucket (UnknownModelError, listing the known
// models), the exact tuple has no entry (NotCalculatedError), the tuple has
// several entries (AmbiguousEntryError, never silently resolved by picking
// one), and the simulation never reaches the level
// (ThresholdNotReachedError). [BuildTable] flattens all buckets of a
// document into one table for bulk consumers, tagging each row with a
// "gwlNN" label derived from its bucket name.
package domain
