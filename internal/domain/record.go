package domain

import (
	"sort"
	"time"
)

// NotReachedYear is the sentinel year written by [Tidy] for simulations
// that never cross a bucket's warming level.
const NotReachedYear = 9999

// Record is one simulation's entry within a warming-level bucket.
// Field names follow the upstream document; "exp" is the emissions pathway.
type Record struct {
	Model     string `yaml:"model" json:"model"`
	Ensemble  string `yaml:"ensemble" json:"ensemble"`
	Pathway   string `yaml:"exp" json:"pathway"`
	StartYear int    `yaml:"start_year" json:"start_year"`
	EndYear   int    `yaml:"end_year" json:"end_year"`
}

// Reached reports whether the simulation crossed the bucket's warming level.
func (r Record) Reached() bool {
	return r.EndYear != NotReachedYear
}

// Window returns the crossing window. ok is false when the simulation never
// reaches the bucket's level; the returned range is zero in that case.
func (r Record) Window() (YearRange, bool) {
	if !r.Reached() {
		return YearRange{}, false
	}
	return YearRange{Start: r.StartYear, End: r.EndYear}, true
}

// Bucket is one warming level's ordered list of simulation records.
type Bucket struct {
	Name    string
	Records []Record
}

// Models returns the distinct model names in the bucket, sorted.
func (b Bucket) Models() []string {
	seen := make(map[string]bool, len(b.Records))
	var models []string
	for _, r := range b.Records {
		if seen[r.Model] {
			continue
		}
		seen[r.Model] = true
		models = append(models, r.Model)
	}
	sort.Strings(models)
	return models
}

// HasModel reports whether any record in the bucket belongs to the model.
// Matching is case-sensitive: upstream model names are exact spellings.
func (b Bucket) HasModel(model string) bool {
	for _, r := range b.Records {
		if r.Model == model {
			return true
		}
	}
	return false
}

// Filter returns the records matching the exact (model, ensemble, pathway)
// tuple, in bucket order.
func (b Bucket) Filter(model, ensemble, pathway string) []Record {
	var matches []Record
	for _, r := range b.Records {
		if r.Model == model && r.Ensemble == ensemble && r.Pathway == pathway {
			matches = append(matches, r)
		}
	}
	return matches
}

// Document is the parsed form of one phase's reference document.
// Bucket order and per-bucket record order match the source text.
type Document struct {
	Phase   string
	Buckets []Bucket
}

// Bucket returns the named bucket. ok is false when the document has no
// bucket under that name.
func (d *Document) Bucket(name string) (Bucket, bool) {
	for _, b := range d.Buckets {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// YearRange is an inclusive calendar-year window.
type YearRange struct {
	Start int `json:"start_year"`
	End   int `json:"end_year"`
}

// StartDate returns midnight UTC on January 1 of the start year.
func (yr YearRange) StartDate() time.Time {
	return time.Date(yr.Start, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// EndDate returns midnight UTC on December 31 of the end year.
func (yr YearRange) EndDate() time.Time {
	return time.Date(yr.End, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// TableRow is one flattened lookup-table entry tagged with its warming
// level label.
type TableRow struct {
	GWL       string `json:"gwl"`
	Model     string `json:"model"`
	Ensemble  string `json:"ensemble"`
	Pathway   string `json:"pathway"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
}

// Table is the flat view of a whole reference document across all buckets.
type Table struct {
	Phase       string     `json:"phase"`
	GeneratedAt time.Time  `json:"generated_at"`
	Rows        []TableRow `json:"rows"`
}
