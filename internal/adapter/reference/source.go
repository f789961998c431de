// Package reference fetches the cmip_warming_levels documents the lookup
// service parses. All sources share one contract: Fetch returns the raw
// document text for a phase or an error explaining why it cannot. Sources
// never inspect the text they return.
package reference

import (
	"context"
	"fmt"
)

// Repo is the upstream GitHub repository publishing the reference documents.
const Repo = "mathause/cmip_warming_levels"

// DefaultBaseURL serves the repository's files as raw content.
const DefaultBaseURL = "https://raw.githubusercontent.com/" + Repo + "/main"

// Source produces the raw reference document text for a CMIP phase.
type Source interface {
	Fetch(ctx context.Context, phase string) (string, error)
}

// DocumentPath returns the repository-relative path of a phase's document.
func DocumentPath(phase string) string {
	return fmt.Sprintf("warming_levels/%s_all_ens/%s_warming_levels_all_ens_1850_1900.yml", phase, phase)
}
