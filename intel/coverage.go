// ABOUTME: Data coverage thresholds and evidence footer for insight documents
// ABOUTME: Drives the "add more data" nudge when coverage is thin
package intel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jaynip-cloud/personapro/models"
)

// Coverage counts the client data available to a synthesis run.
type Coverage struct {
	Contacts    int
	Meetings    int
	Projects    int
	Documents   int
	MarketIntel bool
}

// Fixed thresholds below which the UI nudges for more data.
const (
	minContacts  = 2
	minMeetings  = 3
	minProjects  = 1
	minDocuments = 1
)

// Gaps returns the coverage categories below their thresholds, in a stable
// order. Empty means coverage is adequate.
func (c Coverage) Gaps() []string {
	var gaps []string
	if c.Contacts < minContacts {
		gaps = append(gaps, "contacts")
	}
	if c.Meetings < minMeetings {
		gaps = append(gaps, "meetings")
	}
	if c.Projects < minProjects {
		gaps = append(gaps, "projects")
	}
	if c.Documents < minDocuments {
		gaps = append(gaps, "documents")
	}
	if !c.MarketIntel {
		gaps = append(gaps, "market intelligence")
	}
	return gaps
}

// NeedsMoreData reports whether any category is below its threshold.
func (c Coverage) NeedsMoreData() bool {
	return len(c.Gaps()) > 0
}

// EvidenceFooter renders an audit summary as a confidence footer appended to
// insight documents, so readers can see what the analysis was based on.
func EvidenceFooter(summary models.AuditSummary) string {
	sources := make([]string, 0, len(summary.AvailabilityFlags))
	for source := range summary.AvailabilityFlags {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var b strings.Builder
	b.WriteString("Evidence: ")
	if len(sources) == 0 {
		b.WriteString("no data sources recorded")
		return b.String()
	}

	parts := make([]string, 0, len(sources))
	for _, source := range sources {
		if summary.AvailabilityFlags[source] {
			parts = append(parts, fmt.Sprintf("%s (%d fields)", source, summary.PerSourceCounts[source]))
		} else {
			parts = append(parts, fmt.Sprintf("%s (unavailable: %s)", source, summary.FailureReasons[source]))
		}
	}
	b.WriteString(strings.Join(parts, ", "))
	return b.String()
}
