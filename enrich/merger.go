// ABOUTME: Priority-ordered profile merge reducer
// ABOUTME: First non-empty value wins per field; arrays union with case-insensitive dedup
package enrich

import (
	"sort"
	"strings"
	"time"

	"github.com/jaynip-cloud/personapro/models"
)

// scalarFields maps canonical field names to accessors on the profile.
// Unknown keys in a source payload have no entry here and are ignored.
var scalarFields = []struct {
	name string
	get  func(*models.ClientProfile) string
	set  func(*models.ClientProfile, string)
}{
	{models.FieldCompany, func(p *models.ClientProfile) string { return p.Company }, func(p *models.ClientProfile, v string) { p.Company = v }},
	{models.FieldIndustry, func(p *models.ClientProfile) string { return p.Industry }, func(p *models.ClientProfile, v string) { p.Industry = v }},
	{models.FieldCompanySize, func(p *models.ClientProfile) string { return p.CompanySize }, func(p *models.ClientProfile, v string) { p.CompanySize = v }},
	{models.FieldLocation, func(p *models.ClientProfile) string { return p.Location }, func(p *models.ClientProfile, v string) { p.Location = v }},
	{models.FieldFoundedYear, func(p *models.ClientProfile) string { return p.FoundedYear }, func(p *models.ClientProfile, v string) { p.FoundedYear = v }},
	{models.FieldContactName, func(p *models.ClientProfile) string { return p.ContactName }, func(p *models.ClientProfile, v string) { p.ContactName = v }},
	{models.FieldContactRole, func(p *models.ClientProfile) string { return p.ContactRole }, func(p *models.ClientProfile, v string) { p.ContactRole = v }},
	{models.FieldEmail, func(p *models.ClientProfile) string { return p.Email }, func(p *models.ClientProfile, v string) { p.Email = v }},
	{models.FieldAltEmail, func(p *models.ClientProfile) string { return p.AltEmail }, func(p *models.ClientProfile, v string) { p.AltEmail = v }},
	{models.FieldPhone, func(p *models.ClientProfile) string { return p.Phone }, func(p *models.ClientProfile, v string) { p.Phone = v }},
	{models.FieldAltPhone, func(p *models.ClientProfile) string { return p.AltPhone }, func(p *models.ClientProfile, v string) { p.AltPhone = v }},
	{models.FieldShortTermGoals, func(p *models.ClientProfile) string { return p.ShortTermGoals }, func(p *models.ClientProfile, v string) { p.ShortTermGoals = v }},
	{models.FieldLongTermGoals, func(p *models.ClientProfile) string { return p.LongTermGoals }, func(p *models.ClientProfile, v string) { p.LongTermGoals = v }},
	{models.FieldExpectations, func(p *models.ClientProfile) string { return p.Expectations }, func(p *models.ClientProfile, v string) { p.Expectations = v }},
	{models.FieldBudgetRange, func(p *models.ClientProfile) string { return p.BudgetRange }, func(p *models.ClientProfile, v string) { p.BudgetRange = v }},
	{models.FieldOverview, func(p *models.ClientProfile) string { return p.Overview }, func(p *models.ClientProfile, v string) { p.Overview = v }},
}

// Merge reduces fetched source results into the current profile. Sources are
// applied strictly in descending priority; the first non-empty value fills a
// field and later sources never overwrite it. Arrays are unioned with
// case-insensitive dedup. If no source contributed a usable field, the
// current profile is returned unchanged.
//
// The returned audit records which sources contributed and how each failed
// source failed; callers persist it alongside the merge.
func Merge(current models.ClientProfile, results []SourceResult) (models.ClientProfile, models.SourceAudit) {
	merged := current

	// Stable sort keeps input order within a priority tier, which keeps the
	// reduce deterministic regardless of fetch completion order.
	ordered := make([]SourceResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return models.SourcePriority(ordered[i].Source.Kind) < models.SourcePriority(ordered[j].Source.Kind)
	})

	audit := models.SourceAudit{
		ClientID: current.ID,
		OwnerID:  current.OwnerID,
		RunAt:    time.Now(),
	}

	contributed := false
	for _, r := range ordered {
		entry := models.SourceAuditEntry{Source: r.Source.Name}

		if r.Err != nil {
			entry.FailureReason = FailureReason(r.Err)
			audit.Entries = append(audit.Entries, entry)
			continue
		}

		count := applyFields(&merged, r.Source.Fields)
		entry.Available = true
		entry.FieldCount = count
		if count > 0 {
			contributed = true
		}
		audit.Entries = append(audit.Entries, entry)
	}

	if !contributed {
		return current, audit
	}

	merged.UpdatedAt = time.Now()
	return merged, audit
}

func applyFields(profile *models.ClientProfile, fields models.FieldSet) int {
	count := 0

	for _, f := range scalarFields {
		v := strings.TrimSpace(fields.Scalars[f.name])
		if v == "" || f.get(profile) != "" {
			continue
		}
		f.set(profile, v)
		count++
	}

	count += unionInto(&profile.Tags, fields.Tags)
	count += unionInto(&profile.Technologies, fields.Technologies)
	count += unionInto(&profile.SocialLinks, fields.SocialLinks)

	return count
}

// unionInto appends values not already present, comparing case-insensitively,
// and returns the number actually added.
func unionInto(dst *[]string, values []string) int {
	seen := make(map[string]bool, len(*dst))
	for _, v := range *dst {
		seen[strings.ToLower(v)] = true
	}

	added := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		*dst = append(*dst, v)
		added++
	}
	return added
}
