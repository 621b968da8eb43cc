// ABOUTME: Provider adapters for manual entry and website-crawl sources
// ABOUTME: Maps raw fetcher output onto the canonical field set
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaynip-cloud/personapro/models"
)

// PageData is the raw output of a website fetch: text plus whatever metadata
// the fetcher extracted.
type PageData struct {
	Title       string
	Description string
	Metadata    map[string]string
	Links       []string
}

// WebFetcher retrieves raw page text/metadata. Fetching itself (HTTP,
// rendering, robots handling) lives behind this boundary.
type WebFetcher interface {
	Fetch(ctx context.Context, target string) (PageData, error)
}

// ManualSource wraps explicitly entered fields as the highest-priority source.
type ManualSource struct {
	Fields models.FieldSet
}

func (s ManualSource) Name() string { return "manual" }
func (s ManualSource) Kind() string { return models.SourceManual }
func (s ManualSource) Fetch(ctx context.Context) (models.FieldSet, error) {
	return s.Fields, nil
}

// WebsiteSource adapts a WebFetcher into an enrichment provider.
type WebsiteSource struct {
	Fetcher WebFetcher
	Target  string
}

func (s WebsiteSource) Name() string { return "website" }
func (s WebsiteSource) Kind() string { return models.SourceWebsite }

// metadataFields maps fetcher metadata keys to canonical profile fields.
var metadataFields = map[string]string{
	"industry":     models.FieldIndustry,
	"company_size": models.FieldCompanySize,
	"location":     models.FieldLocation,
	"founded":      models.FieldFoundedYear,
	"email":        models.FieldEmail,
	"phone":        models.FieldPhone,
}

func (s WebsiteSource) Fetch(ctx context.Context) (models.FieldSet, error) {
	page, err := s.Fetcher.Fetch(ctx, s.Target)
	if err != nil {
		return models.FieldSet{}, fmt.Errorf("fetch %s: %w", s.Target, err)
	}

	fields := models.FieldSet{Scalars: make(map[string]string)}
	if page.Description != "" {
		fields.Scalars[models.FieldOverview] = page.Description
	}
	for key, value := range page.Metadata {
		if canonical, ok := metadataFields[strings.ToLower(key)]; ok {
			fields.Scalars[canonical] = value
		}
	}
	for _, link := range page.Links {
		if isSocialLink(link) {
			fields.SocialLinks = append(fields.SocialLinks, link)
		}
	}

	if fields.Empty() {
		return models.FieldSet{}, fmt.Errorf("fetch %s: %w", s.Target, ErrSourceUnavailable)
	}
	return fields, nil
}

func isSocialLink(link string) bool {
	l := strings.ToLower(link)
	for _, host := range []string{"linkedin.com", "x.com", "twitter.com", "github.com", "facebook.com", "instagram.com"} {
		if strings.Contains(l, host) {
			return true
		}
	}
	return false
}
