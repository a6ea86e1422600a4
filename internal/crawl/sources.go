// Package crawl discovers new article links per source, diffs them
// against the entry log and dispatches fetch+extract tasks for new
// links only.
package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/daily-almanac/internal/fetch"
)

// Source kinds.
const (
	// KindAPI sources expose a structured JSON listing endpoint.
	KindAPI = "api"
	// KindHTML sources are plain listing pages; candidate links are
	// anchors whose href starts with a configured prefix.
	KindHTML = "html"
)

// SourceSpec describes one listing page and its link-extraction rule.
type SourceSpec struct {
	Name       string `yaml:"name" validate:"required"`
	ListingURL string `yaml:"listing_url" validate:"required,url"`
	Kind       string `yaml:"kind" validate:"required,oneof=api html"`
	// LinkBase is prepended to the relative links found in the listing.
	LinkBase string `yaml:"link_base" validate:"required,url"`
	// HrefPrefix filters anchors for html sources.
	HrefPrefix string `yaml:"href_prefix" validate:"required_if=Kind html"`
}

// sourcesFile is the on-disk sources.yaml shape.
type sourcesFile struct {
	Sources []SourceSpec `yaml:"sources"`
}

// LoadSources reads and validates the source list from a YAML file.
func LoadSources(path string) ([]SourceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources %s: %w", path, err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources %s: %w", path, err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources %s: no sources defined", path)
	}

	validate := validator.New()
	for i, src := range file.Sources {
		if err := validate.Struct(src); err != nil {
			return nil, fmt.Errorf("sources %s: source %d (%s): %w", path, i, src.Name, err)
		}
	}
	return file.Sources, nil
}

// apiListing is the JSON shape of structured listing endpoints.
type apiListing struct {
	Data struct {
		Lists []struct {
			Link string `json:"link"`
		} `json:"lists"`
	} `json:"data"`
}

// listingLinks fetches one listing page and returns the absolute
// candidate links it advertises.
func (c *Crawler) listingLinks(ctx context.Context, src SourceSpec) ([]string, error) {
	result, err := fetch.URL(ctx, src.ListingURL, c.FetchOptions)
	if err != nil {
		return nil, &ListingError{Source: src.Name, Cause: err}
	}

	switch src.Kind {
	case KindAPI:
		var listing apiListing
		if err := json.Unmarshal([]byte(result.HTML), &listing); err != nil {
			return nil, &ListingError{Source: src.Name, Cause: fmt.Errorf("malformed listing JSON: %w", err)}
		}
		links := make([]string, 0, len(listing.Data.Lists))
		for _, item := range listing.Data.Lists {
			if item.Link == "" {
				continue
			}
			links = append(links, src.LinkBase+item.Link)
		}
		return links, nil

	case KindHTML:
		hrefs, err := fetch.ExtractAnchors(result.HTML, src.HrefPrefix)
		if err != nil {
			return nil, &ListingError{Source: src.Name, Cause: err}
		}
		links := make([]string, 0, len(hrefs))
		for _, href := range hrefs {
			links = append(links, src.LinkBase+href)
		}
		return links, nil

	default:
		return nil, &ListingError{Source: src.Name, Cause: fmt.Errorf("unknown source kind %q", src.Kind)}
	}
}
