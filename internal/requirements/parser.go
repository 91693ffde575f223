// Package requirements extracts structured skill requirements from free-text
// staffing requests via an external parsing service.
package requirements

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"skill-matrix/internal/config"
)

var ErrParserUnavailable = errors.New("requirement parser service unavailable")

// ParsedRequirement is one requirement extracted from free text. Names are
// raw as returned by the parser; the caller maps them onto the taxonomy.
type ParsedRequirement struct {
	SkillName            string   `json:"skill"`
	SubSkillName         string   `json:"subskill"`
	MinExperience        *float64 `json:"min_experience_years"`
	MaxExperience        *float64 `json:"max_experience_years"`
	MinProficiency       *int     `json:"min_proficiency"`
	RequireCertification bool     `json:"certification_required"`
}

type Parser interface {
	Parse(ctx context.Context, text string) ([]ParsedRequirement, error)
}

type HTTPParser struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPParser(cfg config.ParserConfig) *HTTPParser {
	return &HTTPParser{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *HTTPParser) Parse(ctx context.Context, text string) ([]ParsedRequirement, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParserUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrParserUnavailable, resp.StatusCode)
	}

	var out struct {
		Requirements []ParsedRequirement `json:"requirements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParserUnavailable, err)
	}
	return out.Requirements, nil
}
