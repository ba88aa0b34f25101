package catalog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"adviseek/internal/domain"
	"adviseek/internal/httpx"
)

// HTTPSource reads reference data published under a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Retry   httpx.RetryConfig
}

// NewHTTPSource returns a source for baseURL that tries each request up to
// attempts times.
func NewHTTPSource(baseURL string, attempts int) *HTTPSource {
	retry := httpx.DefaultRetryConfig()
	if attempts > 0 {
		retry.MaxAttempts = attempts
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
		Retry:   retry,
	}
}

func (s *HTTPSource) url(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + path
}

func (s *HTTPSource) get(ctx context.Context, path string, out any) error {
	if err := httpx.GetJSON(ctx, s.Client, s.url(path), out, s.Retry); err != nil {
		return errors.Wrapf(err, "error fetching %s", path)
	}
	return nil
}

func (s *HTTPSource) OccupationMappings(ctx context.Context) ([]domain.OccupationMajorMapping, error) {
	var list []domain.OccupationMajorMapping
	if err := s.get(ctx, OccupationMappingsPath, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *HTTPSource) PrefixMappings(ctx context.Context) (PrefixMap, error) {
	var f mappingsFile
	if err := s.get(ctx, PrefixMappingsPath, &f); err != nil {
		return nil, err
	}
	return f.prefixMap(), nil
}

func (s *HTTPSource) Modules(ctx context.Context, school domain.School) ([]domain.Module, error) {
	var list []domain.Module
	if err := s.get(ctx, ModulesPath(school), &list); err != nil {
		return nil, err
	}
	return list, nil
}
