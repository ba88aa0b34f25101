// Package advisor runs the recommendation pipeline for one user: quiz
// responses to signature codes, codes to majors, majors to modules.
package advisor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"adviseek/internal/catalog"
	"adviseek/internal/domain"
	"adviseek/internal/matching"
	"adviseek/internal/profile"
)

// ResponseStore loads stored quiz responses.
type ResponseStore interface {
	Responses(ctx context.Context, userID string, quizTypes ...string) ([]domain.Response, error)
}

// Result is the outcome of one recommendation run.
type Result struct {
	UserID           string                      `json:"userId" yaml:"userId"`
	Riasec           []domain.ScoredCategory     `json:"riasec" yaml:"riasec"`
	WorkValues       []domain.ScoredCategory     `json:"workValues" yaml:"workValues"`
	RiasecCode       string                      `json:"riasecCode" yaml:"riasecCode"`
	WorkValueCode    string                      `json:"workValueCode" yaml:"workValueCode"`
	Majors           domain.MajorRecommendations `json:"majors" yaml:"majors"`
	Modules          []domain.Module             `json:"modules" yaml:"modules"`
	GeneratedAt      time.Time                   `json:"generatedAt" yaml:"generatedAt"`
	ProcessingTimeMs int64                       `json:"processingTimeMs" yaml:"processingTimeMs"`
}

type Service struct {
	Store      ResponseStore
	Source     catalog.Source
	MajorLimit int

	now func() time.Time
}

func NewService(store ResponseStore, src catalog.Source, majorLimit int) *Service {
	return &Service{
		Store:      store,
		Source:     src,
		MajorLimit: majorLimit,
		now:        time.Now,
	}
}

// Recommend scores userID's quiz responses and recommends majors and
// modules. A user without responses gets an empty result, not an error.
func (s *Service) Recommend(ctx context.Context, userID string) (*Result, error) {
	now := s.now
	if now == nil {
		now = time.Now
	}
	start := now()

	var quizTypes []string
	for _, k := range profile.Kinds {
		quizTypes = append(quizTypes, k.QuizTypes...)
	}

	responses, err := s.Store.Responses(ctx, userID, quizTypes...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load responses for %s", userID)
	}

	res := &Result{
		UserID:     userID,
		Riasec:     profile.Score(responses, profile.RIASEC),
		WorkValues: profile.Score(responses, profile.WorkValues),
	}
	res.RiasecCode = profile.Signature(responses, profile.RIASEC)
	res.WorkValueCode = profile.Signature(responses, profile.WorkValues)

	mappings, err := s.Source.OccupationMappings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load occupation mappings")
	}
	res.Majors = matching.MatchMajors(mappings, res.RiasecCode, res.WorkValueCode)

	limit := s.MajorLimit
	if limit == 0 {
		limit = catalog.DefaultMajorLimit
	}
	res.Modules, err = catalog.Recommend(ctx, s.Source, res.Majors, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to recommend modules")
	}

	res.GeneratedAt = now().UTC()
	res.ProcessingTimeMs = res.GeneratedAt.Sub(start).Milliseconds()

	log.WithFields(log.Fields{
		"user":       userID,
		"responses":  len(responses),
		"riasec":     res.RiasecCode,
		"work_value": res.WorkValueCode,
		"match_type": res.Majors.MatchType,
		"modules":    len(res.Modules),
	}).Info("recommendation generated")

	return res, nil
}
