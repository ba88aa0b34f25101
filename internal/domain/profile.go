package domain

// ScoredCategory is one interest or work-value dimension with its computed score.
// Lists of ScoredCategory are ordered by Score, highest first, by whoever builds them.
type ScoredCategory struct {
	Component string  `json:"component" yaml:"component"`
	Average   float64 `json:"average" yaml:"average"`
	Score     float64 `json:"score" yaml:"score"`
}

// Response is a single stored quiz answer (a user_responses row).
type Response struct {
	UserID    string  `json:"user_id" yaml:"user_id"`
	QuizType  string  `json:"quiz_type" yaml:"quiz_type"`
	Component string  `json:"component" yaml:"component"`
	Score     float64 `json:"score" yaml:"score"`
}
