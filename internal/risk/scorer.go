package risk

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
)

// Category is the traffic-light risk classification of a score.
type Category string

const (
	CategoryGreen  Category = "green"
	CategoryYellow Category = "yellow"
	CategoryRed    Category = "red"
)

// CategoryFor maps a score to its category. Boundaries are exact: 70.0 is
// green, 40.0 is yellow.
func CategoryFor(score float64) Category {
	switch {
	case score >= 70:
		return CategoryGreen
	case score >= 40:
		return CategoryYellow
	default:
		return CategoryRed
	}
}

// ConfidenceFor derives confidence from the score's distance to the
// category boundaries. The medium band overlaps the high band; high wins
// inside it.
func ConfidenceFor(score float64) string {
	switch {
	case score >= 85 || score <= 25:
		return "high"
	case score >= 75 || score <= 35:
		return "medium"
	default:
		return "low"
	}
}

// Prediction is the scorer's output for a single feature record.
type Prediction struct {
	RiskScore    float64  `json:"risk_score"`
	RiskCategory Category `json:"risk_category"`
	Confidence   string   `json:"confidence"`
	TopFactors   []Factor `json:"top_factors"`
}

// Scorer performs inference over feature records. It is immutable after
// construction: the explanation strategy, feature order and encoders are
// resolved once, and concurrent Predict calls share them without locking.
type Scorer struct {
	artifact  *Artifact
	order     []string
	explainer Explainer
	log       *zap.Logger
}

// NewScorer wraps a loaded artifact. The column order is the persisted one
// when available, the generator's canonical order otherwise. The explainer
// strategy is chosen here, not per call: additive attribution when the
// artifact carries training baselines, global-importance fallback otherwise.
func NewScorer(artifact *Artifact, log *zap.Logger) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	order := artifact.FeatureNames
	if len(order) == 0 {
		order = features.CanonicalOrder
	}

	var explainer Explainer
	if len(artifact.Baselines) > 0 {
		explainer = newAttributionExplainer(artifact.Model, order, artifact.Baselines)
	} else {
		explainer = newImportanceExplainer(artifact.Importance, order)
		log.Info("attribution baselines unavailable, explanations fall back to global feature importance")
	}

	return &Scorer{artifact: artifact, order: order, explainer: explainer, log: log}
}

// FeatureOrder returns the column order fed to the model.
func (s *Scorer) FeatureOrder() []string {
	return append([]string(nil), s.order...)
}

// Predict scores each record, clamps to [0,100], classifies and explains.
// It fails with a SchemaError when a record lacks a numeric column the
// persisted feature order requires.
func (s *Scorer) Predict(records []features.Record) ([]Prediction, error) {
	if s.artifact == nil || s.artifact.Model == nil {
		return nil, ErrModelUnavailable
	}

	out := make([]Prediction, 0, len(records))
	for i := range records {
		vec, err := s.vectorize(&records[i])
		if err != nil {
			return nil, err
		}

		score := clampScore(s.artifact.Model.PredictSingle(vec, 0))
		out = append(out, Prediction{
			RiskScore:    math.Round(score*10) / 10,
			RiskCategory: CategoryFor(score),
			Confidence:   ConfidenceFor(score),
			TopFactors:   s.explainer.Explain(vec),
		})
	}
	return out, nil
}

// PredictOne is a convenience wrapper for single-record scoring.
func (s *Scorer) PredictOne(rec features.Record) (Prediction, error) {
	preds, err := s.Predict([]features.Record{rec})
	if err != nil {
		return Prediction{}, err
	}
	return preds[0], nil
}

// vectorize orders a record's values into the model's column layout.
// Categorical columns (either stored as "<name>_encoded" or the bare name)
// go through the training-time encoders; unknown values land in the
// reserved unknown bucket. A legacy artifact without an encoder for a
// column encodes it as 0, which matches the degraded-mode contract.
func (s *Scorer) vectorize(rec *features.Record) ([]float64, error) {
	vec := make([]float64, len(s.order))
	for i, name := range s.order {
		base := strings.TrimSuffix(name, "_encoded")
		if cat, ok := rec.Categorical(base); ok {
			if enc := s.artifact.Encoders[base]; enc != nil {
				vec[i] = float64(enc.Encode(cat))
			}
			continue
		}
		v, ok := rec.Numeric(name)
		if !ok {
			return nil, &SchemaError{Column: name}
		}
		vec[i] = v
	}
	return vec, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// FormatPrediction renders a prediction for logs and CLI output.
func FormatPrediction(p Prediction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk Score: %.1f/100\n", p.RiskScore)
	fmt.Fprintf(&b, "Category: %s\n", strings.ToUpper(string(p.RiskCategory)))
	fmt.Fprintf(&b, "Confidence: %s\n", p.Confidence)
	b.WriteString("Top factors:\n")
	for _, f := range p.TopFactors {
		arrow := "↑"
		if f.Direction == DirectionDecreases {
			arrow = "↓"
		}
		fmt.Fprintf(&b, "  %s %s: %+.2f (value: %.2f)\n", arrow, f.Feature, f.Contribution, f.Value)
	}
	return b.String()
}
