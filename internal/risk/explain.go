package risk

import (
	"math"
	"sort"
)

// Factor directions. The importance fallback cannot know a direction and
// reports "increases" for every factor; callers must treat those as
// best-effort, not authoritative.
const (
	DirectionIncreases = "increases"
	DirectionDecreases = "decreases"
)

const topFactorCount = 5

// Factor is one ranked explanation entry: a feature, its signed
// contribution to the prediction, and the feature's raw value.
type Factor struct {
	Feature      string  `json:"feature"`
	Contribution float64 `json:"contribution"`
	Direction    string  `json:"direction"`
	Value        float64 `json:"value"`
}

// Explainer ranks the features driving a single prediction. The strategy
// is fixed at scorer construction, not branched per call.
type Explainer interface {
	Explain(vec []float64) []Factor
}

// attributionExplainer produces per-prediction additive attributions by
// resetting each feature to its training-time baseline and measuring the
// prediction delta. Positive contribution means the observed value pushes
// the score above the baseline prediction.
type attributionExplainer struct {
	model     Predictor
	names     []string
	baselines []float64 // aligned with names; NaN where no baseline exists
}

func newAttributionExplainer(model Predictor, names []string, baselines map[string]float64) *attributionExplainer {
	aligned := make([]float64, len(names))
	for i, name := range names {
		if b, ok := baselines[name]; ok {
			aligned[i] = b
		} else {
			aligned[i] = math.NaN()
		}
	}
	return &attributionExplainer{model: model, names: names, baselines: aligned}
}

func (e *attributionExplainer) Explain(vec []float64) []Factor {
	pred := e.model.PredictSingle(vec, 0)
	scratch := make([]float64, len(vec))

	factors := make([]Factor, 0, len(vec))
	for i := range vec {
		if math.IsNaN(e.baselines[i]) || vec[i] == e.baselines[i] {
			continue
		}
		copy(scratch, vec)
		scratch[i] = e.baselines[i]
		contrib := pred - e.model.PredictSingle(scratch, 0)
		if contrib == 0 {
			continue
		}
		direction := DirectionIncreases
		if contrib < 0 {
			direction = DirectionDecreases
		}
		factors = append(factors, Factor{
			Feature:      e.names[i],
			Contribution: math.Round(contrib*100) / 100,
			Direction:    direction,
			Value:        vec[i],
		})
	}

	sort.SliceStable(factors, func(a, b int) bool {
		return math.Abs(factors[a].Contribution) > math.Abs(factors[b].Contribution)
	})
	if len(factors) > topFactorCount {
		factors = factors[:topFactorCount]
	}
	return factors
}

// importanceExplainer is the static fallback used when no attribution
// baselines were persisted: features ranked by the model's global gain
// importance, normalized to percent of total gain.
type importanceExplainer struct {
	names  []string
	ranked []Factor // precomputed ranking template; Value filled per call
	index  map[string]int
}

func newImportanceExplainer(importance map[string]float64, names []string) *importanceExplainer {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	total := 0.0
	for _, v := range importance {
		total += v
	}
	if total == 0 {
		total = 1
	}

	ranked := make([]Factor, 0, len(importance))
	for name, gain := range importance {
		if gain <= 0 {
			continue
		}
		ranked = append(ranked, Factor{
			Feature:      name,
			Contribution: math.Round(gain/total*100*10) / 10,
			Direction:    DirectionIncreases,
		})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Contribution != ranked[b].Contribution {
			return ranked[a].Contribution > ranked[b].Contribution
		}
		return ranked[a].Feature < ranked[b].Feature
	})
	if len(ranked) > topFactorCount {
		ranked = ranked[:topFactorCount]
	}

	return &importanceExplainer{names: names, ranked: ranked, index: index}
}

func (e *importanceExplainer) Explain(vec []float64) []Factor {
	out := make([]Factor, len(e.ranked))
	copy(out, e.ranked)
	for i := range out {
		if idx, ok := e.index[out[i].Feature]; ok && idx < len(vec) {
			out[i].Value = vec[idx]
		}
	}
	return out
}
