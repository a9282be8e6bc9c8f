// Package risk wraps the pretrained crop-risk regression model: artifact
// loading, categorical encoding consistent with training, prediction with
// ranked explanations, and the crop-substitution recommendation search.
package risk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitryikh/leaves"
	"go.uber.org/zap"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
)

// ErrModelFormat is returned when a persisted artifact does not contain a
// usable model. Missing auxiliary metadata is not a format error; it is
// reconstructed from defaults.
var ErrModelFormat = errors.New("invalid model artifact")

// ErrModelUnavailable is returned by prediction paths when no model is
// loaded. Reference endpoints keep working regardless.
var ErrModelUnavailable = errors.New("model not loaded")

// SchemaError reports a feature column required by the persisted feature
// order but absent from the record. Silent zero-filling would corrupt
// scores undetectably, so this fails loudly.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("feature record missing required column %q", e.Column)
}

// Predictor is the narrow model contract the scorer depends on. The leaves
// LightGBM ensemble satisfies it; tests substitute stubs.
type Predictor interface {
	PredictSingle(fvals []float64, nEstimators int) float64
	NFeatures() int
}

// Artifact is the canonical in-memory representation of a persisted model:
// the fitted predictor plus training-time encoders, feature order, global
// importances and (optionally) per-feature baselines for attribution.
// Format-variant detection happens once at load, never per prediction.
type Artifact struct {
	Model        Predictor
	FeatureNames []string
	Encoders     map[string]*LabelEncoder
	Importance   map[string]float64
	Baselines    map[string]float64

	// Legacy marks artifacts whose metadata had to be reconstructed from
	// defaults (a degraded mode, not an error).
	Legacy bool
}

// metadata mirrors the JSON file the trainer persists next to the model.
type metadata struct {
	FeatureNames      []string            `json:"feature_names"`
	LabelEncoders     map[string][]string `json:"label_encoders"`
	FeatureImportance map[string]float64  `json:"feature_importance"`
	FeatureBaselines  map[string]float64  `json:"feature_baselines"`
}

// LoadArtifact reads a LightGBM text model and its metadata JSON. A missing
// or unusable model file is an ErrModelFormat failure; a missing metadata
// file yields a legacy artifact with the canonical feature order and no
// encoders, which the scorer accepts in degraded mode.
func LoadArtifact(modelPath, metaPath string, log *zap.Logger) (*Artifact, error) {
	if log == nil {
		log = zap.NewNop()
	}

	model, err := leaves.LGEnsembleFromFile(modelPath, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFormat, err)
	}

	artifact := &Artifact{Model: model}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		log.Warn("model metadata unavailable, reconstructing from defaults",
			zap.String("path", metaPath), zap.Error(err))
		return reconstructLegacy(artifact), nil
	}

	var meta metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		log.Warn("model metadata unreadable, reconstructing from defaults",
			zap.String("path", metaPath), zap.Error(err))
		return reconstructLegacy(artifact), nil
	}

	artifact.FeatureNames = meta.FeatureNames
	artifact.Importance = meta.FeatureImportance
	artifact.Baselines = meta.FeatureBaselines
	artifact.Encoders = make(map[string]*LabelEncoder, len(meta.LabelEncoders))
	for col, classes := range meta.LabelEncoders {
		artifact.Encoders[col] = NewLabelEncoder(classes)
	}

	if len(artifact.FeatureNames) == 0 {
		log.Warn("model metadata lacks feature names, using canonical order")
		artifact.FeatureNames = append([]string(nil), features.CanonicalOrder...)
		artifact.Legacy = true
	}
	return artifact, nil
}

// reconstructLegacy fills missing metadata with best-effort defaults: the
// generator's canonical column order and empty encoder/importance tables.
func reconstructLegacy(a *Artifact) *Artifact {
	a.FeatureNames = append([]string(nil), features.CanonicalOrder...)
	a.Encoders = map[string]*LabelEncoder{}
	a.Legacy = true
	return a
}
