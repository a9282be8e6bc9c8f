package risk

import (
	"context"

	"github.com/DilshodbekIkromov/agrorisk-model/internal/features"
)

// Metrics are the held-out validation metrics a trainer reports.
type Metrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// Trainer is the narrow contract with the external retraining collaborator:
// fit a regression on a labeled feature table and persist an artifact the
// scorer can reload. The training loop itself lives outside this service;
// the core only consumes what the trainer persists.
type Trainer interface {
	Train(ctx context.Context, records []features.Record, target []float64) (*Artifact, Metrics, error)
}
