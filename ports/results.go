package ports

import (
	"context"

	"powersim/domain/core"
	"powersim/domain/power"
)

// ResultRepository persists run manifests and aggregated power summaries so
// external reporting collaborators can consume them later. Persistence is
// strictly downstream of the core pipeline; nothing in the simulation reads
// back from storage.
type ResultRepository interface {
	SaveManifest(ctx context.Context, manifest *power.RunManifest) error
	SaveSummaries(ctx context.Context, runID core.RunID, summaries []power.Summary) error
	GetSummaries(ctx context.Context, runID core.RunID) ([]power.Summary, error)
}
