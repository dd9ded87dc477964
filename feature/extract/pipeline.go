package extract

import (
	"context"

	"go.uber.org/zap"
)

// Extractor is one stage of the pipeline. It reads one document shape and
// enriches the graph held by the State.
type Extractor interface {
	// Name returns the stage name used in logs and errors.
	Name() string

	// Extract runs the stage. Any error is a hard failure for the run.
	Extract(st *State) (Stats, error)
}

// DefaultStages returns every stage in dependency order. Each stage reads
// entities written by the stages before it.
func DefaultStages() []Extractor {
	return []Extractor{
		skillsStage{},
		namesStage{},
		descriptionsStage{},
		itemsStage{},
		classesStage{},
		racesStage{},
		questsStage{},
		traitsStage{},
		deedsStage{},
		allegiancesStage{},
		factionsStage{},
		currenciesStage{},
		vendorsStage{},
		bartersStage{},
		npcsStage{},
		valueTablesStage{},
	}
}

// Pipeline runs stages one after another on a single State.
type Pipeline struct {
	stages []Extractor
	logger *zap.Logger
}

// NewPipeline creates a pipeline over stages.
func NewPipeline(logger *zap.Logger, stages ...Extractor) *Pipeline {
	return &Pipeline{stages: stages, logger: logger}
}

// Run executes every stage in order and stops at the first failure.
// Cancellation is only observed between stages.
func (p *Pipeline) Run(ctx context.Context, st *State) error {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats, err := stage.Extract(st)
		if err != nil {
			return stageErr(stage.Name(), err)
		}
		p.logger.Info("stage finished",
			zap.String("stage", stage.Name()),
			zap.Int("created", stats.Created),
			zap.Int("enriched", stats.Enriched),
			zap.Int("skipped", stats.Skipped),
		)
	}
	return nil
}
