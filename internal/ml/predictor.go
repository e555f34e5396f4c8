package ml

import (
	"errors"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
)

// Predictor wraps the shared classifier model. The model is loaded (or
// trained) exactly once on first use and is immutable afterwards, so
// concurrent scoring needs no further locking.
type Predictor struct {
	modelPath string
	logger    zerolog.Logger

	once  sync.Once
	model *Model
	err   error
}

// NewPredictor creates a predictor that will load its model from modelPath
// on first use, training the demo model when no artifact exists.
func NewPredictor(modelPath string, logger zerolog.Logger) *Predictor {
	return &Predictor{
		modelPath: modelPath,
		logger:    logger.With().Str("component", "risk_predictor").Logger(),
	}
}

// Score returns the predicted class and probability of high risk for the
// given feature vector.
func (p *Predictor) Score(v FeatureVector) (bool, float64, error) {
	p.once.Do(p.initialize)
	if p.err != nil {
		return false, 0, p.err
	}
	class, prob := p.model.Score(v)
	return class, prob, nil
}

// Warmup forces model initialisation, surfacing artifact errors at startup
// instead of on the first prediction request.
func (p *Predictor) Warmup() error {
	p.once.Do(p.initialize)
	return p.err
}

func (p *Predictor) initialize() {
	model, err := LoadModel(p.modelPath)
	switch {
	case err == nil:
		p.logger.Info().Str("path", p.modelPath).Int("stumps", len(model.Stumps)).Msg("loaded persisted risk model")
		p.model = model
	case errors.Is(err, fs.ErrNotExist):
		p.logger.Warn().Str("path", p.modelPath).Msg("model artifact absent, training demo model")
		p.model = TrainDemoModel()
	default:
		// Corrupt or incompatible artifact: fail loudly rather than
		// silently serving predictions from a freshly trained model.
		p.logger.Error().Err(err).Str("path", p.modelPath).Msg("failed to load risk model")
		p.err = err
	}
}
