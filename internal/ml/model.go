package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
)

// Demo training parameters. The fixed seed keeps demo behaviour identical
// across runs and across processes.
const (
	demoSeed      = 42
	demoSamples   = 1000
	boostRounds   = 50
	learningRate  = 0.1
	thresholdBins = 16
)

// ErrModelCorrupt wraps artifact decode failures. Only a missing file is
// recoverable; anything else must abort startup instead of silently
// retraining a different model.
var ErrModelCorrupt = errors.New("model artifact corrupt")

// stump is a depth-1 regression tree contributing to the boosted ensemble.
type stump struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`
}

// Model is a gradient-boosted ensemble of stumps with logistic output.
type Model struct {
	Bias     float64 `json:"bias"`
	Stumps   []stump `json:"stumps"`
	Features int     `json:"features"`
}

// Score returns the predicted class and the probability of the positive
// (high-risk) class for the given feature vector.
func (m *Model) Score(v FeatureVector) (bool, float64) {
	raw := m.Bias
	for _, s := range m.Stumps {
		if v[s.Feature] <= s.Threshold {
			raw += learningRate * s.Left
		} else {
			raw += learningRate * s.Right
		}
	}
	p := sigmoid(raw)
	return p >= 0.5, p
}

// Save writes the model artifact as JSON, creating parent directories.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	return os.WriteFile(path, payload, 0o644)
}

// LoadModel reads a persisted model artifact. A missing file is reported as
// fs.ErrNotExist so callers can fall back to demo training; any other
// failure is fatal and wrapped in ErrModelCorrupt.
func LoadModel(path string) (*Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrModelCorrupt, err)
	}

	var m Model
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCorrupt, err)
	}
	if m.Features != NumFeatures || len(m.Stumps) == 0 {
		return nil, fmt.Errorf("%w: expected %d features, got %d with %d stumps", ErrModelCorrupt, NumFeatures, m.Features, len(m.Stumps))
	}
	for _, s := range m.Stumps {
		if s.Feature < 0 || s.Feature >= NumFeatures {
			return nil, fmt.Errorf("%w: stump references feature %d", ErrModelCorrupt, s.Feature)
		}
	}

	return &m, nil
}

// TrainDemoModel builds the demonstration classifier from a synthetic
// dataset: 1000 samples of standard-normal features where the positive label
// fires when any of four risk thresholds is crossed.
func TrainDemoModel() *Model {
	rng := rand.New(rand.NewSource(demoSeed))

	x := make([]FeatureVector, demoSamples)
	y := make([]float64, demoSamples)
	for i := range x {
		for j := 0; j < NumFeatures; j++ {
			x[i][j] = rng.NormFloat64()
		}
		if x[i][0] < -1 || x[i][1] < -1 || x[i][2] > 1 || x[i][6] < -1 {
			y[i] = 1
		}
	}

	return train(x, y)
}

// train runs gradient boosting with logistic loss over depth-1 trees.
func train(x []FeatureVector, y []float64) *Model {
	n := len(x)
	positive := 0.0
	for _, label := range y {
		positive += label
	}
	prior := clampProbability(positive / float64(n))

	model := &Model{
		Bias:     math.Log(prior / (1 - prior)),
		Features: NumFeatures,
	}

	raw := make([]float64, n)
	for i := range raw {
		raw[i] = model.Bias
	}

	grad := make([]float64, n)
	hess := make([]float64, n)
	candidates := thresholdCandidates(x)

	for round := 0; round < boostRounds; round++ {
		for i := 0; i < n; i++ {
			p := sigmoid(raw[i])
			grad[i] = y[i] - p
			hess[i] = p * (1 - p)
		}

		best := bestStump(x, grad, hess, candidates)
		model.Stumps = append(model.Stumps, best)

		for i := 0; i < n; i++ {
			if x[i][best.Feature] <= best.Threshold {
				raw[i] += learningRate * best.Left
			} else {
				raw[i] += learningRate * best.Right
			}
		}
	}

	return model
}

// bestStump picks the split with the largest reduction in logistic loss,
// scored by the standard gradient/hessian gain. Leaf values are Newton steps.
func bestStump(x []FeatureVector, grad, hess []float64, candidates [][]float64) stump {
	const regularization = 1.0

	totalGrad, totalHess := 0.0, 0.0
	for i := range grad {
		totalGrad += grad[i]
		totalHess += hess[i]
	}

	best := stump{Feature: -1}
	bestGain := math.Inf(-1)

	for feature := 0; feature < NumFeatures; feature++ {
		for _, threshold := range candidates[feature] {
			leftGrad, leftHess := 0.0, 0.0
			for i := range x {
				if x[i][feature] <= threshold {
					leftGrad += grad[i]
					leftHess += hess[i]
				}
			}
			rightGrad := totalGrad - leftGrad
			rightHess := totalHess - leftHess

			gain := leftGrad*leftGrad/(leftHess+regularization) +
				rightGrad*rightGrad/(rightHess+regularization) -
				totalGrad*totalGrad/(totalHess+regularization)

			if gain > bestGain {
				bestGain = gain
				best = stump{
					Feature:   feature,
					Threshold: threshold,
					Left:      leftGrad / (leftHess + regularization),
					Right:     rightGrad / (rightHess + regularization),
				}
			}
		}
	}

	return best
}

// thresholdCandidates returns evenly spaced quantiles per feature.
func thresholdCandidates(x []FeatureVector) [][]float64 {
	candidates := make([][]float64, NumFeatures)
	for feature := 0; feature < NumFeatures; feature++ {
		values := make([]float64, len(x))
		for i := range x {
			values[i] = x[i][feature]
		}
		sort.Float64s(values)

		seen := make(map[float64]struct{}, thresholdBins)
		for bin := 1; bin < thresholdBins; bin++ {
			idx := bin * len(values) / thresholdBins
			if idx >= len(values) {
				idx = len(values) - 1
			}
			value := values[idx]
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			candidates[feature] = append(candidates[feature], value)
		}
	}
	return candidates
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clampProbability(p float64) float64 {
	const eps = 1e-6
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}
