package ml

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrainDemoModelIsDeterministic(t *testing.T) {
	a := TrainDemoModel()
	b := TrainDemoModel()

	require.Equal(t, a.Bias, b.Bias)
	require.Equal(t, a.Stumps, b.Stumps)
	require.Equal(t, NumFeatures, a.Features)
	require.Len(t, a.Stumps, boostRounds)
}

func TestModelScoreProbabilityBounds(t *testing.T) {
	model := TrainDemoModel()

	vectors := []FeatureVector{
		{},
		{80, 75, 0, 3, 4, 2, 3, 2},
		{-5, -5, 5, -5, -5, -5, -5, 5},
		{100, 100, 0, 5, 8, 5, 5, 1},
	}
	for _, v := range vectors {
		isRisk, p := model.Score(v)
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 1.0)
		require.Equal(t, p >= 0.5, isRisk)
	}
}

func TestModelScoreSeparatesSyntheticClasses(t *testing.T) {
	model := TrainDemoModel()

	// Deep inside the synthetic positive region vs. deep inside the negative.
	_, risky := model.Score(FeatureVector{-3, -3, 3, 0, 0, 0, -3, 0})
	_, safe := model.Score(FeatureVector{2, 2, -2, 0, 0, 0, 2, 0})

	require.Greater(t, risky, safe)
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model", "dropout_model.json")

	trained := TrainDemoModel()
	require.NoError(t, trained.Save(path))

	loaded, err := LoadModel(path)
	require.NoError(t, err)
	require.Equal(t, trained.Bias, loaded.Bias)
	require.Equal(t, trained.Stumps, loaded.Stumps)

	v := FeatureVector{60, 55, 1, 1, 2, 0, 1, 5}
	_, wantP := trained.Score(v)
	_, gotP := loaded.Score(v)
	require.Equal(t, wantP, gotP)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadModelCorruptArtifact(t *testing.T) {
	dir := t.TempDir()

	garbled := filepath.Join(dir, "garbled.json")
	require.NoError(t, os.WriteFile(garbled, []byte("{not json"), 0o644))
	_, err := LoadModel(garbled)
	require.ErrorIs(t, err, ErrModelCorrupt)

	wrongShape := filepath.Join(dir, "wrong_shape.json")
	require.NoError(t, os.WriteFile(wrongShape, []byte(`{"bias":0,"stumps":[],"features":3}`), 0o644))
	_, err = LoadModel(wrongShape)
	require.ErrorIs(t, err, ErrModelCorrupt)

	badFeature := filepath.Join(dir, "bad_feature.json")
	payload := `{"bias":0,"stumps":[{"feature":99,"threshold":0,"left":0,"right":0}],"features":8}`
	require.NoError(t, os.WriteFile(badFeature, []byte(payload), 0o644))
	_, err = LoadModel(badFeature)
	require.ErrorIs(t, err, ErrModelCorrupt)
}
