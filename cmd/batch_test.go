package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisense/advisor-cli/internal/engine"
	"github.com/agrisense/advisor-cli/internal/refdata"
	"github.com/agrisense/advisor-cli/internal/service"
)

func TestReadSamples(t *testing.T) {
	t.Parallel()

	csvData := strings.Join([]string{
		"N,P,K,temperature,humidity,ph,rainfall",
		"90,45,45,26,82,6.2,220",
		"20,60,25,22,60,6.5,80",
		"abc,,45,26,82,6.2,220",
	}, "\n")

	samples, err := readSamples(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, engine.Sample{N: 90, P: 45, K: 45, Temperature: 26, Humidity: 82, PH: 6.2, Rainfall: 220}, samples[0])
	assert.Equal(t, 6.5, samples[1].PH)

	// Malformed cells coerce to zero instead of failing the file.
	assert.Equal(t, 0.0, samples[2].N)
	assert.Equal(t, 0.0, samples[2].P)
	assert.Equal(t, 45.0, samples[2].K)
}

func TestReadSamplesHeaderVariants(t *testing.T) {
	t.Parallel()

	// Case-insensitive header with padding.
	samples, err := readSamples(strings.NewReader("n, p, K, Temperature, HUMIDITY, pH, Rainfall\n1,2,3,4,5,6,7\n"))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, engine.Sample{N: 1, P: 2, K: 3, Temperature: 4, Humidity: 5, PH: 6, Rainfall: 7}, samples[0])

	_, err = readSamples(strings.NewReader("N,P,K\n1,2,3\n"))
	assert.ErrorContains(t, err, "missing column")
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	store, err := refdata.Load()
	require.NoError(t, err)
	advisor := service.NewLocal(store, 7)

	samples := []engine.Sample{
		{N: 90, P: 45, K: 45, Temperature: 26, Humidity: 82, PH: 6.2, Rainfall: 220},
		{},
		{N: 90, P: 45, K: 45, Temperature: 26, Humidity: 82, PH: 6.2, Rainfall: 220},
	}

	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	results, err := runBatch(cmd, advisor, samples, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Input order survives concurrent processing.
	assert.Equal(t, 1, results[0].Row)
	assert.Equal(t, "rice", results[0].Recommendation.Crop)
	assert.Equal(t, "chickpea", results[1].Recommendation.Crop)
	assert.Equal(t, "rice", results[2].Recommendation.Crop)
}

func TestRunBatchEmpty(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())

	results, err := runBatch(cmd, nil, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}
