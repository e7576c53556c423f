package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisense/advisor-cli/internal/config"
	"github.com/agrisense/advisor-cli/internal/refdata"
	"github.com/agrisense/advisor-cli/internal/service"
)

func TestBuildAdvisorSelection(t *testing.T) {
	t.Parallel()

	store, err := refdata.Load()
	require.NoError(t, err)

	offline := &config.Config{}
	assert.IsType(t, &service.Local{}, buildAdvisor(offline, store))

	online := &config.Config{}
	online.Remote.BaseURL = "http://127.0.0.1:9"
	online.Remote.TimeoutSecs = 1
	online.Remote.MaxRetries = 1
	online.Remote.RatePerSec = 1
	assert.IsType(t, &service.Failover{}, buildAdvisor(online, store))
}

func TestLoadStoreOverrides(t *testing.T) {
	c := &config.Config{}
	store, err := loadStore(c)
	require.NoError(t, err)
	assert.Len(t, store.CropIDs(), 8)

	c.Data.CropsFile = t.TempDir() + "/missing.yaml"
	c.Data.DistrictsFile = t.TempDir() + "/missing.yaml"
	_, err = loadStore(c)
	assert.Error(t, err)
}
