package main

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/agrisense/advisor-cli/internal/config"
	"github.com/agrisense/advisor-cli/internal/refdata"
	"github.com/agrisense/advisor-cli/internal/service"
)

// loadStore opens the reference tables, preferring on-disk overrides
// from config over the embedded defaults.
func loadStore(c *config.Config) (*refdata.Store, error) {
	if c.Data.CropsFile != "" {
		store, err := refdata.LoadFiles(c.Data.CropsFile, c.Data.DistrictsFile)
		if err != nil {
			return nil, eris.Wrap(err, "advisor: load data overrides")
		}
		return store, nil
	}
	return refdata.Load()
}

// buildAdvisor wires the advisor the commands talk to. With a remote
// base URL configured the remote service is consulted first and the
// offline engine answers when it is unreachable.
func buildAdvisor(c *config.Config, store *refdata.Store) service.Advisor {
	local := service.NewLocal(store, c.Market.Seed)
	if c.Remote.BaseURL == "" {
		return local
	}

	remote := service.NewRemote(service.RemoteOptions{
		BaseURL:    c.Remote.BaseURL,
		Timeout:    time.Duration(c.Remote.TimeoutSecs) * time.Second,
		MaxRetries: c.Remote.MaxRetries,
		RatePerSec: c.Remote.RatePerSec,
	})
	return service.NewFailover(remote, local)
}

func newAdvisor(c *config.Config) (service.Advisor, error) {
	store, err := loadStore(c)
	if err != nil {
		return nil, err
	}
	return buildAdvisor(c, store), nil
}
