package service

import (
	"time"

	"github.com/omarshaarawi/sleeperstats/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperstats/internal/api/fantasy/fantasytest"
	"github.com/omarshaarawi/sleeperstats/internal/config"
	"github.com/omarshaarawi/sleeperstats/internal/repository/memory"
	"github.com/omarshaarawi/sleeperstats/internal/snapshot"
)

var testNow = time.Date(2025, time.October, 12, 9, 0, 0, 0, time.UTC)

func newTestService(src *fantasytest.Source) *FantasyService {
	return newTestServiceWith(src, &config.Config{}, snapshot.NewStore("."))
}

func newTestServiceWith(src *fantasytest.Source, cfg *config.Config, store *snapshot.Store) *FantasyService {
	api := fantasy.NewAPI(src, memory.NewRepository())
	api.SetClock(func() time.Time { return testNow })
	return NewFantasyService(api, cfg, store)
}
