package main

import (
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/diarization-pipeline/clients"
	"github.com/maastricht-university/diarization-pipeline/config"
)

// commandContext carries lazily loaded configuration and the logger
// shared by all subcommands.
type commandContext struct {
	configFlag *string
	cfg        *config.Root
	logger     *logrus.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logger: logrus.New()}
}

func (c *commandContext) ensureConfig() (*config.Root, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	if lvl, err := logrus.ParseLevel(cfg.Pipeline.LogLvl); err == nil {
		c.logger.SetLevel(lvl)
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) log(component string) logrus.FieldLogger {
	return c.logger.WithField("component", component)
}

func (c *commandContext) httpClient() (*clients.HTTP, *config.Root, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	return clients.NewHTTP(cfg.Timeout(), cfg.Auth.Token), cfg, nil
}
