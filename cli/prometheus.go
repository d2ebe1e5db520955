// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/pkg/browser"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

const fsModeWrite = 0o600

// DashboardPanels are the queries of the generated prometheus dashboard.
var DashboardPanels = []string{
	"ledger_height",
	"increase(ledger_txs_accepted[10s])/10",
	"increase(ledger_txs_rejected[10s])/10",
	"increase(chain_txs_failed[10s])/10",
	"increase(chain_executor_blocked[10s])/10",
	"pebble_compactions_active",
}

var openURL = browser.OpenURL

type PrometheusStaticConfig struct {
	Targets []string `yaml:"targets"`
}

type PrometheusScrapeConfig struct {
	JobName       string                    `yaml:"job_name"`
	StaticConfigs []*PrometheusStaticConfig `yaml:"static_configs"`
	MetricsPath   string                    `yaml:"metrics_path"`
}

type PrometheusConfig struct {
	Global struct {
		ScrapeInterval     string `yaml:"scrape_interval"`
		EvaluationInterval string `yaml:"evaluation_interval"`
	} `yaml:"global"`
	ScrapeConfigs []*PrometheusScrapeConfig `yaml:"scrape_configs"`
}

// GeneratePrometheus writes a prometheus config scraping the default chain
// to [file] and returns a dashboard link on the prometheus server at
// [baseURI]. The link is opened in a browser when [open] is set.
func (h *Handler) GeneratePrometheus(baseURI string, file string, open bool) (string, error) {
	uri, err := h.GetDefaultChain()
	if err != nil {
		return "", err
	}
	target, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if target.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidURI, uri)
	}

	var config PrometheusConfig
	config.Global.ScrapeInterval = "1s"
	config.Global.EvaluationInterval = "1s"
	config.ScrapeConfigs = []*PrometheusScrapeConfig{
		{
			JobName:       "counterd",
			StaticConfigs: []*PrometheusStaticConfig{{Targets: []string{target.Host}}},
			MetricsPath:   rpc.MetricsEndpoint,
		},
	}
	b, err := yaml.Marshal(&config)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(file, b, fsModeWrite); err != nil {
		return "", err
	}
	h.log.Info("wrote prometheus config",
		zap.String("file", file),
		zap.String("target", target.Host),
	)

	// Panels are only rendered when numbered in order, which url.Values
	// does not preserve.
	dashboard := baseURI + "/graph"
	for i, panel := range DashboardPanels {
		sep := "&"
		if i == 0 {
			sep = "?"
		}
		dashboard = fmt.Sprintf("%s%sg%d.expr=%s&g%d.tab=0&g%d.range_input=5m", dashboard, sep, i, url.QueryEscape(panel), i, i)
	}
	if open {
		return dashboard, openURL(dashboard)
	}
	utils.Outf("{{green}}prometheus cmd:{{/}} prometheus --config.file=%s\n", file)
	utils.Outf("{{orange}}dashboard:{{/}} %s\n", dashboard)
	return dashboard, nil
}
