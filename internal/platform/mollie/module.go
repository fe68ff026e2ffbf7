package mollie

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/mollie-ideal/pkg/config"
)

// NewFromConfig builds the client from the mollie config section.
func NewFromConfig(cfg *cfgpkg.Config, log *zap.SugaredLogger) *Client {
	if cfg.Mollie.TestMode {
		log.Infow("mollie client in test mode")
	}
	return NewClient(&Options{
		Endpoint:   cfg.Mollie.Endpoint,
		TestMode:   cfg.Mollie.TestMode,
		HTTPClient: &http.Client{Timeout: cfg.Mollie.Timeout},
	}, log)
}

var Module = fx.Options(
	fx.Provide(NewFromConfig),
)
