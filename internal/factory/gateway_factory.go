package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/adapters/gateway"
	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
	"github.com/mikey/smishguard/internal/ports"
)

// GatewayFactory creates the intake gateways based on configuration
type GatewayFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalysisService
}

// NewGatewayFactory creates a new gateway factory
func NewGatewayFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalysisService) *GatewayFactory {
	return &GatewayFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateGateways returns the HTTP gateway and, when enabled, the SMTP gateway
func (f *GatewayFactory) CreateGateways() ([]ports.Gateway, error) {
	serverCfg, err := f.cfg.GetServer()
	if err != nil {
		return nil, err
	}

	gateways := []ports.Gateway{
		gateway.NewHTTPGateway(f.service, serverCfg, f.logger.Named("http")),
	}
	if serverCfg.SMTP.Enabled {
		gateways = append(gateways, gateway.NewSMTPGateway(f.service, serverCfg, f.logger.Named("smtp")))
	}
	return gateways, nil
}
