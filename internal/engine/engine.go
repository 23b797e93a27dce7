// Package engine assembles the risk, compliance, execution, and accounting
// components from one validated configuration.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aryannx/hf-sentiment-engine/internal/audit"
	"github.com/aryannx/hf-sentiment-engine/internal/compliance"
	"github.com/aryannx/hf-sentiment-engine/internal/config"
	"github.com/aryannx/hf-sentiment-engine/internal/ledger"
	"github.com/aryannx/hf-sentiment-engine/internal/oms"
	"github.com/aryannx/hf-sentiment-engine/internal/risk"
	"github.com/aryannx/hf-sentiment-engine/pkg/logger"
)

// Engine bundles one configured instance of every component. Construct one
// per run; the simulator it carries is not safe for concurrent use.
type Engine struct {
	Risk       *risk.Engine
	Compliance *compliance.Engine
	Simulator  *oms.Simulator
	Ledger     *ledger.PositionLedger

	Log *zap.Logger
}

// New builds all components from cfg. The log level and audit directory come
// from the configuration; each component logs and audits under its own name.
func New(cfg config.Config, startingCash decimal.Decimal) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log := logger.New(cfg.LogLevel)

	riskLog := log.Named("risk")
	riskEngine, err := risk.NewEngine(cfg.Risk, riskLog, audit.NewSink(cfg.AuditDir, "risk", riskLog))
	if err != nil {
		return nil, fmt.Errorf("risk engine: %w", err)
	}

	complianceLog := log.Named("compliance")
	complianceEngine, err := compliance.NewEngine(cfg.Compliance, complianceLog,
		audit.NewSink(cfg.AuditDir, "compliance", complianceLog))
	if err != nil {
		return nil, fmt.Errorf("compliance engine: %w", err)
	}

	omsLog := log.Named("oms")
	simulator, err := oms.NewSimulator(cfg.Execution, cfg.TCA, omsLog,
		oms.WithAuditSink(audit.NewSink(cfg.AuditDir, "oms", omsLog)))
	if err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}

	return &Engine{
		Risk:       riskEngine,
		Compliance: complianceEngine,
		Simulator:  simulator,
		Ledger:     ledger.NewPositionLedger(startingCash, log.Named("ledger")),
		Log:        log,
	}, nil
}
