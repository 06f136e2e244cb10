package gateway

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/mail"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
)

const (
	maxSenderLen          = 32
	defaultSMTPAnalysisTO = 2 * time.Minute
)

var errDangerous = &smtp.SMTPError{
	Code:         554,
	EnhancedCode: smtp.EnhancedCode{5, 7, 1},
	Message:      "Message rejected as dangerous",
}

// SMTPGateway accepts messages relayed by email-to-SMS bridges and analyses
// their text body
type SMTPGateway struct {
	service        Analyzer
	cfg            config.SMTPConfig
	requestTimeout time.Duration
	logger         *zap.Logger
	server         *smtp.Server
}

// NewSMTPGateway creates a new SMTP intake gateway
func NewSMTPGateway(service Analyzer, cfg config.ServerConfig, logger *zap.Logger) *SMTPGateway {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultSMTPAnalysisTO
	}
	return &SMTPGateway{
		service:        service,
		cfg:            cfg.SMTP,
		requestTimeout: timeout,
		logger:         logger,
	}
}

// Name identifies the gateway
func (g *SMTPGateway) Name() string {
	return "smtp"
}

// Start starts the SMTP server in the background
func (g *SMTPGateway) Start() error {
	g.server = smtp.NewServer(&smtpBackend{gateway: g})

	g.server.Addr = g.cfg.ListenAddress
	g.server.Domain = g.cfg.Domain
	g.server.ReadTimeout = 30 * time.Second
	g.server.WriteTimeout = 30 * time.Second
	g.server.MaxMessageBytes = g.cfg.MaxMessageBytes
	g.server.MaxRecipients = 50

	g.logger.Info("SMTP gateway starting",
		zap.String("address", g.cfg.ListenAddress),
		zap.Bool("reject_dangerous", g.cfg.RejectDangerous))

	go func() {
		if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			g.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (g *SMTPGateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Close()
}

// process analyses one relayed message and returns the SMTP reply error, if any
func (g *SMTPGateway) process(sender string, raw []byte) error {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		g.logger.Warn("Failed to parse relayed message", zap.Error(err))
		return nil
	}

	text, err := extractText(msg)
	if err != nil {
		g.logger.Warn("Relayed message has no text content",
			zap.String("sender", sender),
			zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.requestTimeout)
	defer cancel()

	result, err := g.service.Analyze(ctx, core.AnalyzeRequest{
		Message:     text,
		PhoneNumber: senderID(sender, maxSenderLen),
	})
	if err != nil {
		// Analysis failures never block delivery
		g.logger.Error("Failed to analyze relayed message",
			zap.String("sender", sender),
			zap.Error(err))
		return nil
	}

	v := result.Verdict
	g.logger.Info("Processed relayed message",
		zap.String("sender", sender),
		zap.String("tier", string(v.RiskTier)),
		zap.Int("tier_score", v.TierScore),
		zap.Bool("from_cache", result.FromCache))

	if g.cfg.RejectDangerous && v.RiskTier == core.TierDangerous {
		return errDangerous
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	gateway *SMTPGateway
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{gateway: b.gateway}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	gateway *SMTPGateway
	sender  string
}

func (s *smtpSession) Reset() {
	s.sender = ""
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(_ string, _ *smtp.RcptOptions) error {
	return nil
}

func (s *smtpSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.gateway.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}
	return s.gateway.process(s.sender, raw)
}

func (s *smtpSession) Logout() error {
	return nil
}
