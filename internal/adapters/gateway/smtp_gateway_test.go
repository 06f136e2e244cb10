package gateway

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/config"
	"github.com/mikey/smishguard/internal/core"
)

const relayedSMS = "From: +5215512345678@sms.example\r\n" +
	"To: inbox@smishguard.example\r\n" +
	"Subject: SMS\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Su paquete está retenido, pague en http://correos-falso.example\r\n"

func newSMTPGateway(fake *fakeAnalyzer, reject bool) *SMTPGateway {
	return NewSMTPGateway(fake, config.ServerConfig{
		SMTP: config.SMTPConfig{RejectDangerous: reject},
	}, zap.NewNop())
}

func TestProcess_Analyzes_Text(t *testing.T) {
	req := require.New(t)
	fake := &fakeAnalyzer{result: &core.AnalysisResult{Verdict: &core.Verdict{RiskTier: core.TierSafe}}}

	err := newSMTPGateway(fake, true).process("+5215512345678@sms.example", []byte(relayedSMS))
	req.NoError(err)
	req.Equal("Su paquete está retenido, pague en http://correos-falso.example", fake.lastRequest.Message)
	req.Equal("+5215512345678", fake.lastRequest.PhoneNumber)
}

func TestProcess_Rejects_Dangerous_When_Enabled(t *testing.T) {
	req := require.New(t)
	fake := &fakeAnalyzer{result: &core.AnalysisResult{Verdict: &core.Verdict{RiskTier: core.TierDangerous}}}

	err := newSMTPGateway(fake, true).process("sender@sms.example", []byte(relayedSMS))
	var smtpErr *smtp.SMTPError
	req.True(errors.As(err, &smtpErr))
	req.Equal(554, smtpErr.Code)

	req.NoError(newSMTPGateway(fake, false).process("sender@sms.example", []byte(relayedSMS)))
}

func TestProcess_Accepts_On_Failure(t *testing.T) {
	req := require.New(t)

	fake := &fakeAnalyzer{err: errors.New("store down")}
	req.NoError(newSMTPGateway(fake, true).process("s@x.example", []byte(relayedSMS)))

	htmlOnly := "Content-Type: text/html\r\n\r\n<p>hola</p>\r\n"
	fake = &fakeAnalyzer{}
	req.NoError(newSMTPGateway(fake, true).process("s@x.example", []byte(htmlOnly)))
	req.Empty(fake.lastRequest.Message)

	req.NoError(newSMTPGateway(fake, true).process("s@x.example", []byte("not a message")))
}

func TestExtractText_Multipart_Base64(t *testing.T) {
	req := require.New(t)
	raw := strings.Join([]string{
		"Content-Type: multipart/alternative; boundary=XYZ",
		"",
		"--XYZ",
		"Content-Type: text/html",
		"",
		"<b>ignored</b>",
		"--XYZ",
		"Content-Type: text/plain; charset=utf-8",
		"Content-Transfer-Encoding: base64",
		"",
		"R2FuYXN0ZSB1biBwcmVtaW8=",
		"--XYZ--",
		"",
	}, "\r\n")

	msg := mustParse(t, raw)
	text, err := extractText(msg)
	req.NoError(err)
	req.Equal("Ganaste un premio", text)
}

func TestExtractText_Quoted_Printable(t *testing.T) {
	req := require.New(t)
	raw := "Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n\r\n" +
		"Verificaci=C3=B3n pendiente\r\n"

	text, err := extractText(mustParse(t, raw))
	req.NoError(err)
	req.Equal("Verificación pendiente", text)
}

func TestSenderID(t *testing.T) {
	req := require.New(t)
	req.Equal("+5215512345678", senderID("+5215512345678@sms.example", 32))
	req.Equal("5551234", senderID("SMS Bridge <5551234@relay.example>", 32))
	req.Equal("abc", senderID("abcdef@x.example", 3))
	req.Equal("", senderID("", 32))
	// Truncation counts runes and never splits one
	req.Equal("ñañ", senderID("ñañañ@relay.example", 3))
	req.True(utf8.ValidString(senderID("ñañañ@relay.example", 3)))
}
