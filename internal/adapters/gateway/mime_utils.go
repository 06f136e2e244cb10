package gateway

import (
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
)

// errNoText is returned when a message carries no text/plain content
var errNoText = errors.New("no text content in message")

// extractText returns the text/plain content of an email, descending into
// nested multipart bodies
func extractText(msg *mail.Message) (string, error) {
	text, err := textFromPart(textproto.MIMEHeader(msg.Header), msg.Body)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errNoText
	}
	return text, nil
}

func textFromPart(header textproto.MIMEHeader, body io.Reader) (string, error) {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Unparsable Content-Type, treat the body as plain text
		return readDecoded(header, body)
	}

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		boundary, ok := params["boundary"]
		if !ok {
			return readDecoded(header, body)
		}
		return textFromMultipart(multipart.NewReader(body, boundary))
	case mediaType == "text/plain":
		return readDecoded(header, body)
	default:
		return "", nil
	}
}

func textFromMultipart(mr *multipart.Reader) (string, error) {
	var sb strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}

		text, err := textFromPart(part.Header, part)
		if err != nil {
			continue
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// readDecoded reads body, undoing the Content-Transfer-Encoding
func readDecoded(header textproto.MIMEHeader, body io.Reader) (string, error) {
	switch strings.ToLower(header.Get("Content-Transfer-Encoding")) {
	case "base64":
		body = base64.NewDecoder(base64.StdEncoding, body)
	case "quoted-printable":
		body = quotedprintable.NewReader(body)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// senderID reduces an envelope sender to the identifier stored with the
// verdict, e.g. "+5215512345678@sms.example" becomes "+5215512345678"
func senderID(from string, maxLen int) string {
	if addr, err := mail.ParseAddress(from); err == nil {
		from = addr.Address
	}
	if at := strings.LastIndexByte(from, '@'); at >= 0 {
		from = from[:at]
	}
	if runes := []rune(from); maxLen > 0 && len(runes) > maxLen {
		from = string(runes[:maxLen])
	}
	return from
}
