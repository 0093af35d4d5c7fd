package mailgun

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// MessagesAPI sends email through the configured domain.
type MessagesAPI struct {
	client *Client
	domain string
}

// Message is an outbound email assembled from structured fields.
type Message struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string

	// Text is the plain-text body. At least one of Text or HTML must be
	// set.
	Text string
	HTML string

	// Attachments are delivered as regular file attachments.
	Attachments []Attachment

	// Inline attachments can be referenced from HTML bodies by content id.
	Inline []Attachment

	// RecipientVariables holds per-recipient template substitutions keyed
	// by recipient address. Mailgun expands %recipient.key% placeholders
	// from them and sends batch recipients individual copies.
	RecipientVariables map[string]map[string]interface{}

	// Headers adds custom MIME headers to the delivered message.
	Headers map[string]string

	// Variables attaches custom data to the message, available in webhook
	// payloads.
	Variables map[string]string

	Options SendOptions
}

// SendOptions are Mailgun's per-message delivery options.
type SendOptions struct {
	// Tags label the message for analytics. Up to three per message.
	Tags []string

	// Campaign associates the message with a campaign id.
	Campaign string

	// DKIM toggles DKIM signing; nil leaves the domain default.
	DKIM *bool

	// DeliveryTime schedules delivery; the zero value sends immediately.
	DeliveryTime time.Time

	// TestMode accepts the message without delivering it.
	TestMode bool

	Tracking       *bool
	TrackingClicks *bool
	TrackingOpens  *bool

	// RequireTLS rejects delivery unless the receiving server offers TLS.
	RequireTLS *bool

	// SkipVerification skips certificate and hostname verification when
	// establishing the TLS connection to the receiving server.
	SkipVerification *bool
}

// SendMessageResponse is the provider's acknowledgement of an accepted
// message.
type SendMessageResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MIMEMessage is a fully-formed raw email document sent as-is.
type MIMEMessage struct {
	To []string

	// Message is the raw MIME document (headers and body).
	Message io.Reader
}

// NewMIMEMessage wraps a raw MIME document supplied as a string.
func NewMIMEMessage(message string, to ...string) *MIMEMessage {
	return &MIMEMessage{To: to, Message: strings.NewReader(message)}
}

func (m *Message) validate() error {
	if m.From == "" {
		return errors.New("mailgun: message requires a sender address")
	}
	if len(m.To) == 0 {
		return errors.New("mailgun: message requires at least one recipient")
	}
	if m.Text == "" && m.HTML == "" {
		return errors.New("mailgun: message requires a text or HTML body")
	}
	return nil
}

// Send assembles the message into a multipart form and posts it to the
// messages endpoint. The whole body is buffered up front so transport
// retries can replay it.
func (a *MessagesAPI) Send(ctx context.Context, msg *Message) (*SendMessageResponse, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}

	body, contentType, err := msg.encode()
	if err != nil {
		return nil, err
	}

	raw, err := a.client.do(ctx, http.MethodPost, "/"+a.domain+"/messages", contentType, body)
	if err != nil {
		return nil, err
	}
	return parseSendResponse(raw)
}

// SendMIME posts a pre-built MIME document to the messages.mime endpoint.
func (a *MessagesAPI) SendMIME(ctx context.Context, msg *MIMEMessage) (*SendMessageResponse, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("mailgun: MIME message requires at least one recipient")
	}
	if msg.Message == nil {
		return nil, errors.New("mailgun: MIME message requires a payload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("to", strings.Join(msg.To, ", ")); err != nil {
		return nil, fmt.Errorf("mailgun: failed to encode MIME message: %w", err)
	}
	part, err := w.CreateFormFile("message", "message.mime")
	if err != nil {
		return nil, fmt.Errorf("mailgun: failed to encode MIME message: %w", err)
	}
	if _, err := io.Copy(part, msg.Message); err != nil {
		return nil, fmt.Errorf("mailgun: failed to read MIME payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("mailgun: failed to encode MIME message: %w", err)
	}

	raw, err := a.client.do(ctx, http.MethodPost, "/"+a.domain+"/messages.mime", w.FormDataContentType(), buf.Bytes())
	if err != nil {
		return nil, err
	}
	return parseSendResponse(raw)
}

func parseSendResponse(raw json.RawMessage) (*SendMessageResponse, error) {
	var resp SendMessageResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("mailgun: failed to parse send response: %w", err)
	}
	return &resp, nil
}

// encode renders the message as a multipart/form-data body.
func (m *Message) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"from", m.From},
		{"to", strings.Join(m.To, ", ")},
	}
	if len(m.Cc) > 0 {
		fields = append(fields, [2]string{"cc", strings.Join(m.Cc, ", ")})
	}
	if len(m.Bcc) > 0 {
		fields = append(fields, [2]string{"bcc", strings.Join(m.Bcc, ", ")})
	}
	if m.Subject != "" {
		fields = append(fields, [2]string{"subject", m.Subject})
	}
	if m.Text != "" {
		fields = append(fields, [2]string{"text", m.Text})
	}
	if m.HTML != "" {
		fields = append(fields, [2]string{"html", m.HTML})
	}
	fields = append(fields, m.Options.fields()...)

	if len(m.RecipientVariables) > 0 {
		vars, err := json.Marshal(m.RecipientVariables)
		if err != nil {
			return nil, "", fmt.Errorf("mailgun: failed to encode recipient variables: %w", err)
		}
		fields = append(fields, [2]string{"recipient-variables", string(vars)})
	}
	for k, v := range m.Headers {
		fields = append(fields, [2]string{"h:" + k, v})
	}
	for k, v := range m.Variables {
		fields = append(fields, [2]string{"v:" + k, v})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("mailgun: failed to encode message: %w", err)
		}
	}

	for _, att := range m.Attachments {
		if err := writeAttachment(w, "attachment", att); err != nil {
			return nil, "", err
		}
	}
	for _, att := range m.Inline {
		if err := writeAttachment(w, "inline", att); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("mailgun: failed to encode message: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// fields renders delivery options as o:-prefixed form fields.
func (o SendOptions) fields() [][2]string {
	var fields [][2]string
	for _, tag := range o.Tags {
		fields = append(fields, [2]string{"o:tag", tag})
	}
	if o.Campaign != "" {
		fields = append(fields, [2]string{"o:campaign", o.Campaign})
	}
	if o.DKIM != nil {
		fields = append(fields, [2]string{"o:dkim", yesNo(*o.DKIM)})
	}
	if !o.DeliveryTime.IsZero() {
		fields = append(fields, [2]string{"o:deliverytime", o.DeliveryTime.Format(time.RFC1123Z)})
	}
	if o.TestMode {
		fields = append(fields, [2]string{"o:testmode", "yes"})
	}
	if o.Tracking != nil {
		fields = append(fields, [2]string{"o:tracking", yesNo(*o.Tracking)})
	}
	if o.TrackingClicks != nil {
		fields = append(fields, [2]string{"o:tracking-clicks", yesNo(*o.TrackingClicks)})
	}
	if o.TrackingOpens != nil {
		fields = append(fields, [2]string{"o:tracking-opens", yesNo(*o.TrackingOpens)})
	}
	if o.RequireTLS != nil {
		fields = append(fields, [2]string{"o:require-tls", yesNo(*o.RequireTLS)})
	}
	if o.SkipVerification != nil {
		fields = append(fields, [2]string{"o:skip-verification", yesNo(*o.SkipVerification)})
	}
	return fields
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func writeAttachment(w *multipart.Writer, field string, att Attachment) error {
	if err := att.validate(); err != nil {
		return err
	}

	src, name, closeFn, err := att.open()
	if err != nil {
		return fmt.Errorf("mailgun: failed to open attachment: %w", err)
	}
	if closeFn != nil {
		defer closeFn()
	}

	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("mailgun: failed to encode attachment: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("mailgun: failed to read attachment %q: %w", name, err)
	}
	return nil
}
