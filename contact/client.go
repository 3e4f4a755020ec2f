package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const sendPath = "/api/v1.0/email/send"

// Sender delivers a message. Implementations may block.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type payload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// StatusError is a non-2xx reply from EmailJS.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("contact: emailjs status %d: %s", e.Code, e.Body)
}

// Temporary reports whether retrying might succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

type Client struct {
	cfg     Config
	http    *http.Client
	logger  *zap.Logger
	backoff func() backoff.BackOff
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBackOff replaces the retry schedule. The factory runs once per Send.
func WithBackOff(fn func() backoff.BackOff) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.backoff = fn
		}
	}
}

func NewClient(cfg Config, opts ...ClientOption) *Client {
	cfg.applyDefaults()
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: zap.NewNop(),
		backoff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Config() Config {
	return c.cfg
}

// Send posts msg to EmailJS, retrying network failures, 429 and 5xx replies.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	msg = msg.Trimmed()

	body, err := json.Marshal(payload{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.PublicKey,
		TemplateParams: map[string]string{
			"name":     msg.Name,
			"email":    msg.Email,
			"message":  msg.Message,
			"to_email": c.cfg.ToEmail,
		},
	})
	if err != nil {
		return fmt.Errorf("contact: encode payload: %w", err)
	}

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := c.post(ctx, body)
		if err != nil {
			c.logger.Debug("emailjs attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(c.backoff()),
		backoff.WithMaxTries(c.cfg.MaxTries),
	)
	if err != nil {
		return fmt.Errorf("contact: send after %d attempts: %w", attempt, err)
	}
	c.logger.Info("contact message sent", zap.String("from", msg.Email))
	return nil
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+sendPath, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("contact: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	statusErr := &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(text))}
	if !statusErr.Temporary() {
		return backoff.Permanent(statusErr)
	}
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 && secs <= 5 {
		return backoff.RetryAfter(secs)
	}
	return statusErr
}

// Dispatcher runs one send at a time off the caller's goroutine and reports
// each outcome on Results.
type Dispatcher struct {
	sender   Sender
	timeout  time.Duration
	results  chan error
	inFlight bool
	done     chan struct{}
}

func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		sender:  sender,
		timeout: timeout,
		results: make(chan error, 1),
	}
}

// Submit starts a send. It must be called from a single goroutine, the same
// one that drains Poll.
func (d *Dispatcher) Submit(msg Message) error {
	if d.inFlight {
		return ErrSendInFlight
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	d.inFlight = true
	done := make(chan struct{})
	d.done = done
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.results <- d.sender.Send(ctx, msg.Trimmed())
	}()
	return nil
}

func (d *Dispatcher) InFlight() bool {
	return d.inFlight
}

// Poll reports whether a send has finished, and its outcome, without
// blocking.
func (d *Dispatcher) Poll() (bool, error) {
	select {
	case err := <-d.results:
		d.inFlight = false
		return true, err
	default:
		return false, nil
	}
}

// Wait blocks until the pending send, if any, has finished and returns its
// outcome.
func (d *Dispatcher) Wait() (bool, error) {
	if !d.inFlight {
		return false, nil
	}
	<-d.done
	return d.Poll()
}
