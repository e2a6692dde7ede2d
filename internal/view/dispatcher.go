package view

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/diogo/ixview/internal/errors"
	"github.com/diogo/ixview/internal/models"
	"github.com/diogo/ixview/internal/render"
)

// MissingPolicy decides how the dispatcher treats a message that lacks
// content, a type, or a payload field its view reads. Unknown types are
// not missing data: they always render through the fallback view.
type MissingPolicy string

const (
	// PolicyLenient renders what is there: nil content and untyped
	// content use the plain-text view, missing fields read as "".
	PolicyLenient MissingPolicy = "lenient"
	// PolicyReport returns an error and no frame.
	PolicyReport MissingPolicy = "report"
	// PolicyVisible renders the error view in place of the message.
	PolicyVisible MissingPolicy = "visible"
)

// ParseMissingPolicy parses a policy name (case-insensitive).
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyLenient, PolicyReport, PolicyVisible:
		return p, nil
	}
	return "", apperrors.NewConfigError("missing_policy", s)
}

// Select maps a content to the view that renders it. Untyped content goes to
// the plain-text view and unrecognized types to the fallback.
func Select(c *models.Content) Name {
	if c == nil || !c.HasType() {
		return ViewPlainText
	}
	switch c.Type {
	case models.ContentCommand:
		return ViewAssistant
	case models.ContentAutonomous:
		return ViewAutonomousMode
	case models.ContentAuthorize:
		return ViewAuthorize
	case models.ContentAuthRequest:
		return ViewAuthRequest
	case models.ContentExecuted:
		return ViewExecute
	case models.ContentExecuteError:
		return ViewExecuteError
	case models.ContentFeedback:
		return ViewFeedback
	case models.ContentFeedbackRequest:
		return ViewFeedbackRequest
	case models.ContentThink:
		return ViewThink
	case models.ContentThought:
		return ViewThought
	case models.ContentSystem:
		return ViewSystem
	default:
		return ViewFallback
	}
}

// Dispatcher renders messages into frames. It holds no per-message state and
// is safe for concurrent use.
type Dispatcher struct {
	layout Layout
	policy MissingPolicy
	logger *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLayout overrides the row geometry.
func WithLayout(layout Layout) Option {
	return func(d *Dispatcher) {
		d.layout = layout
	}
}

// WithMissingPolicy sets the missing-data policy.
func WithMissingPolicy(policy MissingPolicy) Option {
	return func(d *Dispatcher) {
		d.policy = policy
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a Dispatcher with the default layout and the lenient
// policy.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		layout: DefaultLayout(),
		policy: PolicyLenient,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the configured missing-data policy.
func (d *Dispatcher) Policy() MissingPolicy {
	return d.policy
}

// Render renders msg as one frame under mode. The chosen view receives
// msg.Content itself; the message is never modified.
func (d *Dispatcher) Render(msg models.Message, mode render.ColorMode) (Frame, error) {
	frame := Frame{
		MessageID:  msg.ID,
		CreatedAt:  msg.CreatedAt,
		Avatar:     AvatarFor(msg),
		Layout:     d.layout,
		Background: render.BubbleBackground(mode),
		Content:    msg.Content,
	}

	if err := d.checkMissing(msg); err != nil {
		d.logger.Debug("message has missing data",
			zap.String("message_id", msg.ID),
			zap.String("policy", string(d.policy)),
			zap.Error(err))

		switch d.policy {
		case PolicyReport:
			return Frame{}, fmt.Errorf("message %q: %w", msg.ID, err)
		case PolicyVisible:
			frame.View = ViewError
			frame.Body = errorView(err.Error())
			return frame, nil
		}
	}

	if msg.Content == nil {
		frame.View = ViewPlainText
		frame.Body = Body{Lines: []Line{{Kind: KindPlain}}}
		return frame, nil
	}

	frame.View = Select(msg.Content)
	if frame.View == ViewFallback {
		d.logger.Debug("unknown content type, using fallback view",
			zap.String("message_id", msg.ID),
			zap.String("type", string(msg.Content.Type)))
	}
	frame.Body = leafViews[frame.View](msg.Content)
	return frame, nil
}

// checkMissing returns the first missing-data problem of msg, or nil.
// Under the lenient policy nothing is checked.
func (d *Dispatcher) checkMissing(msg models.Message) error {
	if d.policy == PolicyLenient {
		return nil
	}
	if msg.Content == nil {
		return apperrors.ErrMissingContent
	}
	if !msg.Content.HasType() {
		return apperrors.ErrMissingType
	}
	if missing := msg.Content.MissingFields(); len(missing) > 0 {
		return apperrors.NewPayloadError(string(msg.Content.Type), missing[0])
	}
	return nil
}

// RenderAll renders every message in order. Under the report policy,
// messages that fail are skipped and their errors joined into the returned
// error; the frames of the others are still returned.
func (d *Dispatcher) RenderAll(msgs []models.Message, mode render.ColorMode) ([]Frame, error) {
	frames := make([]Frame, 0, len(msgs))
	var errs []error
	for _, msg := range msgs {
		frame, err := d.Render(msg, mode)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		frames = append(frames, frame)
	}
	return frames, errors.Join(errs...)
}
