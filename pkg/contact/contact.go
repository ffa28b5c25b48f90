// Package contact validates the contact form and simulates its submission.
package contact

import (
	"errors"
	"regexp"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/forms"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
)

// Validation errors. Their messages are shown to the visitor as is.
var (
	ErrMissingFields = errors.New("Please fill in all fields.")
	ErrInvalidEmail  = errors.New("Please enter a valid email address.")
)

// SuccessMessage is shown once a submission completes.
const SuccessMessage = "Thank you for your message! I'll get back to you soon."

// SendDelay is the simulated network latency of a submission.
const SendDelay = 2000 * time.Millisecond

// Field names.
const (
	Name    = "name"
	Email   = "email"
	Message = "message"
)

// Fields lists the form fields in document order.
var Fields = []string{Name, Email, Message}

// DOM hooks.
const (
	FormID        = "contact-form"
	SubmitID      = "contact-submit"
	GroupSelector = ".form-group"
	FocusedClass  = "focused"

	SubmitHTML  = `<i class="fas fa-paper-plane"></i> Send Message`
	SendingHTML = `<i class="fas fa-spinner fa-spin"></i> Sending...`
)

// GroupID returns the id of the .form-group wrapping field.
func GroupID(field string) string {
	return field + "-group"
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func isField(name string) bool {
	return name == Name || name == Email || name == Message
}

// Draft is the unsent content of the form.
type Draft struct {
	Name    string
	Email   string
	Message string
}

// Get returns the value of field.
func (d Draft) Get(field string) string {
	switch field {
	case Name:
		return d.Name
	case Email:
		return d.Email
	case Message:
		return d.Message
	}
	return ""
}

// Set updates field. Unknown fields are ignored.
func (d *Draft) Set(field, value string) {
	switch field {
	case Name:
		d.Name = value
	case Email:
		d.Email = value
	case Message:
		d.Message = value
	}
}

func (d Draft) params() map[string]any {
	return map[string]any{Name: d.Name, Email: d.Email, Message: d.Message}
}

// Validate trims d and checks it. Blank fields are reported before the email
// format.
func Validate(d Draft) (Draft, error) {
	cs := forms.Cast(d.params(), Fields...)
	trimmed := Draft{
		Name:    cs.GetString(Name),
		Email:   cs.GetString(Email),
		Message: cs.GetString(Message),
	}
	if !cs.ValidateRequired(Fields...).Valid() {
		return trimmed, ErrMissingFields
	}
	if !cs.ValidateFormat(Email, emailPattern).Valid() {
		return trimmed, ErrInvalidEmail
	}
	return trimmed, nil
}

type sent struct{ draft Draft }

// Controller tracks the form's focus markers and submission state.
// A nil Controller ignores every call.
type Controller struct {
	draft     Draft
	focused   map[string]bool
	sending   bool
	submitted int
	notifier  *Notifier
	log       logging.Logger
}

// New creates a controller that reports through notifier.
func New(notifier *Notifier, log logging.Logger) *Controller {
	if notifier == nil {
		notifier = NewNotifier()
	}
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Controller{
		focused:  make(map[string]bool),
		notifier: notifier,
		log:      log,
	}
}

// Draft returns the current form content.
func (c *Controller) Draft() Draft {
	if c == nil {
		return Draft{}
	}
	return c.draft
}

// Focused reports whether field's group carries the focus marker.
func (c *Controller) Focused(field string) bool {
	return c != nil && c.focused[field]
}

// Sending reports whether a submission is in flight.
func (c *Controller) Sending() bool {
	return c != nil && c.sending
}

// Submitted returns how many submissions completed.
func (c *Controller) Submitted() int {
	if c == nil {
		return 0
	}
	return c.submitted
}

// Notifier returns the banner the controller reports through.
func (c *Controller) Notifier() *Notifier {
	if c == nil {
		return nil
	}
	return c.notifier
}

// Focus marks field's group.
func (c *Controller) Focus(field string) core.Effects {
	var fx core.Effects
	if c == nil || !isField(field) {
		return fx
	}
	c.focused[field] = true
	fx.Do(js.AddClass(js.ID(GroupID(field)), FocusedClass))
	return fx
}

// Blur clears field's marker, but only when value is empty.
func (c *Controller) Blur(field, value string) core.Effects {
	var fx core.Effects
	if c == nil || !isField(field) {
		return fx
	}
	c.draft.Set(field, value)
	if value != "" {
		return fx
	}
	c.focused[field] = false
	fx.Do(js.RemoveClass(js.ID(GroupID(field)), FocusedClass))
	return fx
}

// Input mirrors value into the draft and the control's value attribute.
func (c *Controller) Input(field, value string) core.Effects {
	var fx core.Effects
	if c == nil || !isField(field) {
		return fx
	}
	c.draft.Set(field, value)
	fx.Do(js.SetAttr(js.ID(field), "value", value))
	return fx
}

// Submit validates d and, when valid, starts the simulated send. Submits
// while a send is in flight are ignored.
func (c *Controller) Submit(d Draft) core.Effects {
	var fx core.Effects
	if c == nil || c.sending {
		return fx
	}
	c.draft = d

	trimmed, err := Validate(d)
	if err != nil {
		c.log.Debug("contact form rejected", logging.Err(err))
		return c.notifier.Show(err.Error(), KindError)
	}

	c.sending = true
	submit := js.ID(SubmitID)
	fx.Do(
		js.SetHTML(submit, SendingHTML),
		js.SetProp(submit, "disabled", "true"),
	)
	fx.After(SendDelay, sent{draft: trimmed})
	return fx
}

// HandleInfo completes a send and drives the notification banner.
func (c *Controller) HandleInfo(msg any) (core.Effects, bool) {
	m, ok := msg.(sent)
	if !ok {
		return c.Notifier().HandleInfo(msg)
	}
	if c == nil {
		return core.Effects{}, true
	}

	c.sending = false
	c.submitted++
	c.draft = Draft{}
	c.focused = make(map[string]bool)
	c.log.Info("contact form sent",
		logging.Int("name_len", len(m.draft.Name)),
		logging.Int("message_len", len(m.draft.Message)))

	fx := c.notifier.Show(SuccessMessage, KindSuccess)
	submit := js.ID(SubmitID)
	// reset() restores the value attribute Input mirrored, so blank it first
	for _, f := range Fields {
		fx.Do(js.SetAttr(js.ID(f), "value", ""))
	}
	fx.Do(
		js.ResetForm(js.ID(FormID)),
		js.RemoveClass(GroupSelector, FocusedClass),
		js.SetHTML(submit, SubmitHTML),
		js.SetProp(submit, "disabled", "false"),
	)
	return fx, true
}
