package system

import (
	"errors"
	"time"
	"unicode"

	"github.com/milk9111/folio/contact"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"go.uber.org/zap"
)

const toastDuration = 4 * time.Second

// Submitter starts an asynchronous send and later reports its outcome.
// contact.Dispatcher implements it.
type Submitter interface {
	Submit(msg contact.Message) error
	Poll() (bool, error)
	InFlight() bool
}

// ContactFormSystem edits the contact form from clicks and keys and submits
// it once the send button's press pulse has played.
type ContactFormSystem struct {
	submitter Submitter
	logger    *zap.Logger
}

func NewContactFormSystem(submitter Submitter, logger *zap.Logger) *ContactFormSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactFormSystem{submitter: submitter, logger: logger}
}

func (cs *ContactFormSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	formEntity, form, ok := ecs.Singleton(w, component.ContactFormComponent.Kind())
	if !ok {
		return
	}
	now := w.Now()

	cs.pollResult(w, form)

	if !Shown(w, formEntity) {
		form.Active = component.FieldNone
		form.SendPulse.Cancel()
		return
	}

	for _, evt := range w.Events().Of(ecs.EventButtonClicked) {
		e, ok := evt.Data.(ecs.Entity)
		if !ok {
			continue
		}
		if field, ok := ecs.Get(w, e, component.ContactInputComponent.Kind()); ok {
			form.Active = field.Field
			continue
		}
		if ecs.Has(w, e, component.SendButtonTagComponent.Kind()) && !form.Sending && !form.SendPulse.Pending() {
			form.SendPulse.Arm(now, ClickPulse)
		}
	}

	if _, input, ok := ecs.Singleton(w, component.InputComponent.Kind()); ok {
		applyKeys(form, input)
	}

	if form.SendPulse.Fired(now) {
		cs.submit(w, form)
	}
}

func applyKeys(form *component.ContactForm, input *component.Input) {
	value := form.Value(form.Active)
	if value == nil {
		return
	}
	if input.Backspace && len(*value) > 0 {
		r := []rune(*value)
		*value = string(r[:len(r)-1])
	}
	if input.Enter {
		switch form.Active {
		case component.FieldName:
			form.Active = component.FieldEmail
			return
		case component.FieldEmail:
			form.Active = component.FieldMessage
			return
		}
	}
	for _, r := range input.Runes {
		if unicode.IsPrint(r) {
			*value += string(r)
		}
	}
	if input.Paste != "" {
		*value += sanitizePaste(input.Paste, form.Active == component.FieldMessage)
	}
}

// sanitizePaste drops control characters; only the message keeps newlines.
func sanitizePaste(s string, multiline bool) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == '\n' && multiline:
			out = append(out, r)
		case unicode.IsPrint(r):
			out = append(out, r)
		}
	}
	return string(out)
}

func (cs *ContactFormSystem) submit(w *ecs.World, form *component.ContactForm) {
	if cs.submitter == nil {
		return
	}
	msg := contact.Message{Name: form.Name, Email: form.Email, Message: form.Message}
	err := cs.submitter.Submit(msg)
	switch {
	case errors.Is(err, contact.ErrIncompleteMessage), errors.Is(err, contact.ErrSendInFlight):
		cs.logger.Debug("contact submit ignored", zap.Error(err))
		return
	case err != nil:
		cs.logger.Error("contact submit failed", zap.Error(err))
		showToast(w, "Could not send message", true)
		return
	}
	form.Sending = true
	showToast(w, "Sending...", false)
}

func (cs *ContactFormSystem) pollResult(w *ecs.World, form *component.ContactForm) {
	if cs.submitter == nil || !form.Sending {
		return
	}
	done, err := cs.submitter.Poll()
	if !done {
		return
	}
	form.Sending = false
	w.Events().Push(ecs.Event{Type: ecs.EventContactSent, Data: err})

	if err != nil {
		cs.logger.Error("failed to send email", zap.Error(err))
		showToast(w, "Failed to send message", true)
		return
	}
	form.Name, form.Email, form.Message = "", "", ""
	form.Active = component.FieldNone
	showToast(w, "Message sent!", false)
}

func showToast(w *ecs.World, text string, isErr bool) {
	_, toast, ok := ecs.Singleton(w, component.ToastComponent.Kind())
	if !ok {
		return
	}
	toast.Text = text
	toast.Error = isErr
	toast.Expire.Arm(w.Now(), toastDuration)
}

// ToastSystem clears the toast once it expires.
type ToastSystem struct{}

func NewToastSystem() *ToastSystem {
	return &ToastSystem{}
}

func (ts *ToastSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	_, toast, ok := ecs.Singleton(w, component.ToastComponent.Kind())
	if !ok {
		return
	}
	if toast.Expire.Fired(w.Now()) {
		toast.Text = ""
		toast.Error = false
	}
}
