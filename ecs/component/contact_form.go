package component

import "github.com/milk9111/folio/common"

type ContactField int

const (
	FieldNone ContactField = iota
	FieldName
	FieldEmail
	FieldMessage
)

func (f ContactField) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldMessage:
		return "message"
	default:
		return "none"
	}
}

type ContactForm struct {
	Name    string
	Email   string
	Message string
	Active  ContactField
	Sending bool
	// SendPulse delays the submit until the press animation has played.
	SendPulse common.Deadline
}

// Value returns a pointer to the text of field f.
func (c *ContactForm) Value(f ContactField) *string {
	switch f {
	case FieldName:
		return &c.Name
	case FieldEmail:
		return &c.Email
	case FieldMessage:
		return &c.Message
	default:
		return nil
	}
}

var ContactFormComponent = NewComponent[ContactForm]()

// ContactInput marks a clickable text field of the contact form.
type ContactInput struct {
	Field ContactField
}

var ContactInputComponent = NewComponent[ContactInput]()
