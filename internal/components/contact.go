package components

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"laswell.com/web/internal/contact"
	"laswell.com/web/internal/content"
	"laswell.com/web/internal/middleware"
)

// ContactFormID is the id of the contact form container swapped by htmx.
const ContactFormID = "contact-form"

// ContactFormProps feeds ContactForm.
type ContactFormProps struct {
	Form      contact.Form
	Errors    map[string]string
	CSRFToken string
	Flash     *middleware.Flash
}

var contactFieldLabels = map[string]string{
	contact.FieldName:    "Your Name",
	contact.FieldEmail:   "Email Address",
	contact.FieldSubject: "Subject",
	contact.FieldMessage: "Message",
}

// ContactForm renders the four field contact form with per field errors.
func ContactForm(p ContactFormProps) g.Node {
	return h.Div(h.ID(ContactFormID),
		h.H2(g.Text("Send Us a Message")),
		Flash(p.Flash),
		g.El("form", h.Class("form"),
			h.Method("post"),
			h.Action("/contact"),
			g.Attr("hx-post", "/contact"),
			g.Attr("hx-target", "#"+ContactFormID),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("novalidate", ""),
			csrfInput(p.CSRFToken),
			g.Map(contact.Fields, func(field string) g.Node {
				return contactField(field, p.Form.Get(field), p.Errors[field])
			}),
			SubmitButton(ButtonVariant{Kind: Primary, Uppercase: true}, g.Text("Send Message")),
		),
	)
}

func contactField(field, value, errMsg string) g.Node {
	id := "contact-" + field
	attrs := []g.Node{
		h.ID(id),
		h.Name(field),
		h.Required(),
		g.If(errMsg != "", g.Attr("aria-invalid", "true")),
		g.If(errMsg != "", g.Attr("aria-describedby", id+"-error")),
	}
	var input g.Node
	switch field {
	case contact.FieldMessage:
		input = h.Textarea(append(attrs, h.Class("form__textarea"), h.Rows("6"), g.Text(value))...)
	case contact.FieldEmail:
		input = h.Input(append(attrs, h.Class("form__input"), h.Type("email"), h.AutoComplete("email"), h.Value(value))...)
	default:
		input = h.Input(append(attrs, h.Class("form__input"), h.Type("text"), h.Value(value))...)
	}
	return h.Div(h.Class("form__field"),
		g.El("label", h.Class("form__label"), h.For(id), g.Text(contactFieldLabels[field])),
		input,
		g.If(errMsg != "", h.P(h.ID(id+"-error"), h.Class("form__error"), g.Attr("role", "alert"), g.Text(errMsg))),
	)
}

// ContactInfo renders the address, phone, email and hours panel.
func ContactInfo(items []content.InfoItem) g.Node {
	return h.Div(h.Class("contact-info"),
		h.H2(g.Text("Get in Touch")),
		g.Map(items, func(it content.InfoItem) g.Node {
			return h.Div(h.Class("contact-info__item"),
				h.H3(h.Class("contact-info__label"), g.Text(it.Label)),
				g.Map(it.Lines, func(line string) g.Node {
					if it.Href != "" {
						return h.P(h.A(h.Href(it.Href), g.Text(line)))
					}
					return h.P(g.Text(line))
				}),
			)
		}),
	)
}
