package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/golivefolio/internal/content"
	"github.com/gabrielmiguelok/golivefolio/pkg/contact"
)

// ContactOptions configures the contact section.
type ContactOptions struct {
	Owner content.Owner
	// ShowForm renders the message form
	ShowForm bool
	// Status is announced to assistive technology through a live slot
	Status string
}

type contactItem struct {
	icon, label, value, href string
}

func contactItems(o content.Owner) []contactItem {
	var items []contactItem
	if o.Email != "" {
		items = append(items, contactItem{"fas fa-envelope", "Email", o.Email, "mailto:" + o.Email})
	}
	if o.Phone != "" {
		items = append(items, contactItem{"fas fa-phone", "Phone", o.Phone, "tel:" + strings.ReplaceAll(o.Phone, " ", "")})
	}
	if o.Location != "" {
		items = append(items, contactItem{"fas fa-map-marker-alt", "Location", o.Location, ""})
	}
	return items
}

// ContactItemIDs returns the ids of the contact details rendered for o.
func ContactItemIDs(o content.Owner) []string {
	ids := make([]string, len(contactItems(o)))
	for i := range ids {
		ids[i] = ContactItemID(i)
	}
	return ids
}

// RenderContact generates the contact details and, when enabled, the form.
// Form controls forward focus, blur and input to the server; the submit
// button is replaced by commands while a message is sending.
func RenderContact(opts ContactOptions) string {
	var sb strings.Builder
	sectionOpen(&sb, "contact", "Get In Touch")

	sb.WriteString(`<div class="contact-grid">`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="contact-info">`)
	sb.WriteString("\n")
	for i, item := range contactItems(opts.Owner) {
		value := html.EscapeString(item.value)
		if item.href != "" {
			value = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(item.href), value)
		}
		sb.WriteString(fmt.Sprintf(`<div id="%s" class="contact-item" %s><i class="%s" aria-hidden="true"></i><div><h3>%s</h3><p>%s</p></div></div>`,
			ContactItemID(i), ObserveAttr, item.icon, item.label, value))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	if opts.ShowForm {
		sb.WriteString(fmt.Sprintf(`<div id="%s" class="contact-form-wrapper" %s>`, ContactFormWrapperID, ObserveAttr))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(`<form id="%s" class="contact-form" lv-submit="form:submit" novalidate>`, contact.FormID))
		sb.WriteString("\n")
		renderField(&sb, contact.Name, "Name", `<input type="text" id="name" name="name" class="form-control" autocomplete="name"%s>`)
		renderField(&sb, contact.Email, "Email", `<input type="email" id="email" name="email" class="form-control" autocomplete="email"%s>`)
		renderField(&sb, contact.Message, "Message", `<textarea id="message" name="message" class="form-control" rows="5"%s></textarea>`)
		sb.WriteString(fmt.Sprintf(`<button type="submit" id="%s" class="btn btn-primary">%s</button>`, contact.SubmitID, contact.SubmitHTML))
		sb.WriteString("\n")
		sb.WriteString(`</form>`)
		sb.WriteString("\n")
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<div class="sr-only" role="status" aria-live="polite" data-slot="%s">%s</div>`,
		StatusSlot, html.EscapeString(opts.Status)))
	sb.WriteString("\n")

	sectionClose(&sb)
	return sb.String()
}

// renderField wraps a control in its .form-group. control is a format with
// one verb receiving the live event attributes.
func renderField(sb *strings.Builder, field, label, control string) {
	events := ` lv-focus="form:focus" lv-blur="form:blur" lv-input="form:input" required`
	sb.WriteString(fmt.Sprintf(`<div class="form-group" id="%s">`, contact.GroupID(field)))
	sb.WriteString(fmt.Sprintf(`<label for="%s">%s</label>`, field, label))
	sb.WriteString(fmt.Sprintf(control, events))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
}
