// Package js provides client-side DOM commands for golivefolio.
// Commands are pushed to the browser in a "js" event and executed in order
// by the embedded client without another server roundtrip.
package js

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Op identifies a DOM operation understood by the client.
type Op string

const (
	OpAddClass    Op = "add_class"
	OpRemoveClass Op = "remove_class"
	OpToggleClass Op = "toggle_class"
	OpSetAttr     Op = "set_attr"
	OpSetStyle    Op = "set_style"
	OpSetText     Op = "set_text"
	OpSetHTML     Op = "set_html"
	OpSetProp     Op = "set_prop"
	OpAppendHTML  Op = "append_html"
	OpRemove      Op = "remove"
	OpResetForm   Op = "reset_form"
	OpScrollTo    Op = "scroll_to"
	OpPushState   Op = "push_state"
	OpSetFavicon  Op = "set_favicon"
	OpStore       Op = "store"
)

// Command is a single DOM operation.
// Target is a CSS selector; an empty target addresses the document element
// for attributes and the window for scroll/history operations.
type Command struct {
	Op     Op     `json:"op" msgpack:"op"`
	Target string `json:"to,omitempty" msgpack:"to,omitempty"`
	Name   string `json:"name,omitempty" msgpack:"name,omitempty"`
	Value  string `json:"value,omitempty" msgpack:"value,omitempty"`
}

// String returns a compact representation used in logs and test failures.
func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Op))
	sb.WriteString("(")
	sb.WriteString(c.Target)
	if c.Name != "" {
		sb.WriteString(", ")
		sb.WriteString(c.Name)
	}
	if c.Value != "" {
		sb.WriteString(", ")
		sb.WriteString(strconv.Quote(c.Value))
	}
	sb.WriteString(")")
	return sb.String()
}

// Commands holds a sequence of commands executed in order.
type Commands []Command

// Payload returns the push payload for the "js" event.
func (cs Commands) Payload() map[string]any {
	return map[string]any{"ops": []Command(cs)}
}

// MarshalJSON encodes a nil sequence as an empty array.
func (cs Commands) MarshalJSON() ([]byte, error) {
	if cs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Command(cs))
}

// Filter returns the commands matching op.
func (cs Commands) Filter(op Op) Commands {
	var out Commands
	for _, c := range cs {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first command with op on target.
func (cs Commands) Find(op Op, target string) (Command, bool) {
	for _, c := range cs {
		if c.Op == op && c.Target == target {
			return c, true
		}
	}
	return Command{}, false
}

// ID returns the selector for an element id.
func ID(id string) string {
	return "#" + id
}

// AddClass adds a CSS class to every element matching selector.
func AddClass(selector, class string) Command {
	return Command{Op: OpAddClass, Target: selector, Name: class}
}

// RemoveClass removes a CSS class from every element matching selector.
func RemoveClass(selector, class string) Command {
	return Command{Op: OpRemoveClass, Target: selector, Name: class}
}

// ToggleClass flips a CSS class on every element matching selector.
func ToggleClass(selector, class string) Command {
	return Command{Op: OpToggleClass, Target: selector, Name: class}
}

// SetAttr sets an attribute. An empty selector targets the document element.
func SetAttr(selector, name, value string) Command {
	return Command{Op: OpSetAttr, Target: selector, Name: name, Value: value}
}

// SetStyle sets an inline style property (CSS property name, kebab-case).
func SetStyle(selector, property, value string) Command {
	return Command{Op: OpSetStyle, Target: selector, Name: property, Value: value}
}

// SetText replaces the text content of an element.
func SetText(selector, text string) Command {
	return Command{Op: OpSetText, Target: selector, Value: text}
}

// SetHTML replaces the inner HTML of an element.
func SetHTML(selector, html string) Command {
	return Command{Op: OpSetHTML, Target: selector, Value: html}
}

// SetProp sets a DOM property such as disabled or value.
func SetProp(selector, name, value string) Command {
	return Command{Op: OpSetProp, Target: selector, Name: name, Value: value}
}

// AppendHTML appends markup to an element.
func AppendHTML(selector, html string) Command {
	return Command{Op: OpAppendHTML, Target: selector, Value: html}
}

// Remove detaches every element matching selector.
func Remove(selector string) Command {
	return Command{Op: OpRemove, Target: selector}
}

// ResetForm resets a form's controls.
func ResetForm(selector string) Command {
	return Command{Op: OpResetForm, Target: selector}
}

// ScrollTo scrolls the window smoothly to top.
func ScrollTo(top float64) Command {
	return Command{Op: OpScrollTo, Name: "smooth", Value: strconv.FormatFloat(top, 'f', -1, 64)}
}

// PushState updates the URL fragment without a navigation.
func PushState(url string) Command {
	return Command{Op: OpPushState, Value: url}
}

// SetFavicon replaces the page icon href, creating the link when missing.
func SetFavicon(href string) Command {
	return Command{Op: OpSetFavicon, Name: "image/svg+xml", Value: href}
}

// Store writes a key into the browser's local storage.
func Store(key, value string) Command {
	return Command{Op: OpStore, Name: key, Value: value}
}
