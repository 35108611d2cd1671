package embed

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

const (
	// LibraryURL is the client library that activates embed elements.
	LibraryURL = "https://embed.typeform.com/next/embed.js"

	// DefaultLabel is the button text of a modal embed.
	DefaultLabel = "Open Form"
)

// Option is a named option value, used for bulk updates.
type Option struct {
	Name  string
	Value Value
}

// HiddenField is a named hidden field value, used for bulk updates.
type HiddenField struct {
	Name  string
	Value string
}

// Builder accumulates embed configuration and renders the HTML snippet.
type Builder struct {
	form     Form
	typ      Type
	modal    ModalType
	label    string
	seamless bool
	loadLib  bool
	async    bool
	options  *orderedmap.OrderedMap[string, Value]
	hidden   *orderedmap.OrderedMap[string, string]
}

// New returns a builder for form rendered as typ. It fails with
// ErrInvalidArgument when typ is not a declared Type or form is nil.
func New(form Form, typ Type) (*Builder, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown embed type %q", ErrInvalidArgument, string(typ))
	}
	if form == nil {
		return nil, fmt.Errorf("%w: form reference is required", ErrInvalidArgument)
	}
	return &Builder{
		form:    form,
		typ:     typ,
		modal:   ModalPopup,
		label:   DefaultLabel,
		loadLib: true,
		options: orderedmap.NewOrderedMap[string, Value](),
		hidden:  orderedmap.NewOrderedMap[string, string](),
	}, nil
}

// NewInline is shorthand for an inline embed of a literal identifier.
func NewInline(id string) *Builder {
	return Must(New(ID(id), TypeInline))
}

// NewModal is shorthand for a modal embed of a literal identifier.
func NewModal(id string) *Builder {
	return Must(New(ID(id), TypeModal))
}

// Must panics when err is non-nil. It keeps chains of failable mutators
// readable in code that knows the embed type statically.
func Must(b *Builder, err error) *Builder {
	if err != nil {
		panic(err)
	}
	return b
}

// SetOption upserts an option. Overwriting keeps the option's original
// position; a Null value removes it.
func (b *Builder) SetOption(name string, value Value) *Builder {
	if value.IsNull() {
		b.options.Delete(name)
		return b
	}
	b.options.Set(name, value)
	return b
}

// SetOptions applies entries in order. Without merge the existing options are
// discarded first.
func (b *Builder) SetOptions(entries []Option, merge bool) *Builder {
	if !merge {
		b.options = orderedmap.NewOrderedMap[string, Value]()
	}
	for _, entry := range entries {
		b.SetOption(entry.Name, entry.Value)
	}
	return b
}

// SetHiddenField upserts a hidden field value.
func (b *Builder) SetHiddenField(name, value string) *Builder {
	b.hidden.Set(name, value)
	return b
}

// SetHiddenFields applies fields in order. Without merge the existing hidden
// fields are discarded first.
func (b *Builder) SetHiddenFields(fields []HiddenField, merge bool) *Builder {
	if !merge {
		b.hidden = orderedmap.NewOrderedMap[string, string]()
	}
	for _, field := range fields {
		b.SetHiddenField(field.Name, field.Value)
	}
	return b
}

// SetSeamless hides the form chrome of an inline embed.
func (b *Builder) SetSeamless(on bool) (*Builder, error) {
	if b.typ != TypeInline {
		return b, fmt.Errorf("%w: seamless is only available for inline embeds", ErrBadOperation)
	}
	b.seamless = on
	return b, nil
}

// SetLabel sets the button text of a modal embed.
func (b *Builder) SetLabel(text string) (*Builder, error) {
	if b.typ != TypeModal {
		return b, fmt.Errorf("%w: label is only available for modal embeds", ErrBadOperation)
	}
	b.label = text
	return b, nil
}

// SetModalType selects the overlay style of a modal embed.
func (b *Builder) SetModalType(m ModalType) (*Builder, error) {
	if b.typ != TypeModal {
		return b, fmt.Errorf("%w: modal type is only available for modal embeds", ErrBadOperation)
	}
	if !m.Valid() {
		return b, fmt.Errorf("%w: unknown modal type %q", ErrInvalidArgument, string(m))
	}
	b.modal = m
	return b, nil
}

// SetLoadLib controls whether the library script tag is appended and whether
// it loads asynchronously.
func (b *Builder) SetLoadLib(enabled, async bool) *Builder {
	b.loadLib = enabled
	b.async = async
	return b
}

func (b *Builder) Type() Type {
	return b.typ
}

// ModalType returns the configured modal type. Inline builders report the
// default ModalPopup.
func (b *Builder) ModalType() ModalType {
	return b.modal
}

func (b *Builder) Label() string {
	return b.label
}

func (b *Builder) Seamless() bool {
	return b.seamless
}

// LoadLib reports the library loading flags.
func (b *Builder) LoadLib() (enabled, async bool) {
	return b.loadLib, b.async
}

// FormID resolves the current form identifier.
func (b *Builder) FormID() string {
	return b.form.FormID()
}

// Options returns the options in render order.
func (b *Builder) Options() []Option {
	out := make([]Option, 0, b.options.Len())
	for el := b.options.Front(); el != nil; el = el.Next() {
		out = append(out, Option{Name: el.Key, Value: el.Value})
	}
	return out
}

// HiddenFields returns the hidden fields in render order.
func (b *Builder) HiddenFields() []HiddenField {
	out := make([]HiddenField, 0, b.hidden.Len())
	for el := b.hidden.Front(); el != nil; el = el.Next() {
		out = append(out, HiddenField{Name: el.Key, Value: el.Value})
	}
	return out
}

// Clone returns an independent copy. The form reference is shared.
func (b *Builder) Clone() *Builder {
	cloned := *b
	cloned.options = orderedmap.NewOrderedMap[string, Value]()
	for el := b.options.Front(); el != nil; el = el.Next() {
		cloned.options.Set(el.Key, el.Value)
	}
	cloned.hidden = orderedmap.NewOrderedMap[string, string]()
	for el := b.hidden.Front(); el != nil; el = el.Next() {
		cloned.hidden.Set(el.Key, el.Value)
	}
	return &cloned
}

// HTML renders the embed element followed by the library script tag when
// library loading is enabled.
func (b *Builder) HTML() string {
	var sb strings.Builder

	if b.typ == TypeModal {
		sb.WriteString("<button")
		b.writeAttributes(&sb)
		sb.WriteByte('>')
		sb.WriteString(Escape(b.label))
		sb.WriteString("</button>")
	} else {
		sb.WriteString("<div")
		b.writeAttributes(&sb)
		sb.WriteString("></div>")
	}

	if b.loadLib {
		sb.WriteString(b.LibHTML())
	}
	return sb.String()
}

// String implements fmt.Stringer and matches HTML.
func (b *Builder) String() string {
	return b.HTML()
}

// LibHTML renders the library script tag honouring the async flag. It does
// not consult the enabled flag.
func (b *Builder) LibHTML() string {
	tag := `<script src="` + Escape(LibraryURL) + `"`
	if b.async {
		tag += " async defer"
	}
	return tag + "></script>"
}

func (b *Builder) writeAttributes(sb *strings.Builder) {
	for _, attr := range b.attributes() {
		attr.writeTo(sb)
	}
}

func (b *Builder) attributes() []attribute {
	attrs := make([]attribute, 0, b.options.Len()+5)
	attrs = append(attrs, attribute{name: anchorAttribute(b.typ, b.modal), value: b.form.FormID()})

	for el := b.options.Front(); el != nil; el = el.Next() {
		if attr, ok := el.Value.attribute(AttributeName(el.Key)); ok {
			attrs = append(attrs, attr)
		}
	}

	if b.hidden.Len() > 0 {
		pairs := make([]string, 0, b.hidden.Len())
		for el := b.hidden.Front(); el != nil; el = el.Next() {
			pairs = append(pairs, el.Key+"="+el.Value)
		}
		attrs = append(attrs, attribute{name: attrPrefix + "hidden", value: strings.Join(pairs, ",")})
	}

	if b.typ == TypeInline && b.seamless {
		attrs = append(attrs,
			attribute{name: attrPrefix + "hide-headers", bare: true},
			attribute{name: attrPrefix + "hide-footer", bare: true},
			attribute{name: attrPrefix + "opacity", value: "0"},
		)
	}
	return attrs
}
