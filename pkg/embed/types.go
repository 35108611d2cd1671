package embed

import (
	"fmt"
	"strings"
)

// Type selects how the form is placed on the page.
type Type string

const (
	// TypeInline renders the form in page flow inside a container element.
	TypeInline Type = "inline"
	// TypeModal renders a button that opens the form in an overlay.
	TypeModal Type = "modal"
)

// Valid reports whether t is one of the declared embed types.
func (t Type) Valid() bool {
	switch t {
	case TypeInline, TypeModal:
		return true
	default:
		return false
	}
}

// ParseType normalises raw and validates it as an embed type.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown embed type %q", ErrInvalidArgument, raw)
	}
	return t, nil
}

// ModalType selects the overlay style of a modal embed.
type ModalType string

const (
	// ModalPopup is the standard centred overlay.
	ModalPopup ModalType = "popup"
	// ModalSlider slides the form in from the page edge.
	ModalSlider ModalType = "slider"
	// ModalPopover opens the form in a small floating panel.
	ModalPopover ModalType = "popover"
)

// ModalTypes lists the declared modal types in their canonical order.
func ModalTypes() []ModalType {
	return []ModalType{ModalPopup, ModalSlider, ModalPopover}
}

// Valid reports whether m is one of the declared modal types.
func (m ModalType) Valid() bool {
	switch m {
	case ModalPopup, ModalSlider, ModalPopover:
		return true
	default:
		return false
	}
}

// ParseModalType normalises raw and validates it as a modal type.
func ParseModalType(raw string) (ModalType, error) {
	m := ModalType(strings.ToLower(strings.TrimSpace(raw)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown modal type %q", ErrInvalidArgument, raw)
	}
	return m, nil
}

// anchorAttribute names the attribute that activates the embed element.
func anchorAttribute(t Type, m ModalType) string {
	if t == TypeInline {
		return attrPrefix + "widget"
	}
	switch m {
	case ModalSlider:
		return attrPrefix + "slider"
	case ModalPopover:
		return attrPrefix + "popover"
	default:
		return attrPrefix + "popup"
	}
}
