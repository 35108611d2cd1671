package embed

import "strings"

const attrPrefix = "data-tf-"

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape applies HTML attribute escaping to s.
func Escape(s string) string {
	return attrEscaper.Replace(s)
}

// AttributeName returns the data attribute emitted for an option name,
// e.g. "hideHeaders" becomes "data-tf-hide-headers".
func AttributeName(option string) string {
	return attrPrefix + kebab(option)
}

func kebab(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

type attribute struct {
	name  string
	value string
	bare  bool
}

func (a attribute) writeTo(sb *strings.Builder) {
	sb.WriteByte(' ')
	sb.WriteString(a.name)
	if a.bare {
		return
	}
	sb.WriteString(`="`)
	sb.WriteString(Escape(a.value))
	sb.WriteByte('"')
}
