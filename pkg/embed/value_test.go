package embed_test

import (
	"testing"

	"github.com/goliatone/go-formembed/pkg/embed"
)

func TestValueSerialisation(t *testing.T) {
	cases := []struct {
		name  string
		value embed.Value
		want  string
	}{
		{name: "true", value: embed.Bool(true), want: ` data-tf-opt`},
		{name: "false", value: embed.Bool(false), want: ` data-tf-opt="0"`},
		{name: "string", value: embed.String(`a&b<c>"d"'e'`), want: ` data-tf-opt="a&amp;b&lt;c&gt;&quot;d&quot;&apos;e&apos;"`},
		{name: "int", value: embed.Int(-42), want: ` data-tf-opt="-42"`},
		{name: "list", value: embed.List("one", "two", "three"), want: ` data-tf-opt="one,two,three"`},
		{name: "empty list", value: embed.List(), want: ` data-tf-opt=""`},
		{
			name: "map",
			value: embed.Map(
				embed.Pair{Key: "k1", Value: embed.String("v1")},
				embed.Pair{Key: "k2", Value: embed.Bool(true)},
				embed.Pair{Key: "k3", Value: embed.Bool(false)},
			),
			want: ` data-tf-opt="k1=v1,k2=1,k3=0"`,
		},
		{name: "null", value: embed.Null(), want: ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := embed.NewInline("X").SetOption("opt", tc.value).SetLoadLib(false, false)
			want := `<div data-tf-widget="X"` + tc.want + `></div>`
			if got := b.HTML(); got != want {
				t.Fatalf("serialisation mismatch\nwant: %q\n got: %q", want, got)
			}
		})
	}
}

func TestValueKindAndEqual(t *testing.T) {
	if !embed.Null().IsNull() || (embed.Value{}).Kind() != embed.KindNull {
		t.Fatalf("expected zero value to be null")
	}
	if embed.Int(1).Equal(embed.String("1")) {
		t.Fatalf("values of different kinds must not be equal")
	}
	if !embed.List("a", "b").Equal(embed.List("a", "b")) {
		t.Fatalf("expected equal lists")
	}
	a := embed.Map(embed.Pair{Key: "k", Value: embed.Int(1)})
	b := embed.Map(embed.Pair{Key: "k", Value: embed.Int(2)})
	if a.Equal(b) {
		t.Fatalf("expected maps with different values to differ")
	}
}

func TestListCopiesInput(t *testing.T) {
	items := []string{"a", "b"}
	value := embed.List(items...)
	items[0] = "changed"
	if got := value.Text(); got != "a,b" {
		t.Fatalf("expected list to be copied, got %q", got)
	}
}

func TestAttributeName(t *testing.T) {
	cases := map[string]string{
		"replacementOption": "data-tf-replacement-option",
		"hideHeaders":       "data-tf-hide-headers",
		"size":              "data-tf-size",
		"already-kebab":     "data-tf-already-kebab",
		"Leading":           "data-tf-leading",
		"intOption2":        "data-tf-int-option2",
	}
	for in, want := range cases {
		if got := embed.AttributeName(in); got != want {
			t.Fatalf("AttributeName(%q): want %q, got %q", in, want, got)
		}
	}
}
