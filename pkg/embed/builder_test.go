package embed_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/model"
)

const testFormID = ">>form-id<<"

var (
	formIDSafe = embed.Escape(testFormID)
	libSync    = `<script src="` + embed.LibraryURL + `"></script>`
	libAsync   = `<script src="` + embed.LibraryURL + `" async defer></script>`
)

// sharedCustomisation applies the option and hidden field sequence used by
// both embed types.
func sharedCustomisation(b *embed.Builder) {
	b.SetOption("deletedOption", embed.String("test-value")).
		SetOptions([]embed.Option{{Name: "replacementOption", Value: embed.String("replaced-value")}}, false).
		SetOption("nullOption", embed.Null()).
		SetOption("trueOption", embed.Bool(true)).
		SetOption("falseOption", embed.Bool(false)).
		SetOption("stringOption", embed.String(`"value"`)).
		SetOption("intOption", embed.Int(123)).
		SetOption("listOption", embed.List("one", "two", "three")).
		SetOption("assocOption", embed.Map(
			embed.Pair{Key: "one", Value: embed.Int(1)},
			embed.Pair{Key: "two", Value: embed.Int(2)},
		)).
		SetOption("overriddenOption", embed.String("old-value")).
		SetOption("overriddenOption", embed.String("new-value")).
		SetOptions([]embed.Option{{Name: "mergeOption", Value: embed.String("merged-value")}}, true)

	b.SetHiddenField("deleted_field", "deleted").
		SetHiddenFields([]embed.HiddenField{{Name: "some_field", Value: "field value"}}, false).
		SetHiddenField("another_field", "field value 2").
		SetHiddenFields([]embed.HiddenField{{Name: "merged_field", Value: "merge value"}}, true)
}

const customisedAttrs = ` data-tf-replacement-option="replaced-value"` +
	` data-tf-true-option` +
	` data-tf-false-option="0"` +
	` data-tf-string-option="&quot;value&quot;"` +
	` data-tf-int-option="123"` +
	` data-tf-list-option="one,two,three"` +
	` data-tf-assoc-option="one=1,two=2"` +
	` data-tf-overridden-option="new-value"` +
	` data-tf-merge-option="merged-value"` +
	` data-tf-hidden="some_field=field value,another_field=field value 2,merged_field=merge value"`

func TestBuilder_Generation(t *testing.T) {
	cases := []struct {
		name      string
		typ       embed.Type
		configure func(t *testing.T, b *embed.Builder)
		want      string
	}{
		{
			name: "inline default",
			typ:  embed.TypeInline,
			want: `<div data-tf-widget="` + formIDSafe + `"></div>` + libSync,
		},
		{
			name: "inline no lib",
			typ:  embed.TypeInline,
			configure: func(_ *testing.T, b *embed.Builder) {
				b.SetLoadLib(false, false)
			},
			want: `<div data-tf-widget="` + formIDSafe + `"></div>`,
		},
		{
			name: "inline async lib",
			typ:  embed.TypeInline,
			configure: func(_ *testing.T, b *embed.Builder) {
				b.SetLoadLib(true, true)
			},
			want: `<div data-tf-widget="` + formIDSafe + `"></div>` + libAsync,
		},
		{
			name: "inline customised",
			typ:  embed.TypeInline,
			configure: func(t *testing.T, b *embed.Builder) {
				sharedCustomisation(b)
				if _, err := b.SetSeamless(true); err != nil {
					t.Fatalf("set seamless: %v", err)
				}
			},
			want: `<div data-tf-widget="` + formIDSafe + `"` + customisedAttrs +
				` data-tf-hide-headers data-tf-hide-footer data-tf-opacity="0"></div>` + libSync,
		},
		{
			name: "modal default",
			typ:  embed.TypeModal,
			want: `<button data-tf-popup="` + formIDSafe + `">Open Form</button>` + libSync,
		},
		{
			name: "modal no lib",
			typ:  embed.TypeModal,
			configure: func(_ *testing.T, b *embed.Builder) {
				b.SetLoadLib(false, true)
			},
			want: `<button data-tf-popup="` + formIDSafe + `">Open Form</button>`,
		},
		{
			name: "modal customised",
			typ:  embed.TypeModal,
			configure: func(t *testing.T, b *embed.Builder) {
				sharedCustomisation(b)
				if _, err := b.SetLabel("New Label"); err != nil {
					t.Fatalf("set label: %v", err)
				}
				if _, err := b.SetModalType(embed.ModalSlider); err != nil {
					t.Fatalf("set modal type: %v", err)
				}
			},
			want: `<button data-tf-slider="` + formIDSafe + `"` + customisedAttrs + `>New Label</button>` + libSync,
		},
		{
			name: "modal popover escapes label",
			typ:  embed.TypeModal,
			configure: func(t *testing.T, b *embed.Builder) {
				embed.Must(b.SetModalType(embed.ModalPopover))
				embed.Must(b.SetLabel(`Tom & Jerry's <"form">`))
			},
			want: `<button data-tf-popover="` + formIDSafe + `">Tom &amp; Jerry&apos;s &lt;&quot;form&quot;&gt;</button>` + libSync,
		},
	}

	forms := map[string]func() embed.Form{
		"string":   func() embed.Form { return embed.ID(testFormID) },
		"form":     func() embed.Form { return &model.Form{ID: testFormID} },
		"formstub": func() embed.Form { return &model.FormStub{ID: testFormID} },
	}

	for _, tc := range cases {
		for formKind, newForm := range forms {
			t.Run(tc.name+"/"+formKind, func(t *testing.T) {
				b, err := embed.New(newForm(), tc.typ)
				if err != nil {
					t.Fatalf("new embed: %v", err)
				}
				if tc.configure != nil {
					tc.configure(t, b)
				}

				if diff := cmp.Diff(tc.want, b.HTML()); diff != "" {
					t.Fatalf("html mismatch (-want +got):\n%s", diff)
				}
				if diff := cmp.Diff(tc.want, b.String()); diff != "" {
					t.Fatalf("string conversion mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestBuilder_LibHTML(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		async   bool
		want    string
	}{
		{name: "sync", enabled: true, async: false, want: libSync},
		{name: "async", enabled: true, async: true, want: libAsync},
		{name: "disabled", enabled: false, async: false, want: libSync},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := embed.NewModal("123").SetLoadLib(tc.enabled, tc.async)
			if got := b.LibHTML(); got != tc.want {
				t.Fatalf("lib html mismatch\nwant: %q\n got: %q", tc.want, got)
			}
		})
	}
}

func TestBuilder_NullRemovesOption(t *testing.T) {
	b := embed.NewInline("X").
		SetOption("x", embed.String("v")).
		SetOption("x", embed.Null())

	if strings.Contains(b.HTML(), "data-tf-x") {
		t.Fatalf("expected data-tf-x to be removed, got %q", b.HTML())
	}
	if len(b.Options()) != 0 {
		t.Fatalf("expected no options, got %v", b.Options())
	}
}

func TestBuilder_OverwriteKeepsPosition(t *testing.T) {
	b := embed.NewInline("X").
		SetOption("a", embed.Int(1)).
		SetOption("b", embed.Int(2)).
		SetOption("a", embed.Int(3))

	want := []embed.Option{
		{Name: "a", Value: embed.Int(3)},
		{Name: "b", Value: embed.Int(2)},
	}
	if diff := cmp.Diff(want, b.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	html := b.HTML()
	if !strings.Contains(html, `data-tf-a="3" data-tf-b="2"`) {
		t.Fatalf("expected a before b with value 3, got %q", html)
	}
}

func TestBuilder_SetOptionsWithoutMergeDiscardsPrevious(t *testing.T) {
	b := embed.NewInline("X").
		SetOption("old", embed.String("1")).
		SetOptions([]embed.Option{{Name: "fresh", Value: embed.Bool(true)}}, false)

	want := `<div data-tf-widget="X" data-tf-fresh></div>` + libSync
	if got := b.HTML(); got != want {
		t.Fatalf("html mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestBuilder_HiddenFieldsCombined(t *testing.T) {
	b := embed.NewInline("X").
		SetHiddenField("a", "1").
		SetHiddenField("b", "2").
		SetLoadLib(false, false)

	want := `<div data-tf-widget="X" data-tf-hidden="a=1,b=2"></div>`
	if got := b.HTML(); got != want {
		t.Fatalf("html mismatch\nwant: %q\n got: %q", want, got)
	}

	wantFields := []embed.HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(wantFields, b.HiddenFields()); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_RenderIsIdempotent(t *testing.T) {
	b := embed.NewModal("X").SetOption("size", embed.Int(50)).SetHiddenField("k", "v")
	first := b.HTML()
	second := b.HTML()
	if first != second {
		t.Fatalf("expected identical renders, got %q and %q", first, second)
	}
	if first != b.String() {
		t.Fatalf("expected String to match HTML, got %q and %q", b.String(), first)
	}
}

func TestBuilder_Clone(t *testing.T) {
	original := embed.NewInline("X").SetOption("a", embed.Int(1))
	cloned := original.Clone().SetOption("b", embed.Int(2)).SetHiddenField("h", "1")

	if got := len(original.Options()); got != 1 {
		t.Fatalf("expected original to keep 1 option, got %d", got)
	}
	if got := len(original.HiddenFields()); got != 0 {
		t.Fatalf("expected original to keep no hidden fields, got %d", got)
	}
	if got := len(cloned.Options()); got != 2 {
		t.Fatalf("expected clone to have 2 options, got %d", got)
	}
}

func TestBuilder_Errors(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "seamless on modal",
			run: func() error {
				_, err := embed.NewModal("abc").SetSeamless(true)
				return err
			},
			want: embed.ErrBadOperation,
		},
		{
			name: "label on inline",
			run: func() error {
				_, err := embed.NewInline("abc").SetLabel("Label")
				return err
			},
			want: embed.ErrBadOperation,
		},
		{
			name: "modal type on inline",
			run: func() error {
				_, err := embed.NewInline("abc").SetModalType(embed.ModalPopover)
				return err
			},
			want: embed.ErrBadOperation,
		},
		{
			name: "invalid modal type",
			run: func() error {
				_, err := embed.NewModal("abc").SetModalType("not-a-modal-type")
				return err
			},
			want: embed.ErrInvalidArgument,
		},
		{
			name: "invalid embed type",
			run: func() error {
				_, err := embed.New(embed.ID("abc"), "unknown-type")
				return err
			},
			want: embed.ErrInvalidArgument,
		},
		{
			name: "nil form",
			run: func() error {
				_, err := embed.New(nil, embed.TypeInline)
				return err
			},
			want: embed.ErrInvalidArgument,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBuilder_FailedMutatorLeavesStateUnchanged(t *testing.T) {
	b := embed.NewModal("abc")
	before := b.HTML()

	if _, err := b.SetModalType("bogus"); err == nil {
		t.Fatalf("expected error for bogus modal type")
	}
	if got := b.ModalType(); got != embed.ModalPopup {
		t.Fatalf("expected modal type to stay popup, got %q", got)
	}
	if after := b.HTML(); after != before {
		t.Fatalf("expected unchanged html\nbefore: %q\n after: %q", before, after)
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Must to panic")
		}
	}()
	embed.Must(embed.NewInline("abc").SetLabel("nope"))
}
