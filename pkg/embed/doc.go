// Package embed builds the HTML snippets used to place a hosted form on a
// third-party page. A Builder holds the embed type (inline widget or modal
// button), the form identifier, data-tf-* options, hidden field values and
// library loading flags, and renders them into a deterministic string:
//
//	b := embed.NewModal("abc123").
//		SetOption("size", embed.Int(80)).
//		SetHiddenField("source", "landing")
//	b = embed.Must(b.SetModalType(embed.ModalSlider))
//	fmt.Println(b) // <button data-tf-slider="abc123" ...>Open Form</button><script ...></script>
//
// Rendering never fails once construction and configuration succeeded.
// Builders are meant for single-owner, sequential use.
package embed
