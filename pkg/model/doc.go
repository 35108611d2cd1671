// Package model holds the small slice of the hosted form data model the embed
// tooling needs. Form and FormStub mirror the records returned by the form
// service (full form and list entry respectively); both satisfy embed.Form so
// they can be handed to embed.New directly. Fetching them is left to the
// caller.
package model
