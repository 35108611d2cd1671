package model

import "time"

// Links carries the public URLs of a form.
type Links struct {
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
}

// Form is a full form record.
type Form struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Links Links  `json:"_links,omitempty" yaml:"links,omitempty"`
}

// FormID implements embed.Form. The pointer receiver lets the embed builder
// observe updates made after it was constructed.
func (f *Form) FormID() string {
	if f == nil {
		return ""
	}
	return f.ID
}

// FormStub is the abbreviated record returned when listing forms.
type FormStub struct {
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title,omitempty" yaml:"title,omitempty"`
	LastUpdatedAt time.Time `json:"last_updated_at,omitempty" yaml:"last_updated_at,omitempty"`
	Links         Links     `json:"_links,omitempty" yaml:"links,omitempty"`
}

// FormID implements embed.Form.
func (f *FormStub) FormID() string {
	if f == nil {
		return ""
	}
	return f.ID
}
