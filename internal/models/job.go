package models

// JobDescription holds the authoritative job description text. At most one
// source is authoritative at a time: setting a new file, URL or pasted text
// replaces whatever was there before.
type JobDescription struct {
	Text       string `json:"text"`
	SourceName string `json:"source_name,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
}

func (j JobDescription) Empty() bool {
	return j.Text == ""
}
