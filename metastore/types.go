package metastore

// Dataset is a catalog dataset record with its resource references
// dereferenced into full distribution objects.
type Dataset struct {
	Identifier   string         `json:"identifier"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	Distribution []Distribution `json:"distribution,omitempty"`
}

// Distribution is one downloadable resource of a dataset.
type Distribution struct {
	Identifier string         `json:"identifier"`
	Data       map[string]any `json:"data,omitempty"`
}
