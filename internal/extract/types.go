package extract

// Result is the outcome of extracting one uploaded file. Metadata and
// Structure are format-specific mappings; a sparse or empty mapping is
// still a success (partial extraction is represented, not failed).
type Result struct {
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	Structure map[string]any `json:"structure"`
	Success   bool           `json:"success"`
	Err       string         `json:"error,omitempty"`
}

// failure builds the failed variant. Success=false always carries an
// empty text and a non-empty error string.
func failure(msg string) Result {
	return Result{
		Metadata:  map[string]any{},
		Structure: map[string]any{},
		Success:   false,
		Err:       msg,
	}
}
