package drive

// Resource is an external presentation or document. Transient: re-fetched on
// demand, never persisted.
type Resource struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime"`
}

// Listings is a partial probe result: a nil field means that listing failed
// on this pass and the previously held resources must be kept.
type Listings struct {
	Slides *[]Resource
	Docs   *[]Resource
}

// ImportResult is the server's confirmation of an import request.
type ImportResult struct {
	Message  string `json:"message"`
	SlidesID string `json:"slides_id,omitempty"`
	DocsID   string `json:"docs_id,omitempty"`
}
