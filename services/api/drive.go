package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/trezcool/lessonhub/core/drive"
)

const (
	authURLPath      = "/api/google/auth-url"
	slidesPath       = "/api/google/slides"
	docsPath         = "/api/google/docs"
	importSlidesPath = "/api/google/import-slides"
	importDocsPath   = "/api/google/import-docs"
)

var _ drive.Backend = (*Client)(nil)

// Listings requests the slide and document listings concurrently. Each one
// fails independently; a failed listing is simply absent from the result.
func (c *Client) Listings(ctx context.Context) drive.Listings {
	raws := c.BatchGet(ctx, map[string]string{
		"slides": slidesPath,
		"docs":   docsPath,
	})

	var ls drive.Listings
	if raw, ok := raws["slides"]; ok {
		var payload struct {
			Presentations []drive.Resource `json:"presentations"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			c.log.Warn("api: decoding slide listing", err)
		} else {
			ls.Slides = &payload.Presentations
		}
	}
	if raw, ok := raws["docs"]; ok {
		var payload struct {
			Documents []drive.Resource `json:"documents"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			c.log.Warn("api: decoding doc listing", err)
		} else {
			ls.Docs = &payload.Documents
		}
	}
	return ls
}

func (c *Client) AuthURL(ctx context.Context) (string, error) {
	var payload struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.do(ctx, http.MethodGet, authURLPath, "", nil, &payload); err != nil {
		return "", err
	}
	return payload.AuthURL, nil
}

func (c *Client) ImportSlides(ctx context.Context, slidesID, lessonID string) (drive.ImportResult, error) {
	in := map[string]string{"slides_id": slidesID}
	if lessonID != "" {
		in["lesson_id"] = lessonID
	}
	var res drive.ImportResult
	if err := c.do(ctx, http.MethodPost, importSlidesPath, "", in, &res); err != nil {
		return drive.ImportResult{}, err
	}
	return res, nil
}

func (c *Client) ImportDocs(ctx context.Context, docsID, lessonID string) (drive.ImportResult, error) {
	in := map[string]string{"docs_id": docsID}
	if lessonID != "" {
		in["lesson_id"] = lessonID
	}
	var res drive.ImportResult
	if err := c.do(ctx, http.MethodPost, importDocsPath, "", in, &res); err != nil {
		return drive.ImportResult{}, err
	}
	return res, nil
}
