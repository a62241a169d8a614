// Package apiclient implements the session, classroom and drive backend
// interfaces over the LessonHub HTTP JSON API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/lessonhub/core"
)

type Client struct {
	base  string
	httpc *http.Client
	token func() string // current session credential; "" when unauthenticated
	log   core.Logger
}

// New returns a Client talking to conf.API.BaseURL. token is read on every
// request so the client always sends the credential of the current session.
func New(conf *core.Config, token func() string, logger core.Logger) *Client {
	return &Client{
		base:  strings.TrimRight(conf.API.BaseURL, "/"),
		httpc: &http.Client{Timeout: conf.API.Timeout},
		token: token,
		log:   logger,
	}
}

// do runs a single JSON round trip. An explicit token overrides the token
// source (needed while validating a stored identifier before any session
// exists). Non-2xx responses become *core.APIError.
func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token == "" && c.token != nil {
		token = c.token()
	}
	if token != "" {
		req.Header.Set("X-Session-ID", token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		var payload struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		return core.NewAPIError(res.StatusCode, payload.Detail)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decoding %s response", path)
		}
	}
	return nil
}

// BatchGet issues all requests concurrently with the current session
// credential attached and returns the raw body of each one that succeeded,
// keyed by name. Failed requests are logged and omitted; the batch itself
// never fails. There is no implicit retry.
func (c *Client) BatchGet(ctx context.Context, paths map[string]string) map[string]json.RawMessage {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]json.RawMessage, len(paths))
	)
	for name, path := range paths {
		wg.Add(1)
		go func(name, path string) {
			defer wg.Done()
			var raw json.RawMessage
			if err := c.do(ctx, http.MethodGet, path, "", nil, &raw); err != nil {
				c.log.Warn("api: fetching "+name, err)
				return
			}
			mu.Lock()
			out[name] = raw
			mu.Unlock()
		}(name, path)
	}
	wg.Wait()
	return out
}

// decodeList decodes one named batch entry; nil when the entry is absent or
// does not decode (treated the same as a failed fetch).
func decodeList[T any](log core.Logger, raws map[string]json.RawMessage, name string) *[]T {
	raw, ok := raws[name]
	if !ok {
		return nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		log.Warn("api: decoding "+name, err)
		return nil
	}
	return &list
}
