// Package drive manages the optionally-connected Google Slides/Docs channel.
// Its availability is probed opportunistically; its failures never affect the
// primary collections.
package drive

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonhub/core"
)

// Resource kinds accepted by Import.
const (
	KindSlide = "slide"
	KindDoc   = "doc"
)

var ErrUnknownKind = errors.New("unknown resource kind")

type (
	// Backend is the slice of the LessonHub API this connector talks to.
	// Listings requests both collections concurrently and returns a partial
	// result, never failing as a whole.
	Backend interface {
		Listings(ctx context.Context) Listings
		AuthURL(ctx context.Context) (string, error)
		ImportSlides(ctx context.Context, slidesID, lessonID string) (ImportResult, error)
		ImportDocs(ctx context.Context, docsID, lessonID string) (ImportResult, error)
	}

	// Store is the slice of the application state this connector owns.
	Store interface {
		SetSlides(epoch int64, rs []Resource) bool
		SetDocs(epoch int64, rs []Resource) bool
	}

	Connector struct {
		backend Backend
		store   Store
		nav     core.Navigator
		log     core.Logger
	}
)

func NewConnector(backend Backend, store Store, nav core.Navigator, logger core.Logger) *Connector {
	return &Connector{
		backend: backend,
		store:   store,
		nav:     nav,
		log:     logger,
	}
}

// Probe lists slides and docs concurrently and stores whatever came back; a
// failed listing keeps the previous resources. It reports whether the slide
// listing succeeded on this pass, which is the only signal that ever marks
// the channel connected.
func (c *Connector) Probe(ctx context.Context, epoch int64) bool {
	ls := c.backend.Listings(ctx)

	if ls.Slides != nil {
		c.store.SetSlides(epoch, *ls.Slides)
	} else {
		c.log.Debug("drive: slide listing unavailable, keeping previous data")
	}
	if ls.Docs != nil {
		c.store.SetDocs(epoch, *ls.Docs)
	} else {
		c.log.Debug("drive: doc listing unavailable, keeping previous data")
	}
	return ls.Slides != nil
}

// BeginConnect fetches the provider authorization URL and opens it in a
// separate browsing context. Completion is not observed here; the caller
// re-runs Probe to see the new state.
func (c *Connector) BeginConnect(ctx context.Context) (string, error) {
	u, err := c.backend.AuthURL(ctx)
	if err != nil {
		c.log.Error("drive: fetching authorization URL", err)
		return "", errors.Wrap(err, "fetching authorization URL")
	}
	if err := c.nav.OpenURL(u); err != nil {
		return "", errors.Wrap(err, "opening authorization URL")
	}
	return u, nil
}

// Import requests a server-side import of the external resource into a
// lesson. Fire-and-confirm: the local Lesson collection is not touched; an
// updated linkage arrives with the next lessons fetch.
func (c *Connector) Import(ctx context.Context, kind, resourceID, lessonID string) (ImportResult, error) {
	var (
		res ImportResult
		err error
	)
	switch kind {
	case KindSlide:
		res, err = c.backend.ImportSlides(ctx, resourceID, lessonID)
	case KindDoc:
		res, err = c.backend.ImportDocs(ctx, resourceID, lessonID)
	default:
		return ImportResult{}, ErrUnknownKind
	}
	if err != nil {
		c.log.Error("drive: importing "+kind, err)
		return ImportResult{}, errors.Wrapf(err, "importing %s %s", kind, resourceID)
	}
	return res, nil
}
