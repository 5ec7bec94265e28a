package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/docket/service/artifact/filename"
	"github.com/viant/docket/service/location"
)

// Name is the computed target for a new artifact.
type Name struct {
	Filename   string
	URL        string
	Sequence   int
	IsRevision bool
	Revision   int
}

// Namer computes the next artifact filename within a category folder by
// scanning what is already there; no sequence state is stored anywhere else.
type Namer struct {
	fs      afs.Service
	locator *location.Locator
}

// NewNamer creates a namer.
func NewNamer(locator *location.Locator) *Namer {
	return &Namer{fs: afs.New(), locator: locator}
}

// NextName determines the filename for the next artifact in the category.
// The sequence is max+1 over the non-revision files already present (1 for an
// empty or unreadable folder). When the request is an explicit regeneration
// of an existing file with the same field date, or the exact non-revision
// name already exists, the artifact becomes the next revision of the
// existing file instead; a prior artifact is never overwritten.
func (n *Namer) NextName(ctx context.Context, tenant, identifier, category string, fieldDate time.Time, regenerate bool) (*Name, error) {
	base := n.locator.Resolve(ctx, tenant)
	id, cat := Sanitize(identifier), Sanitize(category)
	folder := url.Join(base.Path, id, cat)

	infos := n.scan(ctx, folder, id, cat)
	maxSeq := 0
	for _, info := range infos {
		if !info.IsRevision && info.Sequence > maxSeq {
			maxSeq = info.Sequence
		}
	}

	seq := maxSeq + 1
	if regenerate && maxSeq > 0 {
		// Regeneration re-targets the latest sequence only when a file for
		// this field date is actually there; otherwise reusing maxSeq would
		// put two different dates behind the same sequence number.
		prior := filename.Build(id, cat, maxSeq, fieldDate, 0)
		priorExists, err := n.fs.Exists(ctx, url.Join(folder, prior))
		if err != nil {
			return nil, fmt.Errorf("failed to check %v: %w", prior, err)
		}
		if priorExists {
			seq = maxSeq
		}
	}

	name := &Name{Sequence: seq, Filename: filename.Build(id, cat, seq, fieldDate, 0)}
	exists, err := n.fs.Exists(ctx, url.Join(folder, name.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to check %v: %w", name.Filename, err)
	}
	if exists {
		date := fieldDate.Format(filename.DateLayout)
		maxRev := 0
		for _, info := range infos {
			if info.IsRevision && info.Sequence == seq && info.FieldDate == date && info.Revision > maxRev {
				maxRev = info.Revision
			}
		}
		name.IsRevision = true
		name.Revision = maxRev + 1
		name.Filename = filename.Build(id, cat, seq, fieldDate, name.Revision)
	}
	name.URL = url.Join(folder, name.Filename)
	return name, nil
}

// scan lists the category folder and decodes every conforming filename; a
// missing or unreadable folder scans as empty.
func (n *Namer) scan(ctx context.Context, folder, id, cat string) []*filename.Info {
	exists, err := n.fs.Exists(ctx, folder)
	if err != nil || !exists {
		return nil
	}
	objects, err := n.fs.List(ctx, folder)
	if err != nil {
		return nil
	}
	var infos []*filename.Info
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		info, err := filename.Parse(object.Name(), id, cat)
		if err != nil {
			continue // foreign file, not part of the sequence
		}
		infos = append(infos, info)
	}
	return infos
}
