package gherkin

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Source is one named buffer to feed ParseFiles; Filename is used only
// for annotating ParserError messages, never opened or read from
// disk (file I/O stays out of this package's scope, §1).
type Source struct {
	Filename string
	Text     string
}

// ParseFiles parses every Source concurrently, one Parser per Source (§5:
// distinct instances required for concurrent use), and returns the
// resulting Features in input order. Once one Source fails (or ctx is
// cancelled), the remaining parses bail out early and the first error is
// returned: for a failed parse, a *ParserError annotated with its
// Filename; for a cancelled ctx, the context's error.
func ParseFiles(ctx context.Context, language string, sources []Source, opts ...Option) ([]*Feature, error) {
	features := make([]*Feature, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := NewParser(language, opts...)
			if err != nil {
				return err
			}
			f, err := p.ParseFeature(src.Text, src.Filename)
			if err != nil {
				return err
			}
			features[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return features, nil
}
