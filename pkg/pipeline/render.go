package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/screengod/pkg/errors"
	"github.com/matzehuels/screengod/pkg/placement"
	"github.com/matzehuels/screengod/pkg/render"
	"github.com/matzehuels/screengod/pkg/render/canvas"
	"github.com/matzehuels/screengod/pkg/render/diagram"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, p *placement.Placement, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(ctx, p, opts)
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(data, opts.Scale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatDOT:
			data = []byte(diagram.ToDOT(p, diagram.Options{Detailed: opts.Detailed}))
		case FormatJSON:
			var buf bytes.Buffer
			err = p.WriteJSON(&buf)
			data = buf.Bytes()
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderSVG draws the placement in the view selected by opts.
func renderSVG(ctx context.Context, p *placement.Placement, opts Options) ([]byte, error) {
	if opts.View == ViewTree {
		return diagram.RenderSVG(ctx, diagram.ToDOT(p, diagram.Options{Detailed: opts.Detailed}))
	}
	svgOpts := []canvas.SVGOption{canvas.WithContainers()}
	if opts.Detailed {
		svgOpts = append(svgOpts, canvas.WithRects())
	}
	return canvas.RenderSVG(p, svgOpts...), nil
}
