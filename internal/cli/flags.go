package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
)

// geometryRe matches X11 geometry: WIDTHxHEIGHT with optional +X+Y offsets.
var geometryRe = regexp.MustCompile(`^(\d+)x(\d+)(?:([+-]\d+)([+-]\d+))?$`)

// parseGeometry parses "1920x1080" or "1280x1024+1920+0".
func parseGeometry(s string) (composite.Rect, error) {
	m := geometryRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return composite.Rect{}, errors.New(errors.ErrCodeInvalidInput, "invalid geometry %q (want WIDTHxHEIGHT[+X+Y])", s)
	}
	var r composite.Rect
	var err error
	if r.Width, err = strconv.Atoi(m[1]); err != nil {
		return composite.Rect{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "geometry width")
	}
	if r.Height, err = strconv.Atoi(m[2]); err != nil {
		return composite.Rect{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "geometry height")
	}
	if m[3] != "" {
		r.X, _ = strconv.Atoi(m[3])
		r.Y, _ = strconv.Atoi(m[4])
	}
	return r, nil
}

// parseBindings turns repeated label=selector flags into a map.
func parseBindings(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		label, sel, ok := strings.Cut(pair, "=")
		label, sel = strings.TrimSpace(label), strings.TrimSpace(sel)
		if !ok || label == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid binding %q (want label=selector)", pair)
		}
		if _, dup := out[label]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "label %q bound twice", label)
		}
		if err := errors.ValidateSelector(sel); err != nil {
			return nil, fmt.Errorf("binding %s: %w", label, err)
		}
		out[label] = sel
	}
	return out, nil
}
