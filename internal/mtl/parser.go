package mtl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"obj-mesh-loader/internal/mathutil"
)

// maxLineLen bounds a single MTL line, matching the OBJ reader.
const maxLineLen = 1 << 20

// Load reads an MTL file and returns its materials.
func Load(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mtl: open %s: %w: %w", path, ErrFileNotFound, err)
	}
	defer f.Close()

	lib, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for _, m := range lib.byName {
		m.Dir = dir
	}
	return lib, nil
}

// Parse reads MTL directives from r. name is used in error messages only.
// Directives before the first newmtl are ignored, as are unknown keywords.
func Parse(r io.Reader, name string) (*Library, error) {
	lib := NewLibrary()
	var cur *Material

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		fail := func(format string, args ...any) error {
			return &ParseError{Path: name, Line: lineNo, Err: fmt.Errorf("%w: "+format, append([]any{ErrMalformedLine}, args...)...)}
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, fail("newmtl without a name")
			}
			cur = &Material{Name: restOf(line, fields[0])}
			lib.add(cur)
		case "Ka", "Kd", "Ks":
			if cur == nil {
				continue
			}
			// Spectral curves and CIE XYZ colors are not supported; the
			// material keeps its previous value.
			if len(fields) > 1 && (fields[1] == "spectral" || fields[1] == "xyz") {
				continue
			}
			c, err := parseColor(fields[1:])
			if err != nil {
				return nil, fail("%s: %v", fields[0], err)
			}
			switch fields[0] {
			case "Ka":
				cur.Ka = c
			case "Kd":
				cur.Kd = c
			case "Ks":
				cur.Ks = c
			}
		case "Ns":
			if cur == nil {
				continue
			}
			if len(fields) < 2 {
				return nil, fail("Ns needs 1 value")
			}
			n, err := parseFloat(fields[1])
			if err != nil {
				return nil, fail("Ns: %v", err)
			}
			cur.Ns = n
		case "map_Kd":
			if cur == nil {
				continue
			}
			if len(fields) < 2 {
				return nil, fail("map_Kd without a file")
			}
			// Options such as -s or -o precede the file name; the file is last.
			cur.MapKd = strings.ReplaceAll(fields[len(fields)-1], "\\", "/")
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Path: name, Line: lineNo + 1, Err: fmt.Errorf("%w: %w", ErrMalformedLine, err)}
		}
		return nil, fmt.Errorf("mtl: read %s: %w", name, err)
	}

	return lib, nil
}

// parseColor reads an "r g b" triple. A single value is applied to all channels.
func parseColor(fields []string) (mathutil.Vec3, error) {
	switch len(fields) {
	case 0:
		return mathutil.Vec3{}, fmt.Errorf("need 3 values, got 0")
	case 1:
		v, err := parseFloat(fields[0])
		if err != nil {
			return mathutil.Vec3{}, err
		}
		return mathutil.Vec3{v, v, v}, nil
	case 2:
		return mathutil.Vec3{}, fmt.Errorf("need 3 values, got 2")
	}

	var c mathutil.Vec3
	for i := 0; i < 3; i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			return mathutil.Vec3{}, err
		}
		c[i] = v
	}
	return c, nil
}

// restOf returns the trimmed text after keyword, so names may contain spaces.
func restOf(line, keyword string) string {
	line = strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimPrefix(line, keyword))
}

// parseFloat parses a finite number; NaN and infinities are errors.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}
