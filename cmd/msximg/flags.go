package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/bodgit/msximg"
	"github.com/bodgit/msximg/compressor"
)

var (
	errPoint = errors.New("expected X,Y")
	errFont  = errors.New("expected X,Y,FIRST,LAST")
	errColor = errors.New("expected a 0xRRGGBB color")
)

func splitInts(s string, n int) ([]int, bool) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, false
	}
	v := make([]int, n)
	for i, f := range fields {
		x, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, false
		}
		v[i] = x
	}
	return v, true
}

func parsePoint(s string) (image.Point, error) {
	v, ok := splitInts(s, 2)
	if !ok {
		return image.Point{}, fmt.Errorf("%q: %w", s, errPoint)
	}
	return image.Pt(v[0], v[1]), nil
}

// parseChar accepts either a single character or its code in hexadecimal.
func parseChar(s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func parseFont(s string) (*msximg.Font, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return nil, fmt.Errorf("%q: %w", s, errFont)
	}

	size, err := parsePoint(fields[0] + "," + fields[1])
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, errFont)
	}

	f := &msximg.Font{Size: size}
	if f.First, err = parseChar(fields[2]); err != nil {
		return nil, fmt.Errorf("%q: %w", s, errFont)
	}
	if f.Last, err = parseChar(fields[3]); err != nil {
		return nil, fmt.Errorf("%q: %w", s, errFont)
	}

	return f, nil
}

func parseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if !strings.HasPrefix(strings.ToLower(s), "0x") {
		s = "0x" + s
	}
	v, err := strconv.ParseUint(s, 0, 24)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, errColor)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func parseCompressor(s string) (msximg.Selection, compressor.Compressor, error) {
	switch strings.ToLower(s) {
	case "auto":
		return msximg.Automatic, compressor.None, nil
	case "best":
		return msximg.Exhaustive, compressor.None, nil
	}
	c, err := compressor.Parse(s)
	return msximg.Explicit, c, err
}
