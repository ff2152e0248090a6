// Package storage reads and writes initial-condition files.
//
// The format is a body count on the first line followed by one
// comma-separated body per line:
//
//	2
//	1.0,0,0,0,0
//	1.0,0.05,0,0,0
//
// Planar rows are mass,x,y,vx,vy and spatial rows are mass,x,y,z,vx,vy,vz.
package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// ErrBadCount indicates a first line that is not a positive integer.
var ErrBadCount = errors.New("storage: body count must be a positive integer")

// ParseError reports the line at which loading stopped.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read parses an initial-condition stream. Loading stops at the first
// line that cannot be parsed; the bodies read before it are returned
// together with a *ParseError. Blank lines are skipped and rows beyond
// the declared count are ignored.
func Read[V dynamo.Vector[V]](r io.Reader) ([]dynamo.Body[V], error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			if text := strings.TrimSpace(sc.Text()); text != "" {
				return text, true
			}
		}
		return "", false
	}
	eof := func() error {
		if err := sc.Err(); err != nil {
			return err
		}
		return io.ErrUnexpectedEOF
	}

	text, ok := next()
	if !ok {
		return nil, &ParseError{Line: line + 1, Err: eof()}
	}
	n, err := parseCount(text)
	if err != nil {
		return nil, &ParseError{Line: line, Err: err}
	}

	var zero V
	want := 1 + 2*zero.Dim()
	bodies := make([]dynamo.Body[V], 0, n)

	for len(bodies) < n {
		text, ok := next()
		if !ok {
			err := fmt.Errorf("%w: declared %d bodies, read %d", eof(), n, len(bodies))
			return bodies, &ParseError{Line: line + 1, Err: err}
		}
		b, err := parseBody[V](strings.Split(text, ","), want)
		if err != nil {
			return bodies, &ParseError{Line: line, Err: err}
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// ReadFile opens path and calls Read.
func ReadFile[V dynamo.Vector[V]](path string) ([]dynamo.Body[V], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read[V](f)
}

func parseCount(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, ErrBadCount
	}
	return n, nil
}

func parseBody[V dynamo.Vector[V]](rec []string, want int) (dynamo.Body[V], error) {
	var b dynamo.Body[V]
	if len(rec) != want {
		return b, fmt.Errorf("%w: expected %d fields, got %d", dynamo.ErrDimensionMismatch, want, len(rec))
	}

	vals := make([]float64, len(rec))
	for i, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return b, fmt.Errorf("field %d: %w", i+1, err)
		}
		vals[i] = v
	}

	d := (want - 1) / 2
	b.Mass = vals[0]
	b.Pos, _ = dynamo.FromComponents[V](vals[1 : 1+d])
	b.Vel, _ = dynamo.FromComponents[V](vals[1+d:])
	if err := b.Valid(); err != nil {
		return b, err
	}
	return b, nil
}

// Write emits bodies in the format Read accepts.
func Write[V dynamo.Vector[V]](w io.Writer, bodies []dynamo.Body[V]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{strconv.Itoa(len(bodies))}); err != nil {
		return err
	}
	for _, b := range bodies {
		row := []string{formatFloat(b.Mass)}
		for _, c := range b.Pos.Components() {
			row = append(row, formatFloat(c))
		}
		for _, c := range b.Vel.Components() {
			row = append(row, formatFloat(c))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates path and calls Write.
func WriteFile[V dynamo.Vector[V]](path string, bodies []dynamo.Body[V]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, bodies); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
