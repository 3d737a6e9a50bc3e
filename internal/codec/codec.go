package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

//go:embed board.schema.json
var boardSchema string

const schemaURL = "https://github.com/mesh-intelligence/kanban/board.schema.json"

// ErrInvalidInput is wrapped by every DecodeError.
var ErrInvalidInput = errors.New("invalid input json")

// DecodeError describes why a document was rejected. Path locates the
// offending value (for example "lists[0].cards[2].dueDate") and is empty
// when the text is not JSON at all.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Err)
}

// Unwrap exposes both ErrInvalidInput and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

func init() {
	jsonschema.Formats["timestamp"] = isTimestamp
}

func isTimestamp(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	_, err := types.ParseTimestamp(s)
	return err == nil
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(boardSchema)); err != nil {
		return nil, fmt.Errorf("add board schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Decode parses and validates a board document. The returned board has no
// nil collections. On failure the board is the zero value and the error is
// a *DecodeError.
func Decode(data []byte) (types.Board, error) {
	if errs := Validate(data); len(errs) > 0 {
		return types.Board{}, errs[0]
	}
	var b types.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return types.Board{}, &DecodeError{Err: err}
	}
	return normalize(b), nil
}

// Validate checks data against the board schema and returns every problem
// found, ordered by path. A nil result means Decode will accept data.
func Validate(data []byte) []error {
	schema, err := compiled()
	if err != nil {
		return []error{&DecodeError{Err: err}}
	}
	doc, err := unmarshalJSON(data)
	if err != nil {
		return []error{&DecodeError{Err: err}}
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{&DecodeError{Err: err}}
	}
	var leaves []*DecodeError
	collectSchemaErrors(&leaves, ve)
	slices.SortStableFunc(leaves, func(a, b *DecodeError) int {
		return strings.Compare(a.Path, b.Path)
	})
	errs := make([]error, 0, len(leaves))
	for _, l := range leaves {
		errs = append(errs, l)
	}
	return errs
}

// unmarshalJSON decodes data into the generic form the schema validator
// expects, rejecting trailing content after the top-level value.
func unmarshalJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected content after top-level value")
	}
	return doc, nil
}

func collectSchemaErrors(out *[]*DecodeError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &DecodeError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// jsonPointerToPath turns "/lists/0/title" into "lists[0].title".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}

// Encode renders b as a document: two-space indentation, a trailing
// newline, and empty arrays in place of nil collections.
func Encode(b types.Board) ([]byte, error) {
	data, err := json.MarshalIndent(normalize(b), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return append(data, '\n'), nil
}

// normalize returns a copy of b with every nil collection replaced by an
// empty one. The slices of b are never written.
func normalize(b types.Board) types.Board {
	lists := make([]types.List, len(b.Lists))
	for i, l := range b.Lists {
		l.Cards = normalizeCards(l.Cards)
		lists[i] = l
	}
	b.Lists = lists
	b.Archive.Lists = nonNil(b.Archive.Lists)
	b.Archive.Cards = normalizeCards(b.Archive.Cards)
	b.Settings.Labels = nonNil(b.Settings.Labels)
	return b
}

func normalizeCards(cards []types.Card) []types.Card {
	out := make([]types.Card, len(cards))
	for i, c := range cards {
		c.Labels = nonNil(c.Labels)
		c.Checkboxes = nonNil(c.Checkboxes)
		c.Comments = nonNil(c.Comments)
		out[i] = c
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
