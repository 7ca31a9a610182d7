package protocol

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/bytedance/sonic"
)

var operationNamePattern = regexp.MustCompile(`^\s*(?:query|mutation|subscription)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// Operation is an immutable pair of operation text and variables
type Operation struct {
	text      string
	variables *Object
}

// NewOperation captures text and a private copy of vars
func NewOperation(text string, vars *Object) Operation {
	return Operation{text: text, variables: vars.Clone()}
}

// Text returns the operation document
func (o Operation) Text() string { return o.text }

// Variables returns a copy of the variables
func (o Operation) Variables() *Object { return o.variables.Clone() }

// Name returns the declared operation name, or "anonymous"
func (o Operation) Name() string {
	if m := operationNamePattern.FindStringSubmatch(o.text); m != nil {
		return m[1]
	}
	return "anonymous"
}

// Body encodes the wire request {"query": ..., "variables": {...}}
func (o Operation) Body() ([]byte, error) {
	query, err := sonic.Marshal(o.text)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"query":`)
	buf.Write(query)
	buf.WriteString(`,"variables":`)
	if err := o.variables.encode(&buf); err != nil {
		return nil, fmt.Errorf("variables: %w", err)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
