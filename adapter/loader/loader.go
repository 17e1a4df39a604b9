// Package loader contains the default [domain.Loader] implementation. JSON
// sources are read with the comment-tolerant parser of package data and YAML
// sources with gopkg.in/yaml.v3. Both keep object keys in declaration order.
package loader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/data"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
	"gopkg.in/yaml.v3"
)

// RegexTag is the YAML tag that turns a scalar into a regular expression.
// Both "/pattern/flags" and bare patterns are accepted.
const RegexTag = "!regex"

// Format identifies the syntax of a source.
type Format uint8

const (
	// FormatAuto picks the format from the extension of the source name.
	FormatAuto Format = iota
	// FormatJSON is JSON with comments, trailing commas and regular
	// expression literals.
	FormatJSON
	// FormatYAML is YAML 1.2.
	FormatYAML
)

// Loader implements [domain.Loader].
type Loader struct {
	format Format
}

// NewLoader returns a new implementation of [domain.Loader]. With [FormatAuto]
// the names "" and "-" are read as JSON.
func NewLoader(format Format) domain.Loader {
	return &Loader{format: format}
}

// Load implements [domain.Loader].
func (l *Loader) Load(ctx context.Context, name string, r io.Reader) (any, error) {
	format, err := l.formatOf(name)
	if err != nil {
		return nil, err
	}

	b, err := io.ReadAll(contextio.NewReader(ctx, r))
	if err != nil {
		return nil, err
	}

	var v any
	switch format {
	case FormatYAML:
		v, err = l.loadYAML(b)
	default:
		v, err = data.Parse(b)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func (l *Loader) formatOf(name string) (Format, error) {
	if l.format != FormatAuto {
		return l.format, nil
	}
	if name == "" || name == "-" {
		return FormatJSON, nil
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, domain.ErrUnsupportedFormat{Name: name}
}

func (l *Loader) loadYAML(b []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	// empty input
	if root.Kind == 0 {
		return nil, nil
	}
	return l.node(&root)
}

func (l *Loader) node(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return l.node(n.Content[0])
	case yaml.AliasNode:
		return l.node(n.Alias)
	case yaml.MappingNode:
		return l.mapping(n)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := l.node(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return l.scalar(n)
	}
	return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

// mapping converts a YAML mapping to an ordered document.
func (l *Loader) mapping(n *yaml.Node) (any, error) {
	doc := data.NewD()
	for i := 0; i+1 < len(n.Content); i += 2 {
		var key string
		if err := n.Content[i].Decode(&key); err != nil {
			return nil, err
		}
		v, err := l.node(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		doc.Set(key, v)
	}
	return doc, nil
}

func (l *Loader) scalar(n *yaml.Node) (any, error) {
	if n.Tag == RegexTag {
		return l.regex(n)
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (l *Loader) regex(n *yaml.Node) (any, error) {
	if strings.HasPrefix(n.Value, "/") {
		v, err := data.Parse([]byte(n.Value))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if _, ok := v.(*regexp.Regexp); !ok {
			return nil, fmt.Errorf("line %d: %q is not a regular expression", n.Line, n.Value)
		}
		return v, nil
	}
	rgx, err := regexp.Compile(n.Value)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return rgx, nil
}
