package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/data"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/whynomatch/domain"
)

// printer writes diagnoses either as an indented tree or as JSON.
type printer struct {
	w        io.Writer
	format   string
	compact  domain.Serializer
	indented domain.Serializer

	ok       *color.Color
	fail     *color.Color
	field    *color.Color
	operator *color.Color
	value    *color.Color
}

func newPrinter(w io.Writer, opts *RootOptions) *printer {
	p := &printer{
		w:        w,
		format:   opts.Format,
		compact:  serializer.NewSerializer(data.NewDocument, ""),
		indented: serializer.NewSerializer(data.NewDocument, strings.Repeat(" ", opts.Indent)),
		ok:       color.New(color.FgGreen, color.Bold),
		fail:     color.New(color.FgRed, color.Bold),
		field:    color.New(color.FgYellow),
		operator: color.New(color.FgCyan),
		value:    color.New(color.FgRed),
	}

	enabled := useColor(w, opts.Color)
	for _, c := range []*color.Color{p.ok, p.fail, p.field, p.operator, p.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// useColor resolves the color mode. In auto mode colors are only used on
// terminals, unless NO_COLOR is set.
func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Print writes the diagnosis in the configured format.
func (p *printer) Print(ctx context.Context, diag domain.Document) error {
	if p.format == "json" {
		b, err := p.indented.Serialize(ctx, diag)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s\n", b)
		return err
	}

	if diag.Len() == 0 {
		_, err := fmt.Fprintln(p.w, p.ok.Sprint("match"))
		return err
	}
	if _, err := fmt.Fprintln(p.w, p.fail.Sprint("mismatch")); err != nil {
		return err
	}
	return p.writeDoc(ctx, diag, "  ")
}

func (p *printer) writeDoc(ctx context.Context, doc domain.Document, indent string) error {
	for k, v := range doc.Iter() {
		if err := p.writeEntry(ctx, indent, indent, k, v); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single key. lead is written before the key and nested
// lines are indented one level deeper than indent.
func (p *printer) writeEntry(ctx context.Context, lead, indent, key string, v any) error {
	name := p.field.Sprint(key)
	if strings.HasPrefix(key, "$") {
		name = p.operator.Sprint(key)
	}

	if doc, ok := v.(domain.Document); ok && doc.Len() > 0 {
		if _, err := fmt.Fprintf(p.w, "%s%s:\n", lead, name); err != nil {
			return err
		}
		return p.writeDoc(ctx, doc, indent+"  ")
	}

	if list, ok := v.([]any); ok && hasDocument(list) {
		if _, err := fmt.Fprintf(p.w, "%s%s:\n", lead, name); err != nil {
			return err
		}
		for _, item := range list {
			if err := p.writeItem(ctx, item, indent+"  "); err != nil {
				return err
			}
		}
		return nil
	}

	s, err := p.compact.Serialize(ctx, v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.w, "%s%s: %s\n", lead, name, p.value.Sprint(string(s)))
	return err
}

func (p *printer) writeItem(ctx context.Context, item any, indent string) error {
	doc, ok := item.(domain.Document)
	if !ok || doc.Len() == 0 {
		s, err := p.compact.Serialize(ctx, item)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.w, "%s- %s\n", indent, p.value.Sprint(string(s)))
		return err
	}

	lead := indent + "- "
	for k, v := range doc.Iter() {
		if err := p.writeEntry(ctx, lead, indent+"  ", k, v); err != nil {
			return err
		}
		lead = indent + "  "
	}
	return nil
}

func hasDocument(list []any) bool {
	for _, item := range list {
		if _, ok := item.(domain.Document); ok {
			return true
		}
	}
	return false
}
