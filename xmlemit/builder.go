package xmlemit

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// builder is a tiny attribute-ordered XML writer. encoding/xml's struct
// tag model cannot express this format's conditional, per-record attribute
// order (pugixml's append_attribute in call order), so elements are
// written directly as tokens, indented two spaces per depth to match the
// reference writer's output.
type builder struct {
	w     io.Writer
	depth int
	err   error
}

func newBuilder(w io.Writer) *builder {
	return &builder{w: w}
}

func (b *builder) writeString(s string) {
	if b.err != nil {
		return
	}
	if _, err := io.WriteString(b.w, s); err != nil {
		b.err = err
	}
}

func (b *builder) indent() string {
	return strings.Repeat("  ", b.depth)
}

func (b *builder) decl() {
	b.writeString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
}

// open starts an element with attributes and increases depth; callers
// must pair it with close.
func (b *builder) open(name string, attrs ...xmlAttr) {
	b.writeString(b.indent() + "<" + name + attrsString(attrs) + ">\n")
	b.depth++
}

func (b *builder) close(name string) {
	b.depth--
	b.writeString(b.indent() + "</" + name + ">\n")
}

// openClose writes a self-closing leaf element.
func (b *builder) openClose(name string, attrs ...xmlAttr) {
	b.writeString(b.indent() + "<" + name + attrsString(attrs) + "/>\n")
}

// textElement writes an element whose only content is escaped character
// data, e.g. <title>My Song</title>. An empty value still renders the
// element (matching pugixml's text().set("")).
func (b *builder) textElement(name, value string) {
	b.writeString(b.indent() + "<" + name + ">" + escapeText(value) + "</" + name + ">\n")
}

type xmlAttr struct {
	name  string
	value string
}

func attrStr(name, value string) xmlAttr    { return xmlAttr{name, escapeAttr(value)} }
func attrInt(name string, v int) xmlAttr    { return xmlAttr{name, strconv.Itoa(v)} }
func attrFloat3(name string, v float32) xmlAttr {
	return xmlAttr{name, formatFloat3(v)}
}
func attrFloatPlain(name string, v float32) xmlAttr {
	return xmlAttr{name, formatFloatPlain(v)}
}

func attrsString(attrs []xmlAttr) string {
	if len(attrs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, a := range attrs {
		fmt.Fprintf(&sb, ` %s="%s"`, a.name, a.value)
	}
	return sb.String()
}

func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

func escapeText(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(s)
}
