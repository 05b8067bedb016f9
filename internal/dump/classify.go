package dump

import (
	"regexp"
	"strings"
)

// NodeKind identifies the dump node types the extractor reacts to. Every
// other type classifies as KindUnknown and is ignored.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindText
	KindHTMLStartTag
	KindHTMLEndTag
	KindBlockCommand
	KindInlineCommand
)

var nodeKinds = map[string]NodeKind{
	"TextComment":          KindText,
	"HTMLStartTagComment":  KindHTMLStartTag,
	"HTMLEndTagComment":    KindHTMLEndTag,
	"BlockCommandComment":  KindBlockCommand,
	"InlineCommandComment": KindInlineCommand,
}

func (k NodeKind) String() string {
	for name, kind := range nodeKinds {
		if kind == k {
			return name
		}
	}
	return "Unknown"
}

// Line is one classified dump line.
type Line struct {
	Depth   int      // Length of the tree-drawing prefix
	Kind    NodeKind // Recognized kind, or KindUnknown
	Type    string   // Raw node type token, e.g. "ParagraphComment"
	ID      string   // Opaque node identifier, e.g. "0x7f9b2c0a1b30"
	Payload string   // Everything after the identifier
}

// treeLine splits the drawing prefix ("| |-", "`-" ...) from the node text.
// The prefix is any run of non-word characters.
var treeLine = regexp.MustCompile(`^(\W*)(\w.*)$`)

// Classify splits a raw dump line. It reports false for lines that do not
// carry at least a type, an identifier and a payload.
func Classify(raw string) (Line, bool) {
	m := treeLine.FindStringSubmatch(raw)
	if m == nil {
		return Line{}, false
	}
	fields := strings.SplitN(m[2], " ", 3)
	if len(fields) < 3 {
		return Line{}, false
	}
	return Line{
		Depth:   len(m[1]),
		Kind:    nodeKinds[fields[0]],
		Type:    fields[0],
		ID:      fields[1],
		Payload: fields[2],
	}, true
}

// nodeData matches the location bracket and the data that follows it.
var nodeData = regexp.MustCompile(`^<([^>]*)>\s*(.*)$`)

// Split separates the payload into its location bracket contents and the
// remaining node data. It reports false when the payload has no bracket.
func (l Line) Split() (location, data string, ok bool) {
	m := nodeData.FindStringSubmatch(l.Payload)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

var commandName = regexp.MustCompile(`Name="([^"]*)"`)

// CommandName returns the Name="..." attribute of a command node.
func CommandName(data string) (string, bool) {
	m := commandName.FindStringSubmatch(data)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TextPayload returns the contents of a Text="..." attribute.
func TextPayload(data string) (string, bool) {
	if !strings.HasPrefix(data, `Text="`) {
		return "", false
	}
	text := strings.TrimPrefix(data, `Text="`)
	text = strings.TrimSuffix(text, `"`)
	return text, true
}
