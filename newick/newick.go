// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick reads and writes trees
// in the parenthetical (Newick) format.
//
// In a Newick string,
// parentheses group the children of a node,
// commas separate siblings,
// a colon prefixes a branch length,
// and a semicolon terminates the tree,
// for example:
//
//	((A:1,B:2):3,C:4);
//
// Names can be quoted with single or double quotes.
// In unquoted names,
// underscores and vertical bars are read as spaces.
// Comments between square brackets are ignored.
package newick

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/js-arias/phyview/tree"
)

// A ParseError is returned when a Newick string is malformed.
type ParseError struct {
	Line   int
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

// Read reads all the trees from a Newick stream.
func Read(r io.Reader) ([]*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := newParser(string(data))
	var ts []*tree.Tree
	for {
		if err := p.skipSpace(); err != nil {
			return nil, err
		}
		if p.eof() {
			break
		}
		t, err := p.tree()
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	if len(ts) == 0 {
		return nil, &ParseError{Line: p.line, Column: p.col, Reason: "no trees found"}
	}
	return ts, nil
}

// Parse parses a single tree from a string.
func Parse(s string) (*tree.Tree, error) {
	ts, err := Read(strings.NewReader(s))
	if err != nil {
		return nil, err
	}
	return ts[0], nil
}

type parser struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newParser(s string) *parser {
	return &parser{
		src:  []rune(s),
		line: 1,
		col:  1,
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{
		Line:   p.line,
		Column: p.col,
		Reason: fmt.Sprintf(format, args...),
	}
}

// skipSpace skips white spaces and comments.
func (p *parser) skipSpace() error {
	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) {
			p.next()
			continue
		}
		if r != '[' {
			return nil
		}
		line, col := p.line, p.col
		for !p.eof() && p.peek() != ']' {
			p.next()
		}
		if p.eof() {
			return &ParseError{Line: line, Column: col, Reason: "unterminated comment"}
		}
		p.next()
	}
	return nil
}

func (p *parser) tree() (*tree.Tree, error) {
	t := tree.New("")
	if _, err := p.node(t, tree.Nil); err != nil {
		return nil, err
	}

	if err := p.skipSpace(); err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, p.errorf("expecting ';' at end of tree")
	}
	if r := p.peek(); r != ';' {
		return nil, p.errorf("unexpected %q, expecting ';'", r)
	}
	p.next()
	return t, nil
}

// node reads a node and its descendants.
func (p *parser) node(t *tree.Tree, parent tree.ID) (tree.ID, error) {
	if err := p.skipSpace(); err != nil {
		return tree.Nil, err
	}
	if p.eof() {
		return tree.Nil, p.errorf("unexpected end of input")
	}

	id, err := t.Add(parent, "")
	if err != nil {
		return tree.Nil, p.errorf("%v", err)
	}

	if p.peek() == '(' {
		p.next()
		for {
			if _, err := p.node(t, id); err != nil {
				return tree.Nil, err
			}
			if err := p.skipSpace(); err != nil {
				return tree.Nil, err
			}
			if p.eof() {
				return tree.Nil, p.errorf("unexpected end of input, expecting ')'")
			}
			r := p.peek()
			if r == ',' {
				p.next()
				continue
			}
			if r == ')' {
				p.next()
				break
			}
			return tree.Nil, p.errorf("unexpected %q, expecting ',' or ')'", r)
		}
	}

	name, err := p.name()
	if err != nil {
		return tree.Nil, err
	}
	t.SetName(id, name)

	if err := p.skipSpace(); err != nil {
		return tree.Nil, err
	}
	if p.peek() == ':' {
		p.next()
		v, err := p.length()
		if err != nil {
			return tree.Nil, err
		}
		t.SetLen(id, v)
	}
	return id, nil
}

const delimiters = "()[]:;,"

func (p *parser) name() (string, error) {
	if err := p.skipSpace(); err != nil {
		return "", err
	}
	if p.eof() {
		return "", nil
	}

	if q := p.peek(); q == '\'' || q == '"' {
		line, col := p.line, p.col
		p.next()
		var b strings.Builder
		for {
			if p.eof() {
				return "", &ParseError{Line: line, Column: col, Reason: "unterminated quoted name"}
			}
			r := p.next()
			if r == q {
				// doubled quote is an escaped quote
				if p.peek() == q {
					p.next()
					b.WriteRune(q)
					continue
				}
				break
			}
			b.WriteRune(r)
		}
		return b.String(), nil
	}

	var words []string
	for {
		var b strings.Builder
		for !p.eof() {
			r := p.peek()
			if unicode.IsSpace(r) || strings.ContainsRune(delimiters, r) || r == '\'' || r == '"' {
				break
			}
			p.next()
			if r == '_' || r == '|' {
				r = ' '
			}
			b.WriteRune(r)
		}
		if b.Len() > 0 {
			words = append(words, b.String())
		}
		if p.eof() || !unicode.IsSpace(p.peek()) {
			break
		}
		if err := p.skipSpace(); err != nil {
			return "", err
		}
		if p.eof() || strings.ContainsRune(delimiters, p.peek()) {
			break
		}
	}
	return strings.Join(strings.Fields(strings.Join(words, " ")), " "), nil
}

func (p *parser) length() (float64, error) {
	if err := p.skipSpace(); err != nil {
		return 0, err
	}
	line, col := p.line, p.col
	var b strings.Builder
	for !p.eof() {
		r := p.peek()
		if !strings.ContainsRune("0123456789+-.eE", r) {
			break
		}
		b.WriteRune(p.next())
	}
	if b.Len() == 0 {
		return 0, &ParseError{Line: line, Column: col, Reason: "expecting branch length"}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, &ParseError{Line: line, Column: col, Reason: fmt.Sprintf("invalid branch length %q", b.String())}
	}
	return v, nil
}

// Write writes a tree in Newick format.
func Write(w io.Writer, t *tree.Tree) error {
	return WriteSubtree(w, t, t.Root())
}

// WriteSubtree writes the subtree rooted at the indicated node
// in Newick format.
// The branch length of the subtree root is not written.
func WriteSubtree(w io.Writer, t *tree.Tree, id tree.ID) error {
	if !t.Exists(id) {
		return fmt.Errorf("node %v: %w", id, tree.ErrUnknownNode)
	}
	bw := bufio.NewWriter(w)
	writeNode(bw, t, id, true)
	bw.WriteString(";\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing tree: %v", err)
	}
	return nil
}

// String returns the tree as a Newick string.
func String(t *tree.Tree) string {
	var b strings.Builder
	Write(&b, t)
	return strings.TrimSpace(b.String())
}

// SubtreeString returns the subtree rooted at a node
// as a Newick string.
func SubtreeString(t *tree.Tree, id tree.ID) string {
	var b strings.Builder
	WriteSubtree(&b, t, id)
	return strings.TrimSpace(b.String())
}

func writeNode(w *bufio.Writer, t *tree.Tree, id tree.ID, top bool) {
	children := t.Children(id)
	if len(children) > 0 {
		w.WriteByte('(')
		for i, c := range children {
			if i > 0 {
				w.WriteByte(',')
			}
			writeNode(w, t, c, false)
		}
		w.WriteByte(')')
	}
	w.WriteString(Quote(t.Label(id)))
	if top {
		return
	}
	if v, ok := t.Len(id); ok {
		w.WriteByte(':')
		w.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
	}
}

// Quote returns a name ready to be written in a Newick string.
// Names with white spaces, delimiters,
// underscores, vertical bars, or quotes
// are enclosed in single quotes.
func Quote(name string) string {
	if !strings.ContainsFunc(name, needQuote) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func needQuote(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(delimiters+"_|'\"", r)
}
