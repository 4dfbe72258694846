// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package decl

import (
	"unicode"
	"unicode/utf8"
)

// Token types.
//
const (
	EOF Type = iota
	Raw
	Ident
	Percent
	Ampersand
	Arrow
	Comma
)

// Type is the type of a lexical item.
//
type Type int

var typeNames = [...]string{
	EOF:       "end of line",
	Raw:       "character",
	Ident:     "name",
	Percent:   "'%'",
	Ampersand: "'&'",
	Arrow:     "'->'",
	Comma:     "','",
}

func (t Type) String() string { return typeNames[t] }

// Item is a lexical item.
//
type Item struct {
	Type  Type
	Pos   int // byte offset in the line
	Value string
}

func (i Item) String() string {
	if i.Type == Ident || i.Type == Raw {
		return i.Type.String() + " " + `"` + i.Value + `"`
	}
	return i.Type.String()
}

const eof = -1

type lexer struct {
	input string
	start int
	pos   int
	width int
	items []Item
}

type stateFn func(l *lexer) stateFn

// Lex splits a single declaration line into items. The last item is always
// EOF. A '#' starts a comment that runs to the end of the line.
//
func Lex(line string) []Item {
	l := &lexer{input: line}
	for state := lexInit; state != nil; {
		state = state(l)
	}
	return l.items
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *lexer) backup() { l.pos -= l.width }

func (l *lexer) ignore() { l.start = l.pos }

func (l *lexer) emit(t Type) {
	l.items = append(l.items, Item{t, l.start, l.input[l.start:l.pos]})
	l.start = l.pos
}

func isIdent(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lexInit(l *lexer) stateFn {
	r := l.next()
	switch {
	case r == eof || r == '#':
		return lexEOF
	case unicode.IsSpace(r):
		for unicode.IsSpace(r) {
			r = l.next()
		}
		l.backup()
		l.ignore()
	case isIdent(r):
		return lexIdent
	case r == '%':
		l.emit(Percent)
	case r == '&':
		l.emit(Ampersand)
	case r == ',':
		l.emit(Comma)
	case r == '-':
		if l.next() == '>' {
			l.emit(Arrow)
			break
		}
		l.backup()
		fallthrough
	default:
		l.emit(Raw)
		return lexEOF
	}
	return lexInit
}

func lexIdent(l *lexer) stateFn {
	r := l.next()
	for isIdent(r) {
		r = l.next()
	}
	if r != eof {
		l.backup()
	}
	l.emit(Ident)
	return lexInit
}

// lexEOF emits the final EOF item and stops the lexer.
//
func lexEOF(l *lexer) stateFn {
	l.start = l.pos
	l.items = append(l.items, Item{EOF, l.pos, ""})
	return nil
}
