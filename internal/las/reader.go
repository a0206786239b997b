package las

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

const maxLineSize = 1024 * 1024

// SyntaxError reports malformed LAS content.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

type reader struct {
	file     *File
	section  rune
	title    string
	sections int
	tokens   []string
	// source line of each data token
	tokenLines []int
}

// Parse reads a LAS document from r.
func Parse(r io.Reader) (*File, error) {
	rd := &reader{file: &File{Unknown: make(map[string][]string)}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := rd.line(lineNo, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading las: %w", err)
	}

	return rd.finish()
}

func (rd *reader) line(n int, raw string) error {
	text := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if text == "" || strings.HasPrefix(text, "#") {
		return nil
	}

	if strings.HasPrefix(text, "~") {
		rd.sections++
		rd.title = text
		rd.section = 0
		if len(text) > 1 {
			rd.section = unicode.ToUpper(rune(text[1]))
		}
		return nil
	}

	switch rd.section {
	case 0:
		return &SyntaxError{Line: n, Msg: "content before first section"}
	case SectionVersion, SectionWell, SectionCurves, SectionParameter:
		item, err := parseHeaderLine(text)
		if err != nil {
			return &SyntaxError{Line: n, Msg: err.Error()}
		}
		rd.addItem(item)
	case SectionOther:
		if rd.file.Other != "" {
			rd.file.Other += "\n"
		}
		rd.file.Other += text
	case SectionData:
		for _, tok := range strings.Fields(text) {
			rd.tokens = append(rd.tokens, tok)
			rd.tokenLines = append(rd.tokenLines, n)
		}
	default:
		rd.file.Unknown[rd.title] = append(rd.file.Unknown[rd.title], raw)
	}
	return nil
}

func (rd *reader) addItem(item HeaderItem) {
	f := rd.file
	switch rd.section {
	case SectionVersion:
		f.Version.Items = append(f.Version.Items, item)
	case SectionWell:
		f.Well.Items = append(f.Well.Items, item)
	case SectionCurves:
		f.Curves.Items = append(f.Curves.Items, item)
	case SectionParameter:
		f.Parameters.Items = append(f.Parameters.Items, item)
	}
}

func (rd *reader) finish() (*File, error) {
	f := rd.file
	if rd.sections == 0 {
		return nil, &SyntaxError{Msg: "no LAS sections found"}
	}
	if len(f.Curves.Items) == 0 {
		return nil, &SyntaxError{Msg: "no curves defined in ~C section"}
	}
	if isVersion1(f) {
		fillLegacyWellValues(f)
	}

	f.names = uniqueNames(f.Curves.Items)
	width := len(f.names)

	if len(rd.tokens)%width != 0 {
		return nil, &SyntaxError{Msg: fmt.Sprintf("data section has %d values, not a multiple of %d curves", len(rd.tokens), width)}
	}

	f.rows = make([][]float64, 0, len(rd.tokens)/width)
	for start := 0; start < len(rd.tokens); start += width {
		row := make([]float64, width)
		for c := 0; c < width; c++ {
			tok := rd.tokens[start+c]
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &SyntaxError{Line: rd.tokenLines[start+c], Msg: fmt.Sprintf("invalid value %q for curve %s", tok, f.names[c])}
			}
			row[c] = v
		}
		f.rows = append(f.rows, row)
	}
	return f, nil
}

// parseHeaderLine splits "MNEM.UNIT VALUE : DESCRIPTION". The mnemonic ends at
// the first dot, the unit at the first space after it and the description
// starts after the last colon.
func parseHeaderLine(line string) (HeaderItem, error) {
	dot := strings.Index(line, ".")
	if dot < 0 {
		return HeaderItem{}, fmt.Errorf("header line %q has no '.' after the mnemonic", line)
	}

	item := HeaderItem{Mnemonic: strings.TrimSpace(line[:dot])}
	rest := line[dot+1:]

	if sp := strings.IndexFunc(rest, unicode.IsSpace); sp >= 0 {
		item.Unit = rest[:sp]
		rest = rest[sp:]
	} else {
		item.Unit = rest
		rest = ""
	}
	// a unit running into the colon, e.g. "STRT.M:"
	if colon := strings.Index(item.Unit, ":"); colon >= 0 {
		rest = item.Unit[colon:] + rest
		item.Unit = item.Unit[:colon]
	}

	if colon := strings.LastIndex(rest, ":"); colon >= 0 {
		item.Value = strings.TrimSpace(rest[:colon])
		item.Description = strings.TrimSpace(rest[colon+1:])
	} else {
		item.Value = strings.TrimSpace(rest)
	}
	return item, nil
}

func isVersion1(f *File) bool {
	item, ok := f.Version.Get("VERS")
	return ok && strings.HasPrefix(strings.TrimSpace(item.Value), "1.")
}

// LAS 1.2 places most ~W values in the description field ("WELL. : NAME").
func fillLegacyWellValues(f *File) {
	for i, item := range f.Well.Items {
		switch strings.ToUpper(item.Mnemonic) {
		case "STRT", "STOP", "STEP", "NULL":
			continue
		}
		if item.Value == "" && item.Description != "" {
			f.Well.Items[i].Value = item.Description
		}
	}
}
