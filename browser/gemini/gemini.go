// Package gemini implements the text/gemini document parser and the
// Gemini wire protocol client (spec §4.12).
package gemini

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
)

// LineKind discriminates a parsed gemtext line.
type LineKind uint8

const (
	LineText LineKind = iota
	LineLink
	LineHeading1
	LineHeading2
	LineHeading3
	LineListItem
	LineQuote
	LineEmpty
	LinePreformatted
)

// Line is one parsed line of a gemtext document.
type Line struct {
	Kind    LineKind
	Text    string
	LinkURL string // LineKind == LineLink
	AltText string // LineKind == LinePreformatted, from the toggle line
}

// Document is a parsed gemtext document: an ordered sequence of lines.
type Document struct {
	Lines []Line
}

// Parse parses raw text/gemini source into a Document. Per spec §4.12 the
// parser never fails: an unclosed preformatted block is implicitly closed
// at EOF rather than erroring.
func Parse(src string) Document {
	var doc Document
	pre := false
	var altText string

	lines := strings.Split(src, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1] // a trailing newline ends the last line; it does not start a new one
	}
	for _, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if !pre {
				pre = true
				altText = strings.TrimPrefix(line, "```")
			} else {
				pre = false
				altText = ""
			}
			continue
		}

		if pre {
			doc.Lines = append(doc.Lines, Line{Kind: LinePreformatted, Text: line, AltText: altText})
			continue
		}

		doc.Lines = append(doc.Lines, parseLine(line))
	}
	return doc
}

func parseLine(line string) Line {
	switch {
	case line == "":
		return Line{Kind: LineEmpty}
	case strings.HasPrefix(line, "=>"):
		rest := strings.TrimSpace(strings.TrimPrefix(line, "=>"))
		url, display, _ := strings.Cut(rest, " ")
		display = strings.TrimSpace(display)
		if display == "" {
			display = url
		}
		return Line{Kind: LineLink, LinkURL: url, Text: display}
	case strings.HasPrefix(line, "### "):
		return Line{Kind: LineHeading3, Text: strings.TrimPrefix(line, "### ")}
	case strings.HasPrefix(line, "## "):
		return Line{Kind: LineHeading2, Text: strings.TrimPrefix(line, "## ")}
	case strings.HasPrefix(line, "# "):
		return Line{Kind: LineHeading1, Text: strings.TrimPrefix(line, "# ")}
	case strings.HasPrefix(line, "* "):
		return Line{Kind: LineListItem, Text: strings.TrimPrefix(line, "* ")}
	case strings.HasPrefix(line, ">"):
		return Line{Kind: LineQuote, Text: strings.TrimSpace(strings.TrimPrefix(line, ">"))}
	default:
		return Line{Kind: LineText, Text: line}
	}
}

// StatusCategory categorizes a 2-digit Gemini status code (spec §4.12).
type StatusCategory uint8

const (
	StatusInput StatusCategory = iota
	StatusSuccess
	StatusRedirect
	StatusTempFail
	StatusPermFail
	StatusClientCert
	StatusUnknown
)

// CategorizeStatus maps a status code to its category.
func CategorizeStatus(status int) StatusCategory {
	switch {
	case status >= 10 && status <= 19:
		return StatusInput
	case status >= 20 && status <= 29:
		return StatusSuccess
	case status >= 30 && status <= 39:
		return StatusRedirect
	case status >= 40 && status <= 49:
		return StatusTempFail
	case status >= 50 && status <= 59:
		return StatusPermFail
	case status >= 60 && status <= 69:
		return StatusClientCert
	default:
		return StatusUnknown
	}
}

// Response is a parsed Gemini server response.
type Response struct {
	Status int
	Meta   string
	Body   []byte
}

// Request writes the Gemini request line for url to w: "<URL>\r\n".
func Request(w io.Writer, url string) error {
	_, err := io.WriteString(w, url+"\r\n")
	if err != nil {
		return oasiserr.Wrap(oasiserr.Io, "gemini.Request", err)
	}
	return nil
}

// ReadResponse parses a Gemini response from r: a status line
// "<2-digit status><SPACE><meta>\r\n" followed by an optional body read to
// EOF.
func ReadResponse(r io.Reader) (Response, error) {
	br := bufio.NewReader(r)
	statusLine, err := br.ReadString('\n')
	if err != nil && statusLine == "" {
		return Response{}, oasiserr.Wrap(oasiserr.Io, "gemini.ReadResponse", err)
	}
	statusLine = strings.TrimRight(statusLine, "\r\n")
	if len(statusLine) < 2 {
		return Response{}, oasiserr.New(oasiserr.Io, "gemini.ReadResponse: malformed status line")
	}
	status, err := strconv.Atoi(statusLine[:2])
	if err != nil {
		return Response{}, oasiserr.Wrap(oasiserr.Io, "gemini.ReadResponse", fmt.Errorf("status code: %w", err))
	}
	meta := strings.TrimPrefix(statusLine[2:], " ")

	var body []byte
	if CategorizeStatus(status) == StatusSuccess {
		body, err = io.ReadAll(br)
		if err != nil {
			return Response{}, oasiserr.Wrap(oasiserr.Io, "gemini.ReadResponse", err)
		}
	}
	return Response{Status: status, Meta: meta, Body: body}, nil
}
