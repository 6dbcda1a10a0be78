// Copyright the s2ibis authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config implements both configuration-loader front ends of
// spec.md §6: the legacy flat keyword-tagged form and the structured
// hierarchical form, lowering each into the same *model.Document. The flat
// tokenizer follows the teacher's pkg/sexp layering (tokenize first, build
// structure second, report errors with source spans), even though the
// bracketed-keyword grammar here is IBIS's rather than an S-expression's.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/simon9721/s2ibis-go/internal/errs"
	"github.com/simon9721/s2ibis-go/internal/model"
)

// block is one bracketed-keyword section of a flat-form document: the
// keyword itself, any arguments trailing it on the same line, and the data
// lines belonging to it (including continuation lines already spliced).
type block struct {
	Keyword string
	Args    []string
	Lines   []string
	Span    errs.Span
}

// flatParser tokenizes a flat-form source file rune by rune, in the
// teacher's pkg/sexp.Parser style: an explicit index into a []rune buffer,
// rather than a line-oriented bufio.Scanner, so that spans can be reported
// precisely and continuation/include handling stays in one pass.
type flatParser struct {
	file string
	text []rune
	pos  int
	line int
}

func newFlatParser(file, text string) *flatParser {
	return &flatParser{file: file, text: []rune(text), pos: 0, line: 1}
}

func (p *flatParser) error(msg string) error {
	return &errs.ConfigError{File: p.file, Span: errs.Span{Start: p.line, End: p.line}, Msg: msg}
}

func (p *flatParser) eof() bool {
	return p.pos >= len(p.text)
}

// nextLine consumes and returns the next logical line: raw text up to (but
// excluding) the newline, with an inline "!" comment stripped. The newline
// itself is consumed.
func (p *flatParser) nextLine() (string, bool) {
	if p.eof() {
		return "", false
	}

	start := p.pos
	for !p.eof() && p.text[p.pos] != '\n' {
		p.pos++
	}

	raw := string(p.text[start:p.pos])

	if !p.eof() {
		p.pos++ // consume '\n'
	}

	p.line++

	if idx := strings.IndexByte(raw, '!'); idx >= 0 {
		raw = raw[:idx]
	}

	return strings.TrimRight(raw, "\r\t "), true
}

// parseBlocks tokenizes the whole source into an ordered list of blocks,
// splicing `include` directives in place as they are encountered.
func (p *flatParser) parseBlocks(baseDir string) ([]block, error) {
	var blocks []block

	for {
		line, ok := p.nextLine()
		if !ok {
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "+") {
			if len(blocks) == 0 {
				return nil, p.error("continuation line with no preceding keyword block")
			}

			cont := strings.TrimSpace(strings.TrimPrefix(trimmed, "+"))
			last := &blocks[len(blocks)-1]
			last.Lines = append(last.Lines, cont)

			continue
		}

		if trimmed[0] != '[' {
			if len(blocks) == 0 {
				return nil, p.error("data line with no preceding keyword block")
			}

			last := &blocks[len(blocks)-1]
			last.Lines = append(last.Lines, trimmed)

			continue
		}

		kw, rest, err := splitKeyword(trimmed)
		if err != nil {
			return nil, p.error(err.Error())
		}

		if strings.EqualFold(kw, "Include") {
			incPath := strings.TrimSpace(rest)
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(baseDir, incPath)
			}

			data, readErr := os.ReadFile(incPath)
			if readErr != nil {
				return nil, &errs.ResourceError{Path: incPath, Msg: readErr.Error()}
			}

			sub := newFlatParser(incPath, string(data))

			subBlocks, subErr := sub.parseBlocks(filepath.Dir(incPath))
			if subErr != nil {
				return nil, subErr
			}

			blocks = append(blocks, subBlocks...)

			continue
		}

		b := block{
			Keyword: kw,
			Span:    errs.Span{Start: p.line - 1, End: p.line - 1},
		}

		if rest = strings.TrimSpace(rest); rest != "" {
			b.Args = strings.Fields(rest)
		}

		blocks = append(blocks, b)
	}

	return blocks, nil
}

// splitKeyword extracts "Keyword" and the trailing same-line text from a
// "[Keyword] rest..." line.
func splitKeyword(line string) (string, string, error) {
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return "", "", fmt.Errorf("unterminated bracketed keyword: %q", line)
	}

	kw := strings.TrimFunc(line[1:end], unicode.IsSpace)
	rest := line[end+1:]

	return kw, rest, nil
}

// ParseFlat tokenizes and lowers a flat keyword-form configuration file into
// a Document.
func ParseFlat(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.ResourceError{Path: path, Msg: err.Error()}
	}

	p := newFlatParser(path, string(data))

	blocks, err := p.parseBlocks(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	return lowerFlatBlocks(path, blocks)
}
