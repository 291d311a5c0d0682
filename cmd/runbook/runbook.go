package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Section is one h2 section of a runbook
type Section struct {
	Name    string
	Content string
}

// Runbook represents a parsed operational runbook
type Runbook struct {
	Title    string
	Sections []Section
	Links    map[string]string
}

// FindSection finds a section by name, case-insensitively
func (r *Runbook) FindSection(name string) *Section {
	for i := range r.Sections {
		if strings.EqualFold(r.Sections[i].Name, name) {
			return &r.Sections[i]
		}
	}
	return nil
}

// Parse parses a runbook markdown file
func Parse(source []byte) (*Runbook, error) {
	md := goldmark.New()
	reader := text.NewReader(source)
	ctx := parser.NewContext()
	doc := md.Parser().Parse(reader, parser.WithContext(ctx))

	runbook := &Runbook{
		Links: make(map[string]string),
	}

	// Extract link definitions from parser context
	for _, ref := range ctx.References() {
		runbook.Links[string(ref.Label())] = string(ref.Destination())
	}

	// Collect the title and all h2 headings with their positions from the AST
	type headingInfo struct {
		name         string
		contentStart int
		headingStart int
	}
	var headings []headingInfo

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		switch heading.Level {
		case 1:
			if runbook.Title == "" {
				runbook.Title = extractHeadingText(heading, source)
			}
		case 2:
			lines := heading.Lines()
			headingStart := 0
			contentStart := 0
			if lines.Len() > 0 {
				headingStart = lines.At(0).Start
				contentStart = lines.At(lines.Len() - 1).Stop
			}

			headings = append(headings, headingInfo{
				name:         extractHeadingText(heading, source),
				contentStart: contentStart,
				headingStart: headingStart,
			})
		}

		return ast.WalkContinue, nil
	})

	// Extract content for each section using AST positions
	for i, h := range headings {
		var contentEnd int
		if i+1 < len(headings) {
			contentEnd = headings[i+1].headingStart
		} else {
			contentEnd = len(source)
		}

		content := ""
		if h.contentStart < contentEnd {
			content = strings.TrimSpace(string(source[h.contentStart:contentEnd]))
		}

		runbook.Sections = append(runbook.Sections, Section{
			Name:    h.name,
			Content: content,
		})
	}

	return runbook, nil
}

func extractHeadingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(source))
		} else if link, ok := child.(*ast.Link); ok {
			for linkChild := link.FirstChild(); linkChild != nil; linkChild = linkChild.NextSibling() {
				if textNode, ok := linkChild.(*ast.Text); ok {
					buf.Write(textNode.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}
