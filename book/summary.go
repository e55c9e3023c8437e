package book

import (
	"github.com/yuin/goldmark/ast"
)

type summaryEntry struct {
	name    string
	path    string
	parents []string
}

// 解析SUMMARY.md：列表项中的链接为章节，嵌套的列表为子章节
// 列表外的链接（前言、后记）作为顶层章节，链接地址为空的草稿章节只作为上级名出现
func parseSummary(source []byte) []summaryEntry {
	var entries []summaryEntry
	document := parseMarkdown(source)
	for n := document.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.Kind() {
		case ast.KindList:
			entries = walkSummaryList(n, source, nil, entries)
		case ast.KindParagraph:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if link, ok := c.(*ast.Link); ok {
					entries = append(entries, summaryEntry{
						name: nodeText(link, source),
						path: string(link.Destination),
					})
				}
			}
		}
	}
	return entries
}

func walkSummaryList(list ast.Node, source []byte, parents []string, entries []summaryEntry) []summaryEntry {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var entry *summaryEntry
		var nested []ast.Node
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if c.Kind() == ast.KindList {
				nested = append(nested, c)
				continue
			}
			if entry == nil {
				entry = findSummaryLink(c, source)
			}
		}

		children := parents
		if entry != nil {
			entry.parents = append([]string(nil), parents...)
			entries = append(entries, *entry)
			children = append(append([]string(nil), parents...), entry.name)
		}
		for _, list := range nested {
			entries = walkSummaryList(list, source, children, entries)
		}
	}
	return entries
}

func findSummaryLink(node ast.Node, source []byte) *summaryEntry {
	var entry *summaryEntry
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			entry = &summaryEntry{
				name: nodeText(link, source),
				path: string(link.Destination),
			}
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return entry
}
