package book

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

const (
	DefaultHeadingSplitLevel = 3
	breadcrumbSeparator      = " » "
)

// 章节中以标题分隔的一节
type Section struct {
	Title string
	// 标题的锚点，标题之前的文字为空
	ID          string
	Body        string
	Breadcrumbs string
	URL         string
}

func (section Section) Document() types.DocumentIndexData {
	return types.DocumentIndexData{
		Title:       section.Title,
		Body:        section.Body,
		Breadcrumbs: section.Breadcrumbs,
		URL:         section.URL,
	}
}

// 按不超过splitLevel级的标题切分章节
//
// 更低级的标题文字并入正文。第一个标题之前有文字时，生成一节以章节名为标题、链接不带锚点。
func Sections(chapter Chapter, splitLevel int) []Section {
	if splitLevel <= 0 {
		splitLevel = DefaultHeadingSplitLevel
	}
	source := chapter.Content
	htmlPath := chapter.HTMLPath()
	ids := newIDSet()

	var sections []Section
	current := &Section{Title: chapter.Name, URL: htmlPath}
	var body []string
	flush := func() {
		current.Body = strings.Join(body, " ")
		if current.ID != "" || current.Body != "" {
			current.Breadcrumbs = breadcrumbs(chapter, current.Title)
			sections = append(sections, *current)
		}
		body = nil
	}

	document := parseMarkdown(source)
	for n := document.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok && heading.Level <= splitLevel {
			flush()
			title := nodeText(heading, source)
			id := ids.unique(NormalizeID(title))
			current = &Section{Title: title, ID: id, URL: htmlPath + "#" + id}
			continue
		}
		if text := nodeText(n, source); text != "" {
			body = append(body, text)
		}
	}
	flush()
	return sections
}

// 上级章节名、章节名和标题，标题与章节名相同时省略
func breadcrumbs(chapter Chapter, title string) string {
	parts := append(append([]string(nil), chapter.Parents...), chapter.Name)
	if title != chapter.Name {
		parts = append(parts, title)
	}
	return strings.Join(parts, breadcrumbSeparator)
}

// 标题转为锚点：小写，保留字母数字、下划线和连字符，空白转为连字符
func NormalizeID(title string) string {
	var builder strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			builder.WriteString(strings.ToLower(string(r)))
		case unicode.IsSpace(r):
			builder.WriteByte('-')
		}
	}
	return builder.String()
}

type idSet map[string]int

func newIDSet() idSet {
	return make(idSet)
}

// 重复的锚点依次加上 -1、-2 后缀，跳过已被其他标题占用的后缀
func (ids idSet) unique(id string) string {
	count, found := ids[id]
	if !found {
		ids[id] = 1
		return id
	}
	for {
		candidate := id + "-" + strconv.Itoa(count)
		count++
		if _, used := ids[candidate]; !used {
			ids[id] = count
			ids[candidate] = 1
			return candidate
		}
	}
}
