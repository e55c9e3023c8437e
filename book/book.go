package book

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

const summaryFile = "SUMMARY.md"

var ErrNoChapters = errors.New("no chapters found")

// 一章，对应一个markdown文件
type Chapter struct {
	// 章节名，来自SUMMARY.md中的链接文本或者文件中的一级标题
	Name string

	// 相对于书根目录的路径，使用 / 分隔
	Path string

	// 上级章节名，从外到内
	Parents []string

	Content []byte
}

// 生成的页面地址，README.md对应index.html
func (chapter Chapter) HTMLPath() string {
	dir, file := path.Split(chapter.Path)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if strings.EqualFold(stem, "readme") {
		stem = "index"
	}
	return dir + stem + ".html"
}

type Book struct {
	Location string
	Chapters []Chapter
}

// 从本地目录或者afs支持的任意位置读入书的源文件
//
// 有SUMMARY.md时按其中的链接顺序读入章节，否则按文件名顺序读入全部 .md 文件。
func Load(ctx context.Context, location string) (*Book, error) {
	fs := afs.New()
	base, err := normalize(location)
	if err != nil {
		return nil, err
	}

	var chapters []Chapter
	summaryURL := url.Join(base, summaryFile)
	exists, err := fs.Exists(ctx, summaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", summaryURL, err)
	}
	if exists {
		summary, err := fs.DownloadWithURL(ctx, summaryURL)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", summaryURL, err)
		}
		for _, entry := range parseSummary(summary) {
			if entry.path == "" {
				continue
			}
			content, err := fs.DownloadWithURL(ctx, url.Join(base, entry.path))
			if err != nil {
				return nil, fmt.Errorf("failed to read chapter %s: %w", entry.path, err)
			}
			chapters = append(chapters, Chapter{
				Name:    entry.name,
				Path:    entry.path,
				Parents: entry.parents,
				Content: content,
			})
		}
	} else {
		paths, err := listMarkdown(ctx, fs, base, "")
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)
		for _, p := range paths {
			content, err := fs.DownloadWithURL(ctx, url.Join(base, p))
			if err != nil {
				return nil, fmt.Errorf("failed to read chapter %s: %w", p, err)
			}
			chapters = append(chapters, Chapter{
				Name:    chapterName(content, p),
				Path:    p,
				Content: content,
			})
		}
	}

	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoChapters, location)
	}
	return &Book{Location: base, Chapters: chapters}, nil
}

// 相对路径转为绝对路径，本地路径转为file://地址
func normalize(location string) (string, error) {
	norm := location
	if url.Scheme(norm, "") == "" && url.IsRelative(norm) {
		var err error
		if norm, err = filepath.Abs(norm); err != nil {
			return "", fmt.Errorf("failed to get absolute path for %s: %w", location, err)
		}
	}
	if url.Scheme(norm, "") == "" {
		norm = url.ToFileURL(norm)
	}
	return strings.TrimSuffix(norm, "/"), nil
}

func listMarkdown(ctx context.Context, fs afs.Service, base, dir string) ([]string, error) {
	location := base
	if dir != "" {
		location = url.Join(base, dir)
	}
	objects, err := fs.List(ctx, location)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, object := range objects {
		name := object.Name()
		if object.IsDir() {
			// 第一个对象是目录本身
			if samePath(object.URL(), location) || name == "" || strings.HasPrefix(name, ".") {
				continue
			}
			sub, err := listMarkdown(ctx, fs, base, path.Join(dir, name))
			if err != nil {
				return nil, err
			}
			paths = append(paths, sub...)
			continue
		}
		if strings.EqualFold(path.Ext(name), ".md") {
			paths = append(paths, path.Join(dir, name))
		}
	}
	return paths, nil
}

func samePath(a, b string) bool {
	return strings.TrimSuffix(url.Path(a), "/") == strings.TrimSuffix(url.Path(b), "/")
}

// 全部章节切分成小节后的待索引文档
func (book *Book) Documents(splitLevel int) []types.DocumentIndexData {
	var docs []types.DocumentIndexData
	for _, chapter := range book.Chapters {
		for _, section := range Sections(chapter, splitLevel) {
			docs = append(docs, section.Document())
		}
	}
	return docs
}
