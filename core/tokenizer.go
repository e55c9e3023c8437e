package core

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/huichen/sego"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// 分词器：按空白和连字符切分并转为小写
// 载入字典后先用sego分词，再对每个分词结果做同样的切分
type Tokenizer struct {
	segmenter *sego.Segmenter
}

// dictionaries为逗号分隔的字典文件列表，为空时不使用sego
func NewTokenizer(dictionaries string) (*Tokenizer, error) {
	tokenizer := &Tokenizer{}
	if dictionaries == "" {
		return tokenizer, nil
	}

	// sego在字典不存在时直接log.Fatal，先检查一遍
	for _, file := range strings.Split(dictionaries, ",") {
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("cannot load segmenter dictionary %s: %w", file, err)
		}
	}
	tokenizer.segmenter = new(sego.Segmenter)
	tokenizer.segmenter.LoadDictionary(dictionaries)
	return tokenizer, nil
}

func (tokenizer *Tokenizer) Tokenize(text string) []string {
	// cases.Caser不能并发使用，每次新建
	text = cases.Lower(language.Und).String(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	if tokenizer == nil || tokenizer.segmenter == nil {
		return splitToken(text, nil)
	}

	var tokens []string
	segments := tokenizer.segmenter.Segment([]byte(text))
	for _, segment := range sego.SegmentsToSlice(segments, true) {
		tokens = splitToken(segment, tokens)
	}
	return tokens
}

func splitToken(text string, tokens []string) []string {
	return append(tokens, strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})...)
}
