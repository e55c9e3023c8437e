package core

import (
	"github.com/cyrup-ai/get.cyrup.ai/types"
)

// 分词器加处理管道，建索引和搜索时共用同一个分析器才能得到一致的关键词
type Analyzer struct {
	tokenizer *Tokenizer
	pipeline  *Pipeline
}

func NewAnalyzer(options types.IndexerInitOptions) (*Analyzer, error) {
	options.Init()

	tokenizer, err := NewTokenizer(options.SegmenterDictionaries)
	if err != nil {
		return nil, err
	}

	stopTokens := new(StopTokens)
	if err := stopTokens.Init(options.StopTokenFile); err != nil {
		return nil, err
	}

	pipeline, err := NewPipeline(stopTokens, options.Pipeline...)
	if err != nil {
		return nil, err
	}
	return &Analyzer{tokenizer: tokenizer, pipeline: pipeline}, nil
}

func (analyzer *Analyzer) Pipeline() *Pipeline {
	return analyzer.pipeline
}

func (analyzer *Analyzer) Analyze(text string) []string {
	return analyzer.pipeline.Run(analyzer.tokenizer.Tokenize(text))
}

// 对文档的每个字段分词并统计词频
func (analyzer *Analyzer) AnalyzeDocument(data types.DocumentIndexData, fields []string) *types.DocumentIndex {
	document := &types.DocumentIndex{
		Data:         data,
		Keywords:     make(map[string][]types.KeywordIndex, len(fields)),
		FieldLengths: make(types.DocInfo, len(fields)),
	}
	doc := data.Document("")
	for _, field := range fields {
		tokens := analyzer.Analyze(doc.Field(field))
		document.FieldLengths[field] = len(tokens)

		// 按首次出现的顺序输出
		positions := make(map[string]int)
		var keywords []types.KeywordIndex
		for _, token := range tokens {
			if i, found := positions[token]; found {
				keywords[i].Frequency++
				continue
			}
			positions[token] = len(keywords)
			keywords = append(keywords, types.KeywordIndex{Text: token, Frequency: 1})
		}
		document.Keywords[field] = keywords
	}
	return document
}
