package core

import (
	"fmt"
	"math"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

// 建好的索引：每个字段一棵前缀树，加上文档存储和处理管道
//
// Index生成后不再修改，可以被多个协程同时读取。
type Index struct {
	fields        []string
	ref           string
	lang          string
	version       string
	analyzer      *Analyzer
	index         map[string]*InvertedIndex
	documentStore *DocumentStore
}

func (index *Index) Fields() []string {
	fields := make([]string, len(index.fields))
	copy(fields, index.fields)
	return fields
}

func (index *Index) Ref() string {
	return index.ref
}

func (index *Index) Lang() string {
	return index.lang
}

func (index *Index) Version() string {
	return index.version
}

func (index *Index) Pipeline() []string {
	return index.analyzer.Pipeline().Names()
}

// 字段的反向索引，字段不存在时返回nil
func (index *Index) FieldIndex(field string) *InvertedIndex {
	return index.index[field]
}

func (index *Index) DocumentStore() *DocumentStore {
	return index.documentStore
}

// 用建索引时的分词器和处理管道处理搜索短语
func (index *Index) Analyze(text string) []string {
	return index.analyzer.Analyze(text)
}

// 逆文档频率 1 + ln(N / (df + 1))
func (index *Index) Idf(field, token string) float64 {
	df := 0
	if fieldIndex, found := index.index[field]; found {
		df = fieldIndex.GetDocFreq(token)
	}
	return 1 + math.Log(float64(index.documentStore.Len())/float64(df+1))
}

// 对已经处理过的关键词打分，返回[文档编号]分数
//
// options.Fields为空时搜索全部字段，权重为1；权重为0的字段不参与搜索。
func (index *Index) Search(tokens []string, options types.SearchOptions) map[string]float64 {
	results := make(map[string]float64)
	if len(tokens) == 0 {
		return results
	}

	for _, field := range index.fields {
		boost := 1.0
		if len(options.Fields) > 0 {
			fieldOptions, found := options.Fields[field]
			if !found {
				continue
			}
			boost = fieldOptions.Boost
		}
		if boost == 0 {
			continue
		}

		for ref, score := range index.fieldSearch(tokens, field, options) {
			results[ref] += score * boost
		}
	}
	return results
}

func (index *Index) fieldSearch(tokens []string, field string, options types.SearchOptions) map[string]float64 {
	fieldIndex := index.index[field]
	isAnd := options.IsAnd()

	var scores map[string]float64
	// [文档编号]精确匹配的搜索键
	docTokens := make(map[string][]string)

	for _, token := range tokens {
		keys := []string{token}
		if options.Expand {
			keys = fieldIndex.ExpandToken(token)
		}

		tokenScores := make(map[string]float64)
		for _, key := range keys {
			docs := fieldIndex.docs(key)
			idf := index.Idf(field, key)

			// AND搜索时只保留此前已经命中的文档
			if scores != nil && isAnd {
				filtered := make(map[string]float64)
				for ref := range scores {
					if tf, found := docs[ref]; found {
						filtered[ref] = tf
					}
				}
				docs = filtered
			}

			if key == token {
				for ref := range docs {
					docTokens[ref] = append(docTokens[ref], key)
				}
			}

			penalty := 1.0
			if key != token {
				// 前缀展开得到的关键词降权
				keyLength := float64(utf8.RuneCountInString(key))
				tokenLength := float64(utf8.RuneCountInString(token))
				penalty = (1 - (keyLength-tokenLength)/keyLength) * 0.15
			}

			for ref, tf := range docs {
				fieldLengthNorm := 1.0
				if length := index.documentStore.GetFieldLength(ref, field); length != 0 {
					fieldLengthNorm = 1 / math.Sqrt(float64(length))
				}
				tokenScores[ref] += tf * idf * fieldLengthNorm * penalty
			}
		}

		scores = mergeScores(scores, tokenScores, isAnd)
	}

	// 按精确匹配的搜索键比例调整分数
	for ref := range scores {
		if matched, found := docTokens[ref]; found {
			scores[ref] = scores[ref] * float64(len(matched)) / float64(len(tokens))
		}
	}
	return scores
}

func mergeScores(accumulated, scores map[string]float64, isAnd bool) map[string]float64 {
	if accumulated == nil {
		return scores
	}
	if isAnd {
		intersection := make(map[string]float64)
		for ref, score := range scores {
			if previous, found := accumulated[ref]; found {
				intersection[ref] = previous + score
			}
		}
		return intersection
	}
	for ref, score := range scores {
		accumulated[ref] += score
	}
	return accumulated
}

func (index *Index) clone() *Index {
	output := *index
	output.fields = index.Fields()
	output.index = make(map[string]*InvertedIndex, len(index.index))
	for field, fieldIndex := range index.index {
		output.index[field] = fieldIndex.clone()
	}
	output.documentStore = index.documentStore.clone()
	return &output
}

type indexJSON struct {
	DocumentStore *DocumentStore            `json:"documentStore"`
	Fields        []string                  `json:"fields"`
	Index         map[string]*InvertedIndex `json:"index"`
	Lang          string                    `json:"lang"`
	Pipeline      []string                  `json:"pipeline"`
	Ref           string                    `json:"ref"`
	Version       string                    `json:"version"`
}

func (index *Index) MarshalJSON() ([]byte, error) {
	return marshalNoEscape(indexJSON{
		DocumentStore: index.documentStore,
		Fields:        index.fields,
		Index:         index.index,
		Lang:          index.lang,
		Pipeline:      index.Pipeline(),
		Ref:           index.ref,
		Version:       index.version,
	})
}

// 读入索引，按文件中的pipeline字段重建处理管道
func (index *Index) UnmarshalJSON(data []byte) error {
	var input indexJSON
	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}
	if input.DocumentStore == nil {
		return fmt.Errorf("documentStore: missing")
	}
	if len(input.Fields) == 0 {
		return fmt.Errorf("fields: missing")
	}
	for _, field := range input.Fields {
		if input.Index[field] == nil {
			return fmt.Errorf("index.%s: missing", field)
		}
	}

	pipeline, err := NewPipeline(nil, input.Pipeline...)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	tokenizer, _ := NewTokenizer("")

	*index = Index{
		fields:        input.Fields,
		ref:           input.Ref,
		lang:          input.Lang,
		version:       input.Version,
		analyzer:      &Analyzer{tokenizer: tokenizer, pipeline: pipeline},
		index:         input.Index,
		documentStore: input.DocumentStore,
	}
	return nil
}
