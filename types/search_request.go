package types

import "strings"

const (
	BoolOr  = "OR"
	BoolAnd = "AND"
)

type SearchRequest struct {
	// 搜索的短语，会经过和建索引时相同的分词及处理管道
	// 当值为空字符串时关键词从下面的Tokens读入
	Text string

	// 已经处理过的关键词，当Text不为空时优先使用Text
	Tokens []string

	// 搜索选项，值为nil时使用索引文件中的search_options
	SearchOptions *SearchOptions

	// 排序选项，值为nil时使用索引文件中的results_options
	RankOptions *RankOptions
}

// 对应索引文件的search_options
type SearchOptions struct {
	// "OR" 或者 "AND"
	Bool string `json:"bool"`

	// 是否按前缀展开关键词
	Expand bool `json:"expand"`

	// [字段名]权重
	Fields map[string]FieldOptions `json:"fields"`
}

type FieldOptions struct {
	Boost float64 `json:"boost"`
}

// 是否为AND搜索，大小写不敏感，其他值一律视为OR
func (options SearchOptions) IsAnd() bool {
	return strings.EqualFold(options.Bool, BoolAnd)
}

// 对应索引文件的results_options
type ResultsOptions struct {
	LimitResults    int `json:"limit_results"`
	TeaserWordCount int `json:"teaser_word_count"`
}

type RankOptions struct {
	// 从第几条结果开始输出
	OutputOffset int

	// 最大输出的搜索结果数，为0时使用results_options.limit_results
	MaxOutputs int

	// 摘要的词数，为0时使用results_options.teaser_word_count，小于0时不生成摘要
	TeaserWordCount int
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Bool:   BoolOr,
		Expand: true,
		Fields: map[string]FieldOptions{
			FieldBody:        {Boost: 1},
			FieldBreadcrumbs: {Boost: 1},
			FieldTitle:       {Boost: 2},
		},
	}
}

func DefaultResultsOptions() ResultsOptions {
	return ResultsOptions{
		LimitResults:    30,
		TeaserWordCount: 30,
	}
}
