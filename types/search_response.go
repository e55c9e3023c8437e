package types

import "strconv"

type SearchResponse struct {
	// 搜索用到的关键词
	Tokens []string

	// 搜索到的文档，已排序
	Docs ScoredDocuments

	// 截断之前的文档总数
	Total int
}

type ScoredDocument struct {
	// 文档在索引中的编号（documentStore中的id）
	Ref string

	// 引擎中的文档ID，直接读取索引文件时等于Ref的数值
	DocId uint64

	URL         string
	Title       string
	Breadcrumbs string
	Score       float64

	// 带<em>标注的正文摘要
	Teaser string
}

// 为了方便排序
type ScoredDocuments []ScoredDocument

func (docs ScoredDocuments) Len() int {
	return len(docs)
}
func (docs ScoredDocuments) Swap(i, j int) {
	docs[i], docs[j] = docs[j], docs[i]
}

// 分数从大到小，分数相同时编号从小到大
func (docs ScoredDocuments) Less(i, j int) bool {
	if docs[i].Score != docs[j].Score {
		return docs[i].Score > docs[j].Score
	}
	return RefLess(docs[i].Ref, docs[j].Ref)
}

// 按数值比较文档编号，非数字的编号按字符串比较且排在数字之后
func RefLess(a, b string) bool {
	ai, errA := strconv.ParseUint(a, 10, 64)
	bi, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return ai < bi
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
