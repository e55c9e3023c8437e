package types

// 经过分词和处理管道之后的文档
type DocumentIndex struct {
	// 原始数据
	Data DocumentIndexData

	// [字段名]关键词，同一字段中每个关键词只出现一次
	Keywords map[string][]KeywordIndex

	// 各字段的关键词长度
	FieldLengths DocInfo
}

// 一个字段中的关键词
type KeywordIndex struct {
	// 词干化之后的关键词
	Text string

	// 在该字段中出现的次数
	Frequency int
}
