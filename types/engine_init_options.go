package types

import (
	"runtime"
)

var (
	// 默认的分词器线程数
	defaultNumSegmenterThreads = runtime.NumCPU()

	// 默认的通道缓冲长度
	defaultSegmenterBufferLength = 100
	defaultIndexerBufferLength   = 100

	defaultPersistentStorageEngine = "bolt"
)

type EngineInitOptions struct {
	// 分词器线程数
	NumSegmenterThreads int

	SegmenterBufferLength int
	IndexerBufferLength   int

	// 索引器初始化选项
	IndexerInitOptions *IndexerInitOptions

	// 默认的搜索和结果选项，会写入生成的索引文件
	DefaultSearchOptions  *SearchOptions
	DefaultResultsOptions *ResultsOptions

	// 是否使用持久数据库，以及数据库文件保存的目录和引擎（bolt或kv）
	UsePersistentStorage    bool
	PersistentStorageFolder string
	PersistentStorageEngine string
}

// 初始化EngineInitOptions，当用户未设定某个选项的值时用默认值取代
func (options *EngineInitOptions) Init() {
	if options.NumSegmenterThreads <= 0 {
		options.NumSegmenterThreads = defaultNumSegmenterThreads
	}
	if options.SegmenterBufferLength <= 0 {
		options.SegmenterBufferLength = defaultSegmenterBufferLength
	}
	if options.IndexerBufferLength <= 0 {
		options.IndexerBufferLength = defaultIndexerBufferLength
	}

	if options.IndexerInitOptions == nil {
		indexerInitOptions := DefaultIndexerInitOptions()
		options.IndexerInitOptions = &indexerInitOptions
	}
	options.IndexerInitOptions.Init()

	if options.DefaultSearchOptions == nil {
		defaultSearchOptions := DefaultSearchOptions()
		options.DefaultSearchOptions = &defaultSearchOptions
	}
	if options.DefaultResultsOptions == nil {
		defaultResultsOptions := DefaultResultsOptions()
		options.DefaultResultsOptions = &defaultResultsOptions
	}

	if options.PersistentStorageEngine == "" {
		options.PersistentStorageEngine = defaultPersistentStorageEngine
	}
}

type IndexerInitOptions struct {
	// 建索引的字段，顺序即累计词频时的顺序
	Fields []string

	// 文档编号字段名
	Ref string

	// 写入索引文件的元信息
	Lang    string
	Version string

	// 处理管道中的函数名
	Pipeline []string

	// 是否在文档存储中保存原文
	SaveDocuments bool

	// 为true时后面字段的词频包含前面字段的出现次数，与mdBook生成的索引一致
	CumulativeTermCounts bool

	// 分词器字典文件，多个文件用逗号分隔，为空时按空白和连字符分词
	SegmenterDictionaries string

	// 额外的停用词文件，每行一个
	StopTokenFile string
}

// 初始化IndexerInitOptions，当用户未设定某个选项的值时用默认值取代
// 注意SaveDocuments的零值false有意义，默认值由DefaultIndexerInitOptions给出
func (options *IndexerInitOptions) Init() {
	if len(options.Fields) == 0 {
		options.Fields = []string{FieldTitle, FieldBody, FieldBreadcrumbs}
	}
	if options.Ref == "" {
		options.Ref = "id"
	}
	if options.Lang == "" {
		options.Lang = "English"
	}
	if options.Version == "" {
		options.Version = "0.9.5"
	}
	if len(options.Pipeline) == 0 {
		options.Pipeline = []string{"trimmer", "stopWordFilter", "stemmer"}
	}
}

func DefaultIndexerInitOptions() IndexerInitOptions {
	options := IndexerInitOptions{SaveDocuments: true}
	options.Init()
	return options
}
