package core

import (
	"log"
	"math"
	"sync"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

// 索引器
type Indexer struct {
	initOptions types.IndexerInitOptions
	initialized bool
	analyzer    *Analyzer

	sync.RWMutex
	// [字段名]反向索引
	index         map[string]*InvertedIndex
	documentStore *DocumentStore
	// [文档编号][字段名]关键词，删除文档时使用
	docTokens map[string]map[string][]string
}

// 初始化索引器，analyzer为nil时按options新建
func (indexer *Indexer) Init(options types.IndexerInitOptions, analyzer *Analyzer) {
	if indexer.initialized == true {
		log.Fatal("索引器不能初始化两次")
	}
	indexer.initialized = true

	options.Init()
	indexer.initOptions = options

	if analyzer == nil {
		var err error
		if analyzer, err = NewAnalyzer(options); err != nil {
			log.Fatal(err)
		}
	}
	indexer.analyzer = analyzer

	indexer.index = make(map[string]*InvertedIndex, len(options.Fields))
	for _, field := range options.Fields {
		indexer.index[field] = NewInvertedIndex()
	}
	indexer.documentStore = NewDocumentStore(options.SaveDocuments)
	indexer.docTokens = make(map[string]map[string][]string)
}

func (indexer *Indexer) Analyzer() *Analyzer {
	return indexer.analyzer
}

// 分词后加入索引
func (indexer *Indexer) AddDocumentData(ref string, data types.DocumentIndexData) {
	if indexer.initialized == false {
		log.Fatal("索引器尚未初始化")
	}
	indexer.AddDocument(ref, indexer.analyzer.AnalyzeDocument(data, indexer.initOptions.Fields))
}

// 向反向索引中加入一个文档，编号已存在时先删除旧文档
//
// 词频为出现次数的平方根。CumulativeTermCounts为true时，
// 按字段顺序累计出现次数，后面字段的树中同时包含前面字段的关键词。
func (indexer *Indexer) AddDocument(ref string, document *types.DocumentIndex) {
	if indexer.initialized == false {
		log.Fatal("索引器尚未初始化")
	}

	indexer.Lock()
	defer indexer.Unlock()

	if indexer.documentStore.HasDoc(ref) {
		indexer.removeDocument(ref)
	}
	indexer.documentStore.AddDoc(ref, document.Data.Document(ref))

	tokens := make(map[string][]string, len(indexer.initOptions.Fields))
	counts := make(map[string]int)
	// 累计的关键词，按首次出现的顺序
	var accumulated []string
	for _, field := range indexer.initOptions.Fields {
		indexer.documentStore.AddFieldLength(ref, field, document.FieldLengths[field])
		fieldIndex := indexer.index[field]

		if !indexer.initOptions.CumulativeTermCounts {
			for _, keyword := range document.Keywords[field] {
				fieldIndex.AddToken(keyword.Text, ref, math.Sqrt(float64(keyword.Frequency)))
				tokens[field] = append(tokens[field], keyword.Text)
			}
			continue
		}

		for _, keyword := range document.Keywords[field] {
			if _, found := counts[keyword.Text]; !found {
				accumulated = append(accumulated, keyword.Text)
			}
			counts[keyword.Text] += keyword.Frequency
		}
		for _, token := range accumulated {
			fieldIndex.AddToken(token, ref, math.Sqrt(float64(counts[token])))
		}
		tokens[field] = append([]string(nil), accumulated...)
	}
	indexer.docTokens[ref] = tokens
}

// 从索引中删除文档，前缀树中的节点保留
func (indexer *Indexer) RemoveDocument(ref string) {
	if indexer.initialized == false {
		log.Fatal("索引器尚未初始化")
	}

	indexer.Lock()
	defer indexer.Unlock()
	indexer.removeDocument(ref)
}

func (indexer *Indexer) removeDocument(ref string) {
	for field, tokens := range indexer.docTokens[ref] {
		for _, token := range tokens {
			indexer.index[field].RemoveToken(token, ref)
		}
	}
	delete(indexer.docTokens, ref)
	indexer.documentStore.RemoveDoc(ref)
}

func (indexer *Indexer) NumDocuments() int {
	indexer.RLock()
	defer indexer.RUnlock()
	return indexer.documentStore.Len()
}

// 生成当前索引的快照，之后对索引器的修改不影响返回值
func (indexer *Indexer) Build() *Index {
	if indexer.initialized == false {
		log.Fatal("索引器尚未初始化")
	}

	indexer.RLock()
	defer indexer.RUnlock()
	index := &Index{
		fields:        indexer.initOptions.Fields,
		ref:           indexer.initOptions.Ref,
		lang:          indexer.initOptions.Lang,
		version:       indexer.initOptions.Version,
		analyzer:      indexer.analyzer,
		index:         indexer.index,
		documentStore: indexer.documentStore,
	}
	return index.clone()
}
