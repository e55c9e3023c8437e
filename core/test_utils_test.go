package core

import (
	"fmt"
	"os"
	"testing"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

const fixturePath = "testdata/searchindex.js"

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func loadFixture(t *testing.T) *SearchIndex {
	t.Helper()
	searchIndex, err := Parse(readFixture(t))
	if err != nil {
		t.Fatal(err)
	}
	return searchIndex
}

// 用默认选项建索引，文档编号从0开始
func buildSearchIndex(options types.IndexerInitOptions, docs ...types.DocumentIndexData) *SearchIndex {
	var indexer Indexer
	indexer.Init(options, nil)
	var docURLs []string
	for i, doc := range docs {
		indexer.AddDocumentData(fmt.Sprint(i), doc)
		docURLs = append(docURLs, doc.URL)
	}
	return NewSearchIndex(indexer.Build(), docURLs,
		types.DefaultSearchOptions(), types.DefaultResultsOptions())
}

func refsToString(docs types.ScoredDocuments) (output string) {
	for _, doc := range docs {
		output += doc.Ref + " "
	}
	return
}
