package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

const (
	jsPrefix = "Object.assign(window.search, "
	jsSuffix = ");"
)

// 搜索索引文件的全部内容
type SearchIndex struct {
	// 按文档编号排列的链接
	DocURLs        []string
	Index          *Index
	ResultsOptions types.ResultsOptions
	SearchOptions  types.SearchOptions
}

func NewSearchIndex(index *Index, docURLs []string,
	searchOptions types.SearchOptions, resultsOptions types.ResultsOptions) *SearchIndex {
	return &SearchIndex{
		DocURLs:        docURLs,
		Index:          index,
		ResultsOptions: resultsOptions,
		SearchOptions:  searchOptions,
	}
}

type searchIndexJSON struct {
	DocURLs        []string              `json:"doc_urls"`
	Index          *Index                `json:"index"`
	ResultsOptions *types.ResultsOptions `json:"results_options"`
	SearchOptions  *types.SearchOptions  `json:"search_options"`
}

func (searchIndex *SearchIndex) MarshalJSON() ([]byte, error) {
	docURLs := searchIndex.DocURLs
	if docURLs == nil {
		docURLs = []string{}
	}
	return marshalNoEscape(searchIndexJSON{
		DocURLs:        docURLs,
		Index:          searchIndex.Index,
		ResultsOptions: &searchIndex.ResultsOptions,
		SearchOptions:  &searchIndex.SearchOptions,
	})
}

// 解析索引文件，接受纯JSON或者 Object.assign(window.search, {...}); 形式
func Parse(data []byte) (*SearchIndex, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		start := bytes.IndexByte(data, '{')
		end := bytes.LastIndexByte(data, '}')
		if start < 0 || end < start {
			return nil, &ParseError{Err: errors.New("no JSON object found")}
		}
		data = data[start : end+1]
	}

	var input searchIndexJSON
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, &ParseError{Err: err}
	}
	if input.Index == nil {
		return nil, &ParseError{Path: "index", Err: errors.New("missing")}
	}
	if input.DocURLs == nil {
		return nil, &ParseError{Path: "doc_urls", Err: errors.New("missing")}
	}

	searchIndex := &SearchIndex{
		DocURLs:        input.DocURLs,
		Index:          input.Index,
		ResultsOptions: types.DefaultResultsOptions(),
		SearchOptions:  types.DefaultSearchOptions(),
	}
	if input.ResultsOptions != nil {
		searchIndex.ResultsOptions = *input.ResultsOptions
	}
	if input.SearchOptions != nil {
		searchIndex.SearchOptions = *input.SearchOptions
	}
	return searchIndex, nil
}

func Load(reader io.Reader) (*SearchIndex, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func LoadFile(path string) (*SearchIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	searchIndex, err := Parse(data)
	if err != nil {
		var parseError *ParseError
		if errors.As(err, &parseError) {
			parseError.Path = strings.TrimSuffix(path+": "+parseError.Path, ": ")
		}
		return nil, err
	}
	return searchIndex, nil
}

// 写出紧凑的JSON，键按字典序，末尾没有换行
func (searchIndex *SearchIndex) WriteJSON(writer io.Writer) error {
	data, err := searchIndex.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

// 写出供浏览器加载的 searchindex.js
func (searchIndex *SearchIndex) WriteJS(writer io.Writer) error {
	data, err := searchIndex.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(writer, jsPrefix); err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(writer, jsSuffix)
	return err
}

// 按文件中的search_options和results_options搜索
func (searchIndex *SearchIndex) Search(text string) types.SearchResponse {
	return searchIndex.SearchWithOptions(types.SearchRequest{Text: text})
}

func (searchIndex *SearchIndex) SearchWithOptions(request types.SearchRequest) types.SearchResponse {
	tokens := request.Tokens
	if request.Text != "" {
		tokens = searchIndex.Index.Analyze(request.Text)
	}

	searchOptions := searchIndex.SearchOptions
	if request.SearchOptions != nil {
		searchOptions = *request.SearchOptions
	}

	var rankOptions types.RankOptions
	if request.RankOptions != nil {
		rankOptions = *request.RankOptions
	}
	if rankOptions.MaxOutputs == 0 {
		rankOptions.MaxOutputs = searchIndex.ResultsOptions.LimitResults
	}
	if rankOptions.TeaserWordCount == 0 {
		rankOptions.TeaserWordCount = searchIndex.ResultsOptions.TeaserWordCount
	}

	scores := searchIndex.Index.Search(tokens, searchOptions)

	ranker := new(Ranker)
	ranker.Init(searchIndex.Index.DocumentStore(), searchIndex.DocURLs)
	docs, total := ranker.Rank(scores, tokens, rankOptions)
	return types.SearchResponse{Tokens: tokens, Docs: docs, Total: total}
}

func (searchIndex *SearchIndex) String() string {
	return fmt.Sprintf("SearchIndex{docs: %d, fields: %v}",
		searchIndex.Index.DocumentStore().Len(), searchIndex.Index.Fields())
}
