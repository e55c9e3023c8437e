package core

import (
	"log"
	"sort"
	"strconv"

	"github.com/cyrup-ai/get.cyrup.ai/types"
	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

type Ranker struct {
	documentStore *DocumentStore
	// 按文档编号的数值索引
	docURLs []string

	initialized bool
}

func (ranker *Ranker) Init(documentStore *DocumentStore, docURLs []string) {
	if ranker.initialized == true {
		log.Fatal("排序器不能初始化两次")
	}
	ranker.initialized = true

	ranker.documentStore = documentStore
	ranker.docURLs = docURLs
}

// 给文档排序并截取需要的部分，返回截取后的文档和截取前的文档总数
//
// options中的MaxOutputs和TeaserWordCount此时应已替换成实际的值。
func (ranker *Ranker) Rank(
	scores map[string]float64, tokens []string, options types.RankOptions) (types.ScoredDocuments, int) {
	if ranker.initialized == false {
		log.Fatal("排序器尚未初始化")
	}

	outputDocs := make(types.ScoredDocuments, 0, len(scores))
	for ref, score := range scores {
		outputDocs = append(outputDocs, types.ScoredDocument{Ref: ref, Score: score})
	}
	sort.Sort(outputDocs)

	// 当用户要求只返回部分结果时返回部分结果
	start := utils.MinInt(utils.MaxInt(options.OutputOffset, 0), len(outputDocs))
	end := len(outputDocs)
	if options.MaxOutputs > 0 {
		end = utils.MinInt(start+options.MaxOutputs, len(outputDocs))
	}
	outputDocs = outputDocs[start:end]

	for i := range outputDocs {
		ranker.fill(&outputDocs[i], tokens, options.TeaserWordCount)
	}
	return outputDocs, len(scores)
}

// 补充链接、标题和摘要
func (ranker *Ranker) fill(doc *types.ScoredDocument, tokens []string, teaserWordCount int) {
	if docId, err := strconv.ParseUint(doc.Ref, 10, 64); err == nil {
		doc.DocId = docId
		if docId < uint64(len(ranker.docURLs)) {
			doc.URL = ranker.docURLs[docId]
		}
	}

	stored, found := ranker.documentStore.GetDoc(doc.Ref)
	if !found {
		return
	}
	doc.Title = stored.Title
	doc.Breadcrumbs = stored.Breadcrumbs
	if teaserWordCount > 0 {
		doc.Teaser = MakeTeaser(stored.Body, tokens, teaserWordCount)
	}
}
