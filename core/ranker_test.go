package core

import (
	"fmt"
	"testing"

	"github.com/cyrup-ai/get.cyrup.ai/types"
	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

func newRankerStore(save bool) *DocumentStore {
	store := NewDocumentStore(save)
	store.AddDoc("1", types.Document{Id: "1", Title: "One", Breadcrumbs: "A » One", Body: "first body"})
	store.AddDoc("3", types.Document{Id: "3", Title: "Three", Breadcrumbs: "A » Three", Body: "Hello world. Install now"})
	store.AddDoc("4", types.Document{Id: "4", Title: "Four", Breadcrumbs: "A » Four", Body: "fourth body"})
	return store
}

func TestRankDocument(t *testing.T) {
	var ranker Ranker
	ranker.Init(newRankerStore(true), []string{"a.html", "b.html", "c.html", "d.html", "e.html"})
	scoredDocs, total := ranker.Rank(map[string]float64{
		"1": 6,
		"3": 24,
		"4": 18,
	}, []string{"instal"}, types.RankOptions{TeaserWordCount: 30})

	utils.Expect(t, "3", total)
	utils.Expect(t, "3 4 1 ", refsToString(scoredDocs))
	utils.Expect(t, "3", fmt.Sprint(scoredDocs[0].DocId))
	utils.Expect(t, "d.html", scoredDocs[0].URL)
	utils.Expect(t, "Three", scoredDocs[0].Title)
	utils.Expect(t, "A » Three", scoredDocs[0].Breadcrumbs)
	utils.Expect(t, "Hello world. <em>Install</em> now", scoredDocs[0].Teaser)
	utils.Expect(t, "first body", scoredDocs[2].Teaser)
}

func TestRankWithOffsetAndLimit(t *testing.T) {
	var ranker Ranker
	ranker.Init(newRankerStore(true), nil)
	scores := map[string]float64{"1": 6, "3": 24, "4": 18}

	scoredDocs, total := ranker.Rank(scores, nil, types.RankOptions{OutputOffset: 1, MaxOutputs: 1})
	utils.Expect(t, "3", total)
	utils.Expect(t, "4 ", refsToString(scoredDocs))
	// 没有doc_urls时不填链接，摘要字数为0时不生成摘要
	utils.Expect(t, "", scoredDocs[0].URL)
	utils.Expect(t, "", scoredDocs[0].Teaser)

	scoredDocs, _ = ranker.Rank(scores, nil, types.RankOptions{OutputOffset: 5})
	utils.Expect(t, "0", len(scoredDocs))

	// 负的偏移量按0处理
	scoredDocs, _ = ranker.Rank(scores, nil, types.RankOptions{OutputOffset: -1, MaxOutputs: 2})
	utils.Expect(t, "3 4 ", refsToString(scoredDocs))
}

func TestRankTies(t *testing.T) {
	var ranker Ranker
	ranker.Init(newRankerStore(true), nil)
	scoredDocs, _ := ranker.Rank(map[string]float64{"4": 1, "10": 1, "3": 1, "1": 2}, nil, types.RankOptions{})
	utils.Expect(t, "1 3 4 10 ", refsToString(scoredDocs))
}

func TestRankUnsavedDocuments(t *testing.T) {
	var ranker Ranker
	ranker.Init(newRankerStore(false), []string{"a.html", "b.html"})
	scoredDocs, _ := ranker.Rank(map[string]float64{"1": 1}, []string{"first"}, types.RankOptions{TeaserWordCount: 30})
	utils.Expect(t, "b.html", scoredDocs[0].URL)
	utils.Expect(t, "", scoredDocs[0].Title)
	utils.Expect(t, "", scoredDocs[0].Teaser)
}
