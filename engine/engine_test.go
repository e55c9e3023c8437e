package engine

import (
	"bytes"
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/cyrup-ai/get.cyrup.ai/book"
	"github.com/cyrup-ai/get.cyrup.ai/core"
	"github.com/cyrup-ai/get.cyrup.ai/types"
	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

const fixturePath = "../core/testdata/searchindex.js"

func addDocs(engine *Engine) {
	engine.IndexDocument(10, types.DocumentIndexData{
		Title: "What It Does", Body: "Runs models locally.", URL: "intro.html#what-it-does",
	})
	engine.IndexDocument(5, types.DocumentIndexData{
		Title: "Install Cyrup AI", Body: "One line install.", URL: "intro.html#install-cyrup-ai",
	})
	engine.IndexDocument(7, types.DocumentIndexData{
		Title: "Quick Start", Body: "Install, then run the model.", URL: "intro.html#quick-start",
	})
	engine.FlushIndex()
}

func TestEngineIndexDocument(t *testing.T) {
	var engine Engine
	engine.Init(types.EngineInitOptions{})
	defer engine.Close()
	addDocs(&engine)

	utils.Expect(t, "3", engine.NumDocumentsIndexed())

	outputs := engine.Search(types.SearchRequest{Text: "install"})
	utils.Expect(t, "[instal]", outputs.Tokens)
	utils.Expect(t, "2", len(outputs.Docs))
	utils.Expect(t, "[5] [7] ", indexedDocIdsToString(outputs))
	utils.Expect(t, "intro.html#install-cyrup-ai", outputs.Docs[0].URL)

	// 按文档ID重新编号
	snapshot := engine.Snapshot()
	utils.Expect(t, "[intro.html#install-cyrup-ai intro.html#quick-start intro.html#what-it-does]", snapshot.DocURLs)
	doc, _ := snapshot.Index.DocumentStore().GetDoc("2")
	utils.Expect(t, "What It Does", doc.Title)
}

func TestEngineSkipsUnchangedDocuments(t *testing.T) {
	var engine Engine
	engine.Init(types.EngineInitOptions{})
	defer engine.Close()
	addDocs(&engine)
	addDocs(&engine)
	utils.Expect(t, "3", engine.NumDocumentsIndexed())

	engine.IndexDocument(5, types.DocumentIndexData{Title: "Uninstall", URL: "intro.html#uninstall"})
	engine.FlushIndex()
	utils.Expect(t, "4", engine.NumDocumentsIndexed())
	utils.Expect(t, "[7] ", indexedDocIdsToString(engine.Search(types.SearchRequest{Text: "install"})))
	utils.Expect(t, "3", engine.Snapshot().Index.DocumentStore().Len())
}

func TestEngineRemoveDocument(t *testing.T) {
	var engine Engine
	engine.Init(types.EngineInitOptions{})
	defer engine.Close()
	addDocs(&engine)

	engine.RemoveDocument(5)
	engine.RemoveDocument(99)
	engine.FlushIndex()
	utils.Expect(t, "[7] ", indexedDocIdsToString(engine.Search(types.SearchRequest{Text: "install"})))
	utils.Expect(t, "2", len(engine.Snapshot().DocURLs))
	utils.Expect(t, "[7 10]", engine.DocIds())

	// 删除后可以用相同内容重新加入
	addDocs(&engine)
	utils.Expect(t, "[5] [7] ", indexedDocIdsToString(engine.Search(types.SearchRequest{Text: "install"})))
}

func pageData(docId uint64, body string) types.DocumentIndexData {
	return types.DocumentIndexData{
		Title: "Page " + strconv.FormatUint(docId, 10),
		Body:  body,
		URL:   "page" + strconv.FormatUint(docId, 10) + ".html",
	}
}

// 同一文档的多次调用在刷新前全部发出，多个分词协程可能打乱到达顺序
func TestEngineKeepsCallOrderPerDocument(t *testing.T) {
	const numDocs = 500

	var engine Engine
	engine.Init(types.EngineInitOptions{NumSegmenterThreads: 8})
	defer engine.Close()

	for i := uint64(0); i < numDocs; i++ {
		engine.IndexDocument(i, pageData(i, "alpha"))
		engine.IndexDocument(i, pageData(i, "beta"))
	}
	engine.FlushIndex()

	stale := 0
	engine.documentsLock.RLock()
	for i := uint64(0); i < numDocs; i++ {
		if engine.documents[i].Data.Body != "beta" {
			stale++
		}
	}
	engine.documentsLock.RUnlock()
	utils.Expect(t, "0", stale)
	utils.Expect(t, "0", engine.Search(types.SearchRequest{Text: "alpha"}).Total)
	utils.Expect(t, "500", engine.Search(types.SearchRequest{Text: "beta"}).Total)

	// 最后一次的内容已生效，再次提交相同内容直接跳过
	engine.IndexDocument(3, pageData(3, "beta"))
	engine.FlushIndex()
	utils.Expect(t, "1000", engine.NumDocumentsIndexed())
}

func TestEngineRemoveBeforeFlush(t *testing.T) {
	const numDocs = 500

	var engine Engine
	engine.Init(types.EngineInitOptions{NumSegmenterThreads: 8})
	defer engine.Close()

	for i := uint64(0); i < numDocs; i++ {
		engine.IndexDocument(i, pageData(i, "gamma"))
		engine.RemoveDocument(i)
	}
	engine.FlushIndex()
	utils.Expect(t, "0", len(engine.DocIds()))
	utils.Expect(t, "0", engine.Search(types.SearchRequest{Text: "gamma"}).Total)

	// 删除之后再加入同样的内容
	for i := uint64(0); i < numDocs; i++ {
		engine.RemoveDocument(i)
		engine.IndexDocument(i, pageData(i, "gamma"))
	}
	engine.FlushIndex()
	utils.Expect(t, "500", len(engine.DocIds()))
}

func TestEngineSearchOptions(t *testing.T) {
	var engine Engine
	engine.Init(types.EngineInitOptions{})
	defer engine.Close()
	addDocs(&engine)

	options := types.DefaultSearchOptions()
	options.Bool = types.BoolAnd
	outputs := engine.Search(types.SearchRequest{Text: "install model", SearchOptions: &options})
	utils.Expect(t, "[7] ", indexedDocIdsToString(outputs))

	outputs = engine.Search(types.SearchRequest{
		Text:        "install model",
		RankOptions: &types.RankOptions{MaxOutputs: 1, TeaserWordCount: -1},
	})
	utils.Expect(t, "3", outputs.Total)
	utils.Expect(t, "1", len(outputs.Docs))
	utils.Expect(t, "", outputs.Docs[0].Teaser)
}

func TestEngineConcurrentIndexing(t *testing.T) {
	var engine Engine
	engine.Init(types.EngineInitOptions{NumSegmenterThreads: 4, SegmenterBufferLength: 2})
	defer engine.Close()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(docId uint64) {
			defer wg.Done()
			engine.IndexDocument(docId, types.DocumentIndexData{
				Title: "Page " + strconv.FormatUint(docId, 10),
				Body:  "shared",
				URL:   "page" + strconv.FormatUint(docId, 10) + ".html",
			})
		}(uint64(i))
	}
	wg.Wait()
	engine.FlushIndex()

	utils.Expect(t, "100", engine.NumDocumentsIndexed())
	outputs := engine.Search(types.SearchRequest{Text: "shared"})
	utils.Expect(t, "100", outputs.Total)
	utils.Expect(t, "30", len(outputs.Docs))
	utils.Expect(t, "[0] [1] [2] ", indexedDocIdsToString(types.SearchResponse{Docs: outputs.Docs[:3]}))
	utils.Expect(t, "<nil>", core.Verify(engine.Snapshot()))
}

func TestEngineLoad(t *testing.T) {
	searchIndex, err := core.LoadFile(fixturePath)
	if err != nil {
		t.Fatal(err)
	}
	var engine Engine
	engine.Init(types.EngineInitOptions{})
	defer engine.Close()
	engine.Load(searchIndex)

	outputs := engine.Search(types.SearchRequest{Text: "quick"})
	utils.Expect(t, "[1] ", indexedDocIdsToString(outputs))
	utils.Expect(t, "introduction.html#quick-start", outputs.Docs[0].URL)
}

// 用引擎重新生成索引文件
func TestEngineRebuildsFixture(t *testing.T) {
	original, err := os.ReadFile(fixturePath)
	if err != nil {
		t.Fatal(err)
	}
	searchIndex, err := core.Parse(original)
	if err != nil {
		t.Fatal(err)
	}

	indexerOptions := types.DefaultIndexerInitOptions()
	indexerOptions.CumulativeTermCounts = true
	var engine Engine
	engine.Init(types.EngineInitOptions{IndexerInitOptions: &indexerOptions})
	defer engine.Close()

	store := searchIndex.Index.DocumentStore()
	for i, ref := range store.Refs() {
		doc, _ := store.GetDoc(ref)
		engine.IndexDocument(uint64(i), types.DocumentIndexData{
			Title:       doc.Title,
			Body:        doc.Body,
			Breadcrumbs: doc.Breadcrumbs,
			URL:         searchIndex.DocURLs[i],
		})
	}
	engine.FlushIndex()

	var buf bytes.Buffer
	if err := engine.Snapshot().WriteJS(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(original, buf.Bytes()) {
		t.Errorf("生成的索引与原文件不同\n%s", buf.String())
	}
}

func testPersistentStorage(t *testing.T, storageEngine string) {
	options := types.EngineInitOptions{
		UsePersistentStorage:    true,
		PersistentStorageFolder: t.TempDir(),
		PersistentStorageEngine: storageEngine,
	}

	var engine Engine
	engine.Init(options)
	addDocs(&engine)
	engine.RemoveDocument(10)
	engine.Close()

	var engine1 Engine
	engine1.Init(options)
	defer engine1.Close()
	utils.Expect(t, "2", engine1.NumDocumentsIndexed())
	utils.Expect(t, "[5] [7] ", indexedDocIdsToString(engine1.Search(types.SearchRequest{Text: "install"})))
	utils.Expect(t, "0", len(engine1.Search(types.SearchRequest{Text: "locally"}).Docs))

	// 恢复的文档内容未变，不重复索引
	addDocs(&engine1)
	utils.Expect(t, "3", engine1.NumDocumentsIndexed())
}

func testPersistentStorageRemoveBeforeFlush(t *testing.T, storageEngine string) {
	const numDocs = 200
	options := types.EngineInitOptions{
		NumSegmenterThreads:     8,
		UsePersistentStorage:    true,
		PersistentStorageFolder: t.TempDir(),
		PersistentStorageEngine: storageEngine,
	}

	var engine Engine
	engine.Init(options)
	for i := uint64(0); i < numDocs; i++ {
		engine.IndexDocument(i, pageData(i, "delta"))
		if i%2 == 0 {
			engine.RemoveDocument(i)
		} else {
			engine.IndexDocument(i, pageData(i, "epsilon"))
		}
	}
	engine.Close()

	var engine1 Engine
	engine1.Init(options)
	defer engine1.Close()
	utils.Expect(t, "100", len(engine1.DocIds()))
	utils.Expect(t, "0", engine1.Search(types.SearchRequest{Text: "delta"}).Total)
	utils.Expect(t, "100", engine1.Search(types.SearchRequest{Text: "epsilon"}).Total)
}

// 安装程序的文档：按章节和标题分段后建索引
func TestEngineIndexesBook(t *testing.T) {
	b, err := book.Load(context.Background(), "../book/testdata/cyrup")
	if err != nil {
		t.Fatal(err)
	}
	docs := b.Documents(book.DefaultHeadingSplitLevel)
	utils.Expect(t, "18", len(docs))

	var engine Engine
	engine.Init(types.EngineInitOptions{NumSegmenterThreads: 4})
	defer engine.Close()
	for i, doc := range docs {
		engine.IndexDocument(uint64(i), doc)
	}
	engine.FlushIndex()
	utils.Expect(t, "<nil>", core.Verify(engine.Snapshot()))

	outputs := engine.Search(types.SearchRequest{Text: "nvidia"})
	utils.Expect(t, "1", outputs.Total)
	utils.Expect(t, "installer/gpu.html#gpu-detection", outputs.Docs[0].URL)
	utils.Expect(t, "Installer » GPU Detection", outputs.Docs[0].Breadcrumbs)

	outputs = engine.Search(types.SearchRequest{Text: "zshrc"})
	utils.Expect(t, "installer/shell.html#shell-environment", outputs.Docs[0].URL)

	outputs = engine.Search(types.SearchRequest{Text: "homebrew"})
	utils.Expect(t, "true", strings.HasPrefix(outputs.Docs[0].URL, "installer/package-managers.html#"))
	utils.Expect(t, "Installer » Package Managers » Supported managers", outputs.Docs[0].Breadcrumbs)

	outputs = engine.Search(types.SearchRequest{Text: "cuda"})
	utils.Expect(t, "2", outputs.Total)

	outputs = engine.Search(types.SearchRequest{Text: "os-release"})
	utils.Expect(t, "installer/platforms.html#operating-system-detection", outputs.Docs[0].URL)
}

func TestPersistentStorageBolt(t *testing.T) {
	testPersistentStorage(t, "bolt")
	testPersistentStorageRemoveBeforeFlush(t, "bolt")
}

func TestPersistentStorageKV(t *testing.T) {
	testPersistentStorage(t, "kv")
	testPersistentStorageRemoveBeforeFlush(t, "kv")
}
