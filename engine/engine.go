package engine

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cyrup-ai/get.cyrup.ai/core"
	"github.com/cyrup-ai/get.cyrup.ai/storage"
	"github.com/cyrup-ai/get.cyrup.ai/types"
	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

const (
	PersistentStorageFilePrefix = "searchindex"
)

type Engine struct {
	// 计数器，用来统计有多少文档被索引等信息
	numDocumentsIndexed uint64
	numIndexingRequests uint64
	numTokenIndexAdded  uint64
	numDocumentsRemoved uint64
	numRemovingRequests uint64
	numDocumentsStored  uint64
	numStoringRequests  uint64

	// 记录初始化参数
	initOptions types.EngineInitOptions
	initialized bool
	closed      bool

	analyzer *core.Analyzer
	dbs      storage.Storage

	// [文档ID]分词后的文档，只由索引器协程写入
	documents     map[uint64]*types.DocumentIndex
	documentsLock sync.RWMutex

	// [文档ID]文档内容的指纹，内容不变的文档不重复索引
	fingerprints map[uint64]uint32
	// 每个添加和删除请求的序号，同一文档只保留序号最大的请求
	sequence         uint64
	fingerprintsLock sync.Mutex

	// 当前对外提供搜索的索引
	snapshot atomic.Pointer[snapshot]

	// 建立索引器使用的通信通道
	segmenterChannel             chan segmenterRequest
	indexerAddDocumentChannel    chan indexerAddDocumentRequest
	indexerRemoveDocumentChannel chan indexerRemoveDocumentRequest

	// 建立持久存储使用的通信通道
	persistentStorageIndexDocumentChannel chan persistentStorageIndexDocumentRequest

	// 刷新索引和关闭引擎的锁
	sync.Mutex
}

// 生成后不再修改的索引快照
type snapshot struct {
	searchIndex *core.SearchIndex

	// 索引中第i个文档的文档ID，直接载入的索引文件为nil
	docIds []uint64
}

func (engine *Engine) Init(options types.EngineInitOptions) {
	// 初始化初始参数
	if engine.initialized {
		log.Fatal("请勿重复初始化引擎")
	}
	options.Init()
	engine.initOptions = options
	engine.initialized = true

	// 载入分词器词典和停用词
	analyzer, err := core.NewAnalyzer(*options.IndexerInitOptions)
	if err != nil {
		log.Fatal(err)
	}
	engine.analyzer = analyzer

	engine.documents = make(map[uint64]*types.DocumentIndex)
	engine.fingerprints = make(map[uint64]uint32)

	// 初始化通道
	engine.segmenterChannel = make(chan segmenterRequest, options.SegmenterBufferLength)
	engine.indexerAddDocumentChannel = make(chan indexerAddDocumentRequest, options.IndexerBufferLength)
	engine.indexerRemoveDocumentChannel = make(chan indexerRemoveDocumentRequest, options.IndexerBufferLength)

	// 启动分词器和索引器
	for iThread := 0; iThread < options.NumSegmenterThreads; iThread++ {
		go engine.segmenterWorker()
	}
	go engine.indexerWorker()

	// 空索引
	engine.publish()

	if !options.UsePersistentStorage {
		return
	}

	// 打开或者创建数据库
	err = os.MkdirAll(options.PersistentStorageFolder, 0700)
	if err != nil {
		log.Fatal("无法创建目录", options.PersistentStorageFolder)
	}
	dbPath := filepath.Join(options.PersistentStorageFolder,
		PersistentStorageFilePrefix+"."+options.PersistentStorageEngine)
	engine.dbs, err = storage.OpenStorage(dbPath, options.PersistentStorageEngine)
	if engine.dbs == nil || err != nil {
		log.Fatal("无法打开数据库", dbPath, ": ", err)
	}
	engine.persistentStorageIndexDocumentChannel = make(chan persistentStorageIndexDocumentRequest, options.IndexerBufferLength)
	go engine.persistentStorageIndexDocumentWorker()

	// 从数据库中恢复，等待恢复完成
	engine.persistentStorageInitWorker()
	engine.FlushIndex()
}

// 将文档加入索引
//
// 输入参数：
//
//	docId	标识文档编号，必须唯一，决定文档在生成的索引文件中的顺序
//	data	见DocumentIndexData注释
//
// 注意：
//  1. 这个函数是线程安全的，请尽可能并发调用以提高索引速度。
//  2. 这个函数调用是非同步的，也就是说在函数返回时有可能文档还没有加入索引中，因此
//     如果立刻调用Search可能无法查询到这个文档。强制刷新索引请调用FlushIndex函数。
//  3. 内容与上次相同的文档直接跳过。
func (engine *Engine) IndexDocument(docId uint64, data types.DocumentIndexData) {
	if !engine.initialized {
		log.Fatal("必须先初始化引擎")
	}

	hash := utils.Fingerprint(data.Title, data.Body, data.Breadcrumbs, data.URL)
	engine.fingerprintsLock.Lock()
	if previous, found := engine.fingerprints[docId]; found && previous == hash {
		engine.fingerprintsLock.Unlock()
		return
	}
	engine.fingerprints[docId] = hash
	sequence := engine.nextSequence()
	engine.fingerprintsLock.Unlock()

	engine.internalIndexDocument(docId, sequence, hash, data, engine.initOptions.UsePersistentStorage)
}

// 必须在持有fingerprintsLock时调用
func (engine *Engine) nextSequence() uint64 {
	engine.sequence++
	return engine.sequence
}

func (engine *Engine) internalIndexDocument(
	docId, sequence uint64, hash uint32, data types.DocumentIndexData, store bool) {
	atomic.AddUint64(&engine.numIndexingRequests, 1)
	if store {
		atomic.AddUint64(&engine.numStoringRequests, 1)
	}
	engine.segmenterChannel <- segmenterRequest{
		docId: docId, sequence: sequence, hash: hash, data: data, store: store}
}

// 将文档从索引中删除，FlushIndex之后生效
func (engine *Engine) RemoveDocument(docId uint64) {
	if !engine.initialized {
		log.Fatal("必须先初始化引擎")
	}

	engine.fingerprintsLock.Lock()
	delete(engine.fingerprints, docId)
	sequence := engine.nextSequence()
	engine.fingerprintsLock.Unlock()

	// 删除请求和添加请求带有同一序列的序号，先发出的添加请求即使晚到也会被丢弃
	atomic.AddUint64(&engine.numRemovingRequests, 1)
	engine.indexerRemoveDocumentChannel <- indexerRemoveDocumentRequest{docId: docId, sequence: sequence}

	if engine.initOptions.UsePersistentStorage {
		// 从数据库中删除
		atomic.AddUint64(&engine.numStoringRequests, 1)
		engine.persistentStorageIndexDocumentChannel <- persistentStorageIndexDocumentRequest{
			DocId:    docId,
			sequence: sequence,
			remove:   true,
		}
	}
}

// 阻塞等待直到所有索引添加完毕，然后生成新的索引快照
func (engine *Engine) FlushIndex() {
	engine.Lock()
	defer engine.Unlock()
	engine.waitForWorkers()
	engine.publish()
}

func (engine *Engine) waitForWorkers() {
	for {
		runtime.Gosched()
		if atomic.LoadUint64(&engine.numIndexingRequests) == atomic.LoadUint64(&engine.numDocumentsIndexed) &&
			atomic.LoadUint64(&engine.numRemovingRequests) == atomic.LoadUint64(&engine.numDocumentsRemoved) &&
			atomic.LoadUint64(&engine.numStoringRequests) == atomic.LoadUint64(&engine.numDocumentsStored) {
			return
		}
	}
}

// 按文档ID从小到大重新编号并建索引
func (engine *Engine) publish() {
	engine.documentsLock.RLock()
	docIds := make([]uint64, 0, len(engine.documents))
	for docId := range engine.documents {
		docIds = append(docIds, docId)
	}
	sort.Slice(docIds, func(i, j int) bool { return docIds[i] < docIds[j] })

	indexer := new(core.Indexer)
	indexer.Init(*engine.initOptions.IndexerInitOptions, engine.analyzer)
	docURLs := make([]string, len(docIds))
	for i, docId := range docIds {
		document := engine.documents[docId]
		indexer.AddDocument(strconv.Itoa(i), document)
		docURLs[i] = document.Data.URL
	}
	engine.documentsLock.RUnlock()

	searchIndex := core.NewSearchIndex(indexer.Build(), docURLs,
		*engine.initOptions.DefaultSearchOptions, *engine.initOptions.DefaultResultsOptions)
	engine.snapshot.Store(&snapshot{searchIndex: searchIndex, docIds: docIds})
}

// 直接使用已经生成的索引文件提供搜索，之后的FlushIndex会用引擎中的文档覆盖它
func (engine *Engine) Load(searchIndex *core.SearchIndex) {
	if !engine.initialized {
		log.Fatal("必须先初始化引擎")
	}
	engine.snapshot.Store(&snapshot{searchIndex: searchIndex})
}

// 当前的索引快照，可以直接写成索引文件
func (engine *Engine) Snapshot() *core.SearchIndex {
	if !engine.initialized {
		log.Fatal("必须先初始化引擎")
	}
	return engine.snapshot.Load().searchIndex
}

// 查找满足搜索条件的文档，此函数线程安全
func (engine *Engine) Search(request types.SearchRequest) types.SearchResponse {
	if !engine.initialized {
		log.Fatal("必须先初始化引擎")
	}

	current := engine.snapshot.Load()
	output := current.searchIndex.SearchWithOptions(request)
	if current.docIds != nil {
		for i := range output.Docs {
			doc := &output.Docs[i]
			if doc.DocId < uint64(len(current.docIds)) {
				doc.DocId = current.docIds[doc.DocId]
			}
		}
	}
	return output
}

// 当前快照中的文档ID，从小到大
func (engine *Engine) DocIds() []uint64 {
	if !engine.initialized {
		log.Fatal("必须先初始化引擎")
	}
	docIds := engine.snapshot.Load().docIds
	return append([]uint64(nil), docIds...)
}

func (engine *Engine) NumDocumentsIndexed() uint64 {
	return atomic.LoadUint64(&engine.numDocumentsIndexed)
}

func (engine *Engine) NumTokenIndexAdded() uint64 {
	return atomic.LoadUint64(&engine.numTokenIndexAdded)
}

// 关闭引擎
func (engine *Engine) Close() {
	engine.FlushIndex()

	engine.Lock()
	defer engine.Unlock()
	if engine.closed {
		return
	}
	engine.closed = true

	close(engine.segmenterChannel)
	close(engine.indexerAddDocumentChannel)
	close(engine.indexerRemoveDocumentChannel)
	if engine.initOptions.UsePersistentStorage {
		close(engine.persistentStorageIndexDocumentChannel)
		if err := engine.dbs.Close(); err != nil {
			log.Printf("关闭数据库失败: %v", err)
		}
	}
}
