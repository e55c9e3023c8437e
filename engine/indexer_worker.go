package engine

import (
	"sync/atomic"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

type indexerAddDocumentRequest struct {
	docId    uint64
	sequence uint64
	document *types.DocumentIndex
}

type indexerRemoveDocumentRequest struct {
	docId    uint64
	sequence uint64
}

// 唯一修改文档表的协程
//
// 添加请求经过多个分词协程，到达顺序和调用顺序可能不同，按序号丢弃过期的请求。
func (engine *Engine) indexerWorker() {
	// [文档ID]已经处理过的最大序号
	applied := make(map[uint64]uint64)

	addChannel := engine.indexerAddDocumentChannel
	removeChannel := engine.indexerRemoveDocumentChannel
	for addChannel != nil || removeChannel != nil {
		select {
		case request, ok := <-addChannel:
			if !ok {
				addChannel = nil
				continue
			}
			if request.sequence > applied[request.docId] {
				applied[request.docId] = request.sequence
				engine.documentsLock.Lock()
				engine.documents[request.docId] = request.document
				engine.documentsLock.Unlock()

				numTokens := 0
				for _, keywords := range request.document.Keywords {
					numTokens += len(keywords)
				}
				atomic.AddUint64(&engine.numTokenIndexAdded, uint64(numTokens))
			}
			atomic.AddUint64(&engine.numDocumentsIndexed, 1)
		case request, ok := <-removeChannel:
			if !ok {
				removeChannel = nil
				continue
			}
			if request.sequence > applied[request.docId] {
				applied[request.docId] = request.sequence
				engine.documentsLock.Lock()
				delete(engine.documents, request.docId)
				engine.documentsLock.Unlock()
			}
			atomic.AddUint64(&engine.numDocumentsRemoved, 1)
		}
	}
}
