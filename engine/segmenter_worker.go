package engine

import (
	"github.com/cyrup-ai/get.cyrup.ai/types"
)

type segmenterRequest struct {
	docId    uint64
	sequence uint64
	hash     uint32
	data  types.DocumentIndexData
	// 是否写入持久存储，从数据库恢复的文档为false
	store bool
}

func (engine *Engine) segmenterWorker() {
	for request := range engine.segmenterChannel {
		document := engine.analyzer.AnalyzeDocument(request.data,
			engine.initOptions.IndexerInitOptions.Fields)

		engine.indexerAddDocumentChannel <- indexerAddDocumentRequest{
			docId:    request.docId,
			sequence: request.sequence,
			document: document,
		}

		if request.store {
			engine.persistentStorageIndexDocumentChannel <- persistentStorageIndexDocumentRequest{
				DocId:       request.docId,
				Fingerprint: request.hash,
				Data:        request.data,
				sequence:    request.sequence,
			}
		}
	}
}
