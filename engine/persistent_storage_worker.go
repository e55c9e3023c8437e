package engine

import (
	"log"
	"strconv"
	"sync/atomic"

	json "github.com/goccy/go-json"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

type persistentStorageIndexDocumentRequest struct {
	DocId       uint64                  `json:"docId"`
	Fingerprint uint32                  `json:"fingerprint"`
	Data        types.DocumentIndexData `json:"data"`

	// 不写入数据库
	sequence uint64
	remove   bool
}

// 写入和删除数据的协程
//
// 写入请求来自多个分词协程，按序号丢弃过期的请求，保证数据库里是最后一次调用的结果。
func (engine *Engine) persistentStorageIndexDocumentWorker() {
	// [文档ID]已经处理过的最大序号
	applied := make(map[uint64]uint64)

	for request := range engine.persistentStorageIndexDocumentChannel {
		if request.sequence > applied[request.DocId] {
			applied[request.DocId] = request.sequence
			if request.remove {
				engine.persistentStorageRemoveDocument(request.DocId)
			} else {
				engine.persistentStorageSetDocument(request)
			}
		}
		atomic.AddUint64(&engine.numDocumentsStored, 1)
	}
}

func (engine *Engine) persistentStorageSetDocument(request persistentStorageIndexDocumentRequest) {
	// 得到key
	b := []byte(strconv.FormatUint(request.DocId, 10))

	// 得到value
	value, err := json.Marshal(request)
	if err != nil {
		log.Printf("无法编码文档 %d: %v", request.DocId, err)
		return
	}

	// 将key-value写入数据库
	if err := engine.dbs.Set(b, value); err != nil {
		log.Printf("无法写入文档 %d: %v", request.DocId, err)
	}
}

// 删除数据
func (engine *Engine) persistentStorageRemoveDocument(docId uint64) {
	// 得到key
	b := []byte(strconv.FormatUint(docId, 10))

	// 从数据库删除该key
	if err := engine.dbs.Delete(b); err != nil {
		log.Printf("无法删除文档 %d: %v", docId, err)
	}
}

// 恢复数据
func (engine *Engine) persistentStorageInitWorker() {
	var requests []persistentStorageIndexDocumentRequest
	err := engine.dbs.ForEach(func(key, value []byte) error {
		var request persistentStorageIndexDocumentRequest
		if err := json.Unmarshal(value, &request); err != nil {
			log.Printf("跳过无法解码的文档 %s: %v", key, err)
			return nil
		}
		requests = append(requests, request)
		return nil
	})
	if err != nil {
		log.Fatal("无法读取数据库: ", err)
	}

	// 在遍历结束后再发送，避免在数据库事务中阻塞
	for _, request := range requests {
		engine.fingerprintsLock.Lock()
		engine.fingerprints[request.DocId] = request.Fingerprint
		sequence := engine.nextSequence()
		engine.fingerprintsLock.Unlock()
		engine.internalIndexDocument(request.DocId, sequence, request.Fingerprint, request.Data, false)
	}
	log.Printf("从数据库恢复了%d个文档", len(requests))
}
