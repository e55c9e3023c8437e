package core

import (
	"sort"

	json "github.com/goccy/go-json"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

// 文档存储：原文（save为true时）和各字段的关键词长度
type DocumentStore struct {
	save    bool
	docs    map[string]types.Document
	docInfo map[string]types.DocInfo

	// 索引文件中记录的length，校验时使用
	length int
}

func NewDocumentStore(save bool) *DocumentStore {
	return &DocumentStore{
		save:    save,
		docs:    make(map[string]types.Document),
		docInfo: make(map[string]types.DocInfo),
	}
}

func (store *DocumentStore) IsSaved() bool {
	return store.save
}

// 加入文档，已存在时覆盖；save为false时只记录编号
func (store *DocumentStore) AddDoc(ref string, doc types.Document) {
	if !store.save {
		doc = types.Document{}
	}
	store.docs[ref] = doc
	store.length = len(store.docs)
}

// 取文档原文，save为false或文档不存在时found为false
func (store *DocumentStore) GetDoc(ref string) (doc types.Document, found bool) {
	doc, found = store.docs[ref]
	if !store.save {
		return types.Document{}, false
	}
	return
}

func (store *DocumentStore) HasDoc(ref string) bool {
	_, found := store.docs[ref]
	return found
}

func (store *DocumentStore) RemoveDoc(ref string) {
	delete(store.docs, ref)
	delete(store.docInfo, ref)
	store.length = len(store.docs)
}

func (store *DocumentStore) AddFieldLength(ref, field string, length int) {
	if !store.HasDoc(ref) {
		return
	}
	info, found := store.docInfo[ref]
	if !found {
		info = make(types.DocInfo)
		store.docInfo[ref] = info
	}
	info[field] = length
}

func (store *DocumentStore) GetFieldLength(ref, field string) int {
	return store.docInfo[ref][field]
}

func (store *DocumentStore) Len() int {
	return len(store.docs)
}

// 全部文档编号，按数值从小到大
func (store *DocumentStore) Refs() []string {
	refs := make([]string, 0, len(store.docs))
	for ref := range store.docs {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return types.RefLess(refs[i], refs[j]) })
	return refs
}

func (store *DocumentStore) clone() *DocumentStore {
	output := NewDocumentStore(store.save)
	output.length = store.length
	for ref, doc := range store.docs {
		output.docs[ref] = doc
	}
	for ref, info := range store.docInfo {
		copied := make(types.DocInfo, len(info))
		for field, length := range info {
			copied[field] = length
		}
		output.docInfo[ref] = copied
	}
	return output
}

type documentStoreJSON struct {
	DocInfo map[string]types.DocInfo `json:"docInfo"`
	Docs    map[string]types.Document `json:"docs"`
	Length  int                       `json:"length"`
	Save    bool                      `json:"save"`
}

func (store *DocumentStore) MarshalJSON() ([]byte, error) {
	output := documentStoreJSON{
		DocInfo: store.docInfo,
		Docs:    store.docs,
		Length:  len(store.docs),
		Save:    store.save,
	}
	if !store.save {
		output.Docs = map[string]types.Document{}
	}
	return marshalNoEscape(output)
}

// 未保存原文的索引文件中docs为空，此时按docInfo恢复文档编号
func (store *DocumentStore) UnmarshalJSON(data []byte) error {
	var input documentStoreJSON
	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}
	store.save = input.Save
	store.length = input.Length
	store.docs = input.Docs
	if store.docs == nil {
		store.docs = make(map[string]types.Document)
	}
	store.docInfo = input.DocInfo
	if store.docInfo == nil {
		store.docInfo = make(map[string]types.DocInfo)
	}
	if !store.save {
		for ref := range store.docInfo {
			store.docs[ref] = types.Document{}
		}
	}
	return nil
}
