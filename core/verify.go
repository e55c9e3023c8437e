package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// 检查索引文件的一致性，返回全部违反项
func Verify(searchIndex *SearchIndex) error {
	var errs []error
	index := searchIndex.Index
	store := index.DocumentStore()

	for ref := range store.docs {
		if _, found := store.docInfo[ref]; !found {
			errs = append(errs, fmt.Errorf("documentStore: doc %q has no docInfo", ref))
		}
	}
	for ref := range store.docInfo {
		if _, found := store.docs[ref]; !found {
			errs = append(errs, fmt.Errorf("documentStore: docInfo %q has no doc", ref))
		}
	}
	if store.length != len(store.docInfo) {
		errs = append(errs, fmt.Errorf("documentStore: length %d, %d docInfo entries", store.length, len(store.docInfo)))
	}
	if store.save {
		for ref, doc := range store.docs {
			if doc.Id != ref {
				errs = append(errs, fmt.Errorf("documentStore: doc %q has id %q", ref, doc.Id))
			}
		}
	}

	for _, ref := range store.Refs() {
		refNum, err := strconv.Atoi(ref)
		if err != nil || refNum < 0 || refNum >= len(searchIndex.DocURLs) {
			errs = append(errs, fmt.Errorf("doc_urls: no entry for doc %q", ref))
		}
	}

	for _, field := range index.fields {
		index.index[field].walk(func(prefix string, df int, docs map[string]float64) {
			if df != len(docs) {
				errs = append(errs, fmt.Errorf("index.%s: node %q has df %d but %d docs", field, prefix, df, len(docs)))
			}
			for ref, tf := range docs {
				if !(tf > 0) || math.IsInf(tf, 0) {
					errs = append(errs, fmt.Errorf("index.%s: node %q doc %q has tf %v", field, prefix, ref, tf))
				}
				if _, found := store.docInfo[ref]; !found {
					errs = append(errs, fmt.Errorf("index.%s: node %q refers to unknown doc %q", field, prefix, ref))
				}
			}
		})
	}

	for field := range searchIndex.SearchOptions.Fields {
		if index.FieldIndex(field) == nil {
			errs = append(errs, fmt.Errorf("search_options: unknown field %q", field))
		}
	}
	return errors.Join(errs...)
}
