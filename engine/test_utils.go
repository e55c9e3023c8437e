package engine

import (
	"fmt"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

func indexedDocIdsToString(docs types.SearchResponse) (output string) {
	for _, doc := range docs.Docs {
		output += fmt.Sprintf("[%d] ",
			doc.DocId)
	}
	return
}
