package core

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/buger/jsonparser"
)

// 输出 {"root":{...}}，每个节点的键（子节点字符、df、docs）统一按字典序排列
func (ii *InvertedIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"root":`)
	ii.writeNode(&buf, 0)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type nodeKey struct {
	key  string
	edge int // -1 表示df或docs
}

func (ii *InvertedIndex) writeNode(buf *bytes.Buffer, node int32) {
	n := &ii.nodes[node]

	keys := make([]nodeKey, 0, len(n.children)+2)
	keys = append(keys, nodeKey{key: "df", edge: -1}, nodeKey{key: "docs", edge: -1})
	for i, edge := range n.children {
		keys = append(keys, nodeKey{key: string(edge.char), edge: i})
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].key < keys[j].key })

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, k.key)
		buf.WriteByte(':')
		switch {
		case k.edge >= 0:
			ii.writeNode(buf, n.children[k.edge].node)
		case k.key == "df":
			buf.WriteString(fmt.Sprint(n.df))
		default:
			writeDocs(buf, n.docs)
		}
	}
	buf.WriteByte('}')
}

func writeDocs(buf *bytes.Buffer, docs map[string]float64) {
	refs := make([]string, 0, len(docs))
	for ref := range docs {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	buf.WriteByte('{')
	for i, ref := range refs {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, ref)
		buf.WriteString(`:{"tf":`)
		writeJSONFloat(buf, docs[ref])
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
}

func (ii *InvertedIndex) UnmarshalJSON(data []byte) error {
	root, dataType, _, err := jsonparser.Get(data, "root")
	if err != nil {
		return fmt.Errorf("root: %w", err)
	}
	if dataType != jsonparser.Object {
		return errors.New("root: not an object")
	}
	ii.nodes = []trieNode{{}}
	return ii.parseNode(root, 0, "root")
}

func (ii *InvertedIndex) parseNode(data []byte, node int32, path string) error {
	return jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("%s: bad key: %w", path, err)
		}

		switch name {
		case "df":
			if dataType != jsonparser.Number {
				return fmt.Errorf("%s.df: not a number", path)
			}
			df, err := jsonparser.ParseInt(value)
			if err != nil {
				return fmt.Errorf("%s.df: %w", path, err)
			}
			ii.nodes[node].df = int(df)
			return nil
		case "docs":
			if dataType != jsonparser.Object {
				return fmt.Errorf("%s.docs: not an object", path)
			}
			return ii.parseDocs(value, node, path+".docs")
		}

		if utf8.RuneCountInString(name) != 1 {
			return fmt.Errorf("%s: child key %q is not a single character", path, name)
		}
		if dataType != jsonparser.Object {
			return fmt.Errorf("%s.%s: not an object", path, name)
		}
		char, _ := utf8.DecodeRuneInString(name)
		next := ii.addChild(node, char)
		return ii.parseNode(value, next, path+"."+name)
	})
}

func (ii *InvertedIndex) parseDocs(data []byte, node int32, path string) error {
	docs := make(map[string]float64)
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		ref, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("%s: bad key: %w", path, err)
		}
		if dataType != jsonparser.Object {
			return fmt.Errorf("%s.%s: not an object", path, ref)
		}
		tf, err := jsonparser.GetFloat(value, "tf")
		if err != nil {
			return fmt.Errorf("%s.%s.tf: %w", path, ref, err)
		}
		docs[ref] = tf
		return nil
	})
	if err != nil {
		return err
	}
	ii.nodes[node].docs = docs
	return nil
}
