package core

import (
	"sort"
	"strings"
)

// 按字符组织的前缀树反向索引，每个字段一棵
//
// 节点存放在一个切片中，子节点用下标引用，0号节点是根。
// 节点上的docs记录以该节点结尾的关键词出现的文档及其词频，
// df恒等于docs中的文档数（从索引文件读入时保留文件中的值以便校验）。
type InvertedIndex struct {
	nodes []trieNode
}

type trieNode struct {
	// 按字符从小到大排列
	children []trieEdge
	df       int
	docs     map[string]float64
}

type trieEdge struct {
	char rune
	node int32
}

func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{nodes: []trieNode{{}}}
}

// 查找子节点
func (ii *InvertedIndex) child(node int32, char rune) (int32, bool) {
	children := ii.nodes[node].children
	i := sort.Search(len(children), func(i int) bool { return children[i].char >= char })
	if i < len(children) && children[i].char == char {
		return children[i].node, true
	}
	return 0, false
}

// 查找子节点，不存在时插入
func (ii *InvertedIndex) addChild(node int32, char rune) int32 {
	children := ii.nodes[node].children
	i := sort.Search(len(children), func(i int) bool { return children[i].char >= char })
	if i < len(children) && children[i].char == char {
		return children[i].node
	}

	next := int32(len(ii.nodes))
	ii.nodes = append(ii.nodes, trieNode{})
	children = append(children, trieEdge{})
	copy(children[i+1:], children[i:])
	children[i] = trieEdge{char: char, node: next}
	ii.nodes[node].children = children
	return next
}

func (ii *InvertedIndex) getNode(token string) (int32, bool) {
	node := int32(0)
	for _, char := range token {
		next, found := ii.child(node, char)
		if !found {
			return 0, false
		}
		node = next
	}
	return node, true
}

// 加入一个（关键词，文档）对，已存在时覆盖词频
func (ii *InvertedIndex) AddToken(token, ref string, tf float64) {
	if token == "" {
		return
	}
	node := int32(0)
	for _, char := range token {
		node = ii.addChild(node, char)
	}

	n := &ii.nodes[node]
	if n.docs == nil {
		n.docs = make(map[string]float64)
	}
	if _, found := n.docs[ref]; !found {
		n.df++
	}
	n.docs[ref] = tf
}

// 删除一个（关键词，文档）对，路径上的节点保留
func (ii *InvertedIndex) RemoveToken(token, ref string) {
	node, found := ii.getNode(token)
	if !found || token == "" {
		return
	}
	n := &ii.nodes[node]
	if _, found := n.docs[ref]; found {
		delete(n.docs, ref)
		n.df--
	}
}

// 关键词是否至少出现在一个文档中
func (ii *InvertedIndex) HasToken(token string) bool {
	node, found := ii.getNode(token)
	return found && token != "" && len(ii.nodes[node].docs) > 0
}

// 路径是否存在，即token是否为某个关键词的前缀
func (ii *InvertedIndex) HasPrefix(prefix string) bool {
	_, found := ii.getNode(prefix)
	return found
}

// 返回[文档编号]词频的拷贝
func (ii *InvertedIndex) GetDocs(token string) map[string]float64 {
	docs := ii.docs(token)
	output := make(map[string]float64, len(docs))
	for ref, tf := range docs {
		output[ref] = tf
	}
	return output
}

// 只读访问，调用者不能修改返回值
func (ii *InvertedIndex) docs(token string) map[string]float64 {
	node, found := ii.getNode(token)
	if !found || token == "" {
		return nil
	}
	return ii.nodes[node].docs
}

func (ii *InvertedIndex) GetTermFrequency(token, ref string) float64 {
	return ii.docs(token)[ref]
}

func (ii *InvertedIndex) GetDocFreq(token string) int {
	node, found := ii.getNode(token)
	if !found || token == "" {
		return 0
	}
	return ii.nodes[node].df
}

// 找出以prefix开头的全部关键词（包括prefix本身），按字典序输出
func (ii *InvertedIndex) ExpandToken(prefix string) []string {
	if prefix == "" {
		return nil
	}
	node, found := ii.getNode(prefix)
	if !found {
		return nil
	}
	var builder strings.Builder
	builder.WriteString(prefix)
	return ii.collect(node, &builder, nil)
}

// 全部关键词，按字典序输出
func (ii *InvertedIndex) Tokens() []string {
	var builder strings.Builder
	return ii.collect(0, &builder, nil)
}

// 关键词个数
func (ii *InvertedIndex) Len() int {
	count := 0
	for i := range ii.nodes {
		if i != 0 && ii.nodes[i].df > 0 {
			count++
		}
	}
	return count
}

func (ii *InvertedIndex) collect(node int32, prefix *strings.Builder, output []string) []string {
	n := &ii.nodes[node]
	if n.df > 0 && prefix.Len() > 0 {
		output = append(output, prefix.String())
	}
	base := prefix.String()
	for _, edge := range n.children {
		prefix.Reset()
		prefix.WriteString(base)
		prefix.WriteRune(edge.char)
		output = ii.collect(edge.node, prefix, output)
	}
	return output
}

// 遍历每个节点，fn的参数为节点对应的前缀、df和docs（只读）
func (ii *InvertedIndex) walk(fn func(prefix string, df int, docs map[string]float64)) {
	var visit func(node int32, prefix string)
	visit = func(node int32, prefix string) {
		n := &ii.nodes[node]
		fn(prefix, n.df, n.docs)
		for _, edge := range n.children {
			visit(edge.node, prefix+string(edge.char))
		}
	}
	visit(0, "")
}

// 深拷贝
func (ii *InvertedIndex) clone() *InvertedIndex {
	output := &InvertedIndex{nodes: make([]trieNode, len(ii.nodes))}
	for i, n := range ii.nodes {
		output.nodes[i].df = n.df
		if n.children != nil {
			output.nodes[i].children = append([]trieEdge(nil), n.children...)
		}
		if n.docs != nil {
			output.nodes[i].docs = make(map[string]float64, len(n.docs))
			for ref, tf := range n.docs {
				output.nodes[i].docs[ref] = tf
			}
		}
	}
	return output
}
