package types

// 文档各字段经过处理管道后的关键词数，[字段名]词数
type DocInfo map[string]int

// 文档存储中的一条记录，字段按JSON键的字母序排列
type Document struct {
	Body        string `json:"body"`
	Breadcrumbs string `json:"breadcrumbs"`
	Id          string `json:"id"`
	Title       string `json:"title"`
}

// 按字段名取文本，未知字段返回空字符串
func (doc Document) Field(name string) string {
	switch name {
	case FieldTitle:
		return doc.Title
	case FieldBody:
		return doc.Body
	case FieldBreadcrumbs:
		return doc.Breadcrumbs
	}
	return ""
}

const (
	FieldTitle       = "title"
	FieldBody        = "body"
	FieldBreadcrumbs = "breadcrumbs"
)
