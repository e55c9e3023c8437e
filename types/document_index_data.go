package types

type DocumentIndexData struct {
	// 标题，通常是章节标题
	Title string

	// 正文
	Body string

	// 导航路径，比如 "Introduction » Install Cyrup AI"
	Breadcrumbs string

	// 文档的链接，写入doc_urls
	URL string
}

// 转换为文档存储中的记录
func (data DocumentIndexData) Document(ref string) Document {
	return Document{
		Body:        data.Body,
		Breadcrumbs: data.Breadcrumbs,
		Id:          ref,
		Title:       data.Title,
	}
}
