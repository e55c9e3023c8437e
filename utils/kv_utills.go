package utils

import (
	"os"

	"github.com/cznic/kv"
)

// 打开或者创建KV数据库
// 当path指向的数据库存在时打开该数据库，否则尝试在该路径处创建新数据库
func OpenOrCreateKv(path string, options *kv.Options) (*kv.DB, error) {
	if options == nil {
		options = &kv.Options{}
	}
	if _, err := os.Stat(path); err == nil {
		return kv.Open(path, options)
	}
	return kv.Create(path, options)
}
