package storage

import (
	"errors"
	"fmt"
	"sort"
)

const DEFAULT_STORAGE_ENGINE = "bolt"

var ErrUnsupportedEngine = errors.New("unsupported storage engine")

var supportedStorage = map[string]func(path string) (Storage, error){
	"kv":   openKVStorage,
	"bolt": openBoltStorage,
}

func RegisterStorageEngine(name string, fn func(path string) (Storage, error)) {
	supportedStorage[name] = fn
}

// 已注册的存储引擎名，按字母序
func SupportedEngines() []string {
	names := make([]string, 0, len(supportedStorage))
	for name := range supportedStorage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 持久化存储已索引文档的键值数据库
type Storage interface {
	Set(k, v []byte) error
	// 键不存在时返回nil, nil
	Get(k []byte) ([]byte, error)
	Delete(k []byte) error
	// 按键的字节序遍历，fn返回错误时停止遍历并返回该错误
	ForEach(fn func(k, v []byte) error) error
	Close() error
	// 预写日志文件名，没有时为空字符串
	WALName() string
}

// 打开或者创建数据库，wse为空时使用默认引擎
func OpenStorage(path, wse string) (Storage, error) {
	if wse == "" {
		wse = DEFAULT_STORAGE_ENGINE
	}
	if fn, has := supportedStorage[wse]; has {
		return fn(path)
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedEngine, wse)
}
