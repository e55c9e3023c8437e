package utils

import (
	"fmt"

	"github.com/huichen/murmur"
)

// 计算若干字符串的murmur3指纹，各部分之间以\x00分隔
func Fingerprint(parts ...string) uint32 {
	size := 0
	for _, p := range parts {
		size += len(p) + 1
	}
	buf := make([]byte, 0, size)
	for _, p := range parts {
		buf = append(buf, p...)
		buf = append(buf, 0)
	}
	return murmur.Murmur3(buf)
}

// 生成带内容指纹的文件名，例如 searchindex-1a2b3c4d.js
func HashedFileName(stem, ext string, content []byte) string {
	return fmt.Sprintf("%s-%08x%s", stem, murmur.Murmur3(content), ext)
}
