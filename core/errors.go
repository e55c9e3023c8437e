package core

import (
	"errors"
	"fmt"
)

var (
	// 索引文件无法解析
	ErrParse = errors.New("malformed search index")

	// 处理管道中出现未注册的函数名
	ErrUnknownPipelineFunction = errors.New("unknown pipeline function")
)

// 解析索引文件失败时返回的错误
type ParseError struct {
	// 出错的位置，比如 "index.body"
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrParse, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrParse, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
