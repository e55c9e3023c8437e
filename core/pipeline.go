package core

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// 处理管道中的函数，返回空字符串表示丢弃该关键词
type PipelineFunction func(token string) string

const StopWordFilterName = "stopWordFilter"

var registeredPipelineFunctions = map[string]PipelineFunction{
	"trimmer": Trimmer,
	"stemmer": Stemmer,
}

// 注册处理管道函数，名字会写入索引文件的pipeline字段
// stopWordFilter与停用词表绑定，不能在这里注册
func RegisterPipelineFunction(name string, fn PipelineFunction) {
	registeredPipelineFunctions[name] = fn
}

// 去掉首尾既不是字母数字也不是下划线的字符
func Trimmer(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// Porter词干化，输入应已转为小写
func Stemmer(token string) string {
	if utf8.RuneCountInString(token) < 3 {
		return token
	}
	return string(porterstemmer.StemWithoutLowerCasing([]rune(token)))
}

type Pipeline struct {
	names     []string
	functions []PipelineFunction
}

// 按名字组装处理管道，stopTokens为nil时使用默认停用词
func NewPipeline(stopTokens *StopTokens, names ...string) (*Pipeline, error) {
	pipeline := &Pipeline{
		names:     make([]string, 0, len(names)),
		functions: make([]PipelineFunction, 0, len(names)),
	}
	for _, name := range names {
		var fn PipelineFunction
		if name == StopWordFilterName {
			if stopTokens == nil {
				stopTokens = new(StopTokens)
				if err := stopTokens.Init(""); err != nil {
					return nil, err
				}
			}
			fn = stopTokens.Filter
		} else {
			var found bool
			if fn, found = registeredPipelineFunctions[name]; !found {
				return nil, fmt.Errorf("%w: %q", ErrUnknownPipelineFunction, name)
			}
		}
		pipeline.names = append(pipeline.names, name)
		pipeline.functions = append(pipeline.functions, fn)
	}
	return pipeline, nil
}

// 依次执行管道中的函数，被丢弃的关键词不再进入后面的函数
func (pipeline *Pipeline) Run(tokens []string) []string {
	output := make([]string, 0, len(tokens))
	for _, token := range tokens {
		for _, fn := range pipeline.functions {
			if token = fn(token); token == "" {
				break
			}
		}
		if token != "" {
			output = append(output, token)
		}
	}
	return output
}

func (pipeline *Pipeline) Names() []string {
	names := make([]string, len(pipeline.names))
	copy(names, pipeline.names)
	return names
}
