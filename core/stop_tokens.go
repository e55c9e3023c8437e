package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// 英文停用词，与前端搜索库一致
var defaultStopTokens = []string{
	"a", "able", "about", "across", "after", "all", "almost", "also", "am",
	"among", "an", "and", "any", "are", "as", "at", "be", "because", "been",
	"but", "by", "can", "cannot", "could", "dear", "did", "do", "does",
	"either", "else", "ever", "every", "for", "from", "get", "got", "had",
	"has", "have", "he", "her", "hers", "him", "his", "how", "however", "i",
	"if", "in", "into", "is", "it", "its", "just", "least", "let", "like",
	"likely", "may", "me", "might", "most", "must", "my", "neither", "no",
	"nor", "not", "of", "off", "often", "on", "only", "or", "other", "our",
	"own", "rather", "said", "say", "says", "she", "should", "since", "so",
	"some", "than", "that", "the", "their", "them", "then", "there", "these",
	"they", "this", "tis", "to", "too", "twas", "us", "wants", "was", "we",
	"were", "what", "when", "where", "which", "while", "who", "whom", "why",
	"will", "with", "would", "yet", "you", "your",
}

type StopTokens struct {
	stopTokens map[string]bool
}

// 载入默认停用词，stopTokenFile不为空时再从中逐行读入停用词
func (st *StopTokens) Init(stopTokenFile string) error {
	st.stopTokens = make(map[string]bool, len(defaultStopTokens))
	for _, token := range defaultStopTokens {
		st.stopTokens[token] = true
	}
	if stopTokenFile == "" {
		return nil
	}

	file, err := os.Open(stopTokenFile)
	if err != nil {
		return fmt.Errorf("cannot open stop token file %s: %w", stopTokenFile, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		text := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if text != "" {
			st.stopTokens[text] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read stop token file %s: %w", stopTokenFile, err)
	}
	return nil
}

func (st *StopTokens) IsStopToken(token string) bool {
	_, found := st.stopTokens[token]
	return found
}

// 作为处理管道函数使用，停用词返回空字符串
func (st *StopTokens) Filter(token string) string {
	if token == "" || st.IsStopToken(token) {
		return ""
	}
	return token
}
