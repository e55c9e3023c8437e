package core

import (
	"strings"
)

const (
	teaserTermWeight          = 40
	teaserSentenceStartWeight = 8
	teaserWordWeight          = 2
)

type teaserWord struct {
	start, end int
	weight     int
}

// 从正文中截取包含搜索键最多的一段，并用<em>标注命中的词
//
// 正文按 ". " 分句、按空格分词，句首词权重8，普通词2，命中搜索键的词40。
// 取权重和最大的窗口（有多个时取最后一个），没有命中时取开头的窗口。
// tokens为经过处理管道的搜索键，正文中的词经过trimmer和stemmer后以搜索键开头即为命中。
func MakeTeaser(body string, tokens []string, wordCount int) string {
	var words []teaserWord
	found := false

	sentenceStart := 0
	for sentenceStart <= len(body) {
		sentenceEnd := strings.Index(body[sentenceStart:], ". ")
		if sentenceEnd < 0 {
			sentenceEnd = len(body)
		} else {
			sentenceEnd += sentenceStart
		}

		weight := teaserSentenceStartWeight
		wordStart := sentenceStart
		for wordStart <= sentenceEnd {
			wordEnd := strings.IndexByte(body[wordStart:sentenceEnd], ' ')
			if wordEnd < 0 {
				wordEnd = sentenceEnd
			} else {
				wordEnd += wordStart
			}

			if wordEnd > wordStart {
				stemmed := Stemmer(Trimmer(strings.ToLower(body[wordStart:wordEnd])))
				for _, token := range tokens {
					if token != "" && strings.HasPrefix(stemmed, token) {
						weight = teaserTermWeight
						found = true
					}
				}
				words = append(words, teaserWord{start: wordStart, end: wordEnd, weight: weight})
				weight = teaserWordWeight
			}
			wordStart = wordEnd + 1
		}
		sentenceStart = sentenceEnd + 2
	}

	if len(words) == 0 || wordCount <= 0 {
		return body
	}

	windowSize := wordCount
	if len(words) < windowSize {
		windowSize = len(words)
	}
	sum := 0
	for i := 0; i < windowSize; i++ {
		sum += words[i].weight
	}
	windowWeights := []int{sum}
	for i := 0; i+windowSize < len(words); i++ {
		sum += words[i+windowSize].weight - words[i].weight
		windowWeights = append(windowWeights, sum)
	}

	best := 0
	if found {
		max := 0
		for i := len(windowWeights) - 1; i >= 0; i-- {
			if windowWeights[i] > max {
				max = windowWeights[i]
				best = i
			}
		}
	}

	var builder strings.Builder
	position := words[best].start
	for _, word := range words[best : best+windowSize] {
		if position < word.start {
			builder.WriteString(body[position:word.start])
		}
		if word.weight == teaserTermWeight {
			builder.WriteString("<em>")
		}
		builder.WriteString(body[word.start:word.end])
		if word.weight == teaserTermWeight {
			builder.WriteString("</em>")
		}
		position = word.end
	}
	return builder.String()
}
