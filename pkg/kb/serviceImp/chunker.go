package serviceImp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	splitThreshold = 300 // paragraphs shorter than this are re-packed from sentences
	minChunkLen    = 50  // chunks at or below this carry no usable context
)

var paraRX = regexp.MustCompile(`\n\s*\n`)

// splitChunks breaks document text into retrieval chunks. Paragraphs are
// separated by blank lines; a paragraph of splitThreshold or more characters
// is kept whole, shorter ones are packed sentence by sentence up to the
// threshold. Tiny fragments are dropped.
func splitChunks(text string) []string {
	var chunks []string
	for _, raw := range paraRX.Split(text, -1) {
		para := strings.TrimSpace(raw)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) >= splitThreshold {
			chunks = append(chunks, para)
			continue
		}
		temp := ""
		for _, sent := range splitSentences(para) {
			if utf8.RuneCountInString(temp)+utf8.RuneCountInString(sent) < splitThreshold {
				temp += sent + " "
			} else {
				if temp != "" {
					chunks = append(chunks, strings.TrimSpace(temp))
				}
				temp = sent + " "
			}
		}
		if temp != "" {
			chunks = append(chunks, strings.TrimSpace(temp))
		}
	}

	kept := chunks[:0]
	for _, c := range chunks {
		if utf8.RuneCountInString(c) > minChunkLen {
			kept = append(kept, c)
		}
	}
	return kept
}

// splitSentences splits after '.', '!' or '?' followed by spaces, keeping the
// punctuation with the sentence.
func splitSentences(s string) []string {
	var out []string
	rs := []rune(s)
	start := 0
	for i := 0; i < len(rs); i++ {
		if (rs[i] == '.' || rs[i] == '!' || rs[i] == '?') && i+1 < len(rs) && rs[i+1] == ' ' {
			j := i + 1
			for j < len(rs) && rs[j] == ' ' {
				j++
			}
			out = append(out, string(rs[start:i+1]))
			start = j
			i = j - 1
		}
	}
	if start < len(rs) {
		out = append(out, string(rs[start:]))
	}
	return out
}
