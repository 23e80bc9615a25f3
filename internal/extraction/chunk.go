package extraction

import "strings"

// DefaultChunkSize bounds the characters sent to the extraction model in one
// call. Chunks break on paragraph boundaries so clauses are not split
// mid-sentence.
const DefaultChunkSize = 8000

// ChunkText splits text into chunks of at most maxSize characters, breaking
// on paragraph boundaries where possible and on sentence boundaries when a
// single paragraph exceeds maxSize.
func ChunkText(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return []string{}
	}
	if len(text) <= maxSize {
		return []string{text}
	}

	chunks := make([]string, 0)
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if len(paragraph) > maxSize {
			flush()
			chunks = append(chunks, splitLongParagraph(paragraph, maxSize)...)
			continue
		}

		if current.Len()+len(paragraph)+2 > maxSize {
			flush()
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(paragraph)
	}
	flush()

	return chunks
}

func splitLongParagraph(paragraph string, maxSize int) []string {
	sentences := splitSentences(paragraph)

	chunks := make([]string, 0)
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len()+len(sentence)+1 > maxSize && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

func splitSentences(text string) []string {
	sentences := make([]string, 0)
	start := 0

	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\n' {
			continue
		}

		sentence := strings.TrimSpace(text[start : i+1])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}

	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}
