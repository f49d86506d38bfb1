package optimizer

import (
	"fmt"
	"reportassist/sources/texting"
	"regexp"
	"strings"
	"unicode/utf8"
)

var headerPattern = regexp.MustCompile(`^\s{0,3}#{1,6}\s+(.+?)\s*#*\s*$`)

const preambleTitle = "Introduction"

type section struct {
	title string
	lines []string
}

// ChunkBySection splits a markdown-like document on header lines. Sections whose body is shorter
// than the minimum length are dropped. Documents without headers fall back to paragraphs.
func (x *Optimizer) ChunkBySection(document string) []Chunk {
	if strings.TrimSpace(document) == "" {
		return []Chunk{}
	}

	var sections []section
	current := section{title: preambleTitle}
	headers := 0

	for _, line := range strings.Split(strings.ReplaceAll(document, "\r\n", "\n"), "\n") {
		if match := headerPattern.FindStringSubmatch(line); match != nil {
			sections = append(sections, current)
			current = section{title: strings.TrimSpace(match[1])}
			headers++
			continue
		}
		current.lines = append(current.lines, line)
	}
	sections = append(sections, current)

	if headers == 0 {
		return x.chunkByParagraph(document)
	}

	chunks := []Chunk{}
	for _, s := range sections {
		body := strings.TrimSpace(strings.Join(s.lines, "\n"))
		if utf8.RuneCountInString(body) < x.config.MinChunkChars {
			continue
		}
		chunks = append(chunks, newChunk(len(chunks), s.title, body))
	}
	return chunks
}

func (x *Optimizer) chunkByParagraph(document string) []Chunk {
	chunks := []Chunk{}
	var buffer []string
	size := 0

	flush := func() {
		body := strings.TrimSpace(strings.Join(buffer, "\n\n"))
		buffer, size = nil, 0
		if utf8.RuneCountInString(body) < x.config.MinChunkChars {
			return
		}
		chunks = append(chunks, newChunk(len(chunks), fmt.Sprintf("Part %d", len(chunks)+1), body))
	}

	for _, paragraph := range paragraphPattern.Split(document, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		length := utf8.RuneCountInString(paragraph)
		if size > 0 && size+length > x.config.MaxParagraphChunkChars {
			flush()
		}
		buffer = append(buffer, paragraph)
		size += length
	}
	if len(buffer) > 0 {
		flush()
	}
	return chunks
}

var paragraphPattern = regexp.MustCompile(`\n\s*\n`)

func newChunk(index int, title, body string) Chunk {
	return Chunk{
		ID:           fmt.Sprintf("chunk-%d", index),
		SectionTitle: title,
		Text:         body,
		Metadata: ChunkMetadata{
			LengthChars:     utf8.RuneCountInString(body),
			EstimatedTokens: texting.EstimateTokens(body),
		},
	}
}
