package captions

import (
	"strings"
	"unicode/utf8"
)

// Caption is a single piece of text shown over a contiguous run of frames.
// The text may contain "\n" markers that split it into display lines.
type Caption struct {
	Text string `yaml:"text"`
}

// Lines splits the caption text on the line-break marker.
func (c Caption) Lines() []string {
	return strings.Split(c.Text, "\n")
}

// Len returns the caption length in code points, markers included.
func (c Caption) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// Script is an ordered list of captions; order defines display order.
type Script struct {
	Version  string    `yaml:"version"`
	Captions []Caption `yaml:"captions"`
}

// TotalLen returns the summed length of all captions in the script.
func (s *Script) TotalLen() int {
	total := 0
	for _, c := range s.Captions {
		total += c.Len()
	}
	return total
}

// ParseInline builds a script from a command-line string: captions are
// separated by '|', a literal "\n" inside a caption becomes a line break.
func ParseInline(text string) *Script {
	parts := strings.Split(text, "|")
	script := &Script{Version: "1.0"}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		script.Captions = append(script.Captions, Caption{
			Text: strings.ReplaceAll(p, `\n`, "\n"),
		})
	}
	return script
}
