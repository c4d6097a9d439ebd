package highlight

import (
	"time"

	"github.com/dlclark/regexp2"
)

const ruleTimeout = 50 * time.Millisecond

type rule struct {
	re    *regexp2.Regexp
	class ColorClass
}

func mustRule(pattern string, class ColorClass) rule {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = ruleTimeout
	return rule{re: re, class: class}
}

// Rules are applied in order; later matches paint over earlier ones.
var ruleTables = map[FileType][]rule{
	Python: {
		mustRule(`\b(def|class|if|elif|else|while|for|in|return|import|from|as|with|self|try|except|finally|raise|pass|lambda|yield|and|or|not|is|None|True|False)\b`, Keyword),
		mustRule(`\b\d+(\.\d+)?\b`, Number),
		mustRule(`#.*$`, Comment),
		mustRule(`".*?"`, String),
		mustRule(`'.*?'`, String),
	},
	CSS: {
		mustRule(`(\b[\w-]+\b)(?=\s*\{)`, Selector),
		mustRule(`(\b[\w-]+\b)(?=\s*:)`, Property),
		mustRule(`:\s*".*?"`, String),
		mustRule(`/\*.*?\*/`, Comment),
	},
	CPP: {
		mustRule(`\b(int|float|double|char|bool|void|auto|const|if|else|while|for|return|namespace|using|class|struct|public|private|protected|template|typename|new|delete)\b|#include\b`, Keyword),
		mustRule(`\b\d+(\.\d+)?\b`, Number),
		mustRule(`//.*$`, Comment),
		mustRule(`/\*.*?\*/`, Comment),
		mustRule(`".*?"`, String),
	},
	CSharp: {
		mustRule(`\b(namespace|using|class|struct|interface|int|float|double|char|bool|string|void|var|if|else|while|for|foreach|return|public|private|protected|static|new)\b`, Keyword),
		mustRule(`\b\d+(\.\d+)?\b`, Number),
		mustRule(`//.*$`, Comment),
		mustRule(`/\*.*?\*/`, Comment),
		mustRule(`".*?"`, String),
	},
	C: {
		mustRule(`\b(int|float|double|char|if|else|while|for|return|struct|typedef|extern|void|sizeof|static|const|unsigned)\b|#include\b`, Keyword),
		mustRule(`\b\d+(\.\d+)?\b`, Number),
		mustRule(`//.*$`, Comment),
		mustRule(`/\*.*?\*/`, Comment),
		mustRule(`".*?"`, String),
	},
	JavaScript: {
		mustRule(`\b(var|let|const|function|if|else|while|for|return|import|export|class|try|catch|finally|new|this|async|await)\b`, Keyword),
		mustRule(`\b\d+(\.\d+)?\b`, Number),
		mustRule(`//.*$`, Comment),
		mustRule(`/\*.*?\*/`, Comment),
		mustRule(`".*?"`, String),
		mustRule(`'.*?'`, String),
	},
	HTML: {
		mustRule(`<\w+\b`, Tag),
		mustRule(`</\w+>`, Tag),
		mustRule(`\b[\w-]+\b(?=\s*=\s*")`, Attribute),
		mustRule(`".*?"`, String),
		mustRule(`'.*?'`, String),
		mustRule(`<!--.*?-->`, Comment),
	},
}
