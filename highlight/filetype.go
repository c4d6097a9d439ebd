package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// FileType selects the rule and keyword tables for a file.
type FileType int

const (
	Plain FileType = iota
	Python
	CSS
	CPP
	CSharp
	C
	JavaScript
	HTML
)

var extensions = map[string]FileType{
	".py":   Python,
	".css":  CSS,
	".cpp":  CPP,
	".cc":   CPP,
	".cxx":  CPP,
	".hpp":  CPP,
	".h":    CPP,
	".cs":   CSharp,
	".c":    C,
	".js":   JavaScript,
	".mjs":  JavaScript,
	".html": HTML,
	".htm":  HTML,
}

// DetectFileType maps a path to a FileType by its extension.
func DetectFileType(path string) FileType {
	if ft, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return ft
	}
	return Plain
}

func (ft FileType) String() string {
	switch ft {
	case Python:
		return "Python"
	case CSS:
		return "CSS"
	case CPP:
		return "C++"
	case CSharp:
		return "C#"
	case C:
		return "C"
	case JavaScript:
		return "JavaScript"
	case HTML:
		return "HTML"
	default:
		return "Text"
	}
}

// DetectLanguage returns a display name for path. Files without a rule table
// fall back to chroma's lexer registry.
func DetectLanguage(path string) string {
	if ft := DetectFileType(path); ft != Plain {
		return ft.String()
	}
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return Plain.String()
	}
	config := lexer.Config()
	if config == nil {
		return Plain.String()
	}
	return config.Name
}
