package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ForFile returns a copy of c with the .editorconfig properties that apply to
// path layered on top. Only the properties the editor honours are read:
// indent_size (or tab_width) and insert_final_newline.
func (c *Config) ForFile(path string) *Config {
	out := *c
	props := editorConfigProps(path)
	if props == nil {
		return &out
	}

	width := props["indent_size"]
	if width == "" || width == "tab" {
		width = props["tab_width"]
	}
	if n, err := strconv.Atoi(width); err == nil && n > 0 {
		out.TabWidth = n
	}
	switch props["insert_final_newline"] {
	case "true":
		out.InsertFinalNewline = true
	case "false":
		out.InsertFinalNewline = false
	}
	return &out
}

// editorConfigProps walks from the directory of path to the filesystem root
// (or the first file declaring root = true) and merges every matching
// section. Files closer to path win.
func editorConfigProps(path string) map[string]string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	var chain []map[string]string
	for dir := filepath.Dir(abs); ; {
		rel, err := filepath.Rel(dir, abs)
		if err != nil {
			break
		}
		props, root := readEditorConfig(filepath.Join(dir, ".editorconfig"), filepath.ToSlash(rel))
		if props != nil {
			chain = append(chain, props)
		}
		parent := filepath.Dir(dir)
		if root || parent == dir {
			break
		}
		dir = parent
	}
	if len(chain) == 0 {
		return nil
	}

	merged := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i] {
			merged[k] = v
		}
	}
	return merged
}

// readEditorConfig reads one .editorconfig file. rel is the edited file's
// slash-separated path relative to the directory holding it.
func readEditorConfig(path, rel string) (props map[string]string, root bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	section := "" // empty until the first [glob] header
	matched := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			matched = sectionMatch(section, rel)
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch {
		case section == "":
			root = root || (key == "root" && value == "true")
		case matched:
			if props == nil {
				props = make(map[string]string)
			}
			props[key] = value
		}
	}
	return props, root
}

// sectionMatch reports whether a section glob applies to rel. A glob without
// a slash matches the file name in any directory; one with a slash is
// anchored at the .editorconfig directory.
func sectionMatch(glob, rel string) bool {
	if !strings.Contains(glob, "/") {
		return globMatch(glob, rel[strings.LastIndexByte(rel, '/')+1:])
	}
	return globMatch(strings.TrimPrefix(glob, "/"), rel)
}

// globMatch matches name against an editorconfig glob. Brace lists such as
// *.{js,py} are expanded first.
func globMatch(glob, name string) bool {
	open := strings.IndexByte(glob, '{')
	end := strings.IndexByte(glob, '}')
	if open < 0 || end < open {
		return matchPattern(glob, name)
	}
	for _, alt := range strings.Split(glob[open+1:end], ",") {
		if globMatch(glob[:open]+alt+glob[end+1:], name) {
			return true
		}
	}
	return false
}

// matchPattern implements * (within one path segment), ** (across
// segments, and zero directories for a leading **/), ? and [...] classes.
func matchPattern(pattern, name string) bool {
	for pattern != "" {
		switch {
		case strings.HasPrefix(pattern, "**"):
			rest := strings.TrimLeft(pattern, "*")
			if strings.HasPrefix(rest, "/") && matchPattern(rest[1:], name) {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchPattern(rest, name[i:]) {
					return true
				}
			}
			return false

		case pattern[0] == '*':
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchPattern(rest, name[i:]) {
					return true
				}
				if i < len(name) && name[i] == '/' {
					break
				}
			}
			return false

		case pattern[0] == '?' || pattern[0] == '[':
			if name == "" || name[0] == '/' {
				return false
			}
			r, size := utf8.DecodeRuneInString(name)
			n := 1
			if pattern[0] == '[' {
				end := strings.IndexByte(pattern, ']')
				if end < 0 {
					return false
				}
				if ok, err := filepath.Match(pattern[:end+1], string(r)); err != nil || !ok {
					return false
				}
				n = end + 1
			}
			pattern, name = pattern[n:], name[size:]

		default:
			if name == "" || pattern[0] != name[0] {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		}
	}
	return name == ""
}
