package attackcsv

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects the target of [Rewrite].
type Mode int

const (
	ModePlain Mode = iota
	ModeHTML
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeHTML {
		return "html"
	}
	return "plain"
}

// ParseMode parses "plain" (or "text") and "html".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text":
		return ModePlain, nil
	case "html":
		return ModeHTML, nil
	default:
		return ModePlain, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

var (
	headingPattern   = regexp.MustCompile(`(?m)^#+[ \t]*(.*?)[ \t#\r]*(?:\r?\n|$)`)
	codePattern      = regexp.MustCompile(`(?s)<code>(.*?)</code>`)
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	linkPattern      = regexp.MustCompile(`\[([^\[]*?)\]\((.*?)\)`)
	htmlXrefPattern  = regexp.MustCompile(`"https://attack\.mitre\.org/techniques/(.*?)"`)
	plainXrefPattern = regexp.MustCompile(`https://attack\.mitre\.org/(?:techniques|tactics|software)/([^\s\])"]+)`)
)

// Rewrite converts the small markdown dialect used in ATT&CK descriptions
// into plain text or HTML.
//
// Passes run in a fixed order. Headings and code spans are neutralized
// before cross references are rewritten, and HTML bold/link markup is
// produced before newlines become <br/>. Plain text turns <br> into a
// newline first, so a heading may follow one.
//
// Technique links are rewritten to local anchors in HTML only when they sit
// in a quoted attribute, while plain text rewrites technique, tactic and
// software URLs anywhere. The asymmetry is kept for output compatibility.
func Rewrite(s string, m Mode) string {
	if m == ModeHTML {
		return rewriteHTML(s)
	}
	return rewritePlain(s)
}

func rewritePlain(s string) string {
	// A <br> ends a line in plain text, so it is resolved before headings are
	// found.
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = replaceSpans(headingPattern, s, func(g []string) string {
		return "# " + g[1] + " #\n"
	})
	s = replaceSpans(codePattern, s, func(g []string) string {
		return "`" + g[1] + "`"
	})
	return replaceSpans(plainXrefPattern, s, func(g []string) string {
		return dotted(g[1])
	})
}

func rewriteHTML(s string) string {
	s = replaceSpans(headingPattern, s, func(g []string) string {
		return "<b><u>" + g[1] + "</u></b><br/>"
	})
	s = replaceSpans(codePattern, s, func(g []string) string {
		return "<code>" + strings.ReplaceAll(g[1], "<", "&lt;") + "</code>"
	})
	s = replaceSpans(boldPattern, s, func(g []string) string {
		return "<b>" + g[1] + "</b>"
	})
	s = replaceSpans(linkPattern, s, func(g []string) string {
		return `<a href="` + g[2] + `">` + g[1] + "</a>"
	})
	s = replaceSpans(htmlXrefPattern, s, func(g []string) string {
		return `"#` + dotted(g[1]) + `"`
	})
	return strings.ReplaceAll(s, "\n", "<br/>")
}

// dotted turns an ATT&CK URL path such as "T1548/001/" into "T1548.001".
func dotted(path string) string {
	return strings.ReplaceAll(strings.TrimRight(path, "/"), "/", ".")
}

// replaceSpans replaces every match of re in s with fn(groups), where
// groups[0] is the whole match and groups[i] the i-th capture. Unmatched
// optional groups are passed as "".
func replaceSpans(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	spans := re.FindAllStringSubmatchIndex(s, -1)
	if len(spans) == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, span := range spans {
		groups := make([]string, len(span)/2)
		for i := range groups {
			if span[2*i] >= 0 {
				groups[i] = s[span[2*i]:span[2*i+1]]
			}
		}
		sb.WriteString(s[last:span[0]])
		sb.WriteString(fn(groups))
		last = span[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}
