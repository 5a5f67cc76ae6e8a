package service

import (
	"regexp"
	"strings"
)

// allowedTags is the tag subset Telegram HTML parse mode accepts.
var allowedTags = map[string]bool{
	"b": true, "u": true, "a": true, "pre": true, "code": true,
	"i": true, "em": true, "blockquote": true, "s": true,
}

var tagRe = regexp.MustCompile(`</?(\w+)([^>]*?)>`)

// literal tag replacements applied before the allow-list pass
var tagReplacer = strings.NewReplacer(
	"<б>", "<b>", "</б>", "</b>",
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"<ul>", "", "</ul>", "",
	"<li>", "• ", "</li>", "\n",
	"<ol>", "", "</ol>", "",
	"<p>", "", "</p>", "\n",
)

// CleanTelegramHTML rewrites model output into the HTML subset Telegram
// renders: Cyrillic tag typos and list/paragraph markup become text or
// newlines, and any tag outside the allow-list is stripped with its
// attributes. Text content is never altered.
func CleanTelegramHTML(text string) string {
	text = tagReplacer.Replace(text)
	return tagRe.ReplaceAllStringFunc(text, func(tag string) string {
		m := tagRe.FindStringSubmatch(tag)
		if m != nil && allowedTags[strings.ToLower(m[1])] {
			return tag
		}
		return ""
	})
}
