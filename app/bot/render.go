package bot

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/Semior001/hnsearch/app/reader"
	"github.com/Semior001/hnsearch/app/search"
	"github.com/Semior001/hnsearch/pkg/botx"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

const (
	titleWidth     = 70
	removesPerRow  = 5
	maxCallbackLen = 64
	// telegram limit, counted in runes of the source text, which is never
	// shorter than the text telegram counts after parsing the markup
	maxMessageLen = 4096
	itemURL        = "https://news.ycombinator.com/item?id="
)

var funcs = template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"md":    escapeMarkdown,
	"title": linkText,
	"link":  storyLink,
}

var pageTmpl = template.Must(template.New("page").Funcs(funcs).Parse(
	`*Search: {{md .SearchTerm}}*, page {{inc .Stories.Page}}
{{if .Stories.IsError}}
Something went wrong...
{{end}}{{if .Stories.IsLoading}}
Loading...
{{else}}
{{.SumComments}} comments on this page.
{{end}}
{{range $i, $s := .Shown}}{{inc $i}}. [{{title $s.Title}}]({{link $s}}) by {{md $s.Author}}, {{$s.NumComments}} comments, {{$s.Points}} points
{{else}}{{if not .Hidden}}Nothing found.
{{end}}{{end}}{{if .Hidden}}...and {{.Hidden}} more, remove or sort stories to see them.
{{end}}`))

var articleTmpl = template.Must(template.New("article").Funcs(funcs).Parse(
	`*{{md .Title}}{{if .Author}} by {{md .Author}}{{end}}*

{{.Body}}

[source]({{.URL}})
`))

type pageData struct {
	search.View
	Shown  []hn.Story
	Hidden int
}

// renderPage renders the page, leaving out the stories from the end of
// the list that do not fit into a single message.
func renderPage(v search.View) (string, [][]botx.Button, error) {
	for shown := len(v.Sorted); ; shown-- {
		sb := &strings.Builder{}
		data := pageData{View: v, Shown: v.Sorted[:shown], Hidden: len(v.Sorted) - shown}
		if err := pageTmpl.Execute(sb, data); err != nil {
			return "", nil, fmt.Errorf("execute page template: %w", err)
		}

		if shown == 0 || utf8.RuneCountInString(sb.String()) <= maxMessageLen {
			return sb.String(), pageButtons(v), nil
		}
	}
}

type articleData struct {
	reader.Article
	Body string
}

// renderArticle renders the article, cutting its body to fit into a single message.
func renderArticle(a reader.Article) (string, error) {
	body := a.BulletPoints
	if body == "" {
		body = a.Excerpt
	}
	data := articleData{Article: a, Body: escapeMarkdown(body)}

	text, err := executeArticle(data)
	if err != nil {
		return "", err
	}

	if over := utf8.RuneCountInString(text) - maxMessageLen; over > 0 {
		data.Body = cutText(data.Body, utf8.RuneCountInString(data.Body)-over-1) + "…"
		if text, err = executeArticle(data); err != nil {
			return "", err
		}
	}

	return text, nil
}

func executeArticle(data articleData) (string, error) {
	sb := &strings.Builder{}
	if err := articleTmpl.Execute(sb, data); err != nil {
		return "", fmt.Errorf("execute article template: %w", err)
	}
	return sb.String(), nil
}

// cutText cuts s to at most limit runes, preferably at a line break.
// A trailing escape character is dropped, so the result stays valid markup.
func cutText(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit < 0 {
		limit = 0
	}

	r = r[:limit]
	for i := len(r) - 1; i > 0; i-- {
		if r[i] == '\n' {
			r = r[:i]
			break
		}
	}

	return strings.TrimRight(string(r), "\\")
}

func pageButtons(v search.View) [][]botx.Button {
	var rows [][]botx.Button

	rows = append(rows, lo.Map(search.SortKeys, func(k search.SortKey, _ int) botx.Button {
		return botx.Button{Text: v.Sort.Label(k), Data: "/sort " + strings.ToLower(string(k))}
	}))

	removes := lo.Map(v.Sorted, func(s hn.Story, i int) botx.Button {
		return botx.Button{Text: fmt.Sprintf("✕ %d", i+1), Data: "/remove " + s.ObjectID}
	})
	rows = append(rows, lo.Chunk(removes, removesPerRow)...)

	last := lo.FilterMap(v.LastSearches, func(term string, _ int) (botx.Button, bool) {
		data := "/last " + term
		return botx.Button{Text: term, Data: data}, len(data) <= maxCallbackLen
	})
	if len(last) > 0 {
		rows = append(rows, last)
	}

	var pages []botx.Button
	if v.Stories.Page > 0 {
		pages = append(pages, botx.Button{Text: "←", Data: "/less"})
	}
	if v.Stories.Page < hn.MaxPage {
		pages = append(pages, botx.Button{Text: "→", Data: "/more"})
	}
	if len(pages) > 0 {
		rows = append(rows, pages)
	}

	return rows
}

func historyButtons(terms []string) [][]botx.Button {
	return lo.FilterMap(terms, func(term string, _ int) ([]botx.Button, bool) {
		data := "/last " + term
		return []botx.Button{{Text: term, Data: data}}, len(data) <= maxCallbackLen
	})
}

func storyLink(s hn.Story) string {
	if s.URL == "" {
		return itemURL + s.ObjectID
	}
	return s.URL
}

var linkEscaper = strings.NewReplacer("[", "(", "]", ")")

func linkText(s string) string {
	if s == "" {
		s = "untitled"
	}
	return linkEscaper.Replace(runewidth.Truncate(s, titleWidth, "…"))
}

var mdEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"[", "\\[",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}
