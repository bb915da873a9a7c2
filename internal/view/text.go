package view

import (
	"strconv"
	"strings"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/service"
)

const dateLayout = "2 January 2006"

// paragraphs splits text on blank lines. Each paragraph keeps its lines.
func paragraphs(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out [][]string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		out = append(out, strings.Split(para, "\n"))
	}
	return out
}

// excerpt returns the first n runes of s.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func authorName(post *domain.Post) string {
	if post.Author == nil {
		return ""
	}
	return post.Author.FullName()
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func postFormTitle(page *service.PostFormPage) string {
	if page.IsEdit {
		return "Edit post"
	}
	return "New post"
}

func postFormAction(page *service.PostFormPage) string {
	if page.IsEdit {
		return editURL(page.PostID)
	}
	return "/create/"
}
