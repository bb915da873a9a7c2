package view

import (
	"net/url"
	"strconv"
)

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func groupURL(slug string) string {
	return "/group/" + url.PathEscape(slug) + "/"
}

func postURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func editURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/edit/"
}

// Feed identifies which feed a page of posts belongs to, so that pagination
// and "load more" links point back at the same listing.
type Feed struct {
	Group  string
	Author string
}

// PageURL links to a numbered page of the feed.
func (f Feed) PageURL(number int) string {
	base := "/"
	switch {
	case f.Group != "":
		base = groupURL(f.Group)
	case f.Author != "":
		base = profileURL(f.Author)
	}
	return base + "?page=" + strconv.Itoa(number)
}

// MoreURL is the datastar endpoint that streams the given page as cards.
func (f Feed) MoreURL(number int) string {
	q := url.Values{"page": {strconv.Itoa(number)}}
	switch {
	case f.Group != "":
		q.Set("group", f.Group)
	case f.Author != "":
		q.Set("author", f.Author)
	}
	return "/posts/more?" + q.Encode()
}
