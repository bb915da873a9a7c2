package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/msomdec/yatube/internal/domain"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice."
)

// GroupLookup resolves group ids submitted with a post.
type GroupLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
}

// PostForm is the create/edit form for a post: a required text body and an
// optional group.
type PostForm struct {
	Text     string
	GroupRaw string

	// GroupID is set by Validate when a group was chosen.
	GroupID *int64
	Errors  Errors
}

// ParsePostForm reads the text and group fields.
func ParsePostForm(values url.Values) *PostForm {
	return &PostForm{
		Text:     strings.TrimSpace(values.Get("text")),
		GroupRaw: strings.TrimSpace(values.Get("group")),
		Errors:   Errors{},
	}
}

// PostFormFrom prefills the form from an existing post.
func PostFormFrom(post *domain.Post) *PostForm {
	f := &PostForm{Text: post.Text, Errors: Errors{}}
	if post.GroupID != nil {
		f.GroupRaw = strconv.FormatInt(*post.GroupID, 10)
		id := *post.GroupID
		f.GroupID = &id
	}
	return f
}

// Validate checks the submitted values and resolves the group. It returns
// false when field errors were recorded. A non-nil error means the lookup
// itself failed.
func (f *PostForm) Validate(ctx context.Context, groups GroupLookup) (bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	f.GroupID = nil

	if f.Text == "" {
		f.Errors.Add("text", msgRequired)
	}

	if f.GroupRaw != "" {
		id, err := strconv.ParseInt(f.GroupRaw, 10, 64)
		if err != nil || id < 1 {
			f.Errors.Add("group", msgInvalidChoice)
		} else if _, err := groups.GetByID(ctx, id); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return false, fmt.Errorf("look up group: %w", err)
			}
			f.Errors.Add("group", msgInvalidChoice)
		} else {
			f.GroupID = &id
		}
	}

	return !f.Errors.Any(), nil
}

// SelectedGroup reports whether the option with the given id should render
// as selected.
func (f *PostForm) SelectedGroup(id int64) bool {
	return f.GroupRaw == strconv.FormatInt(id, 10)
}
