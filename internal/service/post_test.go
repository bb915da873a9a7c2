package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"testing"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
	"github.com/msomdec/yatube/internal/paginate"
	"github.com/msomdec/yatube/internal/repository/sqlite"
	"github.com/msomdec/yatube/internal/service"
)

type postFixture struct {
	db     *sqlite.DB
	posts  *service.PostService
	author *domain.User
	other  *domain.User
	group  *domain.Group
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	auth, db := newTestAuthService(t)
	groups := service.NewGroupService(db.Groups())

	group, err := groups.Create(context.Background(), "Test group", "test-slug", "Test description")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	return &postFixture{
		db:     db,
		posts:  service.NewPostService(db.Posts(), db.Groups(), db.Users(), 10),
		author: registerUser(t, auth, "auth"),
		other:  registerUser(t, auth, "HasNoName"),
		group:  group,
	}
}

func (f *postFixture) seed(t *testing.T, n int, author *domain.User, group *domain.Group) {
	t.Helper()
	for i := range n {
		values := url.Values{"text": {fmt.Sprintf("Test post %d", i)}}
		if group != nil {
			values.Set("group", strconv.FormatInt(group.ID, 10))
		}
		if _, err := f.posts.CreatePost(context.Background(), author, form.ParsePostForm(values)); err != nil {
			t.Fatalf("CreatePost %d: %v", i, err)
		}
	}
}

func TestPostService_IndexPagination(t *testing.T) {
	f := newPostFixture(t)
	f.seed(t, 13, f.author, f.group)
	ctx := context.Background()

	first, err := f.posts.Index(ctx, 1)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if first.Page.Len() != 10 || first.Page.Total != 13 || !first.Page.HasNext() {
		t.Fatalf("unexpected first page: len=%d total=%d", first.Page.Len(), first.Page.Total)
	}
	if first.Page.Items[0].Text != "Test post 12" {
		t.Fatalf("expected newest post first, got %q", first.Page.Items[0].Text)
	}

	second, err := f.posts.Index(ctx, 2)
	if err != nil {
		t.Fatalf("Index page 2: %v", err)
	}
	if second.Page.Len() != 3 || second.Page.HasNext() {
		t.Fatalf("expected 3 posts on last page, got %d", second.Page.Len())
	}

	beyond, err := f.posts.Index(ctx, 9)
	if err != nil {
		t.Fatalf("Index page 9: %v", err)
	}
	if beyond.Page.Len() != 0 || beyond.Page.Total != 13 {
		t.Fatalf("expected empty page with true total, got len=%d total=%d", beyond.Page.Len(), beyond.Page.Total)
	}
}

func TestPostService_HugePageNumberIsEmpty(t *testing.T) {
	f := newPostFixture(t)
	f.seed(t, 13, f.author, f.group)
	ctx := context.Background()
	number := paginate.ParseNumber("1000000000000000000")

	index, err := f.posts.Index(ctx, number)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if index.Page.Len() != 0 || index.Page.Total != 13 {
		t.Fatalf("expected empty index page, got len=%d total=%d", index.Page.Len(), index.Page.Total)
	}

	group, err := f.posts.GroupFeed(ctx, f.group.Slug, number)
	if err != nil {
		t.Fatalf("GroupFeed: %v", err)
	}
	if group.Page.Len() != 0 {
		t.Fatalf("expected empty group page, got %d posts", group.Page.Len())
	}

	profile, err := f.posts.ProfileFeed(ctx, f.author.Username, number)
	if err != nil {
		t.Fatalf("ProfileFeed: %v", err)
	}
	if profile.Page.Len() != 0 {
		t.Fatalf("expected empty profile page, got %d posts", profile.Page.Len())
	}
}

func TestPostService_GroupAndProfileFeeds(t *testing.T) {
	f := newPostFixture(t)
	f.seed(t, 13, f.author, f.group)
	f.seed(t, 2, f.other, nil)
	ctx := context.Background()

	groupFeed, err := f.posts.GroupFeed(ctx, "test-slug", 2)
	if err != nil {
		t.Fatalf("GroupFeed: %v", err)
	}
	if groupFeed.Group.ID != f.group.ID || groupFeed.Page.Len() != 3 {
		t.Fatalf("unexpected group feed: group=%v len=%d", groupFeed.Group, groupFeed.Page.Len())
	}
	for _, p := range groupFeed.Page.Items {
		if p.GroupID == nil || *p.GroupID != f.group.ID {
			t.Fatalf("post %d does not belong to the group", p.ID)
		}
	}

	profile, err := f.posts.ProfileFeed(ctx, "HasNoName", 1)
	if err != nil {
		t.Fatalf("ProfileFeed: %v", err)
	}
	if profile.Author.ID != f.other.ID || profile.Page.Total != 2 {
		t.Fatalf("unexpected profile feed: author=%v total=%d", profile.Author, profile.Page.Total)
	}

	if _, err := f.posts.GroupFeed(ctx, "missing", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown group, got %v", err)
	}
	if _, err := f.posts.ProfileFeed(ctx, "nobody", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestPostService_Detail(t *testing.T) {
	f := newPostFixture(t)
	f.seed(t, 3, f.author, nil)
	ctx := context.Background()

	feed, err := f.posts.Index(ctx, 1)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	detail, err := f.posts.Detail(ctx, feed.Page.Items[0].ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if detail.AuthorPostCount != 3 {
		t.Fatalf("expected author post count 3, got %d", detail.AuthorPostCount)
	}

	if _, err := f.posts.Detail(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostService_CreatePost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	values := url.Values{"text": {"Fresh post"}, "group": {strconv.FormatInt(f.group.ID, 10)}}
	post, err := f.posts.CreatePost(ctx, f.author, form.ParsePostForm(values))
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.AuthorID != f.author.ID || post.GroupID == nil || *post.GroupID != f.group.ID {
		t.Fatalf("unexpected post: %+v", post)
	}

	if _, err := f.posts.CreatePost(ctx, nil, form.ParsePostForm(values)); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}

	empty := form.ParsePostForm(url.Values{"text": {"   "}})
	if _, err := f.posts.CreatePost(ctx, f.author, empty); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !empty.Errors.Has("text") {
		t.Fatalf("expected text error, got %v", empty.Errors)
	}

	n, _ := f.db.Posts().CountAll(ctx)
	if n != 1 {
		t.Fatalf("expected exactly 1 post, got %d", n)
	}
}

func TestPostService_EditPost(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	otherGroup, err := service.NewGroupService(f.db.Groups()).Create(ctx, "Other group", "other-slug", "")
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	post, err := f.posts.CreatePost(ctx, f.author, form.ParsePostForm(url.Values{
		"text":  {"Original"},
		"group": {strconv.FormatInt(f.group.ID, 10)},
	}))
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	edit := url.Values{"text": {"Edited"}, "group": {strconv.FormatInt(otherGroup.ID, 10)}}

	if _, err := f.posts.EditPost(ctx, nil, post.ID, form.ParsePostForm(edit)); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if _, err := f.posts.EditPost(ctx, f.other, post.ID, form.ParsePostForm(edit)); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	updated, err := f.posts.EditPost(ctx, f.author, post.ID, form.ParsePostForm(edit))
	if err != nil {
		t.Fatalf("EditPost: %v", err)
	}
	if updated.Text != "Edited" || updated.Group == nil || updated.Group.ID != otherGroup.ID {
		t.Fatalf("unexpected edited post: %+v", updated)
	}
	if updated.AuthorID != f.author.ID || !updated.CreatedAt.Equal(post.CreatedAt) {
		t.Fatal("author and creation time must not change on edit")
	}

	oldCount, _ := f.db.Posts().CountByGroup(ctx, f.group.ID)
	newCount, _ := f.db.Posts().CountByGroup(ctx, otherGroup.ID)
	if oldCount != 0 || newCount != 1 {
		t.Fatalf("expected post to move groups, counts %d/%d", oldCount, newCount)
	}
}

func TestPostService_Forms(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	f.seed(t, 1, f.author, f.group)

	if _, err := f.posts.NewPostForm(ctx, nil); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}

	page, err := f.posts.NewPostForm(ctx, f.other)
	if err != nil {
		t.Fatalf("NewPostForm: %v", err)
	}
	if page.IsEdit || len(page.Groups) != 1 {
		t.Fatalf("unexpected create page: %+v", page)
	}

	feed, _ := f.posts.Index(ctx, 1)
	postID := feed.Page.Items[0].ID

	if _, err := f.posts.EditPostForm(ctx, f.other, postID); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	edit, err := f.posts.EditPostForm(ctx, f.author, postID)
	if err != nil {
		t.Fatalf("EditPostForm: %v", err)
	}
	if !edit.IsEdit || edit.PostID != postID || edit.Form.Text != "Test post 0" {
		t.Fatalf("unexpected edit page: %+v", edit)
	}
	if !edit.Form.SelectedGroup(f.group.ID) {
		t.Fatal("expected the post's group to be preselected")
	}

	if _, err := f.posts.EditPostForm(ctx, f.author, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
