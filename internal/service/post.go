package service

import (
	"context"
	"fmt"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
	"github.com/msomdec/yatube/internal/paginate"
)

// FeedPage is one page of a post feed. Group is set for group feeds and
// Author for profile feeds.
type FeedPage struct {
	Group  *domain.Group
	Author *domain.User
	Page   paginate.Page[domain.Post]
}

// PostDetail is a single post together with how many posts its author wrote.
type PostDetail struct {
	Post            *domain.Post
	AuthorPostCount int
}

// PostFormPage carries everything the create/edit page needs.
type PostFormPage struct {
	Form   *form.PostForm
	Groups []domain.Group
	IsEdit bool
	PostID int64
}

// PostService implements the feed, detail and authoring use cases.
type PostService struct {
	posts     domain.PostRepository
	groups    domain.GroupRepository
	users     domain.UserRepository
	paginator paginate.Paginator
}

// NewPostService creates a PostService serving pages of pageSize posts.
func NewPostService(posts domain.PostRepository, groups domain.GroupRepository, users domain.UserRepository, pageSize int) *PostService {
	return &PostService{
		posts:     posts,
		groups:    groups,
		users:     users,
		paginator: paginate.New(pageSize),
	}
}

// Index returns the given page of all posts.
func (s *PostService) Index(ctx context.Context, page int) (*FeedPage, error) {
	limit, offset := s.paginator.Window(page)
	total, err := s.posts.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.posts.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Page: paginate.NewPage(s.paginator, items, page, total)}, nil
}

// GroupFeed returns the given page of posts filed under the group.
func (s *PostService) GroupFeed(ctx context.Context, slug string, page int) (*FeedPage, error) {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}

	limit, offset := s.paginator.Window(page)
	total, err := s.posts.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.posts.ListByGroup(ctx, group.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Group: group, Page: paginate.NewPage(s.paginator, items, page, total)}, nil
}

// ProfileFeed returns the given page of posts written by the user.
func (s *PostService) ProfileFeed(ctx context.Context, username string, page int) (*FeedPage, error) {
	author, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", username, err)
	}

	limit, offset := s.paginator.Window(page)
	total, err := s.posts.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.posts.ListByAuthor(ctx, author.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Author: author, Page: paginate.NewPage(s.paginator, items, page, total)}, nil
}

// Detail returns the post and its author's post count.
func (s *PostService) Detail(ctx context.Context, id int64) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	count, err := s.posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, AuthorPostCount: count}, nil
}

// NewPostForm returns an empty create form.
func (s *PostService) NewPostForm(ctx context.Context, principal *domain.User) (*PostFormPage, error) {
	if !CanCreate(principal) {
		return nil, domain.ErrAuthenticationRequired
	}
	return s.FormPage(ctx, &form.PostForm{Errors: form.Errors{}}, 0)
}

// EditPostForm returns the edit form prefilled from the post. Only its
// author gets one.
func (s *PostService) EditPostForm(ctx context.Context, principal *domain.User, id int64) (*PostFormPage, error) {
	post, err := s.editable(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return s.FormPage(ctx, form.PostFormFrom(post), post.ID)
}

// FormPage wraps a (possibly invalid) form with the group choices. A
// non-zero postID renders the edit variant.
func (s *PostService) FormPage(ctx context.Context, f *form.PostForm, postID int64) (*PostFormPage, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return &PostFormPage{Form: f, Groups: groups, IsEdit: postID != 0, PostID: postID}, nil
}

// CreatePost stores a new post authored by the principal.
func (s *PostService) CreatePost(ctx context.Context, principal *domain.User, f *form.PostForm) (*domain.Post, error) {
	if !CanCreate(principal) {
		return nil, domain.ErrAuthenticationRequired
	}
	if err := s.validate(ctx, f); err != nil {
		return nil, err
	}

	post := &domain.Post{Text: f.Text, AuthorID: principal.ID, GroupID: f.GroupID}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// EditPost replaces the text and group of the post. Author and creation
// time are left untouched.
func (s *PostService) EditPost(ctx context.Context, principal *domain.User, id int64, f *form.PostForm) (*domain.Post, error) {
	post, err := s.editable(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, f); err != nil {
		return nil, err
	}

	post.Text = f.Text
	post.GroupID = f.GroupID
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.posts.GetByID(ctx, post.ID)
}

func (s *PostService) editable(ctx context.Context, principal *domain.User, id int64) (*domain.Post, error) {
	if principal == nil {
		return nil, domain.ErrAuthenticationRequired
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	if !CanEdit(principal, post) {
		return nil, domain.ErrPermissionDenied
	}
	return post, nil
}

func (s *PostService) validate(ctx context.Context, f *form.PostForm) error {
	ok, err := f.Validate(ctx, s.groups)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: post form has errors", domain.ErrInvalidInput)
	}
	return nil
}
