package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
	"github.com/msomdec/yatube/internal/paginate"
	"github.com/msomdec/yatube/internal/service"
	"github.com/msomdec/yatube/internal/view"
)

// PostHandler serves the feeds, the post detail page and the authoring forms.
type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleIndex renders the newest posts of all authors.
// GET /
func (h *PostHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	feed, err := h.posts.Index(r.Context(), pageNumber(r))
	if err != nil {
		h.fail(w, r, "list posts", err)
		return
	}
	render(w, r, http.StatusOK, view.IndexPage(UserFromContext(r.Context()), feed))
}

// HandleGroup renders the posts of one group.
// GET /group/{slug}/
func (h *PostHandler) HandleGroup(w http.ResponseWriter, r *http.Request) {
	feed, err := h.posts.GroupFeed(r.Context(), r.PathValue("slug"), pageNumber(r))
	if err != nil {
		h.fail(w, r, "list group posts", err)
		return
	}
	render(w, r, http.StatusOK, view.GroupPage(UserFromContext(r.Context()), feed))
}

// HandleProfile renders the posts of one author.
// GET /profile/{username}/
func (h *PostHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	feed, err := h.posts.ProfileFeed(r.Context(), r.PathValue("username"), pageNumber(r))
	if err != nil {
		h.fail(w, r, "list profile posts", err)
		return
	}
	render(w, r, http.StatusOK, view.ProfilePage(UserFromContext(r.Context()), feed))
}

// HandleDetail renders a single post.
// GET /posts/{id}/
func (h *PostHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		notFound(w, r)
		return
	}

	detail, err := h.posts.Detail(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get post", err)
		return
	}
	render(w, r, http.StatusOK, view.PostDetailPage(UserFromContext(r.Context()), detail))
}

// HandleMore streams the next page of a feed as a datastar fragment: the
// cards are appended to #post-list and the load-more button is replaced.
// GET /posts/more?page=N[&group=slug|&author=username]
func (h *PostHandler) HandleMore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := paginate.ParseNumber(q.Get("page"))
	target := view.Feed{Group: q.Get("group"), Author: q.Get("author")}

	var (
		feed *service.FeedPage
		err  error
	)
	switch {
	case target.Group != "":
		feed, err = h.posts.GroupFeed(r.Context(), target.Group, page)
	case target.Author != "":
		feed, err = h.posts.ProfileFeed(r.Context(), target.Author, page)
	default:
		feed, err = h.posts.Index(r.Context(), page)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		serverError(w, r, "load more posts", err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.PostCards(feed.Page.Items),
		datastar.WithSelectorID("post-list"),
		datastar.WithModeAppend(),
	); err != nil {
		return
	}
	if feed.Page.HasNext() {
		sse.PatchElementTempl(view.LoadMore(target, feed.Page.NextNumber()))
	} else {
		sse.RemoveElementByID("load-more")
	}
}

// HandleCreateForm renders an empty post form.
// GET /create/
func (h *PostHandler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	page, err := h.posts.NewPostForm(r.Context(), user)
	if err != nil {
		h.fail(w, r, "new post form", err)
		return
	}
	render(w, r, http.StatusOK, view.PostFormPage(user, page))
}

// HandleCreate stores a new post and redirects to the author's profile.
// POST /create/
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	user := UserFromContext(r.Context())
	f := form.ParsePostForm(r.PostForm)
	_, err := h.posts.CreatePost(r.Context(), user, f)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.rerender(w, r, f, 0)
			return
		}
		h.fail(w, r, "create post", err)
		return
	}

	http.Redirect(w, r, "/profile/"+url.PathEscape(user.Username)+"/", http.StatusSeeOther)
}

// HandleEditForm renders the edit form to the post's author. Anyone else is
// sent to the post detail page.
// GET /posts/{id}/edit/
func (h *PostHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		notFound(w, r)
		return
	}

	user := UserFromContext(r.Context())
	page, err := h.posts.EditPostForm(r.Context(), user, id)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			http.Redirect(w, r, detailPath(id), http.StatusFound)
			return
		}
		h.fail(w, r, "edit post form", err)
		return
	}
	render(w, r, http.StatusOK, view.PostFormPage(user, page))
}

// HandleEdit updates the post's text and group.
// POST /posts/{id}/edit/
func (h *PostHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	f := form.ParsePostForm(r.PostForm)
	_, err := h.posts.EditPost(r.Context(), UserFromContext(r.Context()), id, f)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPermissionDenied):
			http.Redirect(w, r, detailPath(id), http.StatusFound)
		case errors.Is(err, domain.ErrInvalidInput):
			h.rerender(w, r, f, id)
		default:
			h.fail(w, r, "edit post", err)
		}
		return
	}

	http.Redirect(w, r, detailPath(id), http.StatusSeeOther)
}

// rerender shows the submitted form again with its field errors.
func (h *PostHandler) rerender(w http.ResponseWriter, r *http.Request, f *form.PostForm, id int64) {
	page, err := h.posts.FormPage(r.Context(), f, id)
	if err != nil {
		serverError(w, r, "post form page", err)
		return
	}
	render(w, r, http.StatusUnprocessableEntity, view.PostFormPage(UserFromContext(r.Context()), page))
}

// fail maps service errors that every post endpoint shares.
func (h *PostHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFound(w, r)
	case errors.Is(err, domain.ErrAuthenticationRequired):
		redirectToLogin(w, r)
	default:
		serverError(w, r, msg, err)
	}
}

func pageNumber(r *http.Request) int {
	return paginate.ParseNumber(r.URL.Query().Get("page"))
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func detailPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}
