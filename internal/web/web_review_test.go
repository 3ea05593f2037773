package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomePageEmpty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".empty", "No reviews yet")
	// Anonymous visitors still get the filter form
	assertContainsElement(t, doc, "form.filter-form")
	assertContainsElement(t, doc, "a[href='/login']")
}

func TestCreateReview(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")

	// Form page renders
	rr := ts.get("/reviews/new")
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form[action='/reviews/new']")

	// Submit the review
	id := ts.createReview("Dune", "Sandworms deliver.", 5)

	// Detail page shows the review with owner actions
	rr = ts.get("/reviews/" + id)
	assert.Equal(t, http.StatusOK, rr.Code)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Dune")
	assertContainsText(t, doc, ".content", "Sandworms deliver.")
	assertContainsText(t, doc, ".meta", "alice")
	assertContainsElement(t, doc, "a[href='/reviews/"+id+"/edit']")
}

func TestCreateReviewShowsFlash(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")

	form := url.Values{
		"movie_title": {"Heat"},
		"content":     {"The diner scene alone."},
		"rating":      {"4"},
	}
	rr := ts.post("/reviews/new", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// The flash cookie rides along to the next page load
	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Review published")

	// And is cleared after being shown once
	rr = ts.get("/")
	doc = parseHTML(rr.Body)
	assertNotContainsElement(t, doc, ".flash-success")
}

func TestCreateReviewValidationRerendersForm(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")

	form := url.Values{
		"movie_title": {""},
		"content":     {"Fine."},
		"rating":      {"9"},
	}
	rr := ts.post("/reviews/new", form)

	// Re-rendered with errors, not redirected
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, ".field-error")
	// Submitted values are preserved
	assertContainsText(t, doc, "textarea[name='content']", "Fine.")
}

func TestAnonymousSeesReviewWithoutActions(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	id := ts.createReview("Dune", "Sandworms deliver.", 5)
	ts.logout()

	rr := ts.get("/reviews/" + id)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Dune")
	assertNotContainsElement(t, doc, "a[href='/reviews/"+id+"/edit']")
	assertNotContainsElement(t, doc, "a[href='/reviews/"+id+"/delete']")
}

func TestEditReview(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	id := ts.createReview("Dune", "Good.", 4)

	// Edit form comes pre-filled
	rr := ts.get("/reviews/" + id + "/edit")
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form[action='/reviews/"+id+"/edit']")
	assertContainsElement(t, doc, "input[name='movie_title'][value='Dune']")

	// Submit the update
	form := url.Values{
		"movie_title": {"Dune"},
		"content":     {"Even better on rewatch."},
		"rating":      {"5"},
	}
	rr = ts.post("/reviews/"+id+"/edit", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/reviews/"+id, rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, ".content", "Even better on rewatch.")
}

func TestEditOthersReviewDenied(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	id := ts.createReview("Dune", "Good.", 4)
	ts.logout()
	ts.registerUser("bob")

	// The edit form turns non-authors away
	rr := ts.get("/reviews/" + id + "/edit")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "your own reviews")

	// Submitting directly is rejected too
	form := url.Values{
		"movie_title": {"Dune"},
		"content":     {"Hijacked."},
		"rating":      {"1"},
	}
	rr = ts.post("/reviews/"+id+"/edit", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// The review is untouched
	rr = ts.get("/reviews/" + id)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, ".content", "Good.")
}

func TestDeleteReview(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	id := ts.createReview("Dune", "Good.", 4)

	// Confirmation page
	rr := ts.get("/reviews/" + id + "/delete")
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form[action='/reviews/"+id+"/delete']")

	// Confirm deletion
	rr = ts.post("/reviews/"+id+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// The review is gone; its page redirects home with an error flash
	rr = ts.get("/reviews/" + id)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Review not found")
}

func TestDeleteOthersReviewDenied(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	id := ts.createReview("Dune", "Good.", 4)
	ts.logout()
	ts.registerUser("bob")

	rr := ts.post("/reviews/"+id+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// Still there
	rr = ts.get("/reviews/" + id)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHomeListsReviews(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	ts.createReview("Dune", "Sandworms deliver.", 5)
	ts.createReview("Heat", "The diner scene alone.", 4)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 2, doc.Find(".review-card").Length())
	assertContainsText(t, doc, ".review-list", "Dune")
	assertContainsText(t, doc, ".review-list", "Heat")
	// Newest first by default
	assertContainsText(t, doc, ".review-card:first-child", "Heat")
}

func TestHomeFilterBySearch(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	ts.createReview("Dune", "Sandworms deliver.", 5)
	ts.createReview("Heat", "The diner scene alone.", 4)

	rr := ts.get("/?search=diner")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 1, doc.Find(".review-card").Length())
	assertContainsText(t, doc, ".review-list", "Heat")
}

func TestHomeFilterByRating(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	ts.createReview("Dune", "Sandworms deliver.", 5)
	ts.createReview("Heat", "The diner scene alone.", 4)

	rr := ts.get("/?rating=5")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 1, doc.Find(".review-card").Length())
	assertContainsText(t, doc, ".review-list", "Dune")
}

func TestHomeOrderByRating(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	ts.createReview("Alien", "Overrated in my view.", 2)
	ts.createReview("Dune", "Sandworms deliver.", 5)

	rr := ts.get("/?order=rating")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".review-card:first-child", "Dune")
}

func TestHomeIgnoresMalformedFilters(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("alice")
	ts.createReview("Dune", "Sandworms deliver.", 5)

	// Garbage filter values fall back to the defaults instead of erroring
	rr := ts.get("/?rating=abc&order=bogus")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 1, doc.Find(".review-card").Length())
}
