package handlers_test

import (
	"net/http"
	"testing"

	"github.com/jordan/postboard/internal/testutil"
	"github.com/stretchr/testify/assert"
)

type reviewResponse struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	PostID string `json:"postId"`
	UserID string `json:"userId"`
}

func TestReviewGuards(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ts := testutil.NewTestServer(t)

	t.Run("a post owner cannot review their own post", func(t *testing.T) {
		ts.DB.Truncate(t)
		owner, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
		post := testutil.NewPostBuilder(owner.ID).Build(t, ts.DB.DB)

		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/reviews/post/"+post.ID.String()), map[string]string{
			"text": "reviewing myself",
		}, cookie)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "You cannot review your own post")
	})

	t.Run("a user may review a post exactly once", func(t *testing.T) {
		ts.DB.Truncate(t)
		author, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		reviewer, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
		post := testutil.NewPostBuilder(author.ID).Build(t, ts.DB.DB)

		first := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/reviews/post/"+post.ID.String()), map[string]string{
			"text": "thoughtful critique",
		}, cookie)
		defer first.Body.Close()
		testutil.AssertStatusCode(t, first, http.StatusCreated)

		var review reviewResponse
		testutil.AssertJSONResponse(t, first, &review)
		assert.Equal(t, "thoughtful critique", review.Text)
		assert.Equal(t, post.ID.String(), review.PostID)
		assert.Equal(t, reviewer.ID.String(), review.UserID)

		second := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/reviews/post/"+post.ID.String()), map[string]string{
			"text": "trying again",
		}, cookie)
		defer second.Body.Close()
		testutil.AssertErrorResponse(t, second, http.StatusForbidden, "You have already reviewed this post")
	})

	t.Run("reviewing a missing post", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/reviews/post/3b2c6f1e-0000-0000-0000-000000000000"), map[string]string{
			"text": "into the void",
		}, cookie)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Post not found")
	})

	t.Run("only the reviewer may edit or remove their review", func(t *testing.T) {
		ts.DB.Truncate(t)
		author, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		reviewer, reviewerCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
		_, strangerCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		post := testutil.NewPostBuilder(author.ID).Build(t, ts.DB.DB)
		review := testutil.NewReviewBuilder(post.ID, reviewer.ID).Build(t, ts.DB.DB)

		resp := testutil.DoJSON(t, http.MethodPut, ts.APIURL("/reviews/"+review.ID.String()), map[string]string{
			"text": "hijacked",
		}, strangerCookie)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Unauthorized: You do not own this review")

		ownResp := testutil.DoJSON(t, http.MethodPut, ts.APIURL("/reviews/"+review.ID.String()), map[string]string{
			"text": "revised",
		}, reviewerCookie)
		defer ownResp.Body.Close()
		testutil.AssertStatusCode(t, ownResp, http.StatusOK)

		delResp := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/reviews/"+review.ID.String()), nil, reviewerCookie)
		defer delResp.Body.Close()
		testutil.AssertStatusCode(t, delResp, http.StatusNoContent)
	})

	t.Run("list reviews for a post", func(t *testing.T) {
		ts.DB.Truncate(t)
		author, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
		post := testutil.NewPostBuilder(author.ID).Build(t, ts.DB.DB)

		for i := 0; i < 2; i++ {
			reviewer, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
			testutil.NewReviewBuilder(post.ID, reviewer.ID).Build(t, ts.DB.DB)
		}

		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/reviews/post/"+post.ID.String()), nil, cookie)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var reviews []reviewResponse
		testutil.AssertJSONResponse(t, resp, &reviews)
		assert.Len(t, reviews, 2)
	})
}
