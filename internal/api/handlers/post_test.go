package handlers_test

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jordan/postboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postResponse struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Image  string   `json:"image"`
	Tags   []string `json:"tags"`
	UserID string   `json:"userId"`
	User   *struct {
		Name string `json:"name"`
	} `json:"user"`
}

func TestPostLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ts := testutil.NewTestServer(t)

	t.Run("create with a generated image payload", func(t *testing.T) {
		ts.DB.Truncate(t)
		author, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testutil.FakeImageBytes)
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/posts/"), map[string]any{
			"text":      "my generated masterpiece",
			"imageData": payload,
			"tags":      []string{"art", "ai"},
		}, cookie)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		var post postResponse
		testutil.AssertJSONResponse(t, resp, &post)

		assert.Equal(t, "my generated masterpiece", post.Text)
		assert.Equal(t, author.ID.String(), post.UserID)
		assert.Equal(t, []string{"art", "ai"}, post.Tags)
		require.NotNil(t, post.User)
		assert.Equal(t, author.Name, post.User.Name)

		// The image URL must already be live when the post comes back.
		require.NotEmpty(t, post.Image)
		imgResp, err := http.Get(post.Image)
		require.NoError(t, err)
		defer imgResp.Body.Close()
		require.Equal(t, http.StatusOK, imgResp.StatusCode)
		body, err := io.ReadAll(imgResp.Body)
		require.NoError(t, err)
		assert.Equal(t, testutil.FakeImageBytes, body)
	})

	t.Run("create without text", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/posts/"), map[string]any{
			"text": "",
		}, cookie)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Text is required")
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		// Just over the 50 MB cap.
		huge := `{"text":"` + strings.Repeat("a", 50<<20) + `"}`
		req, err := http.NewRequest(http.MethodPost, ts.APIURL("/posts/"), strings.NewReader(huge))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("only the owner may update or delete", func(t *testing.T) {
		ts.DB.Truncate(t)
		owner, ownerCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
		_, strangerCookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		post := testutil.NewPostBuilder(owner.ID).WithText("original").Build(t, ts.DB.DB)

		resp := testutil.DoJSON(t, http.MethodPut, ts.APIURL("/posts/"+post.ID.String()), map[string]string{
			"text": "hijacked",
		}, strangerCookie)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Unauthorized: You do not own this post")

		delResp := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/posts/"+post.ID.String()), nil, strangerCookie)
		defer delResp.Body.Close()
		testutil.AssertErrorResponse(t, delResp, http.StatusForbidden, "Unauthorized: You do not own this post")

		// The owner goes through.
		updateResp := testutil.DoJSON(t, http.MethodPut, ts.APIURL("/posts/"+post.ID.String()), map[string]string{
			"text": "edited by owner",
		}, ownerCookie)
		defer updateResp.Body.Close()
		testutil.AssertStatusCode(t, updateResp, http.StatusOK)

		var updated postResponse
		testutil.AssertJSONResponse(t, updateResp, &updated)
		assert.Equal(t, "edited by owner", updated.Text)

		ownerDel := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/posts/"+post.ID.String()), nil, ownerCookie)
		defer ownerDel.Body.Close()
		testutil.AssertStatusCode(t, ownerDel, http.StatusNoContent)
	})

	t.Run("updating a missing post", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		resp := testutil.DoJSON(t, http.MethodPut, ts.APIURL("/posts/3b2c6f1e-0000-0000-0000-000000000000"), map[string]string{
			"text": "x",
		}, cookie)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Post not found")
	})

	t.Run("list own posts", func(t *testing.T) {
		ts.DB.Truncate(t)
		mine, cookie := testutil.NewUserBuilder().BuildAndLogin(t, ts)
		other, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

		testutil.NewPostBuilder(mine.ID).Build(t, ts.DB.DB)
		testutil.NewPostBuilder(mine.ID).Build(t, ts.DB.DB)
		testutil.NewPostBuilder(other.ID).Build(t, ts.DB.DB)

		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/posts/user"), nil, cookie)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var posts []postResponse
		testutil.AssertJSONResponse(t, resp, &posts)
		assert.Len(t, posts, 2)
		for _, p := range posts {
			assert.Equal(t, mine.ID.String(), p.UserID)
		}
	})
}
