// Seeds a locally running server with demo users, posts and reviews so the
// frontend has something to render during development.
//
// Usage: go run scripts/seed-demo-data.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
)

const apiBase = "http://localhost:8080/api/v1"

type demoUser struct {
	Name     string
	Email    string
	Password string
	client   *http.Client
}

type postResponse struct {
	ID string `json:"id"`
}

func register(u *demoUser) error {
	body, _ := json.Marshal(map[string]string{
		"name":     u.Name,
		"email":    u.Email,
		"password": u.Password,
	})

	resp, err := http.Post(apiBase+"/users/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 means a previous seed run already created this user.
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func login(u *demoUser) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	u.client = &http.Client{Jar: jar}

	body, _ := json.Marshal(map[string]string{
		"email":    u.Email,
		"password": u.Password,
	})

	resp, err := u.client.Post(apiBase+"/users/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func createPost(u *demoUser, text string, tags []string) (string, error) {
	body, _ := json.Marshal(map[string]any{
		"text": text,
		"tags": tags,
	})

	resp, err := u.client.Post(apiBase+"/posts/", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("post creation failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result postResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode failed: %w", err)
	}
	return result.ID, nil
}

func createReview(u *demoUser, postID, text string) error {
	body, _ := json.Marshal(map[string]string{"text": text})

	resp, err := u.client.Post(apiBase+"/reviews/post/"+postID, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusForbidden {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("review creation failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func main() {
	users := []*demoUser{
		{Name: "ava", Email: "ava@example.com", Password: "demo-password-1"},
		{Name: "ben", Email: "ben@example.com", Password: "demo-password-2"},
		{Name: "cleo", Email: "cleo@example.com", Password: "demo-password-3"},
	}

	for _, u := range users {
		if err := register(u); err != nil {
			fmt.Fprintf(os.Stderr, "register %s: %v\n", u.Name, err)
			os.Exit(1)
		}
		if err := login(u); err != nil {
			fmt.Fprintf(os.Stderr, "login %s: %v\n", u.Name, err)
			os.Exit(1)
		}
		fmt.Printf("logged in %s\n", u.Name)
	}

	posts := []struct {
		author *demoUser
		text   string
		tags   []string
	}{
		{users[0], "Tried the new ramen place downtown, absolutely worth the queue.", []string{"food", "local"}},
		{users[1], "Finished my first century ride this weekend.", []string{"cycling"}},
		{users[2], "Reading list for the summer, recommendations welcome.", []string{"books"}},
	}

	var postIDs []string
	for _, p := range posts {
		id, err := createPost(p.author, p.text, p.tags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create post: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created post %s by %s\n", id, p.author.Name)
		postIDs = append(postIDs, id)
	}

	// Cross-review: each user reviews the posts they don't own.
	reviews := []struct {
		reviewer *demoUser
		postIdx  int
		text     string
	}{
		{users[1], 0, "Going there tomorrow, thanks for the tip!"},
		{users[2], 0, "The broth really is something else."},
		{users[0], 1, "Congrats, that's a serious distance."},
		{users[1], 2, "Try The Left Hand of Darkness if you haven't."},
	}

	for _, r := range reviews {
		if err := createReview(r.reviewer, postIDs[r.postIdx], r.text); err != nil {
			fmt.Fprintf(os.Stderr, "create review: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("demo data seeded")
}
