package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Config holds everything needed to construct a Client.
type Config struct {
	// BaseURL is the backend root (e.g. "http://localhost:8080").
	// The "/api/v1" prefix is appended here, not by callers.
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
	// TokenSource returns the current bearer token, or "" when anonymous.
	// It is consulted at request time so a login in the same process takes
	// effect without rebuilding the client.
	TokenSource func() string
	// OnUnauthorized runs once per 401 response, before the error is
	// returned. The session layer uses it to wipe the persisted token.
	OnUnauthorized func()
}

// Client talks to the blog backend. Construct one at startup and pass it
// to whatever needs it; there is deliberately no package-level instance.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	tokenSource    func() string
	onUnauthorized func()
}

func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:        strings.TrimRight(config.BaseURL, "/") + "/api/v1",
		httpClient:     httpClient,
		logger:         logger,
		tokenSource:    config.TokenSource,
		onUnauthorized: config.OnUnauthorized,
	}, nil
}

// wirePage translates the UI's 1-based page number to the backend's
// 0-based index. Page 1 must map to 0 exactly; responses convert back
// via Page.UIPage.
func wirePage(uiPage int) int {
	if uiPage <= 1 {
		return 0
	}
	return uiPage - 1
}

func pageQuery(page, size int, sort string) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(wirePage(page)))
	if size <= 0 {
		size = DefaultPageSize
	}
	q.Set("size", strconv.Itoa(size))
	if sort != "" {
		q.Set("sort", sort)
	}
	return q
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx, returns the body. On any failure, returns a *Error: non-2xx
// responses are decoded from the backend's error shape (with a generic
// fallback when the body is unparseable), and transport failures get
// Status 0 so UI code never sees a raw transport error.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, &Error{Message: GenericMessage}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, &Error{Message: GenericMessage}
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "err", err)
		return nil, &Error{Message: GenericMessage}
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		c.logger.Warn("reading response failed", "method", method, "path", path, "err", err)
		return nil, &Error{Message: GenericMessage}
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	if response.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		// Session-expired policy: the hook wipes the persisted token and
		// sends the app back to its anonymous root.
		c.onUnauthorized()
	}

	apiErr := &Error{Status: response.StatusCode, Message: GenericMessage}
	if jsonErr := json.Unmarshal(responseBody, apiErr); jsonErr != nil || apiErr.Message == "" {
		apiErr.Message = GenericMessage
	}
	apiErr.Status = response.StatusCode
	return nil, apiErr
}

func decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, &Error{Message: GenericMessage}
	}
	return v, nil
}

// Auth

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return AuthResponse{}, err
	}
	return decode[AuthResponse](body)
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (AuthResponse, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/signup", nil, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return AuthResponse{}, err
	}
	return decode[AuthResponse](body)
}

func (c *Client) Me(ctx context.Context) (AuthUser, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return AuthUser{}, err
	}
	return decode[AuthUser](body)
}

// Posts

func (c *Client) ListPosts(ctx context.Context, params ListPostsParams) (Page[Post], error) {
	q := pageQuery(params.Page, params.Size, params.Sort)
	if params.CategoryID != "" {
		q.Set("categoryId", params.CategoryID)
	}
	if params.TagID != "" {
		q.Set("tagId", params.TagID)
	}
	body, err := c.doRequest(ctx, http.MethodGet, "/posts", q, nil)
	if err != nil {
		return Page[Post]{}, err
	}
	return decode[Page[Post]](body)
}

func (c *Client) SearchPosts(ctx context.Context, title string, params PageParams) (Page[Post], error) {
	q := pageQuery(params.Page, params.Size, params.Sort)
	q.Set("title", title)
	body, err := c.doRequest(ctx, http.MethodGet, "/posts/search", q, nil)
	if err != nil {
		return Page[Post]{}, err
	}
	return decode[Page[Post]](body)
}

func (c *Client) ListDrafts(ctx context.Context, params PageParams) (Page[Post], error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/posts/drafts", pageQuery(params.Page, params.Size, params.Sort), nil)
	if err != nil {
		return Page[Post]{}, err
	}
	return decode[Page[Post]](body)
}

func (c *Client) GetPost(ctx context.Context, id string) (Post, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return Post{}, err
	}
	return decode[Post](body)
}

func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (Post, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/posts", nil, req)
	if err != nil {
		return Post{}, err
	}
	return decode[Post](body)
}

func (c *Client) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (Post, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), nil, req)
	if err != nil {
		return Post{}, err
	}
	return decode[Post](body)
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
	return err
}

// Categories

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]Category](body)
}

func (c *Client) CreateCategory(ctx context.Context, name string) (Category, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/categories", nil, map[string]string{"name": name})
	if err != nil {
		return Category{}, err
	}
	return decode[Category](body)
}

func (c *Client) UpdateCategory(ctx context.Context, id, name string) (Category, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), nil, map[string]string{
		"id":   id,
		"name": name,
	})
	if err != nil {
		return Category{}, err
	}
	return decode[Category](body)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
	return err
}

// Tags

func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/tags", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]Tag](body)
}

// CreateTags bulk-creates tags; the backend skips names that already exist.
func (c *Client) CreateTags(ctx context.Context, names []string) ([]Tag, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/tags", nil, map[string][]string{"names": names})
	if err != nil {
		return nil, err
	}
	return decode[[]Tag](body)
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/tags/"+url.PathEscape(id), nil, nil)
	return err
}

// Users

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]User](body)
}

func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return User{}, err
	}
	return decode[User](body)
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/users", nil, req)
	if err != nil {
		return User{}, err
	}
	return decode[User](body)
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (User, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, req)
	if err != nil {
		return User{}, err
	}
	return decode[User](body)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
	return err
}

// Roles

func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/roles", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]Role](body)
}
