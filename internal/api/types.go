package api

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthUser is the profile returned by /auth/me for the logged-in user.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles []Role `json:"roles"`
}

func (u AuthUser) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PostCount int    `json:"postCount,omitempty"`
}

type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PostCount int    `json:"postCount,omitempty"`
}

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Author      *Author    `json:"author,omitempty"`
	Category    Category   `json:"category"`
	Tags        []Tag      `json:"tags"`
	ReadingTime int        `json:"readingTime,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Status      PostStatus `json:"status,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type CreatePostRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CategoryID string     `json:"categoryId"`
	TagIDs     []string   `json:"tagIds"`
	Status     PostStatus `json:"status"`
}

type UpdatePostRequest struct {
	ID string `json:"id"`
	CreatePostRequest
}

type CreateUserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	RoleIDs  []string `json:"roleIds"`
}

type UpdateUserRequest struct {
	ID string `json:"id"`
	CreateUserRequest
}

// Page is a server page of results. PageNumber is the backend's 0-based
// index; use UIPage for the 1-based number shown to people.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// UIPage converts the wire page index back to the 1-based numbering used
// everywhere outside this package.
func (p Page[T]) UIPage() int { return p.PageNumber + 1 }

// DefaultPageSize matches the backend default and the page size the web
// front-end always requested.
const DefaultPageSize = 10

// DefaultSort is the listing order when no sort is given.
const DefaultSort = "createdAt,desc"

// AdminRole is the role name gating user administration.
const AdminRole = "ADMIN"

// ListPostsParams selects a page of published posts. CategoryID and TagID
// are mutually exclusive; callers enforce that before reaching the wire.
type ListPostsParams struct {
	CategoryID string
	TagID      string
	Page       int // 1-based; 0 means page 1
	Size       int // 0 means DefaultPageSize
	Sort       string
}

type PageParams struct {
	Page int // 1-based; 0 means page 1
	Size int // 0 means DefaultPageSize
	Sort string
}
