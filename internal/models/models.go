package models

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// PostDateLayout is how a post's publication date is stored ("August 05, 2024").
const PostDateLayout = "January 02, 2006"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Anonymous returns the principal of a request nobody is logged in for.
// It has no identifier and can be used anywhere a *User is expected.
func Anonymous() *User {
	return &User{}
}

func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != 0
}

func (u *User) IsAdmin() bool {
	return u.IsAuthenticated() && u.Role == RoleAdmin
}

// Post.Author is a snapshot of the creating user's name and is never rewritten.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Subtitle  string    `json:"subtitle" db:"subtitle"`
	Date      string    `json:"date" db:"date"`
	Body      string    `json:"body" db:"body"`
	Author    string    `json:"author" db:"author"`
	ImgURL    string    `json:"imgUrl" db:"img_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Comment struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CommentView is a comment joined with its author for rendering.
type CommentView struct {
	Comment
	AuthorName  string `json:"authorName" db:"author_name"`
	AuthorEmail string `json:"-" db:"author_email"`
	AvatarURL   string `json:"avatarUrl" db:"-"`
}

type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
