package service

import "blogsite/internal/models"

// Action is something a principal asks to do.
type Action int

const (
	ActionViewPost Action = iota
	ActionComment
	ActionCreatePost
	ActionEditPost
	ActionDeletePost
	ActionUploadImage
)

func (a Action) String() string {
	switch a {
	case ActionViewPost:
		return "view post"
	case ActionComment:
		return "comment"
	case ActionCreatePost:
		return "create post"
	case ActionEditPost:
		return "edit post"
	case ActionDeletePost:
		return "delete post"
	case ActionUploadImage:
		return "upload image"
	default:
		return "unknown"
	}
}

// AdminOnly reports whether only the administrator may perform a.
func (a Action) AdminOnly() bool {
	switch a {
	case ActionViewPost, ActionComment:
		return false
	default:
		return true
	}
}

// Authorize decides whether principal may perform action.
//
// The authentication check runs first: an anonymous principal never reaches
// the role comparison. Admin-only actions fail with models.ErrForbidden for
// anyone who is not the administrator, anonymous or not. Member actions fail with
// models.ErrUnauthenticated for anonymous principals.
func Authorize(principal *models.User, action Action) error {
	if !principal.IsAuthenticated() {
		if action.AdminOnly() {
			return models.ErrForbidden
		}
		return models.ErrUnauthenticated
	}

	if action.AdminOnly() && !principal.IsAdmin() {
		return models.ErrForbidden
	}

	return nil
}
