package iuserrepo

import "context"

// IUserRepository answers whether a user exists.
type IUserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
