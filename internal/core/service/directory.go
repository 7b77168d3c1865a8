package service

import (
	"context"

	"github.com/bornholm/taskhub/internal/core/model"
	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/pkg/errors"
)

// Directory resolves Telegram identities to local users and enforces role
// assignment rules. The configured owner identity always carries the owner
// role: it is re-applied on every sign-in, so a manual demotion never
// survives the owner's next contact.
type Directory struct {
	users   port.UserStore
	ownerID int64
}

func NewDirectory(users port.UserStore, ownerID int64) *Directory {
	return &Directory{
		users:   users,
		ownerID: ownerID,
	}
}

// ResolveOrCreate returns the user for the given Telegram identity,
// creating it on first contact. Existing users get their display name
// refreshed.
func (d *Directory) ResolveOrCreate(ctx context.Context, telegramID int64, fullName string) (*model.User, error) {
	user, err := d.users.FindUserByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			return nil, errors.WithStack(err)
		}

		role := model.RoleWorker
		if telegramID == d.ownerID {
			role = model.RoleOwner
		}

		user = &model.User{
			ID:         model.NewUserID(),
			TelegramID: telegramID,
			FullName:   fullName,
			Role:       role,
		}
	} else {
		user.FullName = fullName
		if telegramID == d.ownerID {
			user.Role = model.RoleOwner
		}
	}

	if err := d.users.SaveUser(ctx, user); err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// SetRole changes the target user's role. Only the owner may do this, and
// the owner's own role is immutable through this path.
func (d *Directory) SetRole(ctx context.Context, actor *model.User, targetID model.UserID, role model.Role) error {
	if actor.Role != model.RoleOwner {
		return errors.WithStack(port.ErrForbidden)
	}

	target, err := d.users.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return errors.WithStack(port.ErrInvalidTarget)
		}

		return errors.WithStack(err)
	}

	if target.TelegramID == d.ownerID {
		return errors.WithStack(port.ErrInvalidTarget)
	}

	target.Role = role

	if err := d.users.SaveUser(ctx, target); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (d *Directory) List(ctx context.Context) ([]*model.User, error) {
	users, err := d.users.QueryUsers(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}
