package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tgienger/avo/internal/ident"
	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/store"
)

// Login signs a user in by email. A user is created on first login; on
// repeat logins the same account is reused but its role is recomputed from
// the email, so the role always reflects the current derivation rule. The
// signed-in user is persisted as the session record.
func (r *Repository) Login(ctx context.Context, email string) (models.User, error) {
	if err := r.wait(ctx, latencyLogin); err != nil {
		return models.User{}, err
	}

	users, err := readAll[models.User](r.store, store.Users)
	if err != nil {
		return models.User{}, err
	}

	role := models.RoleForEmail(email)

	idx := -1
	for i, u := range users {
		if u.Email == email {
			idx = i
			break
		}
	}

	var user models.User
	if idx == -1 {
		name := email
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
		user = models.User{
			ID:     ident.New(),
			Name:   name,
			Email:  email,
			Avatar: models.AvatarURL(name),
			Role:   role,
		}
		users = append(users, user)
	} else {
		users[idx].Role = role
		user = users[idx]
	}

	if err := writeAll(r.store, store.Users, users); err != nil {
		return models.User{}, err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return models.User{}, err
	}
	if err := r.store.Write(store.Session, data); err != nil {
		return models.User{}, err
	}

	r.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("login")
	return user, nil
}

// Logout clears the session record.
func (r *Repository) Logout(ctx context.Context) error {
	if err := r.wait(ctx, latencyLogout); err != nil {
		return err
	}
	r.log.Info("logout")
	return r.store.Delete(store.Session)
}

// CurrentUser reads the session record. Unlike every other operation it is
// synchronous: the caller uses it once at startup to restore a session.
// The second return is false when nobody is signed in.
func (r *Repository) CurrentUser() (models.User, bool, error) {
	data, ok, err := r.store.Read(store.Session)
	if err != nil {
		return models.User{}, false, err
	}
	if !ok || len(data) == 0 {
		return models.User{}, false, nil
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, false, fmt.Errorf("%w: %s: %v", ErrCorrupt, store.Session, err)
	}
	return user, true, nil
}
