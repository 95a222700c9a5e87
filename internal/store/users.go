package store

import (
	"context"
	"fmt"

	"github.com/adanyl0v/taskflow/internal/models"
)

const selectUserQuery = `
SELECT id,
       first_name,
       last_name,
       email,
       password,
       created_at,
       updated_at
FROM users
`

func (q *Queries) CreateUser(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   first_name,
                   last_name,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	_, err := q.exec(ctx, insertUserQuery,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		utc(user.CreatedAt),
		utc(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", translate(err))
	}
	return q.SetUserRoles(ctx, user.ID, user.Roles)
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return q.getUser(ctx, selectUserQuery+`WHERE id = ?`, id)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return q.getUser(ctx, selectUserQuery+`WHERE email = ?`, email)
}

func (q *Queries) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := new(models.User)
	err := q.get(ctx, user, query, arg)
	if err != nil {
		return nil, translate(err)
	}

	var roles []string
	err = q.selectAll(ctx, &roles, `SELECT role FROM user_roles WHERE user_id = ?`, user.ID)
	if err != nil {
		return nil, fmt.Errorf("selecting user roles: %w", err)
	}
	user.Roles = parseRoles(roles)
	return user, nil
}

func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := q.selectAll(ctx, &users, selectUserQuery+`ORDER BY first_name, last_name, email`)
	if err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}

	var rows []struct {
		UserID string `db:"user_id"`
		Role   string `db:"role"`
	}
	err = q.selectAll(ctx, &rows, `SELECT user_id, role FROM user_roles`)
	if err != nil {
		return nil, fmt.Errorf("selecting user roles: %w", err)
	}

	roles := make(map[string]models.RoleSet, len(users))
	for _, r := range rows {
		role, err := models.ParseRole(r.Role)
		if err != nil {
			continue
		}
		roles[r.UserID] = roles[r.UserID].With(role)
	}
	for i := range users {
		users[i].Roles = roles[users[i].ID]
	}
	return users, nil
}

func (q *Queries) GetUserRefs(ctx context.Context, ids []string) ([]models.UserRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var refs []models.UserRef
	err := q.selectIn(ctx, &refs, `
SELECT id, first_name, last_name, email
FROM users
WHERE id IN (?)
ORDER BY first_name, last_name
`, ids)
	if err != nil {
		return nil, fmt.Errorf("selecting users by ids: %w", err)
	}
	return refs, nil
}

func (q *Queries) SetUserRoles(ctx context.Context, userID string, roles models.RoleSet) error {
	_, err := q.exec(ctx, `DELETE FROM user_roles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting user roles: %w", err)
	}

	for _, role := range roles.Roles() {
		_, err = q.exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES (?, ?)`, userID, role.String())
		if err != nil {
			return fmt.Errorf("inserting user role: %w", translate(err))
		}
	}
	return nil
}

// parseRoles skips names that are no longer known roles.
func parseRoles(names []string) models.RoleSet {
	var set models.RoleSet
	for _, name := range names {
		role, err := models.ParseRole(name)
		if err != nil {
			continue
		}
		set = set.With(role)
	}
	return set
}
