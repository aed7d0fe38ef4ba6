package repositories

import (
	"context"
	"fmt"

	"safari-backend/internal/domain/models"
)

type StaffRepository struct {
	DB Queryer
}

func (r StaffRepository) GetStaffUser(ctx context.Context, username string) (models.StaffUser, error) {
	var u models.StaffUser
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, name, password_hash, role, status
		FROM staff_users
		WHERE username = ?
		LIMIT 1
	`, username).Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Role, &u.Status)
	if err != nil {
		return u, notFound(err)
	}
	return u, nil
}

func (r StaffRepository) UpsertStaffUser(ctx context.Context, u *models.StaffUser) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO staff_users (username, name, password_hash, role, status)
		VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id), name=VALUES(name), password_hash=VALUES(password_hash), role=VALUES(role), status=VALUES(status)
	`, u.Username, u.Name, u.PasswordHash, u.Role, u.Status)
	if err != nil {
		return fmt.Errorf("upsert staff user %s: %w", u.Username, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		u.ID = id
	}
	return nil
}
