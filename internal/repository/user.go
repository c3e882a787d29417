package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bookorg/bookstore-service/internal/errs"
	"github.com/bookorg/bookstore-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	CreateRole(ctx context.Context, userID uuid.UUID, role string) error
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) *userRepository {
	return &userRepository{
		db:  db,
		log: log.Named("user-repo"),
	}
}

func (r *userRepository) Create(ctx context.Context, user model.User) error {
	query, args, err := qb.Insert(usersTableName).
		Columns("id", "username", "password").
		Values(user.ID, user.Username, user.Password).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.ErrUserConflict
		}
		r.log.Error("Create", zap.String("q", query))
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *userRepository) CreateRole(ctx context.Context, userID uuid.UUID, role string) error {
	query, args, err := qb.Insert(userRolesTableName).
		Columns("user_id", "role").
		Values(userID, role).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert user role")
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query, args, err := qb.Select("id", "username", "password").
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query, args, err := qb.Select("role").
		From(userRolesTableName).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0)
	if err := r.db.SelectContext(ctx, &roles, query, args...); err != nil {
		return nil, err
	}
	return roles, nil
}
