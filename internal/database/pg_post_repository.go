package database

import (
	"context"
	"errors"
	"fmt"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"
	pkgdb "novel-board/pkg/database"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	createPostQuery = `
        INSERT INTO posts (title, content, author, password, "timestamp")
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	listPostsQuery      = `SELECT id, title, author, "timestamp" FROM posts ORDER BY "timestamp" DESC, id DESC`
	getPostByIDQuery    = `SELECT id, title, content, author, password, "timestamp" FROM posts WHERE id = $1`
	getPostPasswordLock = `SELECT password FROM posts WHERE id = $1 FOR UPDATE`
	deletePostQuery     = `DELETE FROM posts WHERE id = $1`
)

// PgDB - пул, в котором можно выполнять запросы и открывать транзакции.
type PgDB interface {
	interfaces.DBTX
	pkgdb.TxBeginner
}

type pgPostRepository struct {
	db     PgDB
	logger *zap.Logger
}

var _ interfaces.PostRepository = (*pgPostRepository)(nil)

// NewPgPostRepository создает репозиторий постов поверх PostgreSQL.
func NewPgPostRepository(db PgDB, logger *zap.Logger) *pgPostRepository {
	return &pgPostRepository{
		db:     db,
		logger: logger.Named("PgPostRepo"),
	}
}

func (r *pgPostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, createPostQuery, post.Title, post.Content, post.Author, post.Password, post.Timestamp).Scan(&id)
	if err != nil {
		r.logger.Error("Error creating post", zap.Error(err), zap.String("pg_code", pgCode(err)))
		return 0, fmt.Errorf("%w: create post: %w", models.ErrStoreFailure, err)
	}
	r.logger.Info("Post created", zap.Int64("post_id", id))
	return id, nil
}

func (r *pgPostRepository) List(ctx context.Context) ([]models.PostSummary, error) {
	posts := make([]models.PostSummary, 0)
	if err := pgxscan.Select(ctx, r.db, &posts, listPostsQuery); err != nil {
		r.logger.Error("Error listing posts", zap.Error(err))
		return nil, fmt.Errorf("%w: list posts: %w", models.ErrStoreFailure, err)
	}
	return posts, nil
}

func (r *pgPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	log := r.logger.With(zap.Int64("post_id", id))

	var post models.Post
	if err := pgxscan.Get(ctx, r.db, &post, getPostByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("Post not found")
			return nil, models.ErrNotFound
		}
		log.Error("Error getting post by id", zap.Error(err))
		return nil, fmt.Errorf("%w: get post %d: %w", models.ErrStoreFailure, id, err)
	}
	return &post, nil
}

func (r *pgPostRepository) DeleteWithPassword(ctx context.Context, id int64, password string) error {
	log := r.logger.With(zap.Int64("post_id", id))

	err := pkgdb.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var stored string
		if err := tx.QueryRow(ctx, getPostPasswordLock, id).Scan(&stored); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrNotFound
			}
			return fmt.Errorf("%w: load post %d: %w", models.ErrStoreFailure, id, err)
		}
		if !passwordMatches(stored, password) {
			return models.ErrForbidden
		}
		if _, err := tx.Exec(ctx, deletePostQuery, id); err != nil {
			return fmt.Errorf("%w: delete post %d: %w", models.ErrStoreFailure, id, err)
		}
		return nil
	})

	switch {
	case err == nil:
		log.Info("Post deleted")
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrForbidden):
		log.Debug("Post not deleted", zap.Error(err))
	default:
		log.Error("Error deleting post", zap.Error(err))
		if !errors.Is(err, models.ErrStoreFailure) {
			err = fmt.Errorf("%w: %w", models.ErrStoreFailure, err)
		}
	}
	return err
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
