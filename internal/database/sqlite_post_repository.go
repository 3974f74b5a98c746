package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"novel-board/internal/interfaces"
	"novel-board/internal/models"
	"novel-board/pkg/migration"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	sqliteCreatePostQuery  = `INSERT INTO posts (title, content, author, password, timestamp) VALUES (?, ?, ?, ?, ?)`
	sqliteListPostsQuery   = `SELECT id, title, author, timestamp FROM posts ORDER BY timestamp DESC, id DESC`
	sqliteGetPostByIDQuery = `SELECT id, title, content, author, password, timestamp FROM posts WHERE id = ?`
	sqliteGetPasswordQuery = `SELECT password FROM posts WHERE id = ?`
	sqliteDeletePostQuery  = `DELETE FROM posts WHERE id = ?`
	sqliteDSNPragmas       = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
)

// SQLitePostRepository хранит посты в локальном файле SQLite.
type SQLitePostRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ interfaces.PostRepository = (*SQLitePostRepository)(nil)

// OpenSQLitePostRepository открывает (или создает) файл базы и применяет миграции.
func OpenSQLitePostRepository(path string, logger *zap.Logger) (*SQLitePostRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	log := logger.Named("SQLitePostRepo")

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	dsn := cleanPath + sqliteDSNPragmas

	migrator := migration.NewSQLiteMigrator(migration.Config{
		MigrationsFS:   MigrationsFS,
		MigrationsPath: SQLiteMigrationsPath,
	}, dsn, logger)
	if err := migrator.Up(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Один писатель: SQLite сериализует запись на уровне файла
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	log.Info("SQLite board store opened", zap.String("path", cleanPath))
	return &SQLitePostRepository{db: db, logger: log}, nil
}

// Close closes the SQLite handle.
func (r *SQLitePostRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLitePostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	res, err := r.db.ExecContext(ctx, sqliteCreatePostQuery, post.Title, post.Content, post.Author, post.Password, post.Timestamp)
	if err != nil {
		r.logger.Error("Error creating post", zap.Error(err))
		return 0, fmt.Errorf("%w: create post: %w", models.ErrStoreFailure, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: read post id: %w", models.ErrStoreFailure, err)
	}
	r.logger.Info("Post created", zap.Int64("post_id", id))
	return id, nil
}

func (r *SQLitePostRepository) List(ctx context.Context) ([]models.PostSummary, error) {
	rows, err := r.db.QueryContext(ctx, sqliteListPostsQuery)
	if err != nil {
		r.logger.Error("Error listing posts", zap.Error(err))
		return nil, fmt.Errorf("%w: list posts: %w", models.ErrStoreFailure, err)
	}
	defer rows.Close()

	posts := make([]models.PostSummary, 0)
	for rows.Next() {
		var p models.PostSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Author, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan post: %w", models.ErrStoreFailure, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate posts: %w", models.ErrStoreFailure, err)
	}
	return posts, nil
}

func (r *SQLitePostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, sqliteGetPostByIDQuery, id).
		Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Password, &p.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Error getting post by id", zap.Int64("post_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: get post %d: %w", models.ErrStoreFailure, id, err)
	}
	return &p, nil
}

func (r *SQLitePostRepository) DeleteWithPassword(ctx context.Context, id int64, password string) error {
	log := r.logger.With(zap.Int64("post_id", id))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", models.ErrStoreFailure, err)
	}
	defer func() { _ = tx.Rollback() }()

	var stored string
	if err := tx.QueryRowContext(ctx, sqliteGetPasswordQuery, id).Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		log.Error("Error loading post for delete", zap.Error(err))
		return fmt.Errorf("%w: load post %d: %w", models.ErrStoreFailure, id, err)
	}
	if !passwordMatches(stored, password) {
		log.Debug("Delete rejected: wrong password")
		return models.ErrForbidden
	}
	if _, err := tx.ExecContext(ctx, sqliteDeletePostQuery, id); err != nil {
		log.Error("Error deleting post", zap.Error(err))
		return fmt.Errorf("%w: delete post %d: %w", models.ErrStoreFailure, id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", models.ErrStoreFailure, err)
	}
	log.Info("Post deleted")
	return nil
}
