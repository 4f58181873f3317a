package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"miniblog/internal/models"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id int) (*models.Article, error)
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id int) error
	ListByAuthor(ctx context.Context, authorID, limit, offset int) ([]*models.Article, error)
	CountByAuthor(ctx context.Context, authorID int) (int, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (title, category, author_id, cover, content)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, title, category, author_id, cover, content, created_at
	`

	var out models.Article
	err := r.db.QueryRow(ctx, q,
		a.Title,
		a.Category,
		a.AuthorID,
		a.Cover,
		a.Content,
	).Scan(
		&out.ID,
		&out.Title,
		&out.Category,
		&out.AuthorID,
		&out.Cover,
		&out.Content,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	const q = `
		SELECT id, title, category, author_id, cover, content, created_at
		FROM articles WHERE id=$1
	`
	var a models.Article
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.Title, &a.Category, &a.AuthorID, &a.Cover, &a.Content, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update перезаписывает статью целиком; created_at не трогаем — это время
// публикации, правка не меняет позицию статьи в списке.
func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	const q = `
		UPDATE articles
		SET title=$1,
		    category=$2,
		    cover=$3,
		    content=$4
		WHERE id=$5
	`
	_, err := r.db.Exec(ctx, q, a.Title, a.Category, a.Cover, a.Content, a.ID)
	return err
}

func (r *articleRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, "DELETE FROM articles WHERE id=$1", id)
	return err
}

func (r *articleRepo) ListByAuthor(ctx context.Context, authorID, limit, offset int) ([]*models.Article, error) {
	const q = `
		SELECT id, title, category, author_id, cover, content, created_at
		FROM articles
		WHERE author_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, q, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Category, &a.AuthorID, &a.Cover, &a.Content, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *articleRepo) CountByAuthor(ctx context.Context, authorID int) (int, error) {
	const q = `SELECT COUNT(*) FROM articles WHERE author_id = $1`
	var n int
	if err := r.db.QueryRow(ctx, q, authorID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
