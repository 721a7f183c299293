package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notely/internal/model"
)

// Regular-user access is enforced here by scoping every query to the owner.
// A note belonging to someone else yields no row, which surfaces as
// model.ErrNoteNotFound without a separate permission check that could leak
// the note's existence.
type NoteRepository struct {
	pool *pgxpool.Pool
}

func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

var noteSortColumns = map[string]string{
	model.NoteSortTitle:     "title",
	model.NoteSortCreatedAt: "created_at",
}

// orderClause builds the ORDER BY from whitelisted column names only; raw
// filter input never reaches the SQL text.
func orderClause(f model.NoteFilter) string {
	column, ok := noteSortColumns[f.Sort]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if f.Order == model.OrderAsc {
		direction = "ASC"
	}

	return column + " " + direction
}

// escapeLike makes LIKE metacharacters in a search term match literally.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

func (r *NoteRepository) ListOwned(ctx context.Context, ownerID string, f model.NoteFilter) ([]model.Note, error) {
	query := `SELECT id, user_id, title, content, created_at, updated_at
	          FROM notes WHERE user_id = $1`
	args := []any{ownerID}

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}

	query += " ORDER BY " + orderClause(f)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) ListAll(ctx context.Context, f model.NoteFilter) ([]model.NoteWithOwner, error) {
	query := `SELECT n.id, n.user_id, n.title, n.content, n.created_at, n.updated_at, u.email
	          FROM notes n JOIN users u ON u.id = n.user_id WHERE TRUE`
	args := []any{}

	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		query += fmt.Sprintf(" AND n.user_id = $%d", len(args))
	}

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		query += fmt.Sprintf(" AND n.title ILIKE $%d", len(args))
	}

	query += " ORDER BY n." + orderClause(f)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.NoteWithOwner, 0)
	for rows.Next() {
		var n model.NoteWithOwner
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt, &n.OwnerEmail); err != nil {
			return nil, fmt.Errorf("scan note with owner: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Create(ctx context.Context, n model.Note) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.OwnerID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) FindOwned(ctx context.Context, id string, ownerID string) (model.Note, error) {
	var n model.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes WHERE id = $1 AND user_id = $2`, id, ownerID).
		Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Note{}, model.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("find note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Find(ctx context.Context, id string) (model.NoteWithOwner, error) {
	var n model.NoteWithOwner
	err := r.pool.QueryRow(ctx,
		`SELECT n.id, n.user_id, n.title, n.content, n.created_at, n.updated_at, u.email
		 FROM notes n JOIN users u ON u.id = n.user_id WHERE n.id = $1`, id).
		Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt, &n.OwnerEmail)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.NoteWithOwner{}, model.ErrNoteNotFound
	}
	if err != nil {
		return model.NoteWithOwner{}, fmt.Errorf("find note with owner: %w", err)
	}
	return n, nil
}

// UpdateOwned patches title and/or content in a single owner-scoped statement.
// Nil fields are left untouched via COALESCE.
func (r *NoteRepository) UpdateOwned(ctx context.Context, id string, ownerID string, title *string, content *string, updatedAt time.Time) (model.Note, error) {
	var n model.Note
	err := r.pool.QueryRow(ctx,
		`UPDATE notes
		 SET title = COALESCE($3, title), content = COALESCE($4, content), updated_at = $5
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, content, created_at, updated_at`,
		id, ownerID, title, content, updatedAt).
		Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Note{}, model.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Update(ctx context.Context, id string, title *string, content *string, updatedAt time.Time) (model.Note, error) {
	var n model.Note
	err := r.pool.QueryRow(ctx,
		`UPDATE notes
		 SET title = COALESCE($2, title), content = COALESCE($3, content), updated_at = $4
		 WHERE id = $1
		 RETURNING id, user_id, title, content, created_at, updated_at`,
		id, title, content, updatedAt).
		Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Note{}, model.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("update note unscoped: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) DeleteOwned(ctx context.Context, id string, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note unscoped: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoteNotFound
	}
	return nil
}
