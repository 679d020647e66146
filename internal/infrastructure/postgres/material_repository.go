package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmcastano/Kardex-api/internal/domain"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
	"github.com/jmcastano/Kardex-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL
// (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materias primas.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, code, name, search_key, unit, cost, category_id, created_at, updated_at`

// Create persiste una materia prima.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Code, material.Name, material.SearchKey,
		material.Unit, material.Cost, nullIfEmpty(material.CategoryID),
		material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetByCode obtiene una materia prima por código.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE code = $1`, code)
}

func (r *MaterialRepo) getOne(query, arg string) (*entity.Material, error) {
	var m entity.Material
	var categoryID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Code, &m.Name, &m.SearchKey, &m.Unit, &m.Cost,
		&categoryID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	if categoryID != nil {
		m.CategoryID = *categoryID
	}
	return &m, nil
}

// Update actualiza una materia prima (sin tocar el costo).
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, search_key = $3, unit = $4, category_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.SearchKey, material.Unit,
		nullIfEmpty(material.CategoryID), material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateCost fija el costo promedio (lo recalcula el motor de aprobación).
func (r *MaterialRepo) UpdateCost(id string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET cost = $2, updated_at = now() WHERE id = $1`, id, cost)
	if err != nil {
		return fmt.Errorf("update material cost: %w", err)
	}
	return nil
}

// Search busca por clave normalizada (prefijo o substring); query vacío lista todo.
func (r *MaterialRepo) Search(query string, limit, offset int) ([]*entity.Material, error) {
	sql := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE ($1 = '' OR search_key LIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%')
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), sql, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		var categoryID *string
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.SearchKey, &m.Unit, &m.Cost,
			&categoryID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		if categoryID != nil {
			m.CategoryID = *categoryID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina una materia prima por ID.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
