package store

import (
	"context"

	"dental-clinic-api/internal/model"
)

func (s *Store) ListDentists(ctx context.Context) ([]model.Dentist, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM dentists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Dentist
	for rows.Next() {
		var d model.Dentist
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
