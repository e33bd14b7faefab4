package vehicles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo stores the roster in Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectVehicles = `
SELECT id, name, year, make, model, vin, license_plate, license_plate_state
FROM vehicles`

func (r *PGRepo) List(ctx context.Context) ([]Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, selectVehicles+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PGRepo) Get(ctx context.Context, id string) (Vehicle, error) {
	row := r.DB.QueryRowContext(ctx, selectVehicles+` WHERE id = $1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vehicle{}, ErrNotFound
		}
		return Vehicle{}, err
	}
	return v, nil
}

const insertVehicle = `
INSERT INTO vehicles (id, name, year, make, model, vin, license_plate, license_plate_state)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *PGRepo) Create(ctx context.Context, vehicles []Vehicle) error {
	return r.insert(ctx, insertVehicle, vehicles)
}

// Seed inserts vehicles, skipping ids that already exist.
func (r *PGRepo) Seed(ctx context.Context, vehicles []Vehicle) error {
	return r.insert(ctx, insertVehicle+` ON CONFLICT (id) DO NOTHING`, vehicles)
}

func (r *PGRepo) insert(ctx context.Context, query string, vehicles []Vehicle) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, v := range vehicles {
		if _, err := tx.ExecContext(ctx, query,
			v.ID, v.Name, v.Year, v.Make, v.Model, v.VIN, v.LicensePlate, v.LicensePlateState,
		); err != nil {
			return fmt.Errorf("insert vehicle %s: %w", v.ID, err)
		}
	}
	return tx.Commit()
}

func (r *PGRepo) Update(ctx context.Context, v Vehicle) error {
	const query = `
UPDATE vehicles
SET name = $2, year = $3, make = $4, model = $5, vin = $6,
    license_plate = $7, license_plate_state = $8, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		v.ID, v.Name, v.Year, v.Make, v.Model, v.VIN, v.LicensePlate, v.LicensePlateState,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return requireAffected(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(s rowScanner) (Vehicle, error) {
	var v Vehicle
	err := s.Scan(&v.ID, &v.Name, &v.Year, &v.Make, &v.Model, &v.VIN, &v.LicensePlate, &v.LicensePlateState)
	return v, err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
