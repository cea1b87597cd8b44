package store

import "database/sql"

// GetInput retrieves a form field value by key.
// Returns empty string if key doesn't exist.
func (db *DB) GetInput(key string) (string, error) {
	var value string
	err := db.QueryRow(`
		SELECT value FROM inputs WHERE key = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetInput sets a form field value. An empty value removes the field.
func (db *DB) SetInput(key, value string) error {
	if value == "" {
		_, err := db.Exec(`DELETE FROM inputs WHERE key = ?`, key)
		return err
	}

	_, err := db.Exec(`
		INSERT INTO inputs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// GetInputs returns every stored form field
func (db *DB) GetInputs() (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM inputs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		fields[key] = value
	}

	return fields, rows.Err()
}

// ClearInputs removes every stored form field
func (db *DB) ClearInputs() error {
	_, err := db.Exec(`DELETE FROM inputs`)
	return err
}
