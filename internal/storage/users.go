package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser stores a new user. Usernames are case-insensitive and
// kept lowercase.
func (db *DB) CreateUser(username, passHash, role string) (int64, error) {
	username = normalizeUsername(username)
	if username == "" {
		return 0, errors.New("username is required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := db.conn.Exec(`INSERT INTO users(username, pass_hash, role, created_at) VALUES(?,?,?,?)`,
		username, passHash, role, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) GetUserByUsername(username string) (User, string, error) {
	row := db.conn.QueryRow(`SELECT id, username, role, created_at, pass_hash FROM users WHERE username=?`,
		normalizeUsername(username))
	var u User
	var ph string
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.Role, &created, &ph); err != nil {
		return User{}, "", err
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		u.CreatedAt = t
	}
	return u, ph, nil
}

// CreateSession drops the user's already-expired sessions first, so
// repeated logins do not grow the table.
func (db *DB) CreateSession(userID int64, token string, expires time.Time) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := db.conn.Exec(`DELETE FROM sessions WHERE user_id=? AND expires_at <= ?`, userID, now); err != nil {
		return err
	}
	return execOne(db.conn, `INSERT INTO sessions(token, user_id, expires_at, created_at) VALUES(?,?,?,?)`,
		token, userID, expires.UTC().Format(time.RFC3339Nano), now)
}

func (db *DB) GetSession(token string) (User, error) {
	row := db.conn.QueryRow(`
SELECT u.id, u.username, u.role, u.created_at
FROM sessions s JOIN users u ON s.user_id=u.id
WHERE s.token=? AND s.expires_at > ?`, token, time.Now().UTC().Format(time.RFC3339Nano))
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.Role, &created); err != nil {
		return User{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		u.CreatedAt = t
	}
	return u, nil
}

func (db *DB) DeleteSession(token string) error {
	return execOne(db.conn, `DELETE FROM sessions WHERE token=?`, token)
}

// DeleteExpiredSessions reaps every expired session across users and
// returns how many were removed. The serve command runs it
// periodically.
func (db *DB) DeleteExpiredSessions() (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM sessions WHERE expires_at <= ?`,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LogAudit appends one audit row. Empty metadata is stored as NULL
// rather than "{}" so unannotated actions stay cheap to filter.
func (db *DB) LogAudit(username, action, resource string, meta map[string]any) error {
	var metaJSON any
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		metaJSON = string(b)
	}
	_, err := db.conn.Exec(`INSERT INTO audit(ts, username, action, resource, meta_json) VALUES(?,?,?,?,?)`,
		time.Now().UTC().Format(time.RFC3339Nano), username, action, resource, metaJSON)
	return err
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func execOne(db *sql.DB, q string, args ...any) error {
	res, err := db.Exec(q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("no rows affected")
	}
	return nil
}
