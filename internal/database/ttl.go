package database

import (
	"fmt"
	"time"

	"github.com/spyglass-osint/spyglass/internal/models"
)

// Ttl schedules the expiry of one row. Expire is a unix timestamp.
type Ttl struct {
	ID     int64
	Family models.Family
	Key    int64
	Expire int64
}

// BumpTTL schedules a row for expiry, or pushes an existing expiry further
// out. Expiries only ever extend: a shorter ttl never shortens one already
// on record.
func (d *Database) BumpTTL(family models.Family, id int64, seconds int64, now time.Time) error {
	expire := now.Unix() + seconds
	_, err := d.db.Exec(`
		INSERT INTO ttls (family, key, expire) VALUES (?, ?, ?)
		ON CONFLICT(family, key) DO UPDATE SET expire = MAX(expire, excluded.expire)
	`, family.String(), id, expire)
	if err != nil {
		return fmt.Errorf("failed to bump ttl: %w", err)
	}
	return nil
}

// ReapExpired deletes every row whose expiry has passed, then its ttl
// record, and returns the number of entity rows removed. Child rows go with
// their parents through the cascading foreign keys.
func (d *Database) ReapExpired(now time.Time) (int64, error) {
	expired, err := d.expiredTtls(now)
	if err != nil {
		return 0, err
	}

	var reaped int64
	for _, t := range expired {
		table := t.Family.Table()
		if table == "" {
			return reaped, fmt.Errorf("%w: %q", models.ErrUnknownFamily, string(t.Family))
		}

		res, err := d.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), t.Key)
		if err != nil {
			return reaped, fmt.Errorf("failed to delete from %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return reaped, err
		}
		reaped += n

		if _, err := d.db.Exec("DELETE FROM ttls WHERE id = ?", t.ID); err != nil {
			return reaped, fmt.Errorf("failed to delete ttl: %w", err)
		}
		d.log.Debugw("Reaped expired row", "family", t.Family.String(), "id", t.Key)
	}
	return reaped, nil
}

func (d *Database) expiredTtls(now time.Time) ([]Ttl, error) {
	rows, err := d.db.Query("SELECT id, family, key, expire FROM ttls WHERE expire <= ?", now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query ttls: %w", err)
	}
	defer rows.Close()

	var out []Ttl
	for rows.Next() {
		var t Ttl
		var family string
		if err := rows.Scan(&t.ID, &family, &t.Key, &t.Expire); err != nil {
			return nil, fmt.Errorf("failed to scan ttl row: %w", err)
		}
		t.Family = models.Family(family)
		out = append(out, t)
	}
	return out, rows.Err()
}
