package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spyglass-osint/spyglass/internal/models"
)

// ChangeKind classifies the outcome of an upsert.
type ChangeKind int

const (
	// Inserted: the natural key didn't exist yet, a row was created.
	Inserted ChangeKind = iota
	// Updated: the row existed in scope and at least one detail changed.
	Updated
	// Unchanged: the row existed in scope and the fact was identical.
	Unchanged
	// Rejected: the row exists but is out of scope, nothing was written.
	// This is a successful outcome, not an error.
	Rejected
)

func (k ChangeKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is the outcome of an upsert. Update is set for Updated outcomes
// and carries the applied delta.
type Change struct {
	Kind   ChangeKind
	ID     int64
	Update models.Update
}

// Applied reports whether the write took effect (including as a no-op on an
// identical fact).
func (c *Change) Applied() bool {
	return c.Kind != Rejected
}

// execer is satisfied by *sql.DB and *sql.Tx so the upsert helpers can run
// inside or outside a transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// InsertGeneric is the single upsert entry point for the discovery
// pipeline. It routes a discovered fact to the per-kind upsert; callers
// never use the per-kind paths directly.
//
// The resolve-then-insert sequence runs in one transaction. The UNIQUE
// constraints on the natural keys are the backstop: a lost race against a
// concurrent writer surfaces as a constraint error, never as a duplicate.
func (d *Database) InsertGeneric(obj models.Insert) (*Change, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	change, err := d.insertGeneric(tx, obj)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return change, nil
}

func (d *Database) insertGeneric(tx *sql.Tx, obj models.Insert) (*Change, error) {
	switch v := obj.(type) {
	case *models.NewDomain:
		return insertEntity[models.Domain](d, tx, v)
	case *models.NewSubdomain:
		return insertEntity[models.Subdomain](d, tx, v)
	case *models.NewIpAddr:
		return insertEntity[models.IpAddr](d, tx, v)
	case *models.NewSubdomainIpAddr:
		return insertSubdomainIpAddr(tx, v)
	case *models.NewUrl:
		return insertEntity[models.Url](d, tx, v)
	case *models.NewEmail:
		return insertEntity[models.Email](d, tx, v)
	case *models.NewPhoneNumber:
		return insertEntity[models.PhoneNumber](d, tx, v)
	case *models.NewDevice:
		return insertEntity[models.Device](d, tx, v)
	case *models.NewNetwork:
		return insertEntity[models.Network](d, tx, v)
	case *models.NewNetworkDevice:
		return insertNetworkDevice(tx, v)
	case *models.NewAccount:
		return insertEntity[models.Account](d, tx, v)
	case *models.NewBreach:
		return insertEntity[models.Breach](d, tx, v)
	case *models.NewBreachEmail:
		return d.insertBreachEmail(tx, v)
	default:
		return nil, fmt.Errorf("unsupported insert type: %T", obj)
	}
}

// insertEntity is the generic upsert shared by every entity kind: resolve
// by natural key, insert if absent, reject if out of scope, otherwise apply
// the dirty delta.
func insertEntity[M interface {
	models.Model[M]
	models.ScopedRow
}](d *Database, q execer, obj models.Insertable[M]) (*Change, error) {
	existing, err := getOpt[M](q, obj.KeyValue())
	if err != nil {
		return nil, err
	}

	if existing != nil {
		row := *existing
		if !row.Scoped() {
			return &Change{Kind: Rejected, ID: row.RowID()}, nil
		}

		update := obj.Upsert(row)
		if update != nil && update.IsDirty() {
			if _, err := d.applyUpdate(q, update); err != nil {
				return nil, err
			}
			return &Change{Kind: Updated, ID: row.RowID(), Update: update}, nil
		}
		return &Change{Kind: Unchanged, ID: row.RowID()}, nil
	}

	cols, args := obj.InsertColumns()
	if err := rawInsert(q, obj.Table(), cols, args); err != nil {
		return nil, err
	}
	id, err := getID[M](q, obj.KeyValue())
	if err != nil {
		return nil, err
	}
	return &Change{Kind: Inserted, ID: id}, nil
}

// insertSubdomainIpAddr is existence-only: the join either exists or it
// doesn't, there is no dirty concept.
func insertSubdomainIpAddr(q execer, obj *models.NewSubdomainIpAddr) (*Change, error) {
	id, found, err := pairID(q, "subdomain_ipaddrs", "subdomain_id", "ip_addr_id",
		obj.SubdomainID, obj.IpAddrID)
	if err != nil {
		return nil, err
	}
	if found {
		return &Change{Kind: Unchanged, ID: id}, nil
	}

	err = rawInsert(q, "subdomain_ipaddrs",
		[]string{"subdomain_id", "ip_addr_id"},
		[]any{obj.SubdomainID, obj.IpAddrID})
	if err != nil {
		return nil, err
	}
	id, _, err = pairID(q, "subdomain_ipaddrs", "subdomain_id", "ip_addr_id",
		obj.SubdomainID, obj.IpAddrID)
	if err != nil {
		return nil, err
	}
	return &Change{Kind: Inserted, ID: id}, nil
}

// insertNetworkDevice is existence-only on the insert path. Observation
// details (ipaddr, last_seen) change through UpdateGeneric.
func insertNetworkDevice(q execer, obj *models.NewNetworkDevice) (*Change, error) {
	id, found, err := pairID(q, "network_devices", "network_id", "device_id",
		obj.NetworkID, obj.DeviceID)
	if err != nil {
		return nil, err
	}
	if found {
		return &Change{Kind: Unchanged, ID: id}, nil
	}

	err = rawInsert(q, "network_devices",
		[]string{"network_id", "device_id", "ipaddr", "last_seen"},
		[]any{obj.NetworkID, obj.DeviceID, obj.IpAddr, obj.LastSeen})
	if err != nil {
		return nil, err
	}
	id, _, err = pairID(q, "network_devices", "network_id", "device_id",
		obj.NetworkID, obj.DeviceID)
	if err != nil {
		return nil, err
	}
	return &Change{Kind: Inserted, ID: id}, nil
}

// insertBreachEmail keys on the (breach, email, password) triple: a second
// discovery of the exact triple is idempotent, while a distinct password
// for the same pair is a distinct fact and gets its own row.
func (d *Database) insertBreachEmail(q execer, obj *models.NewBreachEmail) (*Change, error) {
	existing, err := getBreachEmail(q, obj.BreachID, obj.EmailID, obj.Password)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		update := obj.Upsert(*existing)
		if update.IsDirty() {
			if _, err := d.applyUpdate(q, update); err != nil {
				return nil, err
			}
			return &Change{Kind: Updated, ID: existing.ID, Update: update}, nil
		}
		return &Change{Kind: Unchanged, ID: existing.ID}, nil
	}

	err = rawInsert(q, "breach_emails",
		[]string{"breach_id", "email_id", "password"},
		[]any{obj.BreachID, obj.EmailID, obj.Password})
	if err != nil {
		return nil, err
	}
	inserted, err := getBreachEmail(q, obj.BreachID, obj.EmailID, obj.Password)
	if err != nil {
		return nil, err
	}
	if inserted == nil {
		return nil, fmt.Errorf("breach email vanished after insert")
	}
	return &Change{Kind: Inserted, ID: inserted.ID}, nil
}

// UpdateGeneric applies an update delta from the closed union. Clean deltas
// are a no-op.
func (d *Database) UpdateGeneric(update models.Update) (int64, error) {
	switch update.(type) {
	case *models.SubdomainUpdate, *models.IpAddrUpdate, *models.UrlUpdate,
		*models.EmailUpdate, *models.PhoneNumberUpdate, *models.DeviceUpdate,
		*models.NetworkUpdate, *models.NetworkDeviceUpdate,
		*models.AccountUpdate, *models.BreachEmailUpdate:
		return d.applyUpdate(d.db, update)
	default:
		return 0, fmt.Errorf("unsupported update type: %T", update)
	}
}

// applyUpdate writes only the dirty columns, never a full-row replace.
func (d *Database) applyUpdate(q execer, u models.Update) (int64, error) {
	cols, args := u.Changes()
	if len(cols) == 0 {
		return u.RowID(), nil
	}

	set := make([]string, len(cols))
	for i, col := range cols {
		set[i] = col + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
		u.Table(), strings.Join(set, ", "))
	args = append(args, u.RowID())

	if _, err := q.Exec(query, args...); err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", u.Table(), err)
	}
	d.log.Debugw("Applied update", "table", u.Table(), "id", u.RowID(), "changes", models.Describe(u))
	return u.RowID(), nil
}

func rawInsert(q execer, table string, cols []string, args []any) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders)
	if _, err := q.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

// getOpt resolves a row by its natural key, nil if absent.
func getOpt[M models.Model[M]](q execer, value string) (*M, error) {
	var zero M
	query := fmt.Sprintf("SELECT %s FROM %s WHERE value = ?",
		strings.Join(zero.Columns(), ", "), zero.Table())
	m, err := zero.ScanRow(q.QueryRow(query, models.Normalize(value)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", zero.Table(), err)
	}
	return &m, nil
}

// getID resolves a row id by its natural key, failing if absent.
func getID[M interface {
	models.Model[M]
	models.Row
}](q execer, value string) (int64, error) {
	m, err := getOpt[M](q, value)
	if err != nil {
		return 0, err
	}
	if m == nil {
		var zero M
		return 0, fmt.Errorf("no %s row for value %q", zero.Table(), value)
	}
	row := *m
	return row.RowID(), nil
}

func pairID(q execer, table, colA, colB string, a, b int64) (int64, bool, error) {
	query := fmt.Sprintf("SELECT id FROM %s WHERE %s = ? AND %s = ?", table, colA, colB)
	var id int64
	err := q.QueryRow(query, a, b).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query %s: %w", table, err)
	}
	return id, true, nil
}

func getBreachEmail(q execer, breachID, emailID int64, password *string) (*models.BreachEmail, error) {
	var zero models.BreachEmail
	// IS matches NULL against NULL, unlike =.
	query := fmt.Sprintf("SELECT %s FROM breach_emails WHERE breach_id = ? AND email_id = ? AND password IS ?",
		strings.Join(zero.Columns(), ", "))
	m, err := zero.ScanRow(q.QueryRow(query, breachID, emailID, password))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query breach_emails: %w", err)
	}
	return &m, nil
}
