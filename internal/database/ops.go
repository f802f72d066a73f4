package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spyglass-osint/spyglass/internal/filter"
	"github.com/spyglass-osint/spyglass/internal/models"
)

// ErrUnsupportedFamilyOp is returned for single-value operations against
// relationship families, which have no single natural-key value. Distinct
// from "not found".
var ErrUnsupportedFamilyOp = errors.New("unsupported operation")

// List returns every row of a kind.
func List[M models.Model[M]](d *Database) ([]M, error) {
	var zero M
	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(zero.Columns(), ", "), zero.Table())
	return queryRows[M](d, query)
}

// Filter returns the rows matching a compiled predicate.
func Filter[M models.Model[M]](d *Database, f *filter.Filter) ([]M, error) {
	var zero M
	d.log.Debugw("Filtering rows", "table", zero.Table(), "filter", f.Query())
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(zero.Columns(), ", "), zero.Table(), f.Query())
	return queryRows[M](d, query)
}

// FilterWithParam narrows a filter by the kind's parent column. A nil param
// degrades to a plain Filter.
func FilterWithParam[M interface {
	models.Model[M]
	models.ChildRow
}](d *Database, f *filter.Filter, param *string) ([]M, error) {
	if param == nil {
		return Filter[M](d, f)
	}
	var zero M
	query := fmt.Sprintf("SELECT %s FROM %s WHERE (%s) AND %s = ?",
		strings.Join(zero.Columns(), ", "), zero.Table(), f.Query(), zero.ParentColumn())
	return queryRows[M](d, query, *param)
}

// Scope marks every row matching the filter as in-scope and returns the
// number of rows changed.
func Scope[M interface {
	models.Model[M]
	models.ScopedRow
}](d *Database, f *filter.Filter) (int64, error) {
	return setScoped[M](d, f, false)
}

// Noscope marks every row matching the filter as out-of-scope and returns
// the number of rows changed. The upsert path keeps the exclusion sticky
// against re-discovery.
func Noscope[M interface {
	models.Model[M]
	models.ScopedRow
}](d *Database, f *filter.Filter) (int64, error) {
	return setScoped[M](d, f, true)
}

func setScoped[M interface {
	models.Model[M]
	models.ScopedRow
}](d *Database, f *filter.Filter, unscoped bool) (int64, error) {
	var zero M
	query := fmt.Sprintf("UPDATE %s SET unscoped = ? WHERE %s", zero.Table(), f.Query())
	res, err := d.db.Exec(query, unscoped)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", zero.Table(), err)
	}
	return res.RowsAffected()
}

// Delete removes every row matching the filter and returns the count.
func Delete[M models.Model[M]](d *Database, f *filter.Filter) (int64, error) {
	var zero M
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", zero.Table(), f.Query())
	res, err := d.db.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", zero.Table(), err)
	}
	return res.RowsAffected()
}

// GetOptByFamily resolves the id of a scoped row by family and natural-key
// value, nil if absent or out of scope. Relationship families reject the
// lookup: they have no single value.
func (d *Database) GetOptByFamily(family models.Family, value string) (*int64, error) {
	switch family {
	case models.FamilyDomain:
		return getScopedID[models.Domain](d, value)
	case models.FamilySubdomain:
		return getScopedID[models.Subdomain](d, value)
	case models.FamilyIpAddr:
		return getScopedID[models.IpAddr](d, value)
	case models.FamilyUrl:
		return getScopedID[models.Url](d, value)
	case models.FamilyEmail:
		return getScopedID[models.Email](d, value)
	case models.FamilyPhoneNumber:
		return getScopedID[models.PhoneNumber](d, value)
	case models.FamilyDevice:
		return getScopedID[models.Device](d, value)
	case models.FamilyNetwork:
		return getScopedID[models.Network](d, value)
	case models.FamilyAccount:
		return getScopedID[models.Account](d, value)
	case models.FamilyBreach:
		return getScopedID[models.Breach](d, value)
	case models.FamilySubdomainIpAddr, models.FamilyNetworkDevice, models.FamilyBreachEmail:
		return nil, fmt.Errorf("%w for family %q", ErrUnsupportedFamilyOp, family)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownFamily, string(family))
	}
}

func getScopedID[M interface {
	models.Model[M]
	models.ScopedRow
}](d *Database, value string) (*int64, error) {
	m, err := getOpt[M](d.db, value)
	if err != nil || m == nil {
		return nil, err
	}
	row := *m
	if !row.Scoped() {
		return nil, nil
	}
	id := row.RowID()
	return &id, nil
}

func queryRows[M models.Model[M]](d *Database, query string, args ...any) ([]M, error) {
	var zero M
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", zero.Table(), err)
	}
	defer rows.Close()

	var out []M
	for rows.Next() {
		m, err := zero.ScanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", zero.Table(), err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
