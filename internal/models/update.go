package models

import (
	"fmt"
	"strings"
)

// Update is the closed union of per-kind update deltas. A delta carries only
// the surrogate id and the detail columns that actually changed; untouched
// columns stay nil and are left out of the UPDATE statement. Sealed: only
// types in this package implement it.
type Update interface {
	update()
	Table() string
	RowID() int64
	// Changes returns the dirty columns and their new values, in matching
	// order. Empty means the delta is clean.
	Changes() ([]string, []any)
	IsDirty() bool
}

// Describe renders a delta for interactive output, e.g.
// "resolvable => true, reverse_dns => example.com".
func Describe(u Update) string {
	cols, args := u.Changes()
	parts := make([]string, len(cols))
	for i := range cols {
		parts[i] = fmt.Sprintf("%s => %v", cols[i], deref(args[i]))
	}
	return strings.Join(parts, ", ")
}

func deref(v any) any {
	switch p := v.(type) {
	case *string:
		if p != nil {
			return *p
		}
	case *bool:
		if p != nil {
			return *p
		}
	case *int64:
		if p != nil {
			return *p
		}
	case *float64:
		if p != nil {
			return *p
		}
	default:
		return v
	}
	return nil
}

type changeset struct {
	cols []string
	args []any
}

func addCol[T any](c *changeset, col string, v *T) {
	if v != nil {
		c.cols = append(c.cols, col)
		c.args = append(c.args, *v)
	}
}

// SubdomainUpdate is the delta for a subdomain row.
type SubdomainUpdate struct {
	ID         int64
	Resolvable *bool
}

func (*SubdomainUpdate) update()         {}
func (*SubdomainUpdate) Table() string   { return Subdomain{}.Table() }
func (u *SubdomainUpdate) RowID() int64  { return u.ID }
func (u *SubdomainUpdate) IsDirty() bool { return dirty(u) }
func (u *SubdomainUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "resolvable", u.Resolvable)
	return c.cols, c.args
}

// IpAddrUpdate is the delta for an ip address row.
type IpAddrUpdate struct {
	ID          int64
	Continent   *string
	Country     *string
	City        *string
	Asn         *int64
	AsOrg       *string
	Description *string
	ReverseDns  *string
}

func (*IpAddrUpdate) update()         {}
func (*IpAddrUpdate) Table() string   { return IpAddr{}.Table() }
func (u *IpAddrUpdate) RowID() int64  { return u.ID }
func (u *IpAddrUpdate) IsDirty() bool { return dirty(u) }
func (u *IpAddrUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "continent", u.Continent)
	addCol(&c, "country", u.Country)
	addCol(&c, "city", u.City)
	addCol(&c, "asn", u.Asn)
	addCol(&c, "as_org", u.AsOrg)
	addCol(&c, "description", u.Description)
	addCol(&c, "reverse_dns", u.ReverseDns)
	return c.cols, c.args
}

// UrlUpdate is the delta for a url row.
type UrlUpdate struct {
	ID       int64
	Status   *int64
	Online   *bool
	Title    *string
	Redirect *string
}

func (*UrlUpdate) update()         {}
func (*UrlUpdate) Table() string   { return Url{}.Table() }
func (u *UrlUpdate) RowID() int64  { return u.ID }
func (u *UrlUpdate) IsDirty() bool { return dirty(u) }
func (u *UrlUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "status", u.Status)
	addCol(&c, "online", u.Online)
	addCol(&c, "title", u.Title)
	addCol(&c, "redirect", u.Redirect)
	return c.cols, c.args
}

// EmailUpdate is the delta for an email row.
type EmailUpdate struct {
	ID          int64
	DisplayName *string
	Valid       *bool
}

func (*EmailUpdate) update()         {}
func (*EmailUpdate) Table() string   { return Email{}.Table() }
func (u *EmailUpdate) RowID() int64  { return u.ID }
func (u *EmailUpdate) IsDirty() bool { return dirty(u) }
func (u *EmailUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "displayname", u.DisplayName)
	addCol(&c, "valid", u.Valid)
	return c.cols, c.args
}

// PhoneNumberUpdate is the delta for a phone number row.
type PhoneNumberUpdate struct {
	ID      int64
	Name    *string
	Valid   *bool
	Country *string
	Carrier *string
	Line    *string
}

func (*PhoneNumberUpdate) update()         {}
func (*PhoneNumberUpdate) Table() string   { return PhoneNumber{}.Table() }
func (u *PhoneNumberUpdate) RowID() int64  { return u.ID }
func (u *PhoneNumberUpdate) IsDirty() bool { return dirty(u) }
func (u *PhoneNumberUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "name", u.Name)
	addCol(&c, "valid", u.Valid)
	addCol(&c, "country", u.Country)
	addCol(&c, "carrier", u.Carrier)
	addCol(&c, "line", u.Line)
	return c.cols, c.args
}

// DeviceUpdate is the delta for a device row.
type DeviceUpdate struct {
	ID       int64
	Name     *string
	Hostname *string
	Vendor   *string
	LastSeen *int64
}

func (*DeviceUpdate) update()         {}
func (*DeviceUpdate) Table() string   { return Device{}.Table() }
func (u *DeviceUpdate) RowID() int64  { return u.ID }
func (u *DeviceUpdate) IsDirty() bool { return dirty(u) }
func (u *DeviceUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "name", u.Name)
	addCol(&c, "hostname", u.Hostname)
	addCol(&c, "vendor", u.Vendor)
	addCol(&c, "last_seen", u.LastSeen)
	return c.cols, c.args
}

// NetworkUpdate is the delta for a network row.
type NetworkUpdate struct {
	ID          int64
	Latitude    *float64
	Longitude   *float64
	Description *string
}

func (*NetworkUpdate) update()         {}
func (*NetworkUpdate) Table() string   { return Network{}.Table() }
func (u *NetworkUpdate) RowID() int64  { return u.ID }
func (u *NetworkUpdate) IsDirty() bool { return dirty(u) }
func (u *NetworkUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "latitude", u.Latitude)
	addCol(&c, "longitude", u.Longitude)
	addCol(&c, "description", u.Description)
	return c.cols, c.args
}

// NetworkDeviceUpdate is the delta for a network-device observation.
type NetworkDeviceUpdate struct {
	ID       int64
	IpAddr   *string
	LastSeen *int64
}

func (*NetworkDeviceUpdate) update()         {}
func (*NetworkDeviceUpdate) Table() string   { return NetworkDevice{}.Table() }
func (u *NetworkDeviceUpdate) RowID() int64  { return u.ID }
func (u *NetworkDeviceUpdate) IsDirty() bool { return dirty(u) }
func (u *NetworkDeviceUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "ipaddr", u.IpAddr)
	addCol(&c, "last_seen", u.LastSeen)
	return c.cols, c.args
}

// AccountUpdate is the delta for an account row.
type AccountUpdate struct {
	ID          int64
	DisplayName *string
	Email       *string
	Url         *string
	LastSeen    *int64
}

func (*AccountUpdate) update()         {}
func (*AccountUpdate) Table() string   { return Account{}.Table() }
func (u *AccountUpdate) RowID() int64  { return u.ID }
func (u *AccountUpdate) IsDirty() bool { return dirty(u) }
func (u *AccountUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "displayname", u.DisplayName)
	addCol(&c, "email", u.Email)
	addCol(&c, "url", u.Url)
	addCol(&c, "last_seen", u.LastSeen)
	return c.cols, c.args
}

// BreachEmailUpdate is the delta for a breach-email row.
type BreachEmailUpdate struct {
	ID       int64
	Password *string
}

func (*BreachEmailUpdate) update()         {}
func (*BreachEmailUpdate) Table() string   { return BreachEmail{}.Table() }
func (u *BreachEmailUpdate) RowID() int64  { return u.ID }
func (u *BreachEmailUpdate) IsDirty() bool { return dirty(u) }
func (u *BreachEmailUpdate) Changes() ([]string, []any) {
	var c changeset
	addCol(&c, "password", u.Password)
	return c.cols, c.args
}

func dirty(u Update) bool {
	cols, _ := u.Changes()
	return len(cols) > 0
}
