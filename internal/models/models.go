package models

import (
	"golang.org/x/text/unicode/norm"
)

// RowScanner is the subset of *sql.Row and *sql.Rows used for scanning.
type RowScanner interface {
	Scan(dest ...any) error
}

// Model ties a record type to its table and column layout. The type
// parameter is the record type itself, so scanning stays fully typed.
type Model[M any] interface {
	Table() string
	Columns() []string
	ScanRow(s RowScanner) (M, error)
}

// Row is implemented by every record type.
type Row interface {
	RowID() int64
}

// ScopedRow is implemented by every entity kind carrying the scope flag.
// Relationship kinds have no scope flag and do not implement it.
type ScopedRow interface {
	Row
	Scoped() bool
}

// Valued is implemented by kinds identified by a single natural-key value.
type Valued interface {
	RowValue() string
}

// ChildRow is implemented by kinds whose rows hang off a parent entity and
// can narrow a filter by the parent's surrogate id.
type ChildRow interface {
	ParentColumn() string
}

// Detailed marks the kinds exposed to the bulk scope/noscope commands.
// Sealed: only types in this package implement it.
type Detailed interface {
	detailed()
}

// Normalize canonicalizes a natural-key value to NFC so repeated discovery
// of visually identical values hits the same row.
func Normalize(value string) string {
	return norm.NFC.String(value)
}

// Domain is a registered domain, e.g. "example.com".
type Domain struct {
	ID       int64  `json:"id"`
	Value    string `json:"value"`
	Unscoped bool   `json:"unscoped"`
}

func (Domain) Table() string     { return "domains" }
func (Domain) Columns() []string { return []string{"id", "value", "unscoped"} }
func (Domain) ScanRow(s RowScanner) (Domain, error) {
	var m Domain
	err := s.Scan(&m.ID, &m.Value, &m.Unscoped)
	return m, err
}
func (m Domain) RowID() int64     { return m.ID }
func (m Domain) Scoped() bool     { return !m.Unscoped }
func (m Domain) RowValue() string { return m.Value }
func (Domain) detailed()          {}

// Subdomain is a single name below a domain, e.g. "www.example.com".
type Subdomain struct {
	ID         int64  `json:"id"`
	DomainID   int64  `json:"domain_id"`
	Value      string `json:"value"`
	Unscoped   bool   `json:"unscoped"`
	Resolvable *bool  `json:"resolvable"`
}

func (Subdomain) Table() string { return "subdomains" }
func (Subdomain) Columns() []string {
	return []string{"id", "domain_id", "value", "unscoped", "resolvable"}
}
func (Subdomain) ScanRow(s RowScanner) (Subdomain, error) {
	var m Subdomain
	err := s.Scan(&m.ID, &m.DomainID, &m.Value, &m.Unscoped, &m.Resolvable)
	return m, err
}
func (m Subdomain) RowID() int64       { return m.ID }
func (m Subdomain) Scoped() bool       { return !m.Unscoped }
func (m Subdomain) RowValue() string   { return m.Value }
func (Subdomain) ParentColumn() string { return "domain_id" }
func (Subdomain) detailed()            {}

// IpAddr is a single IPv4 or IPv6 address.
type IpAddr struct {
	ID          int64   `json:"id"`
	Family      string  `json:"family"`
	Value       string  `json:"value"`
	Unscoped    bool    `json:"unscoped"`
	Continent   *string `json:"continent"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Asn         *int64  `json:"asn"`
	AsOrg       *string `json:"as_org"`
	Description *string `json:"description"`
	ReverseDns  *string `json:"reverse_dns"`
}

func (IpAddr) Table() string { return "ipaddrs" }
func (IpAddr) Columns() []string {
	return []string{"id", "family", "value", "unscoped", "continent", "country", "city", "asn", "as_org", "description", "reverse_dns"}
}
func (IpAddr) ScanRow(s RowScanner) (IpAddr, error) {
	var m IpAddr
	err := s.Scan(&m.ID, &m.Family, &m.Value, &m.Unscoped, &m.Continent, &m.Country,
		&m.City, &m.Asn, &m.AsOrg, &m.Description, &m.ReverseDns)
	return m, err
}
func (m IpAddr) RowID() int64     { return m.ID }
func (m IpAddr) Scoped() bool     { return !m.Unscoped }
func (m IpAddr) RowValue() string { return m.Value }
func (IpAddr) detailed()          {}

// SubdomainIpAddr records that a subdomain resolved to an address.
// Pure existence record, no scope flag.
type SubdomainIpAddr struct {
	ID          int64 `json:"id"`
	SubdomainID int64 `json:"subdomain_id"`
	IpAddrID    int64 `json:"ip_addr_id"`
}

func (SubdomainIpAddr) Table() string     { return "subdomain_ipaddrs" }
func (SubdomainIpAddr) Columns() []string { return []string{"id", "subdomain_id", "ip_addr_id"} }
func (SubdomainIpAddr) ScanRow(s RowScanner) (SubdomainIpAddr, error) {
	var m SubdomainIpAddr
	err := s.Scan(&m.ID, &m.SubdomainID, &m.IpAddrID)
	return m, err
}
func (m SubdomainIpAddr) RowID() int64       { return m.ID }
func (SubdomainIpAddr) ParentColumn() string { return "subdomain_id" }

// Url is a single URL below a subdomain.
type Url struct {
	ID          int64   `json:"id"`
	SubdomainID int64   `json:"subdomain_id"`
	Value       string  `json:"value"`
	Unscoped    bool    `json:"unscoped"`
	Status      *int64  `json:"status"`
	Online      *bool   `json:"online"`
	Title       *string `json:"title"`
	Redirect    *string `json:"redirect"`
}

func (Url) Table() string { return "urls" }
func (Url) Columns() []string {
	return []string{"id", "subdomain_id", "value", "unscoped", "status", "online", "title", "redirect"}
}
func (Url) ScanRow(s RowScanner) (Url, error) {
	var m Url
	err := s.Scan(&m.ID, &m.SubdomainID, &m.Value, &m.Unscoped, &m.Status, &m.Online, &m.Title, &m.Redirect)
	return m, err
}
func (m Url) RowID() int64       { return m.ID }
func (m Url) Scoped() bool       { return !m.Unscoped }
func (m Url) RowValue() string   { return m.Value }
func (Url) ParentColumn() string { return "subdomain_id" }
func (Url) detailed()            {}

// Email is a single email address.
type Email struct {
	ID          int64   `json:"id"`
	Value       string  `json:"value"`
	Unscoped    bool    `json:"unscoped"`
	DisplayName *string `json:"displayname"`
	Valid       *bool   `json:"valid"`
}

func (Email) Table() string { return "emails" }
func (Email) Columns() []string {
	return []string{"id", "value", "unscoped", "displayname", "valid"}
}
func (Email) ScanRow(s RowScanner) (Email, error) {
	var m Email
	err := s.Scan(&m.ID, &m.Value, &m.Unscoped, &m.DisplayName, &m.Valid)
	return m, err
}
func (m Email) RowID() int64     { return m.ID }
func (m Email) Scoped() bool     { return !m.Unscoped }
func (m Email) RowValue() string { return m.Value }
func (Email) detailed()          {}

// PhoneNumber is a phone number in E.164 notation.
type PhoneNumber struct {
	ID       int64   `json:"id"`
	Value    string  `json:"value"`
	Name     *string `json:"name"`
	Unscoped bool    `json:"unscoped"`
	Valid    *bool   `json:"valid"`
	Country  *string `json:"country"`
	Carrier  *string `json:"carrier"`
	Line     *string `json:"line"`
}

func (PhoneNumber) Table() string { return "phonenumbers" }
func (PhoneNumber) Columns() []string {
	return []string{"id", "value", "name", "unscoped", "valid", "country", "carrier", "line"}
}
func (PhoneNumber) ScanRow(s RowScanner) (PhoneNumber, error) {
	var m PhoneNumber
	err := s.Scan(&m.ID, &m.Value, &m.Name, &m.Unscoped, &m.Valid, &m.Country, &m.Carrier, &m.Line)
	return m, err
}
func (m PhoneNumber) RowID() int64     { return m.ID }
func (m PhoneNumber) Scoped() bool     { return !m.Unscoped }
func (m PhoneNumber) RowValue() string { return m.Value }
func (PhoneNumber) detailed()          {}

// Device is a network device identified by its mac address.
type Device struct {
	ID       int64   `json:"id"`
	Value    string  `json:"value"`
	Name     *string `json:"name"`
	Hostname *string `json:"hostname"`
	Vendor   *string `json:"vendor"`
	Unscoped bool    `json:"unscoped"`
	LastSeen *int64  `json:"last_seen"`
}

func (Device) Table() string { return "devices" }
func (Device) Columns() []string {
	return []string{"id", "value", "name", "hostname", "vendor", "unscoped", "last_seen"}
}
func (Device) ScanRow(s RowScanner) (Device, error) {
	var m Device
	err := s.Scan(&m.ID, &m.Value, &m.Name, &m.Hostname, &m.Vendor, &m.Unscoped, &m.LastSeen)
	return m, err
}
func (m Device) RowID() int64     { return m.ID }
func (m Device) Scoped() bool     { return !m.Unscoped }
func (m Device) RowValue() string { return m.Value }

// Network is a network a device was observed on, e.g. a wifi ESSID.
type Network struct {
	ID          int64    `json:"id"`
	Value       string   `json:"value"`
	Unscoped    bool     `json:"unscoped"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description *string  `json:"description"`
}

func (Network) Table() string { return "networks" }
func (Network) Columns() []string {
	return []string{"id", "value", "unscoped", "latitude", "longitude", "description"}
}
func (Network) ScanRow(s RowScanner) (Network, error) {
	var m Network
	err := s.Scan(&m.ID, &m.Value, &m.Unscoped, &m.Latitude, &m.Longitude, &m.Description)
	return m, err
}
func (m Network) RowID() int64     { return m.ID }
func (m Network) Scoped() bool     { return !m.Unscoped }
func (m Network) RowValue() string { return m.Value }

// NetworkDevice records that a device was seen on a network. The join itself
// is an existence record, but it carries mutable observation details.
type NetworkDevice struct {
	ID        int64   `json:"id"`
	NetworkID int64   `json:"network_id"`
	DeviceID  int64   `json:"device_id"`
	IpAddr    *string `json:"ipaddr"`
	LastSeen  *int64  `json:"last_seen"`
}

func (NetworkDevice) Table() string { return "network_devices" }
func (NetworkDevice) Columns() []string {
	return []string{"id", "network_id", "device_id", "ipaddr", "last_seen"}
}
func (NetworkDevice) ScanRow(s RowScanner) (NetworkDevice, error) {
	var m NetworkDevice
	err := s.Scan(&m.ID, &m.NetworkID, &m.DeviceID, &m.IpAddr, &m.LastSeen)
	return m, err
}
func (m NetworkDevice) RowID() int64     { return m.ID }
func (NetworkDevice) ParentColumn() string { return "network_id" }

// Account is an account on an online service, keyed "service/username".
type Account struct {
	ID          int64   `json:"id"`
	Value       string  `json:"value"`
	Service     string  `json:"service"`
	Username    string  `json:"username"`
	Unscoped    bool    `json:"unscoped"`
	DisplayName *string `json:"displayname"`
	Email       *string `json:"email"`
	Url         *string `json:"url"`
	LastSeen    *int64  `json:"last_seen"`
}

func (Account) Table() string { return "accounts" }
func (Account) Columns() []string {
	return []string{"id", "value", "service", "username", "unscoped", "displayname", "email", "url", "last_seen"}
}
func (Account) ScanRow(s RowScanner) (Account, error) {
	var m Account
	err := s.Scan(&m.ID, &m.Value, &m.Service, &m.Username, &m.Unscoped,
		&m.DisplayName, &m.Email, &m.Url, &m.LastSeen)
	return m, err
}
func (m Account) RowID() int64     { return m.ID }
func (m Account) Scoped() bool     { return !m.Unscoped }
func (m Account) RowValue() string { return m.Value }

// Breach is a data breach, e.g. a leaked database dump.
type Breach struct {
	ID       int64  `json:"id"`
	Value    string `json:"value"`
	Unscoped bool   `json:"unscoped"`
}

func (Breach) Table() string     { return "breaches" }
func (Breach) Columns() []string { return []string{"id", "value", "unscoped"} }
func (Breach) ScanRow(s RowScanner) (Breach, error) {
	var m Breach
	err := s.Scan(&m.ID, &m.Value, &m.Unscoped)
	return m, err
}
func (m Breach) RowID() int64     { return m.ID }
func (m Breach) Scoped() bool     { return !m.Unscoped }
func (m Breach) RowValue() string { return m.Value }

// BreachEmail records that an email was part of a breach. The natural key is
// the (breach, email, password) triple: distinct passwords for the same pair
// are distinct facts.
type BreachEmail struct {
	ID       int64   `json:"id"`
	BreachID int64   `json:"breach_id"`
	EmailID  int64   `json:"email_id"`
	Password *string `json:"password"`
}

func (BreachEmail) Table() string     { return "breach_emails" }
func (BreachEmail) Columns() []string { return []string{"id", "breach_id", "email_id", "password"} }
func (BreachEmail) ScanRow(s RowScanner) (BreachEmail, error) {
	var m BreachEmail
	err := s.Scan(&m.ID, &m.BreachID, &m.EmailID, &m.Password)
	return m, err
}
func (m BreachEmail) RowID() int64       { return m.ID }
func (BreachEmail) ParentColumn() string { return "breach_id" }
