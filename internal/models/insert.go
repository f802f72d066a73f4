package models

// Insert is the closed union of every insertable fact. The discovery
// pipeline hands these to the database, which switches over the members
// exhaustively. Sealed: only types in this package implement it.
type Insert interface {
	insertable()
}

// Insertable is the capability an entity-kind insert needs for the generic
// upsert path: resolve by natural key, raw insert, dirty-compare against an
// existing row. Relationship kinds don't implement it, they have dedicated
// insert paths.
type Insertable[M any] interface {
	Table() string
	KeyValue() string
	InsertColumns() ([]string, []any)
	Upsert(existing M) Update
}

// upsertCol returns next when it is set and differs from the stored value,
// nil otherwise. A nil result means "column unchanged".
func upsertCol[T comparable](old, next *T) *T {
	if next == nil {
		return nil
	}
	if old != nil && *old == *next {
		return nil
	}
	return next
}

// NewDomain is a freshly discovered domain.
type NewDomain struct {
	Value string
}

func (*NewDomain) insertable()        {}
func (*NewDomain) Table() string      { return Domain{}.Table() }
func (n *NewDomain) KeyValue() string { return Normalize(n.Value) }
func (n *NewDomain) InsertColumns() ([]string, []any) {
	return []string{"value"}, []any{n.KeyValue()}
}

// Domains carry no mutable details, re-discovery is always a no-op.
func (n *NewDomain) Upsert(existing Domain) Update { return nil }

// NewSubdomain is a freshly discovered subdomain.
type NewSubdomain struct {
	DomainID   int64
	Value      string
	Resolvable *bool
}

func (*NewSubdomain) insertable()        {}
func (*NewSubdomain) Table() string      { return Subdomain{}.Table() }
func (n *NewSubdomain) KeyValue() string { return Normalize(n.Value) }
func (n *NewSubdomain) InsertColumns() ([]string, []any) {
	return []string{"domain_id", "value", "resolvable"},
		[]any{n.DomainID, n.KeyValue(), n.Resolvable}
}
func (n *NewSubdomain) Upsert(existing Subdomain) Update {
	return &SubdomainUpdate{
		ID:         existing.ID,
		Resolvable: upsertCol(existing.Resolvable, n.Resolvable),
	}
}

// NewIpAddr is a freshly discovered ip address.
type NewIpAddr struct {
	Family      string
	Value       string
	Continent   *string
	Country     *string
	City        *string
	Asn         *int64
	AsOrg       *string
	Description *string
	ReverseDns  *string
}

func (*NewIpAddr) insertable()        {}
func (*NewIpAddr) Table() string      { return IpAddr{}.Table() }
func (n *NewIpAddr) KeyValue() string { return Normalize(n.Value) }
func (n *NewIpAddr) InsertColumns() ([]string, []any) {
	return []string{"family", "value", "continent", "country", "city", "asn", "as_org", "description", "reverse_dns"},
		[]any{n.Family, n.KeyValue(), n.Continent, n.Country, n.City, n.Asn, n.AsOrg, n.Description, n.ReverseDns}
}
func (n *NewIpAddr) Upsert(existing IpAddr) Update {
	return &IpAddrUpdate{
		ID:          existing.ID,
		Continent:   upsertCol(existing.Continent, n.Continent),
		Country:     upsertCol(existing.Country, n.Country),
		City:        upsertCol(existing.City, n.City),
		Asn:         upsertCol(existing.Asn, n.Asn),
		AsOrg:       upsertCol(existing.AsOrg, n.AsOrg),
		Description: upsertCol(existing.Description, n.Description),
		ReverseDns:  upsertCol(existing.ReverseDns, n.ReverseDns),
	}
}

// NewSubdomainIpAddr links a subdomain to an address it resolved to.
type NewSubdomainIpAddr struct {
	SubdomainID int64
	IpAddrID    int64
}

func (*NewSubdomainIpAddr) insertable() {}

// NewUrl is a freshly discovered url.
type NewUrl struct {
	SubdomainID int64
	Value       string
	Status      *int64
	Online      *bool
	Title       *string
	Redirect    *string
}

func (*NewUrl) insertable()        {}
func (*NewUrl) Table() string      { return Url{}.Table() }
func (n *NewUrl) KeyValue() string { return Normalize(n.Value) }
func (n *NewUrl) InsertColumns() ([]string, []any) {
	return []string{"subdomain_id", "value", "status", "online", "title", "redirect"},
		[]any{n.SubdomainID, n.KeyValue(), n.Status, n.Online, n.Title, n.Redirect}
}
func (n *NewUrl) Upsert(existing Url) Update {
	return &UrlUpdate{
		ID:       existing.ID,
		Status:   upsertCol(existing.Status, n.Status),
		Online:   upsertCol(existing.Online, n.Online),
		Title:    upsertCol(existing.Title, n.Title),
		Redirect: upsertCol(existing.Redirect, n.Redirect),
	}
}

// NewEmail is a freshly discovered email address.
type NewEmail struct {
	Value       string
	DisplayName *string
	Valid       *bool
}

func (*NewEmail) insertable()        {}
func (*NewEmail) Table() string      { return Email{}.Table() }
func (n *NewEmail) KeyValue() string { return Normalize(n.Value) }
func (n *NewEmail) InsertColumns() ([]string, []any) {
	return []string{"value", "displayname", "valid"},
		[]any{n.KeyValue(), n.DisplayName, n.Valid}
}
func (n *NewEmail) Upsert(existing Email) Update {
	return &EmailUpdate{
		ID:          existing.ID,
		DisplayName: upsertCol(existing.DisplayName, n.DisplayName),
		Valid:       upsertCol(existing.Valid, n.Valid),
	}
}

// NewPhoneNumber is a freshly discovered phone number.
type NewPhoneNumber struct {
	Value   string
	Name    *string
	Valid   *bool
	Country *string
	Carrier *string
	Line    *string
}

func (*NewPhoneNumber) insertable()        {}
func (*NewPhoneNumber) Table() string      { return PhoneNumber{}.Table() }
func (n *NewPhoneNumber) KeyValue() string { return Normalize(n.Value) }
func (n *NewPhoneNumber) InsertColumns() ([]string, []any) {
	return []string{"value", "name", "valid", "country", "carrier", "line"},
		[]any{n.KeyValue(), n.Name, n.Valid, n.Country, n.Carrier, n.Line}
}
func (n *NewPhoneNumber) Upsert(existing PhoneNumber) Update {
	return &PhoneNumberUpdate{
		ID:      existing.ID,
		Name:    upsertCol(existing.Name, n.Name),
		Valid:   upsertCol(existing.Valid, n.Valid),
		Country: upsertCol(existing.Country, n.Country),
		Carrier: upsertCol(existing.Carrier, n.Carrier),
		Line:    upsertCol(existing.Line, n.Line),
	}
}

// NewDevice is a freshly discovered device.
type NewDevice struct {
	Value    string
	Name     *string
	Hostname *string
	Vendor   *string
	LastSeen *int64
}

func (*NewDevice) insertable()        {}
func (*NewDevice) Table() string      { return Device{}.Table() }
func (n *NewDevice) KeyValue() string { return Normalize(n.Value) }
func (n *NewDevice) InsertColumns() ([]string, []any) {
	return []string{"value", "name", "hostname", "vendor", "last_seen"},
		[]any{n.KeyValue(), n.Name, n.Hostname, n.Vendor, n.LastSeen}
}
func (n *NewDevice) Upsert(existing Device) Update {
	return &DeviceUpdate{
		ID:       existing.ID,
		Name:     upsertCol(existing.Name, n.Name),
		Hostname: upsertCol(existing.Hostname, n.Hostname),
		Vendor:   upsertCol(existing.Vendor, n.Vendor),
		LastSeen: upsertCol(existing.LastSeen, n.LastSeen),
	}
}

// NewNetwork is a freshly discovered network.
type NewNetwork struct {
	Value       string
	Latitude    *float64
	Longitude   *float64
	Description *string
}

func (*NewNetwork) insertable()        {}
func (*NewNetwork) Table() string      { return Network{}.Table() }
func (n *NewNetwork) KeyValue() string { return Normalize(n.Value) }
func (n *NewNetwork) InsertColumns() ([]string, []any) {
	return []string{"value", "latitude", "longitude", "description"},
		[]any{n.KeyValue(), n.Latitude, n.Longitude, n.Description}
}
func (n *NewNetwork) Upsert(existing Network) Update {
	return &NetworkUpdate{
		ID:          existing.ID,
		Latitude:    upsertCol(existing.Latitude, n.Latitude),
		Longitude:   upsertCol(existing.Longitude, n.Longitude),
		Description: upsertCol(existing.Description, n.Description),
	}
}

// NewNetworkDevice links a device to a network it was seen on.
type NewNetworkDevice struct {
	NetworkID int64
	DeviceID  int64
	IpAddr    *string
	LastSeen  *int64
}

func (*NewNetworkDevice) insertable() {}

// NewAccount is a freshly discovered account on an online service.
type NewAccount struct {
	Value       string
	Service     string
	Username    string
	DisplayName *string
	Email       *string
	Url         *string
	LastSeen    *int64
}

func (*NewAccount) insertable()        {}
func (*NewAccount) Table() string      { return Account{}.Table() }
func (n *NewAccount) KeyValue() string { return Normalize(n.Value) }
func (n *NewAccount) InsertColumns() ([]string, []any) {
	return []string{"value", "service", "username", "displayname", "email", "url", "last_seen"},
		[]any{n.KeyValue(), n.Service, n.Username, n.DisplayName, n.Email, n.Url, n.LastSeen}
}
func (n *NewAccount) Upsert(existing Account) Update {
	return &AccountUpdate{
		ID:          existing.ID,
		DisplayName: upsertCol(existing.DisplayName, n.DisplayName),
		Email:       upsertCol(existing.Email, n.Email),
		Url:         upsertCol(existing.Url, n.Url),
		LastSeen:    upsertCol(existing.LastSeen, n.LastSeen),
	}
}

// NewBreach is a freshly discovered breach.
type NewBreach struct {
	Value string
}

func (*NewBreach) insertable()        {}
func (*NewBreach) Table() string      { return Breach{}.Table() }
func (n *NewBreach) KeyValue() string { return Normalize(n.Value) }
func (n *NewBreach) InsertColumns() ([]string, []any) {
	return []string{"value"}, []any{n.KeyValue()}
}

// Breaches carry no mutable details, re-discovery is always a no-op.
func (n *NewBreach) Upsert(existing Breach) Update { return nil }

// NewBreachEmail links an email to a breach it appeared in, optionally with
// the leaked password.
type NewBreachEmail struct {
	BreachID int64
	EmailID  int64
	Password *string
}

func (*NewBreachEmail) insertable() {}
func (n *NewBreachEmail) Upsert(existing BreachEmail) Update {
	return &BreachEmailUpdate{
		ID:       existing.ID,
		Password: upsertCol(existing.Password, n.Password),
	}
}
