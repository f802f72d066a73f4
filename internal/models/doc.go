// Package models defines every record kind stored in a workspace database.
//
// There is no shared supertype: each entity kind (Domain, Subdomain, IpAddr,
// Url, Email, PhoneNumber, Device, Network, Account, Breach) and each
// relationship kind (SubdomainIpAddr, NetworkDevice, BreachEmail) is an
// independent record type. Behavior is mixed in through small capability
// interfaces:
//
//   - Model[M]: table name, column layout, row scanning
//   - ScopedRow: surrogate id plus the investigator-controlled scope flag
//   - ChildRow: kinds that can narrow a filter by their parent id
//   - Detailed: kinds exposed to the bulk scope/noscope commands
//
// Discovery writes go through two closed unions: Insert (one member per
// insertable kind) and Update (one member per kind with mutable detail
// fields). Both are sealed interfaces, so the dispatcher in the database
// package can switch over every member exhaustively.
//
// Natural-key values are NFC-normalized before storage and lookup so that
// visually identical discoveries collapse onto one row.
package models
