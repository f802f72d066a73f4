package models

import (
	"errors"
	"fmt"
)

// ErrUnknownFamily is returned when a family string doesn't name any kind.
var ErrUnknownFamily = errors.New("unknown object family")

// Family identifies an entity or relationship kind by its external name.
// These strings are the CLI-visible identifiers and are stored in the ttls
// table, so they must stay stable.
type Family string

const (
	FamilyDomain          Family = "domain"
	FamilySubdomain       Family = "subdomain"
	FamilyIpAddr          Family = "ipaddr"
	FamilySubdomainIpAddr Family = "subdomain-ipaddr"
	FamilyUrl             Family = "url"
	FamilyEmail           Family = "email"
	FamilyPhoneNumber     Family = "phonenumber"
	FamilyDevice          Family = "device"
	FamilyNetwork         Family = "network"
	FamilyNetworkDevice   Family = "network-device"
	FamilyAccount         Family = "account"
	FamilyBreach          Family = "breach"
	FamilyBreachEmail     Family = "breach-email"
)

// ParseFamily maps an external identifier to its Family.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyDomain, FamilySubdomain, FamilyIpAddr, FamilySubdomainIpAddr,
		FamilyUrl, FamilyEmail, FamilyPhoneNumber, FamilyDevice,
		FamilyNetwork, FamilyNetworkDevice, FamilyAccount, FamilyBreach,
		FamilyBreachEmail:
		return Family(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
}

func (f Family) String() string {
	return string(f)
}

// Table returns the table a family's rows live in.
func (f Family) Table() string {
	switch f {
	case FamilyDomain:
		return Domain{}.Table()
	case FamilySubdomain:
		return Subdomain{}.Table()
	case FamilyIpAddr:
		return IpAddr{}.Table()
	case FamilySubdomainIpAddr:
		return SubdomainIpAddr{}.Table()
	case FamilyUrl:
		return Url{}.Table()
	case FamilyEmail:
		return Email{}.Table()
	case FamilyPhoneNumber:
		return PhoneNumber{}.Table()
	case FamilyDevice:
		return Device{}.Table()
	case FamilyNetwork:
		return Network{}.Table()
	case FamilyNetworkDevice:
		return NetworkDevice{}.Table()
	case FamilyAccount:
		return Account{}.Table()
	case FamilyBreach:
		return Breach{}.Table()
	case FamilyBreachEmail:
		return BreachEmail{}.Table()
	default:
		return ""
	}
}

// Families lists every known family in declaration order.
func Families() []Family {
	return []Family{
		FamilyDomain, FamilySubdomain, FamilyIpAddr, FamilySubdomainIpAddr,
		FamilyUrl, FamilyEmail, FamilyPhoneNumber, FamilyDevice,
		FamilyNetwork, FamilyNetworkDevice, FamilyAccount, FamilyBreach,
		FamilyBreachEmail,
	}
}
