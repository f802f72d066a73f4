package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestUpsert_NilDetailIsClean(t *testing.T) {
	existing := Subdomain{ID: 1, Resolvable: ptr(true)}

	update := (&NewSubdomain{Value: "www.example.com"}).Upsert(existing)
	require.NotNil(t, update)
	assert.False(t, update.IsDirty())
}

func TestUpsert_SameDetailIsClean(t *testing.T) {
	existing := Subdomain{ID: 1, Resolvable: ptr(true)}

	update := (&NewSubdomain{Value: "www.example.com", Resolvable: ptr(true)}).Upsert(existing)
	assert.False(t, update.IsDirty())
}

func TestUpsert_ChangedDetailIsDirty(t *testing.T) {
	existing := Subdomain{ID: 1, Resolvable: ptr(true)}

	update := (&NewSubdomain{Value: "www.example.com", Resolvable: ptr(false)}).Upsert(existing)
	require.True(t, update.IsDirty())
	cols, args := update.Changes()
	assert.Equal(t, []string{"resolvable"}, cols)
	assert.Equal(t, []any{false}, args)
}

func TestUpsert_NewDetailIsDirty(t *testing.T) {
	existing := IpAddr{ID: 1, Country: ptr("DE")}

	update := (&NewIpAddr{
		Value:      "192.0.2.1",
		Country:    ptr("DE"),
		City:       ptr("Berlin"),
		ReverseDns: ptr("host.example.com"),
	}).Upsert(existing)

	require.True(t, update.IsDirty())
	cols, _ := update.Changes()
	assert.Equal(t, []string{"city", "reverse_dns"}, cols)
}

func TestDescribe(t *testing.T) {
	update := &IpAddrUpdate{
		ID:         1,
		City:       ptr("Berlin"),
		Asn:        ptr(int64(64496)),
		ReverseDns: ptr("host.example.com"),
	}
	assert.Equal(t, "city => Berlin, asn => 64496, reverse_dns => host.example.com",
		Describe(update))
}

func TestDescribe_CleanDelta(t *testing.T) {
	assert.Empty(t, Describe(&SubdomainUpdate{ID: 1}))
}

func TestNormalize(t *testing.T) {
	// Combining sequences collapse into the precomposed form.
	assert.Equal(t, "café", Normalize("café"))
	assert.Equal(t, "example.com", Normalize("example.com"))
}

func TestKeyValueNormalized(t *testing.T) {
	n := &NewDomain{Value: "café.example.com"}
	assert.Equal(t, "café.example.com", n.KeyValue())
}
