package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spyglass-osint/spyglass/internal/models"
)

func TestBumpTTL_ReapExpired(t *testing.T) {
	db := testDB(t)
	now := time.Unix(1700000000, 0)

	id := mustInsert(t, db, &models.NewDomain{Value: "transient.example"}, Inserted)
	mustInsert(t, db, &models.NewDomain{Value: "example.com"}, Inserted)

	require.NoError(t, db.BumpTTL(models.FamilyDomain, id, 600, now))

	// Nothing has expired yet.
	reaped, err := db.ReapExpired(now.Add(5 * time.Minute))
	require.NoError(t, err)
	assert.Zero(t, reaped)

	reaped, err = db.ReapExpired(now.Add(10 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), reaped)

	domains, err := List[models.Domain](db)
	require.NoError(t, err)
	require.Len(t, domains, 1)
	assert.Equal(t, "example.com", domains[0].Value)

	// The ttl record goes with the row.
	var count int
	require.NoError(t, db.DB().QueryRow("SELECT COUNT(*) FROM ttls").Scan(&count))
	assert.Zero(t, count)
}

func TestBumpTTL_OnlyExtends(t *testing.T) {
	db := testDB(t)
	now := time.Unix(1700000000, 0)

	id := mustInsert(t, db, &models.NewDomain{Value: "transient.example"}, Inserted)

	require.NoError(t, db.BumpTTL(models.FamilyDomain, id, 3600, now))
	// A shorter ttl never shortens an existing expiry.
	require.NoError(t, db.BumpTTL(models.FamilyDomain, id, 60, now))

	var expire int64
	require.NoError(t, db.DB().QueryRow(
		"SELECT expire FROM ttls WHERE family = ? AND key = ?",
		models.FamilyDomain.String(), id,
	).Scan(&expire))
	assert.Equal(t, now.Unix()+3600, expire)

	// A longer ttl pushes it out.
	require.NoError(t, db.BumpTTL(models.FamilyDomain, id, 7200, now))
	require.NoError(t, db.DB().QueryRow(
		"SELECT expire FROM ttls WHERE family = ? AND key = ?",
		models.FamilyDomain.String(), id,
	).Scan(&expire))
	assert.Equal(t, now.Unix()+7200, expire)
}

func TestReapExpired_CascadesThroughChildren(t *testing.T) {
	db := testDB(t)
	now := time.Unix(1700000000, 0)

	domainID := mustInsert(t, db, &models.NewDomain{Value: "transient.example"}, Inserted)
	subID := mustInsert(t, db, &models.NewSubdomain{DomainID: domainID, Value: "www.transient.example"}, Inserted)
	mustInsert(t, db, &models.NewUrl{SubdomainID: subID, Value: "https://www.transient.example/"}, Inserted)

	require.NoError(t, db.BumpTTL(models.FamilyDomain, domainID, 60, now))

	reaped, err := db.ReapExpired(now.Add(2 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), reaped)

	subs, err := List[models.Subdomain](db)
	require.NoError(t, err)
	assert.Empty(t, subs)

	urls, err := List[models.Url](db)
	require.NoError(t, err)
	assert.Empty(t, urls)
}
