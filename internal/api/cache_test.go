package api_test

import (
	"testing"
	"time"

	"artspace/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCachedAndInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r, db, _ := newCachedTestRouter(t, rdb)

	var list []map[string]any
	getJSON(t, r, "/api/artworks", &list)
	assert.Empty(t, list)
	assert.True(t, mr.Exists("catalog:artworks"), "listing should populate the cache")

	ttl := mr.TTL("catalog:artworks")
	assert.Greater(t, ttl.Seconds(), 0.0)
	assert.LessOrEqual(t, ttl.Seconds(), 60.0)

	// A row inserted behind the handler's back stays invisible while cached
	require.NoError(t, db.Create(&domain.Artwork{
		Title: "Sunset", Price: 500, Category: "Landscape",
		ArtistName: "Ann", OwnerName: "Ann", ImageFilename: "x.png",
	}).Error)
	getJSON(t, r, "/api/artworks", &list)
	assert.Empty(t, list)

	// An upload through the handler drops the key, so the next read is fresh
	out := postMultipart(t, r, "/api/upload", map[string]string{
		"title": "Dawn", "price": "300", "category": "Landscape",
		"artist": "Ben",
	}, "image", "dawn.png", "png-bytes")
	require.Equal(t, true, out["success"])
	assert.False(t, mr.Exists("catalog:artworks"))

	getJSON(t, r, "/api/artworks", &list)
	assert.Len(t, list, 2)
	assert.True(t, mr.Exists("catalog:artworks"))
}

func TestUsersCacheInvalidatedOnRegister(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r, db, _ := newCachedTestRouter(t, rdb)
	header := adminHeader(t, db)

	var users []map[string]any
	getJSON(t, r, "/api/users", &users, header)
	assert.Len(t, users, 1) // Seeded admin
	assert.True(t, mr.Exists("admin:users"))

	var out map[string]any
	postJSON(t, r, "/api/register", map[string]any{
		"name": "Bob", "email": "bob@example.com", "password": "pw",
	}, &out)
	require.Equal(t, true, out["success"])
	assert.False(t, mr.Exists("admin:users"), "registration should drop the users cache")

	getJSON(t, r, "/api/users", &users, header)
	assert.Len(t, users, 2)
}

func TestStaleCacheServedUntilExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r, db, _ := newCachedTestRouter(t, rdb)

	require.NoError(t, db.Create(&domain.Artwork{
		Title: "Sunset", Price: 500, Category: "Landscape",
		ArtistName: "Ann", OwnerName: "Ann", ImageFilename: "x.png",
	}).Error)

	var list []map[string]any
	getJSON(t, r, "/api/artworks", &list)
	require.Len(t, list, 1)

	require.NoError(t, db.Where("1 = 1").Delete(&domain.Artwork{}).Error)

	// Still served from cache
	getJSON(t, r, "/api/artworks", &list)
	assert.Len(t, list, 1)

	// After the TTL the handler goes back to the database
	mr.FastForward(61 * time.Second)
	getJSON(t, r, "/api/artworks", &list)
	assert.Empty(t, list)
}
