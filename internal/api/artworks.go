package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Slip filename composition
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Timestamps and cache TTLs

	"artspace/internal/domain"  // Importing domain models
	"artspace/internal/storage" // Asset store
	"artspace/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Cache keys and TTL for the read endpoints
const (
	catalogCacheKey = "catalog:artworks" // Cached GET /api/artworks payload
	usersCacheKey   = "admin:users"      // Cached GET /api/users payload
	cacheTTL        = 60 * time.Second   // Shared cache lifetime
)

// ArtworkResponse is the catalog entry returned by GET /api/artworks
type ArtworkResponse struct {
	ID       uint   `json:"id"`       // Artwork ID
	Title    string `json:"title"`    // Title
	Price    int    `json:"price"`    // Price
	Category string `json:"category"` // Category
	Artist   string `json:"artist"`   // Original artist
	Owner    string `json:"owner"`    // Current owner
	Img      string `json:"img"`      // Public image path
	IsSold   bool   `json:"isSold"`   // Sold flag
	Caption  string `json:"caption"`  // Caption text
}

// ListArtworksHandler returns the full artwork catalog
func ListArtworksHandler(db *gorm.DB, rdb *redis.Client, store *storage.AssetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []ArtworkResponse
		// Serve from cache when possible
		found, err := utils.GetCache(ctx, rdb, catalogCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		var artworks []domain.Artwork // Slice to hold artworks
		// Full table scan in insertion order
		if err := db.Order("id").Find(&artworks).Error; err != nil {
			// Even a DB failure keeps the envelope shape
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to fetch artworks"})
			return
		}
		// Map rows to the catalog shape
		resp := make([]ArtworkResponse, len(artworks))
		for i, art := range artworks {
			resp[i] = ArtworkResponse{
				ID:       art.ID,                                                     // Artwork ID
				Title:    art.Title,                                                  // Title
				Price:    art.Price,                                                  // Price
				Category: art.Category,                                               // Category
				Artist:   art.ArtistName,                                             // Original artist
				Owner:    art.OwnerName,                                              // Current owner
				Img:      store.URLFor(storage.NamespaceArtworks, art.ImageFilename), // Public image path
				IsSold:   art.IsSold,                                                 // Sold flag
				Caption:  art.Caption,                                                // Caption text
			}
		}
		_ = utils.SetCache(ctx, rdb, catalogCacheKey, resp, cacheTTL) // Cache the catalog
		c.JSON(http.StatusOK, resp)                                   // Return the catalog
	}
}

// UploadArtworkHandler stores an uploaded image and creates its artwork row
func UploadArtworkHandler(db *gorm.DB, rdb *redis.Client, store *storage.AssetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image") // The artwork image part
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "image file missing"})
			return
		}
		// Required form fields
		title := c.PostForm("title")
		priceStr := c.PostForm("price")
		category := c.PostForm("category")
		artist := c.PostForm("artist")
		if title == "" || priceStr == "" || artist == "" {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "title, price and artist are required"})
			return
		}
		if file.Filename == "" {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "empty filename"})
			return
		}
		price, err := strconv.Atoi(priceStr) // Price arrives as a form string
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "invalid price"})
			return
		}
		// Timestamp prefix keeps names collision-resistant; sanitization blocks traversal
		filename := strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + storage.SanitizeFilename(file.Filename)
		// Write the image, then the row; a crash in between leaves an orphaned file
		if err := store.Store(storage.NamespaceArtworks, filename, file); err != nil {
			logrus.WithFields(logrus.Fields{
				"filename": filename,    // Target filename
				"error":    err.Error(), // Error message
			}).Error("Image write failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to store image"})
			return
		}
		art := domain.Artwork{
			Title:         title,    // Title
			Price:         price,    // Price
			Category:      category, // Category
			ArtistName:    artist,   // Artist
			OwnerName:     artist,   // Owner starts as the artist
			ImageFilename: filename, // Stored image name
		}
		if err := db.Create(&art).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Artwork insert failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to save artwork"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, catalogCacheKey) // Invalidate the catalog
		// Log the new listing
		logrus.WithFields(logrus.Fields{
			"artwork_id": art.ID,   // New artwork ID
			"title":      title,    // Title
			"artist":     artist,   // Artist
			"filename":   filename, // Stored image name
		}).Info("Artwork uploaded")
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// BuyArtworkHandler records a purchase: stores the slip and flips the row to sold
func BuyArtworkHandler(db *gorm.DB, rdb *redis.Client, store *storage.AssetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.PostForm("id")    // Artwork ID form field
		buyer := c.PostForm("buyer") // Buyer name form field
		if idStr == "" || buyer == "" {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "id and buyer are required"})
			return
		}
		id, err := strconv.Atoi(idStr) // Parse the artwork ID
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "invalid artwork id"})
			return
		}
		slip, err := c.FormFile("slip") // The payment slip part
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "slip file missing"})
			return
		}
		var art domain.Artwork // Locate the artwork
		if err := db.First(&art, id).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "artwork not found"})
			return
		}
		// Composite slip name ties the file to the sale; sanitized as a whole
		slipName := storage.SanitizeFilename(fmt.Sprintf("SLIP_%d_%s_%s", id, buyer, slip.Filename))
		if err := store.Store(storage.NamespaceSlips, slipName, slip); err != nil {
			logrus.WithFields(logrus.Fields{
				"artwork_id": id,          // Artwork ID
				"error":      err.Error(), // Error message
			}).Error("Slip write failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to store slip"})
			return
		}
		// One update carries the whole transition: sold flag, new owner, slip reference
		updates := map[string]any{
			"is_sold":       true,     // Monotone sold flag
			"owner_name":    buyer,    // Ownership transfers to the buyer
			"slip_filename": slipName, // Slip reference
		}
		if err := db.Model(&art).Updates(updates).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"artwork_id": id,          // Artwork ID
				"buyer":      buyer,       // Buyer name
				"error":      err.Error(), // Error message
			}).Error("Purchase failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to record purchase"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, catalogCacheKey) // Invalidate the catalog
		// Log the sale
		logrus.WithFields(logrus.Fields{
			"artwork_id": id,       // Artwork ID
			"buyer":      buyer,    // Buyer name
			"slip":       slipName, // Stored slip name
		}).Info("Artwork purchased")
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// EditArtworkRequest carries the two editable fields
type EditArtworkRequest struct {
	ID      uint   `json:"id" binding:"required"` // Artwork ID must be provided
	Price   int    `json:"price"`                 // New price
	Caption string `json:"caption"`               // New caption, may be empty
}

// EditArtworkHandler updates an artwork's price and caption
func EditArtworkHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EditArtworkRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "id is required"})
			return
		}
		var art domain.Artwork // Locate the artwork
		if err := db.First(&art, req.ID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "artwork not found"})
			return
		}
		// Map form keeps zero values (price 0, empty caption) applied
		if err := db.Model(&art).Updates(map[string]any{"price": req.Price, "caption": req.Caption}).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"artwork_id": req.ID,      // Artwork ID
				"error":      err.Error(), // Error message
			}).Error("Edit failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to update artwork"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, catalogCacheKey) // Invalidate the catalog
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DeleteArtworkRequest identifies an artwork by ID
type DeleteArtworkRequest struct {
	ID uint `json:"id" binding:"required"` // Artwork ID must be provided
}

// DeleteArtworkHandler removes an artwork row and best-effort deletes its image
func DeleteArtworkHandler(db *gorm.DB, rdb *redis.Client, store *storage.AssetStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteArtworkRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "id is required"})
			return
		}
		var art domain.Artwork // Locate the artwork
		if err := db.First(&art, req.ID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "artwork not found"})
			return
		}
		// Best-effort image cleanup; a failure here never blocks the delete
		_ = store.Remove(storage.NamespaceArtworks, art.ImageFilename)
		if err := db.Delete(&art).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"artwork_id": req.ID,      // Artwork ID
				"error":      err.Error(), // Error message
			}).Error("Artwork deletion failed")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "failed to delete artwork"})
			return
		}
		_ = utils.DeleteCache(context.Background(), rdb, catalogCacheKey) // Invalidate the catalog
		logrus.WithField("artwork_id", req.ID).Info("Artwork deleted")    // Log artwork deletion
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
