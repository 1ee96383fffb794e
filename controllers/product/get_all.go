package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/peterdinis/Wheel-Verse/models"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListFilter is the full set of recognized catalog query options. Anything
// else in the query string is ignored.
type ListFilter struct {
	Search     string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
	PageSize   int
	Sort       string
}

// ListResult pairs the page slice with the pre-pagination total.
type ListResult struct {
	Items    []models.Product `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ListProducts applies filter, sort, and pagination. Total is counted
// before the page slice is taken; every sort ends on (created_at, id) so
// the ordering is total and pages are stable across requests.
func ListProducts(db *gorm.DB, filter ListFilter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	query := db.Model(&models.Product{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			like, like,
		)
	}
	if filter.CategoryID != "" && filter.CategoryID != "all" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	switch filter.Sort {
	case "price-asc":
		query = query.Order("price asc, created_at asc, id asc")
	case "price-desc":
		query = query.Order("price desc, created_at asc, id asc")
	default:
		// featured: stable creation order
		query = query.Order("created_at asc, id asc")
	}

	items := []models.Product{}
	err := query.Preload("Category").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := ListFilter{
			Search:     c.Query("search"),
			CategoryID: c.Query("category_id"),
			Sort:       c.Query("sort"),
		}

		if v := c.Query("min_price"); v != "" {
			mp, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			filter.MinPrice = &mp
		}
		if v := c.Query("max_price"); v != "" {
			mp, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			filter.MaxPrice = &mp
		}
		if v := c.Query("page"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil || p < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
				return
			}
			filter.Page = p
		}
		if v := c.Query("page_size"); v != "" {
			ps, err := strconv.Atoi(v)
			if err != nil || ps < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page_size"})
				return
			}
			filter.PageSize = ps
		}

		result, err := ListProducts(db, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
