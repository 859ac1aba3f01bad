package repositories

import (
	"context"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"gorm.io/gorm"
)

// PublicReviewRow is a review joined with the reviewer's name, before
// masking. Masking happens at the handler layer.
type PublicReviewRow struct {
	ID                 string    `json:"id"`
	Rating             int       `json:"rating"`
	Title              *string   `json:"title"`
	Comment            *string   `json:"comment"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	HelpfulCount       int       `json:"helpful_count"`
	CreatedAt          time.Time `json:"created_at"`
	FirstName          *string   `json:"-"`
	LastName           *string   `json:"-"`
}

type AdminReviewRow struct {
	models.ProductReview
	CustomerEmail     *string `json:"customer_email"`
	CustomerFirstName *string `json:"customer_first_name"`
	CustomerLastName  *string `json:"customer_last_name"`
	ProductTitle      *string `json:"product_title"`
	ProductHandle     *string `json:"product_handle"`
}

type ProductRatingStat struct {
	ProductID     string  `json:"product_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.ProductReview) error
	ExistsForCustomerProduct(ctx context.Context, customerID, productID string) (bool, error)
	ListPublic(ctx context.Context, productID, status string, limit, offset int) ([]PublicReviewRow, error)
	ProductStats(ctx context.Context, productID string) (ProductRatingStat, error)
	ListAdmin(ctx context.Context, status, productID string, limit, offset int) ([]AdminReviewRow, int64, error)
	ApprovedStatsByProduct(ctx context.Context) (map[string]ProductRatingStat, error)
	SetStatus(ctx context.Context, id, status string) (*models.ProductReview, error)
	SoftDelete(ctx context.Context, id string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.ProductReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ExistsForCustomerProduct(ctx context.Context, customerID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListPublic(ctx context.Context, productID, status string, limit, offset int) ([]PublicReviewRow, error) {
	var rows []PublicReviewRow

	err := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Select(`product_reviews.id, product_reviews.rating, product_reviews.title,
			product_reviews.comment, product_reviews.is_verified_purchase,
			product_reviews.helpful_count, product_reviews.created_at,
			customers.first_name, customers.last_name`).
		Joins("LEFT JOIN customers ON customers.id = product_reviews.customer_id").
		Where("product_reviews.product_id = ?", productID).
		Where("product_reviews.status = ?", status).
		Order("product_reviews.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error

	return rows, err
}

func (r *reviewRepository) ProductStats(ctx context.Context, productID string) (ProductRatingStat, error) {
	var stat ProductRatingStat
	stat.ProductID = productID

	err := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count").
		Where("product_id = ?", productID).
		Where("status = ?", models.ReviewStatusApproved).
		Scan(&stat).Error

	return stat, err
}

func (r *reviewRepository) ListAdmin(ctx context.Context, status, productID string, limit, offset int) ([]AdminReviewRow, int64, error) {
	var rows []AdminReviewRow
	var total int64

	base := r.db.WithContext(ctx).Model(&models.ProductReview{})
	if status != "" && status != "all" {
		base = base.Where("product_reviews.status = ?", status)
	}
	if productID != "" {
		base = base.Where("product_reviews.product_id = ?", productID)
	}

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Select(`product_reviews.*,
			customers.email AS customer_email,
			customers.first_name AS customer_first_name,
			customers.last_name AS customer_last_name,
			products.title AS product_title,
			products.handle AS product_handle`).
		Joins("LEFT JOIN customers ON customers.id = product_reviews.customer_id").
		Joins("LEFT JOIN products ON products.id = product_reviews.product_id").
		Order("product_reviews.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error

	return rows, total, err
}

func (r *reviewRepository) ApprovedStatsByProduct(ctx context.Context) (map[string]ProductRatingStat, error) {
	var stats []ProductRatingStat

	err := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Select("product_id, AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Where("status = ?", models.ReviewStatusApproved).
		Group("product_id").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]ProductRatingStat, len(stats))
	for _, s := range stats {
		byProduct[s.ProductID] = s
	}
	return byProduct, nil
}

func (r *reviewRepository) SetStatus(ctx context.Context, id, status string) (*models.ProductReview, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var review models.ProductReview
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductReview{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
