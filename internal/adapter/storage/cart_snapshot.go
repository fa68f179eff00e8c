package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Renatopaccha/Dental-Gest/internal/core/domain"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
)

var _ port.CartSnapshotStorage = CartSnapshotRepository{}

// Persisted layout of the cart snapshot file. Field names follow the
// layout the web client kept under its "dental-gest-cart" storage key,
// so an existing snapshot stays readable. No versioning scheme exists
// for this format.
type (
	cartItemRecord struct {
		Product  productRecord `json:"product"`
		Quantity int           `json:"quantity"`
	}

	productRecord struct {
		ID                 int           `json:"id"`
		Name               string        `json:"name"`
		Description        string        `json:"description"`
		Price              float64       `json:"price"`
		DiscountPrice      *float64      `json:"discountPrice"`
		CurrentPrice       float64       `json:"currentPrice"`
		HasDiscount        bool          `json:"hasDiscount"`
		DiscountPercentage int           `json:"discountPercentage"`
		CategoryName       string        `json:"categoryName"`
		CategorySlug       string        `json:"categorySlug"`
		StockCount         int           `json:"stockCount"`
		InStock            bool          `json:"inStock"`
		StockStatus        string        `json:"stockStatus"`
		ImageURL           string        `json:"imageUrl"`
		Images             []imageRecord `json:"images"`
	}

	imageRecord struct {
		ID    int    `json:"id"`
		Image string `json:"image"`
		Order int    `json:"order"`
	}
)

// CartSnapshotRepository mirrors the cart collection to a local JSON
// file, the service's stand-in for browser local storage.
type CartSnapshotRepository struct {
	filepath string
}

func NewCartSnapshotRepository(filepath string) CartSnapshotRepository {
	return CartSnapshotRepository{filepath}
}

// Load reads the snapshot saved by a previous run. A missing file is an
// empty cart; an unparseable file is logged and read as empty too.
func (r CartSnapshotRepository) Load(
	ctx context.Context,
) ([]domain.CartItem, error) {
	const op = "CartSnapshotRepository.Load"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(r.filepath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var records []cartItemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn("corrupt cart snapshot, starting empty", "err", err)
		return nil, nil
	}

	items := make([]domain.CartItem, len(records))
	for i, rec := range records {
		items[i] = rec.toDomain()
	}
	return items, nil
}

// Save overwrites the snapshot with the full item collection.
func (r CartSnapshotRepository) Save(
	ctx context.Context, items []domain.CartItem,
) error {
	const op = "CartSnapshotRepository.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	records := make([]cartItemRecord, len(items))
	for i, it := range items {
		records[i] = toRecord(it)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.WriteFile(r.filepath, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (rec cartItemRecord) toDomain() domain.CartItem {
	p := domain.ProductDisplay{
		ID:                 rec.Product.ID,
		Name:               rec.Product.Name,
		Description:        rec.Product.Description,
		Price:              rec.Product.Price,
		CurrentPrice:       rec.Product.CurrentPrice,
		HasDiscount:        rec.Product.HasDiscount,
		DiscountPercentage: rec.Product.DiscountPercentage,
		CategoryName:       rec.Product.CategoryName,
		CategorySlug:       rec.Product.CategorySlug,
		StockCount:         rec.Product.StockCount,
		InStock:            rec.Product.InStock,
		StockStatus:        rec.Product.StockStatus,
		ImageURL:           rec.Product.ImageURL,
	}
	if rec.Product.DiscountPrice != nil {
		p.DiscountPrice = *rec.Product.DiscountPrice
	}
	p.Images = make([]domain.ProductImage, len(rec.Product.Images))
	for i, img := range rec.Product.Images {
		p.Images[i] = domain.ProductImage(img)
	}
	return domain.CartItem{Product: p, Quantity: rec.Quantity}
}

func toRecord(it domain.CartItem) cartItemRecord {
	p := productRecord{
		ID:                 it.Product.ID,
		Name:               it.Product.Name,
		Description:        it.Product.Description,
		Price:              it.Product.Price,
		CurrentPrice:       it.Product.CurrentPrice,
		HasDiscount:        it.Product.HasDiscount,
		DiscountPercentage: it.Product.DiscountPercentage,
		CategoryName:       it.Product.CategoryName,
		CategorySlug:       it.Product.CategorySlug,
		StockCount:         it.Product.StockCount,
		InStock:            it.Product.InStock,
		StockStatus:        it.Product.StockStatus,
		ImageURL:           it.Product.ImageURL,
	}
	if it.Product.HasDiscount {
		dp := it.Product.DiscountPrice
		p.DiscountPrice = &dp
	}
	p.Images = make([]imageRecord, len(it.Product.Images))
	for i, img := range it.Product.Images {
		p.Images[i] = imageRecord(img)
	}
	return cartItemRecord{Product: p, Quantity: it.Quantity}
}
