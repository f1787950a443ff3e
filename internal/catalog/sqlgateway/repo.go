package sqlgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/pkg/db"
	"github.com/angelmondragon/shopstate/pkg/db/models"
	dbtypes "github.com/angelmondragon/shopstate/pkg/db/types"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
)

// Gateway serves the catalog from the catalog_* tables.
type Gateway struct {
	client *db.Client
	db     *gorm.DB
	now    func() time.Time
}

// New binds the gateway to a migrated database.
func New(client *db.Client) (*Gateway, error) {
	if client == nil || client.DB() == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db connection required")
	}
	return &Gateway{client: client, db: client.DB(), now: time.Now}, nil
}

func (g *Gateway) FetchAllProducts(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.CatalogProduct
	if err := g.db.WithContext(ctx).Order("position asc, id asc").Find(&rows).Error; err != nil {
		return nil, catalog.AsFailure(catalog.OpFetchAllProducts, err)
	}
	return toProducts(rows), nil
}

func (g *Gateway) FetchProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	var row models.CatalogProduct
	err := g.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrProductNotFound(id)
	}
	if err != nil {
		return nil, catalog.AsFailure(catalog.OpFetchProductByID, err)
	}
	p := toProduct(row)
	return &p, nil
}

func (g *Gateway) SearchProducts(ctx context.Context, text string) ([]catalog.Product, error) {
	pattern := "%" + escapeLike(catalog.NormalizeQuery(text)) + "%"
	var rows []models.CatalogProduct
	err := g.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`, pattern, pattern, pattern).
		Order("position asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, catalog.AsFailure(catalog.OpSearchProducts, err)
	}
	return toProducts(rows), nil
}

func (g *Gateway) FetchBanners(ctx context.Context) ([]catalog.Banner, error) {
	var rows []models.CatalogBanner
	if err := g.db.WithContext(ctx).Order("position asc, id asc").Find(&rows).Error; err != nil {
		return nil, catalog.AsFailure(catalog.OpFetchBanners, err)
	}
	banners := make([]catalog.Banner, 0, len(rows))
	for _, row := range rows {
		banners = append(banners, catalog.Banner{
			ID:       row.ID,
			Image:    row.Image,
			Title:    deref(row.Title),
			Subtitle: deref(row.Subtitle),
		})
	}
	return banners, nil
}

func (g *Gateway) FetchPaymentMethods(ctx context.Context) ([]catalog.PaymentMethod, error) {
	var rows []models.CatalogPaymentMethod
	if err := g.db.WithContext(ctx).Order("position asc, id asc").Find(&rows).Error; err != nil {
		return nil, catalog.AsFailure(catalog.OpFetchPaymentMethods, err)
	}
	methods := make([]catalog.PaymentMethod, 0, len(rows))
	for _, row := range rows {
		methods = append(methods, catalog.PaymentMethod{ID: row.ID, Name: row.Name, Icon: deref(row.Icon)})
	}
	return methods, nil
}

// PlaceOrder stores the order after checking that the payment method exists.
func (g *Gateway) PlaceOrder(ctx context.Context, req catalog.OrderRequest) (*catalog.OrderConfirmation, error) {
	lines, err := json.Marshal(req.Lines)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order lines")
	}

	row := models.CatalogOrder{
		ID:              "ORD-" + uuid.NewString(),
		PaymentMethodID: req.PaymentMethodID,
		Total:           req.Total,
		Lines:           string(lines),
		PlacedAt:        g.now().UTC(),
	}

	err = g.client.WithTx(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CatalogPaymentMethod{}).Where("id = ?", req.PaymentMethodID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").
				WithDetails(map[string]any{"payment_method_id": req.PaymentMethodID})
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order already exists")
		}
		return nil, catalog.AsFailure(catalog.OpPlaceOrder, err)
	}

	return &catalog.OrderConfirmation{OrderID: row.ID, PlacedAt: row.PlacedAt}, nil
}

// Seed replaces the catalog contents; used by tests and the dev harness.
func (g *Gateway) Seed(ctx context.Context, products []catalog.Product, banners []catalog.Banner, methods []catalog.PaymentMethod) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{&models.CatalogOrder{}, &models.CatalogProduct{}, &models.CatalogBanner{}, &models.CatalogPaymentMethod{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("clear %T: %w", table, err)
			}
		}
		for i, p := range products {
			row := models.CatalogProduct{
				ID:          p.ID,
				Name:        p.Name,
				Price:       p.Price,
				Images:      dbtypes.StringList(p.Images),
				Description: p.Description,
				Tags:        dbtypes.StringList(p.Tags),
				Category:    p.Category,
				Position:    i + 1,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert product %s: %w", p.ID, err)
			}
		}
		for i, b := range banners {
			row := models.CatalogBanner{ID: b.ID, Image: b.Image, Title: optional(b.Title), Subtitle: optional(b.Subtitle), Position: i + 1}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert banner %s: %w", b.ID, err)
			}
		}
		for i, m := range methods {
			row := models.CatalogPaymentMethod{ID: m.ID, Name: m.Name, Icon: optional(m.Icon), Position: i + 1}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert payment method %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

func toProducts(rows []models.CatalogProduct) []catalog.Product {
	products := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toProduct(row))
	}
	return products
}

func toProduct(row models.CatalogProduct) catalog.Product {
	var tags []string
	if len(row.Tags) > 0 {
		tags = []string(row.Tags)
	}
	return catalog.Product{
		ID:          row.ID,
		Name:        row.Name,
		Price:       row.Price,
		Images:      []string(row.Images),
		Description: row.Description,
		Tags:        tags,
		Category:    row.Category,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
