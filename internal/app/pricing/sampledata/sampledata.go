// Package sampledata holds the demo catalog and special prices used by the
// seed command and the in-memory backend.
package sampledata

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/specialprice-service/internal/app/pricing/contracts"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/domain"
	"github.com/light-bringer/specialprice-service/internal/app/pricing/store"
)

type productSeed struct {
	name, description, price, category string
	stock                              int64
	image, sku, brand, rating          string
}

var catalog = []productSeed{
	{"MacBook Pro 16 M3 Max", "Laptop profesional con chip M3 Max, 32GB RAM, SSD 1TB", "3499.99", "Electrónicos", 8, "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500&h=300&fit=crop", "MBP16M3-001", "Apple", "4.9"},
	{"Dell XPS 13 Plus", "Ultrabook premium con Intel i7-13700H, 16GB RAM, pantalla OLED 4K", "1899.99", "Electrónicos", 12, "https://images.unsplash.com/photo-1593642632823-8f785ba67e45?w=500&h=300&fit=crop", "XPS13P-002", "Dell", "4.7"},
	{"ASUS ROG Strix G15", "Laptop gaming con AMD Ryzen 9, RTX 4070, pantalla 165Hz", "2299.99", "Electrónicos", 15, "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=500&h=300&fit=crop", "ROGSTX-003", "ASUS", "4.6"},
	{"Lenovo ThinkPad X1 Carbon", "Laptop empresarial ultraliviana, Intel i7, 16GB RAM", "1699.99", "Electrónicos", 20, "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=500&h=300&fit=crop", "TPX1C-004", "Lenovo", "4.5"},
	{"iPhone 15 Pro Max", "Smartphone premium con chip A17 Pro, cámara de 48MP, 256GB", "1299.99", "Electrónicos", 25, "https://images.unsplash.com/photo-1601784551446-20c9e07cdbdb?w=500&h=300&fit=crop", "IP15PM-005", "Apple", "4.8"},
	{"Samsung Galaxy S24 Ultra", "Smartphone Android flagship con S Pen, cámara 200MP", "1199.99", "Electrónicos", 30, "", "SGS24U-006", "Samsung", "4.7"},
	{"Google Pixel 8 Pro", "Smartphone con IA avanzada, 12GB RAM, 256GB", "999.99", "Electrónicos", 18, "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500&h=300&fit=crop", "GP8P-007", "Google", "4.6"},
	{"OnePlus 12", "Snapdragon 8 Gen 3, carga rápida 100W, 16GB RAM", "799.99", "Electrónicos", 22, "https://images.unsplash.com/photo-1574944985070-8f3ebc6b79d2?w=500&h=300&fit=crop", "OP12-008", "OnePlus", "4.5"},
	{"Sony WH-1000XM5", "Auriculares inalámbricos con cancelación de ruido", "399.99", "Audio", 45, "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=300&fit=crop", "SNWH1K-009", "Sony", "4.8"},
	{"AirPods Pro 2", "Auriculares con cancelación activa de ruido y audio espacial", "279.99", "Audio", 60, "https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?w=500&h=300&fit=crop", "APP2-010", "Apple", "4.7"},
	{"LG UltraGear 27GP950", "Monitor gaming 4K 144Hz Nano IPS", "799.99", "Monitores", 12, "", "LGUG27-013", "LG", "4.7"},
	{"Samsung Odyssey G9", "Monitor curvo 49 pulgadas 240Hz", "1299.99", "Monitores", 6, "", "SMODG9-014", "Samsung", "4.8"},
	{"Dell UltraSharp U2723QE", "Monitor 4K USB-C para productividad", "649.99", "Monitores", 18, "", "DLUS27-015", "Dell", "4.6"},
	{"Logitech MX Master 3S", "Mouse inalámbrico ergonómico de precisión", "109.99", "Periféricos", 50, "", "LGMX3S-016", "Logitech", "4.8"},
	{"Razer DeathAdder V3 Pro", "Mouse gaming inalámbrico ultraligero", "149.99", "Periféricos", 40, "", "RZDA3P-017", "Razer", "4.7"},
	{"iPad Pro 12.9 M2", "Tablet profesional con chip M2 y pantalla Liquid Retina XDR", "1199.99", "Tablets", 15, "", "IPP12M2-020", "Apple", "4.8"},
	{"Canon EOS R5", "Cámara mirrorless full frame 45MP, video 8K", "3899.99", "Fotografía", 5, "", "CNEOSR5-023", "Canon", "4.9"},
	{"PlayStation 5 Pro", "Consola de nueva generación con ray tracing mejorado", "699.99", "Gaming", 20, "", "PS5PRO-026", "Sony", "4.9"},
}

// Offer is a sample special price addressed by product SKU.
type Offer struct {
	UserID   string
	ClientID string
	SKU      string
	Price    string
}

// Offers are the sample special prices.
var Offers = []Offer{
	{"USR001", "CLI001", "MBP16M3-001", "2999.99"},
	{"USR001", "CLI001", "IP15PM-005", "1099.99"},
	{"USR001", "CLI001", "SNWH1K-009", "329.99"},
	{"USR002", "CLI002", "XPS13P-002", "1599.99"},
	{"USR002", "CLI002", "TPX1C-004", "1399.99"},
	{"USR002", "CLI002", "DLUS27-015", "549.99"},
	{"USR003", "CLI003", "ROGSTX-003", "1999.99"},
	{"USR003", "CLI003", "SMODG9-014", "1099.99"},
	{"USR003", "CLI003", "RZDA3P-017", "119.99"},
	{"USR003", "CLI003", "PS5PRO-026", "599.99"},
	{"USR004", "CLI004", "CNEOSR5-023", "3399.99"},
}

// Products returns a fresh copy of the sample catalog stamped with now.
func Products(now time.Time) []domain.Product {
	products := make([]domain.Product, 0, len(catalog))
	for _, s := range catalog {
		products = append(products, domain.Product{
			Name:        s.name,
			Description: s.description,
			BasePrice:   domain.MustMoney(s.price),
			Category:    s.category,
			Stock:       s.stock,
			Image:       s.image,
			SKU:         s.sku,
			Brand:       s.brand,
			Rating:      decimal.RequireFromString(s.rating),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return products
}

// SeedCatalog inserts the sample products and returns them keyed by SKU with
// their assigned ids.
func SeedCatalog(ctx context.Context, products contracts.ProductCatalog, now time.Time) (map[string]domain.Product, error) {
	bySKU := make(map[string]domain.Product, len(catalog))
	for _, p := range Products(now) {
		id, err := products.Insert(ctx, &p)
		if err != nil {
			return nil, fmt.Errorf("failed to insert %s: %w", p.SKU, err)
		}
		p.ID = id
		bySKU[p.SKU] = p
	}
	return bySKU, nil
}

// SeedOffers upserts every sample offer whose product is present in bySKU and
// returns how many records were created.
func SeedOffers(ctx context.Context, s *store.Store, bySKU map[string]domain.Product, now time.Time) (int, error) {
	created := 0
	for _, o := range Offers {
		p, ok := bySKU[o.SKU]
		if !ok {
			continue
		}
		result, err := s.Upsert(ctx, &store.UpsertRequest{
			Triple:       domain.Triple{UserID: o.UserID, ClientID: o.ClientID, ProductID: p.ID},
			SpecialPrice: domain.MustMoney(o.Price),
			BasePrice:    p.BasePrice,
			Snapshot:     p.Snapshot(),
			Now:          now,
		})
		if err != nil {
			return created, fmt.Errorf("failed to upsert offer %s/%s/%s: %w", o.UserID, o.ClientID, o.SKU, err)
		}
		if result.WasCreated {
			created++
		}
	}
	return created, nil
}
