package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"front_desk/internal/domain"
	"front_desk/internal/storage/memory"
)

// CatalogService manages the convenience-store products.
type CatalogService struct{ *deps }

// AddProduct registers a product; price is the text typed into the form.
func (s *CatalogService) AddProduct(ctx context.Context, name, price string) (domain.Product, error) {
	ve := domain.NewValidationError()
	name = strings.TrimSpace(name)
	if name == "" {
		ve.Add("name", "provide the product name")
	}
	amount, err := domain.ParsePrice(price)
	if err != nil {
		if pe, ok := domain.AsValidation(err); ok {
			for _, msg := range pe.Fields()["price"] {
				ve.Add("price", msg)
			}
		}
	}
	if err := ve.Err(); err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{ID: s.newID(), Name: name, Price: amount}
	if err := s.store.Update(ctx, func(tx *memory.Tx) error {
		return tx.Products.Insert(p)
	}); err != nil {
		return domain.Product{}, err
	}
	log.Info().Str("product", p.ID).Str("name", p.Name).Str("price", p.Price.StringFixed(2)).Msg("product added")
	return p, nil
}

// RemoveProduct drops the product from the catalog. Purchases keep their
// own copy of name and price.
func (s *CatalogService) RemoveProduct(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *memory.Tx) error {
		return tx.Products.Remove(id)
	})
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		var err error
		p, err = tx.Products.Get(id)
		return err
	})
	return p, err
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := s.store.View(ctx, func(tx *memory.Tx) error {
		out = tx.Products.List(nil)
		return nil
	})
	return out, err
}
