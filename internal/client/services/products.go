package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/warrantyguard/internal/client/repositories/products"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// ProductService is the warranty record store: every mutation is persisted
// before it returns.
type ProductService interface {
	Add(ctx context.Context, draft warranty.Draft) (warranty.Product, error)
	Remove(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, products []warranty.Product) error
	List(ctx context.Context) ([]warranty.Product, error)
	Search(ctx context.Context, term string) ([]warranty.Product, error)
	Get(ctx context.Context, id string) (*warranty.Product, error)
}

type productService struct {
	repo  products.Repository
	newID func() (string, error)
}

func NewProductService(repo products.Repository) ProductService {
	return &productService{repo: repo, newID: warranty.NewID}
}

func (s *productService) Add(ctx context.Context, draft warranty.Draft) (warranty.Product, error) {
	id, err := s.newID()
	if err != nil {
		return warranty.Product{}, err
	}

	p, err := draft.Build(id)
	if err != nil {
		return warranty.Product{}, err
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return warranty.Product{}, fmt.Errorf("saving error: %w", err)
	}
	return p, nil
}

func (s *productService) Remove(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// ReplaceAll validates the whole list before touching the store, so a bad
// restore leaves local data as it was.
func (s *productService) ReplaceAll(ctx context.Context, list []warranty.Product) error {
	seen := make(map[string]struct{}, len(list))
	for i, p := range list {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, dup := seen[p.ID]; dup {
			return &warranty.ValidationError{Field: "id", Reason: fmt.Sprintf("duplicate id %q", p.ID)}
		}
		seen[p.ID] = struct{}{}
	}
	return s.repo.ReplaceAll(ctx, list)
}

func (s *productService) List(ctx context.Context) ([]warranty.Product, error) {
	return s.repo.GetAll(ctx)
}

// Search matches term case-insensitively against name or serial number.
// An empty term returns everything.
func (s *productService) Search(ctx context.Context, term string) ([]warranty.Product, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}

	result := make([]warranty.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.SerialNumber), term) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *productService) Get(ctx context.Context, id string) (*warranty.Product, error) {
	return s.repo.GetByID(ctx, id)
}
