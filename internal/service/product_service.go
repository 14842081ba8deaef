package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"leaar-backend/internal/domain"
	"leaar-backend/internal/repository"
)

// ErrProductNotFound indicates the product id does not resolve.
var ErrProductNotFound = errors.New("product not found")

// ProductInput carries the fields accepted on product creation.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int
	Image       string
}

// ProductPatch uses pointer fields so present-but-zero values still apply.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Stock       *int
	Image       *string
}

// ProductService is plain catalog CRUD with field validation and no
// ownership or state-machine semantics.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid(errors.New("product name is required"))
	}
	if in.Price < 0 {
		return nil, invalid(errors.New("price cannot be negative"))
	}
	if in.Stock < 0 {
		return nil, invalid(errors.New("stock cannot be negative"))
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "General"
	}

	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Stock:       in.Stock,
		Image:       strings.TrimSpace(in.Image),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalid(errors.New("product name is required"))
		}
		product.Name = name
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, invalid(errors.New("price cannot be negative"))
		}
		product.Price = *patch.Price
	}
	if patch.Description != nil {
		product.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			category = "General"
		}
		product.Category = category
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, invalid(errors.New("stock cannot be negative"))
		}
		product.Stock = *patch.Stock
	}
	if patch.Image != nil {
		product.Image = strings.TrimSpace(*patch.Image)
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
