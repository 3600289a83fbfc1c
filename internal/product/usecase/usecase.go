package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fekuna/omnipos-catalog-admin/internal/catalog"
	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
	"github.com/fekuna/omnipos-catalog-admin/internal/product/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrMutationInFlight rejects an update or delete for a product that already
// has one pending.
var ErrMutationInFlight = errors.New("another change to this product is still in progress")

// SessionExpirer ends the session when the API stops accepting its token.
type SessionExpirer interface {
	Expire(ctx context.Context) error
}

type productUseCase struct {
	repo       product.Repository
	collection *catalog.Collection
	session    SessionExpirer
	logger     logger.ZapLogger

	loads singleflight.Group

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewProductUseCase(repo product.Repository, collection *catalog.Collection, session SessionExpirer, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		collection: collection,
		session:    session,
		logger:     log,
		inflight:   map[string]struct{}{},
	}
}

// LoadProducts fetches the full product list into the collection. Concurrent
// callers share one request. Any failure ends the session.
func (uc *productUseCase) LoadProducts(ctx context.Context) (catalog.Snapshot, error) {
	_, err, _ := uc.loads.Do("products", func() (any, error) {
		products, err := uc.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		if err := uc.collection.Load(products); err != nil {
			return nil, fmt.Errorf("load products: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if rejectsSession(err) {
			uc.expire(ctx, "list products", err)
		} else {
			uc.logger.Warn("list products failed", zap.Error(err))
		}
		return catalog.Snapshot{}, err
	}

	snap := uc.collection.Snapshot()
	uc.logger.Info("products loaded", zap.Int("count", len(snap.Products)))
	return snap, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	p, err := uc.repo.Create(ctx, input)
	if err != nil {
		uc.mutationFailed(ctx, "create product", "", err)
		return nil, err
	}
	if err := uc.collection.Add(*p); err != nil {
		uc.logger.Error("created product rejected by collection", zap.String("product_id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("add created product: %w", err)
	}

	uc.logger.Info("product created", zap.String("product_id", p.ID), zap.String("category", p.Category))
	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	if id == "" {
		return nil, catalog.ErrMissingID
	}
	if err := uc.acquire(id); err != nil {
		return nil, err
	}
	defer uc.release(id)

	p, err := uc.repo.Update(ctx, id, input)
	if err != nil {
		uc.mutationFailed(ctx, "update product", id, err)
		return nil, err
	}
	found, err := uc.collection.Replace(id, *p)
	if err != nil {
		uc.logger.Error("updated product rejected by collection", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("replace updated product: %w", err)
	}
	if !found {
		uc.logger.Warn("updated product no longer in collection", zap.String("product_id", id))
	}

	uc.logger.Info("product updated", zap.String("product_id", id))
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return catalog.ErrMissingID
	}
	if err := uc.acquire(id); err != nil {
		return err
	}
	defer uc.release(id)

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.mutationFailed(ctx, "delete product", id, err)
		return err
	}
	if !uc.collection.Remove(id) {
		uc.logger.Warn("deleted product was not in collection", zap.String("product_id", id))
	}

	uc.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

func (uc *productUseCase) Categories() []string {
	return uc.collection.Categories()
}

func (uc *productUseCase) Snapshot() catalog.Snapshot {
	return uc.collection.Snapshot()
}

func (uc *productUseCase) acquire(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, busy := uc.inflight[id]; busy {
		return ErrMutationInFlight
	}
	uc.inflight[id] = struct{}{}
	return nil
}

func (uc *productUseCase) release(id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inflight, id)
}

// rejectsSession reports whether a list failure should end the session. A
// cancelled caller or a malformed list says nothing about the credential.
func rejectsSession(err error) bool {
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, catalog.ErrMissingID), errors.Is(err, catalog.ErrDuplicateID):
		return false
	}
	return true
}

func (uc *productUseCase) mutationFailed(ctx context.Context, op, id string, err error) {
	uc.logger.Error(op+" failed", zap.String("product_id", id), zap.Error(err))
	if gateway.IsUnauthorized(err) {
		uc.expire(ctx, op, err)
	}
}

func (uc *productUseCase) expire(ctx context.Context, op string, cause error) {
	uc.logger.Warn("session expired", zap.String("op", op), zap.Error(cause))
	if err := uc.session.Expire(ctx); err != nil {
		uc.logger.Error("clear session", zap.Error(err))
	}
}
