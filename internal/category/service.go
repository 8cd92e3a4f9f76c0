package category

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	FindBySerial(marketID, serial int64) (*catalogDatamodel.Category, error)
	FindByMarket(marketID int64) ([]*catalogDatamodel.Category, error)
	FindByParentID(parentID int64) ([]*catalogDatamodel.Category, error)
	Create(c *catalogDatamodel.Category) error
	NextSerial(marketID int64) (int64, error)
	Transact(fn func(RepositoryAPI) error) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateCategory creates a category in the active market and returns its
// serial. A non-zero parent serial must name an existing category of the same
// market. Reference check, serial allocation and persistence run in one
// transaction so a failed create leaves nothing behind.
func (s *Service) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (int64, error) {
	if err := auth.Authorize(ctx, auth.PermissionCreateCategory); err != nil {
		return 0, err
	}
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return 0, err
	}

	var serial int64
	err = s.repo.Transact(func(repo RepositoryAPI) error {
		var parentID *int64
		if dto.ParentSerial != 0 {
			parent, txErr := repo.FindBySerial(market.ID, dto.ParentSerial)
			if txErr != nil {
				return txErr
			}
			if parent == nil {
				return internal.NewReferenceNotFoundError("category", dto.ParentSerial)
			}
			parentID = &parent.ID
		}

		var txErr error
		serial, txErr = repo.NextSerial(market.ID)
		if txErr != nil {
			return txErr
		}

		return repo.Create(&catalogDatamodel.Category{
			MarketID: market.ID,
			Serial:   serial,
			Name:     dto.Name,
			ParentID: parentID,
		})
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			s.logger.Error("failed to create category", "error", err, "market", market.Slug, "name", dto.Name)
		}
		return 0, err
	}

	s.logger.Info("created category", "market", market.Slug, "name", dto.Name, "serial", serial)
	return serial, nil
}

// GetBySerial looks up a category of the active market. Returns nil when the
// serial is unknown; callers decide whether that is a not-found or a dangling
// reference.
func (s *Service) GetBySerial(ctx context.Context, serial int64) (*Category, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	dataCategory, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "serial", serial)
		return nil, err
	}
	if dataCategory == nil {
		return nil, nil
	}
	return FromDataModel(dataCategory), nil
}

// GetCategoryTree returns the active market's categories as an ordered
// forest. Roots and children are both ordered by serial.
func (s *Service) GetCategoryTree(ctx context.Context) ([]CategoryNode, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	dataCategories, err := s.repo.FindByMarket(market.ID)
	if err != nil {
		s.logger.Error("failed to load categories", "error", err, "market", market.Slug)
		return nil, err
	}

	children := make(map[int64][]*catalogDatamodel.Category)
	var roots []*catalogDatamodel.Category
	for _, c := range dataCategories {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var build func(c *catalogDatamodel.Category) CategoryNode
	build = func(c *catalogDatamodel.Category) CategoryNode {
		node := CategoryNode{Serial: c.Serial, Name: c.Name}
		kids := children[c.ID]
		sort.Slice(kids, func(i, j int) bool { return kids[i].Serial < kids[j].Serial })
		for _, kid := range kids {
			node.Children = append(node.Children, build(kid))
		}
		return node
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].Serial < roots[j].Serial })
	forest := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		forest = append(forest, build(root))
	}
	return forest, nil
}

// SubtreeIDs collects the storage IDs of the category with the given serial
// and every transitive descendant, walking child links level by level.
func (s *Service) SubtreeIDs(ctx context.Context, serial int64) ([]int64, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	root, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, internal.NewSerialNotFoundError("category", serial)
	}

	ids := []int64{root.ID}
	queue := []int64{root.ID}
	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]

		kids, err := s.repo.FindByParentID(parentID)
		if err != nil {
			return nil, err
		}
		for _, kid := range kids {
			ids = append(ids, kid.ID)
			queue = append(queue, kid.ID)
		}
	}
	return ids, nil
}
