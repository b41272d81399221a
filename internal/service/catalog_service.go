package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationDetail is a location with its equipment resolved.
type LocationDetail struct {
	domain.Location
	Equipment []domain.Equipment `json:"equipment"`
}

// SeedResult counts what a catalog seed run created.
type SeedResult struct {
	EquipmentCreated int
	LocationsCreated int
	EquipmentLinked  int
}

type CatalogService interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	CreateEquipment(ctx context.Context, name, customName, category string) (*domain.Equipment, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, id primitive.ObjectID) (*LocationDetail, error)
	CreateLocation(ctx context.Context, name, category, address string, equipmentIDs []primitive.ObjectID) (*LocationDetail, error)
	// Seed inserts the built-in equipment catalog and starter locations.
	// Existing items are left alone, so it can be rerun.
	Seed(ctx context.Context) (*SeedResult, error)
}

type catalogService struct {
	equipmentRepo repository.EquipmentRepository
	locationRepo  repository.LocationRepository
}

func NewCatalogService(equipmentRepo repository.EquipmentRepository, locationRepo repository.LocationRepository) CatalogService {
	return &catalogService{
		equipmentRepo: equipmentRepo,
		locationRepo:  locationRepo,
	}
}

func (s *catalogService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx)
}

func (s *catalogService) CreateEquipment(ctx context.Context, name, customName, category string) (*domain.Equipment, error) {
	e := &domain.Equipment{
		Name:       strings.TrimSpace(name),
		CustomName: strings.TrimSpace(customName),
		Category:   strings.TrimSpace(category),
	}
	if e.DisplayName() == "" {
		return nil, ErrValidationFailed
	}
	if e.Category == "" {
		e.Category = "Miscellaneous"
	}

	if _, err := s.equipmentRepo.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEquipmentExists
		}
		return nil, err
	}
	return e, nil
}

func (s *catalogService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.locationRepo.List(ctx)
}

func (s *catalogService) GetLocation(ctx context.Context, id primitive.ObjectID) (*LocationDetail, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.GetByIDs(ctx, location.EquipmentIDs)
	if err != nil {
		return nil, err
	}
	return &LocationDetail{Location: *location, Equipment: equipment}, nil
}

func (s *catalogService) CreateLocation(ctx context.Context, name, category, address string, equipmentIDs []primitive.ObjectID) (*LocationDetail, error) {
	name, category = strings.TrimSpace(name), strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, ErrValidationFailed
	}

	equipment, err := s.equipmentRepo.GetByIDs(ctx, equipmentIDs)
	if err != nil {
		return nil, err
	}
	if len(equipment) != len(uniqueIDs(equipmentIDs)) {
		return nil, ErrValidationFailed
	}

	location := &domain.Location{
		Name:         name,
		Category:     category,
		Address:      strings.TrimSpace(address),
		EquipmentIDs: uniqueIDs(equipmentIDs),
	}
	if _, err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return &LocationDetail{Location: *location, Equipment: equipment}, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *catalogService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}
	byCategory := map[string][]primitive.ObjectID{}

	for _, item := range domain.EquipmentCatalog {
		e, err := s.equipmentRepo.GetByName(ctx, item.Name)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			e = &domain.Equipment{Name: item.Name, Category: item.Category}
			if _, err := s.equipmentRepo.Create(ctx, e); err != nil {
				return result, err
			}
			result.EquipmentCreated++
		case err != nil:
			return result, err
		}
		byCategory[item.Category] = append(byCategory[item.Category], e.ID)
	}

	for _, starter := range domain.StarterLocations {
		var ids []primitive.ObjectID
		for _, c := range starter.Categories {
			ids = append(ids, byCategory[c]...)
		}

		location, err := s.locationRepo.GetByName(ctx, starter.Name)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			location = &domain.Location{Name: starter.Name, Category: starter.Category}
			if _, err := s.locationRepo.Create(ctx, location); err != nil {
				return result, err
			}
			result.LocationsCreated++
		case err != nil:
			return result, err
		}

		if err := s.locationRepo.AddEquipment(ctx, location.ID, ids); err != nil {
			return result, err
		}
		result.EquipmentLinked += len(ids)
	}
	return result, nil
}
