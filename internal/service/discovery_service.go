package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoLocation is returned from Nearby when the caller has not set a
// location on their profile yet.
var ErrNoLocation = errors.New("profile has no location set")

type DiscoveryService struct {
	userRepo  repository.UserRepository
	swipeRepo repository.SwipeRepository
	matchRepo repository.MatchRepository
}

func NewDiscoveryService(userRepo repository.UserRepository, swipeRepo repository.SwipeRepository, matchRepo repository.MatchRepository) *DiscoveryService {
	return &DiscoveryService{
		userRepo:  userRepo,
		swipeRepo: swipeRepo,
		matchRepo: matchRepo,
	}
}

// SwipeResult reports the outcome of a swipe; Match is set only when the
// swipe completed a mutual like.
type SwipeResult struct {
	Swipe   *domain.Swipe
	Matched bool
	Match   *domain.Match
}

// Swipe records a like/pass on a target user. A like that meets an existing
// like from the target creates a Match. The pair is stored in normalized
// order so the unique index makes a second concurrent create fail instead of
// producing a duplicate match.
func (s *DiscoveryService) Swipe(ctx context.Context, actorID, targetID uuid.UUID, liked bool) (*SwipeResult, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfSwipe
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	swipe := &domain.Swipe{
		ActorID:   actorID,
		TargetID:  targetID,
		Liked:     liked,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.swipeRepo.Upsert(ctx, swipe); err != nil {
		return nil, err
	}

	result := &SwipeResult{Swipe: swipe}
	if !liked {
		return result, nil
	}

	reverse, err := s.swipeRepo.Get(ctx, targetID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}
	if !reverse.Liked {
		return result, nil
	}

	match, err := s.ensureMatch(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	result.Matched = true
	result.Match = match
	return result, nil
}

func (s *DiscoveryService) ensureMatch(ctx context.Context, a, b uuid.UUID) (*domain.Match, error) {
	if existing, err := s.matchRepo.GetByPair(ctx, a, b); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	userA, userB := domain.NormalizePair(a, b)
	match := &domain.Match{
		ID:        uuid.New(),
		UserAID:   userA,
		UserBID:   userB,
		CreatedAt: time.Now(),
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		// A concurrent mutual swipe may have created the row first.
		if existing, getErr := s.matchRepo.GetByPair(ctx, a, b); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return match, nil
}

// NearbyUser is a discovery result with the distance from the caller.
type NearbyUser struct {
	User       *domain.User
	DistanceKm float64
}

// Nearby returns unlocked users with a stored location within rangeKm of the
// caller, closest first, excluding users the caller already swiped on. Plain
// haversine over the candidate set; there is deliberately no spatial index
// behind this.
func (s *DiscoveryService) Nearby(ctx context.Context, callerID uuid.UUID, rangeKm float64) ([]*NearbyUser, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !caller.HasLocation() {
		return nil, ErrNoLocation
	}

	swipes, err := s.swipeRepo.ListByActor(ctx, callerID)
	if err != nil {
		return nil, err
	}
	swiped := make(map[uuid.UUID]bool, len(swipes))
	for _, sw := range swipes {
		swiped[sw.TargetID] = true
	}

	candidates, err := s.userRepo.ListWithLocation(ctx, callerID)
	if err != nil {
		return nil, err
	}

	var nearby []*NearbyUser
	for _, candidate := range candidates {
		if swiped[candidate.ID] {
			continue
		}
		dist := haversineKm(*caller.Latitude, *caller.Longitude, *candidate.Latitude, *candidate.Longitude)
		if dist <= rangeKm {
			nearby = append(nearby, &NearbyUser{User: candidate, DistanceKm: dist})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	return nearby, nil
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
