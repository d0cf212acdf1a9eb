package auctionrepo

import (
	"sync"

	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// PositionRepository stores bid positions in an arena keyed by a stable,
// monotonically increasing identifier. Identifiers start at 1; 0 is reserved
// as "not found". Positions are never deleted, so claim history stays
// queryable after removal.
type PositionRepository interface {
	// Open stores a new position and returns its identifier. The ID field of
	// the argument is ignored.
	Open(position domain.Position) uint64

	// Get returns the position with the given identifier.
	Get(positionID uint64) (domain.Position, bool)

	// Update overwrites a previously opened position, keyed by its ID.
	Update(position domain.Position) bool

	// GetByOwner returns all positions ever opened by the owner, in creation
	// order.
	GetByOwner(owner string) []domain.Position

	// Count returns the number of positions ever opened. Identifiers are the
	// dense range [1, Count].
	Count() int
}

type positionRepositoryImpl struct {
	lock sync.RWMutex

	// arena holds position i at index i-1 and never shrinks.
	arena      []domain.Position
	ownerIndex map[string][]uint64
}

var _ PositionRepository = &positionRepositoryImpl{}

func New() *positionRepositoryImpl {
	return &positionRepositoryImpl{
		ownerIndex: map[string][]uint64{},
	}
}

// Open implements PositionRepository.
func (r *positionRepositoryImpl) Open(position domain.Position) uint64 {
	r.lock.Lock()
	defer r.lock.Unlock()

	position.ID = uint64(len(r.arena)) + 1
	r.arena = append(r.arena, position)
	r.ownerIndex[position.Owner] = append(r.ownerIndex[position.Owner], position.ID)

	return position.ID
}

// Get implements PositionRepository.
func (r *positionRepositoryImpl) Get(positionID uint64) (domain.Position, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if positionID == 0 || positionID > uint64(len(r.arena)) {
		return domain.Position{}, false
	}

	return r.arena[positionID-1], true
}

// Update implements PositionRepository.
func (r *positionRepositoryImpl) Update(position domain.Position) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	if position.ID == 0 || position.ID > uint64(len(r.arena)) {
		return false
	}

	r.arena[position.ID-1] = position
	return true
}

// GetByOwner implements PositionRepository.
func (r *positionRepositoryImpl) GetByOwner(owner string) []domain.Position {
	r.lock.RLock()
	defer r.lock.RUnlock()

	positionIDs, ok := r.ownerIndex[owner]
	if !ok {
		return nil
	}

	positions := make([]domain.Position, 0, len(positionIDs))
	for _, positionID := range positionIDs {
		positions = append(positions, r.arena[positionID-1])
	}

	return positions
}

// Count implements PositionRepository.
func (r *positionRepositoryImpl) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.arena)
}
