package levelbitmap

import (
	"math/bits"

	"github.com/holiman/uint256"
)

const (
	// bitsPerWord is the width of one bitmap word.
	bitsPerWord = 256

	// wordShift converts a compressed level to its word key.
	wordShift = 8

	// bitPosMask extracts the bit position of a compressed level within its word.
	bitPosMask = 0xFF
)

// Compress maps a level to its compressed bitmap key, flooring toward negative
// infinity. Plain integer division truncates toward zero, which would collapse
// levels in (-spacing, 0) onto compressed level 0; a level one unit below zero
// must land on compressed level -1 instead.
func Compress(level, spacing int64) int64 {
	compressed := level / spacing
	if level%spacing != 0 && level < 0 {
		compressed--
	}
	return compressed
}

// Decompress maps a compressed bitmap key back to its level.
func Decompress(compressed, spacing int64) int64 {
	return compressed * spacing
}

// Bitmap is a sparse set of active price levels. Levels are compressed by the
// configured spacing and stored one bit each in 256-bit words keyed by
// compressedLevel >> 8. The min/max/count caches always reflect the true
// bounds and cardinality of the set.
type Bitmap struct {
	spacing int64

	words map[int64]*uint256.Int

	// Cached bounds in compressed space, valid only while hasActive is true.
	minActive   int64
	maxActive   int64
	hasActive   bool
	activeCount int
}

// New returns an empty bitmap over an axis with the given level spacing.
func New(spacing int64) (*Bitmap, error) {
	if spacing <= 0 {
		return nil, InvalidSpacingError{Spacing: spacing}
	}

	return &Bitmap{
		spacing: spacing,
		words:   make(map[int64]*uint256.Int),
	}, nil
}

// Spacing returns the level spacing of the axis.
func (b *Bitmap) Spacing() int64 {
	return b.spacing
}

// Insert marks the level active. Inserting an already-active level is a no-op.
func (b *Bitmap) Insert(level int64) error {
	if level%b.spacing != 0 {
		return MisalignedLevelError{Level: level, Spacing: b.spacing}
	}

	compressed := Compress(level, b.spacing)
	wordKey, bitPos := position(compressed)

	word, ok := b.words[wordKey]
	if !ok {
		word = new(uint256.Int)
		b.words[wordKey] = word
	}

	bit := new(uint256.Int).Lsh(one(), bitPos)
	if !new(uint256.Int).And(word, bit).IsZero() {
		return nil
	}

	word.Or(word, bit)
	b.activeCount++

	// Bounds extend by direct comparison on insert. No search needed.
	if !b.hasActive {
		b.minActive = compressed
		b.maxActive = compressed
		b.hasActive = true
		return nil
	}
	if compressed < b.minActive {
		b.minActive = compressed
	}
	if compressed > b.maxActive {
		b.maxActive = compressed
	}

	return nil
}

// Remove marks the level inactive. Removing an already-inactive level is a
// no-op. When the removed level was a cached bound, the new bound is
// re-derived by walking the bitmap inward toward the opposite extreme.
func (b *Bitmap) Remove(level int64) error {
	if level%b.spacing != 0 {
		return MisalignedLevelError{Level: level, Spacing: b.spacing}
	}

	compressed := Compress(level, b.spacing)
	wordKey, bitPos := position(compressed)

	word, ok := b.words[wordKey]
	if !ok {
		return nil
	}

	bit := new(uint256.Int).Lsh(one(), bitPos)
	if new(uint256.Int).And(word, bit).IsZero() {
		return nil
	}

	word.And(word, new(uint256.Int).Not(bit))
	if word.IsZero() {
		delete(b.words, wordKey)
	}
	b.activeCount--

	if b.activeCount == 0 {
		b.hasActive = false
		return nil
	}

	// Only a boundary removal requires a search; interior removals leave the
	// cached bounds untouched.
	if compressed == b.minActive {
		next, found := b.nextActiveCompressed(compressed+1, false, b.maxActive)
		if !found {
			// activeCount > 0 guarantees a set bit at or below maxActive.
			next = b.maxActive
		}
		b.minActive = next
	}
	if compressed == b.maxActive {
		prev, found := b.nextActiveCompressed(compressed-1, true, b.minActive)
		if !found {
			prev = b.minActive
		}
		b.maxActive = prev
	}

	return nil
}

// IsActive reports whether the level is active. Levels off the spacing grid
// are never active.
func (b *Bitmap) IsActive(level int64) bool {
	if level%b.spacing != 0 {
		return false
	}

	wordKey, bitPos := position(Compress(level, b.spacing))
	word, ok := b.words[wordKey]
	if !ok {
		return false
	}

	return !new(uint256.Int).And(word, new(uint256.Int).Lsh(one(), bitPos)).IsZero()
}

// NextActive finds the nearest active level at or below fromLevel when lte is
// true, or strictly above fromLevel when lte is false, never crossing
// boundLevel. The search origin itself is excluded when lte is false. The
// second return value reports whether a level was found within the bound.
func (b *Bitmap) NextActive(fromLevel int64, lte bool, boundLevel int64) (int64, bool) {
	if !b.hasActive {
		return 0, false
	}

	from := Compress(fromLevel, b.spacing)
	bound := Compress(boundLevel, b.spacing)

	if lte {
		if bound < b.minActive {
			bound = b.minActive
		}
		compressed, found := b.nextActiveCompressed(from, true, bound)
		if !found {
			return 0, false
		}
		return Decompress(compressed, b.spacing), true
	}

	// Strictly-after search starts one compressed level past the origin, so
	// the origin can never be returned.
	if bound > b.maxActive {
		bound = b.maxActive
	}
	compressed, found := b.nextActiveCompressed(from+1, false, bound)
	if !found {
		return 0, false
	}
	return Decompress(compressed, b.spacing), true
}

// MinActive returns the lowest active level.
func (b *Bitmap) MinActive() (int64, bool) {
	if !b.hasActive {
		return 0, false
	}
	return Decompress(b.minActive, b.spacing), true
}

// MaxActive returns the highest active level.
func (b *Bitmap) MaxActive() (int64, bool) {
	if !b.hasActive {
		return 0, false
	}
	return Decompress(b.maxActive, b.spacing), true
}

// HasActive reports whether any level is active.
func (b *Bitmap) HasActive() bool {
	return b.hasActive
}

// ActiveCount returns the number of active levels.
func (b *Bitmap) ActiveCount() int {
	return b.activeCount
}

// nextActiveCompressed searches in compressed space, inclusive of from and
// bound on both ends. Downward (lte) scans mask away bits above the scan
// position and take the most significant survivor; upward scans mask away
// bits below and take the least significant survivor. Words between from and
// bound that are absent from the map are skipped wholesale.
func (b *Bitmap) nextActiveCompressed(from int64, lte bool, bound int64) (int64, bool) {
	if lte {
		if from < bound {
			return 0, false
		}

		wordKey, bitPos := position(from)
		boundWord, _ := position(bound)

		for ; wordKey >= boundWord; wordKey-- {
			word, ok := b.words[wordKey]
			if ok {
				masked := new(uint256.Int).And(word, maskAtOrBelow(bitPos))
				if !masked.IsZero() {
					candidate := wordKey*bitsPerWord + int64(msb(masked))
					if candidate < bound {
						return 0, false
					}
					return candidate, true
				}
			}
			bitPos = bitsPerWord - 1
		}
		return 0, false
	}

	if from > bound {
		return 0, false
	}

	wordKey, bitPos := position(from)
	boundWord, _ := position(bound)

	for ; wordKey <= boundWord; wordKey++ {
		word, ok := b.words[wordKey]
		if ok {
			masked := new(uint256.Int).And(word, maskAtOrAbove(bitPos))
			if !masked.IsZero() {
				candidate := wordKey*bitsPerWord + int64(lsb(masked))
				if candidate > bound {
					return 0, false
				}
				return candidate, true
			}
		}
		bitPos = 0
	}
	return 0, false
}

// position splits a compressed level into its word key and bit position.
// The arithmetic right shift floors toward negative infinity and the mask of
// the two's complement maps negative compressed levels onto the high bits of
// the word below, so compressed level -1 lands at bit 255 of word -1.
func position(compressed int64) (wordKey int64, bitPos uint) {
	return compressed >> wordShift, uint(compressed & bitPosMask)
}

// maskAtOrBelow returns a word with all bits at or below bitPos set.
func maskAtOrBelow(bitPos uint) *uint256.Int {
	mask := new(uint256.Int).Lsh(one(), bitPos+1)
	return mask.SubUint64(mask, 1)
}

// maskAtOrAbove returns a word with all bits at or above bitPos set.
func maskAtOrAbove(bitPos uint) *uint256.Int {
	below := new(uint256.Int).Lsh(one(), bitPos)
	below.SubUint64(below, 1)
	return below.Not(below)
}

func one() *uint256.Int {
	return uint256.NewInt(1)
}

func msb(word *uint256.Int) uint {
	return uint(word.BitLen() - 1)
}

func lsb(word *uint256.Int) uint {
	for i := 0; i < 4; i++ {
		if limb := word[i]; limb != 0 {
			return uint(i*64 + bits.TrailingZeros64(limb))
		}
	}
	return 0
}
