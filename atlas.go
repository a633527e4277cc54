package smallpath

import (
	"errors"
	"image"
)

// AtlasID identifies one reclaimable atlas region generation. An ID
// becomes non-resident when its region is evicted; IDs are never reused.
type AtlasID uint64

// invalidAtlasID is never returned by a successful insertion.
const invalidAtlasID AtlasID = 0

// DrawToken orders draw submissions. Tokens increase monotonically; the
// atlas uses them to tell which regions are referenced by the submission
// currently being built and must not be reclaimed.
type DrawToken uint64

// ErrAtlasFull is returned by Atlas.Insert when no region can hold the
// mask without evicting a region still referenced by the in-flight draw.
var ErrAtlasFull = errors.New("smallpath: atlas full")

// ErrMaskTooLarge is returned by Atlas.Insert when a mask exceeds the
// atlas region size and can never be stored.
var ErrMaskTooLarge = errors.New("smallpath: mask larger than atlas plot")

// EvictionHandler is notified when the atlas reclaims a region. The
// handler must purge every cache entry referencing the evicted ID before
// returning; the notification is synchronous and may re-enter the
// handler's data structures from inside an Insert call.
type EvictionHandler interface {
	OnEvicted(id AtlasID)
}

// Atlas is the texture-atlas service masks are stored in.
//
// Implementations own the packing policy and the eviction policy; the
// renderer only relies on the contract that evictions are reported
// through the EvictionHandler before the evicted ID stops being resident.
type Atlas interface {
	// Insert stores a width x height single-channel mask and returns its
	// identifier and texel location. Returns ErrAtlasFull when space can
	// only be made by evicting an in-flight region; the caller may flush
	// its pending draw and retry.
	Insert(width, height int, pixels []byte) (AtlasID, image.Point, error)

	// IsResident reports whether id still refers to stored texels.
	IsResident(id AtlasID) bool

	// MarkLastUse records that id is referenced by the draw submission
	// identified by token, protecting it from eviction until a later
	// submission begins.
	MarkLastUse(id AtlasID, token DrawToken)

	// AdvanceToken records that the submission under construction is now
	// the one identified by token. Regions last used under an older
	// token are no longer in flight and become evictable. Callers invoke
	// it after handing a draw to the target.
	AdvanceToken(token DrawToken)
}
