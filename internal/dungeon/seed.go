package dungeon

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// FloorSeed derives the generation seed for one floor of a run.
func FloorSeed(runSeed int64, floor int) int64 {
	return int64(splitmix64(uint64(runSeed) ^ splitmix64(uint64(floor)+1)))
}

// RoomSeed derives the spawn seed for one room. It depends only on the run
// seed, floor index and the room's grid position, so a room spawns the same
// contents whatever order rooms are visited in.
func RoomSeed(runSeed int64, floor int, gp GridPos) int64 {
	h := splitmix64(uint64(FloorSeed(runSeed, floor)))
	h = splitmix64(h ^ uint64(uint32(int32(gp.X))))
	h = splitmix64(h ^ uint64(uint32(int32(gp.Y)))<<32)
	return int64(h)
}

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// VariantSalt is a stable per-room hash used by renderers to pick tile
// variants without depending on draw order.
func VariantSalt(kind Kind, gp GridPos, w, h int) uint32 {
	f := fnv.New32a()
	f.Write([]byte(string(kind)))
	f.Write([]byte{':'})
	f.Write([]byte(gp.String()))
	f.Write([]byte{':'})
	f.Write([]byte(strconv.Itoa(w) + "x" + strconv.Itoa(h)))
	return f.Sum32()
}
