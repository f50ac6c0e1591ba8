package gamefinder

import "sync"

// Process-wide memoizing cache of the last full scan. Populated lazily on
// first read and kept for the process lifetime; callers that need fresh
// data must call InvalidateCache explicitly.
var (
	cacheMu    sync.Mutex
	cachedScan *GameScanResult
)

// DetectAllGamesCached returns the memoized scan, running the probes only
// on the first call. The returned result must be treated as read-only.
func DetectAllGamesCached() *GameScanResult {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cachedScan == nil {
		cachedScan = DetectAllGames()
	}
	return cachedScan
}

// InvalidateCache drops the memoized scan so the next read re-probes.
func InvalidateCache() {
	cacheMu.Lock()
	cachedScan = nil
	cacheMu.Unlock()
}
