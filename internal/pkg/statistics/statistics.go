package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/cinelog/cinelog/app/repository"
	"github.com/cinelog/cinelog/internal/pkg/cache"
)

const (
	CacheKeyUsers   = "statistics:users:total"
	CacheKeyTracked = "statistics:movies:tracked"
	CacheExpiration = 30 * time.Minute
)

// StatisticsData holds the site totals shown on the home page
type StatisticsData struct {
	TotalUsers    int
	TrackedMovies int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// UpdateCacheIfNeeded refreshes the cached totals when they are stale.
func UpdateCacheIfNeeded() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	if time.Since(lastCacheUpdate) <= cacheUpdateInterval {
		return
	}

	if err := UpdateStatisticsCache(); err != nil {
		log.Printf("failed to update statistics cache: %v", err)
		return
	}
	lastCacheUpdate = time.Now()
}

// UpdateStatisticsCache recounts the totals and writes them to the cache.
func UpdateStatisticsCache() error {
	repos := repository.GetGlobalRepositories()

	users, err := repos.User.Count()
	if err != nil {
		return err
	}
	tracked, err := repos.MovieList.Count()
	if err != nil {
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(users, 10), CacheExpiration); err != nil {
		return err
	}
	return cache.Set(CacheKeyTracked, strconv.FormatInt(tracked, 10), CacheExpiration)
}

// GetStatistics returns the cached totals, refreshing them when missing.
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	data := StatisticsData{}
	if v, err := cache.GetInt(CacheKeyUsers); err == nil {
		data.TotalUsers = v
	}
	if v, err := cache.GetInt(CacheKeyTracked); err == nil {
		data.TrackedMovies = v
	}
	return data
}
