package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"reparto_tracker/internal/models"
)

const routeListNamespace = "routes:list"

// ReportKey is the cache key of a route's report.
func ReportKey(routeID uint) string {
	return fmt.Sprintf("routes:report:%d", routeID)
}

func listKey(gen int64, f models.RouteFilter) string {
	day := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	driver := "-"
	if f.DriverID != nil {
		driver = f.DriverID.String()
	}
	return fmt.Sprintf("%s:%d:%s:%s:%s", routeListNamespace, gen, day(f.From), day(f.To), driver)
}

// cacheWarn logs a cache failure. The cache is an optimisation, so callers carry on
// against the datastore.
func cacheWarn(err error, msg string) {
	logrus.WithError(err).Warn(msg)
}
