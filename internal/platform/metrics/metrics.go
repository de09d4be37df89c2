package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DBConnections cuenta conexiones establecidas; con el conector lazy debería quedar en 1 por proceso.
	DBConnections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anime_tracker_db_connections_total",
		Help: "Storage connections established by this process",
	}, []string{"backend"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anime_tracker_http_requests_total",
		Help: "HTTP requests by method, route pattern and status",
	}, []string{"method", "route", "status"})

	ListingRevalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anime_tracker_listing_revalidations_total",
		Help: "Listing invalidations signalled after successful mutations",
	}, []string{"path"})
)

func init() {
	prometheus.MustRegister(DBConnections)
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(ListingRevalidations)
}
