// Package transit defines the domain types shared between the assistant core
// and the transit data backend, plus the HTTP client used to reach it.
package transit

import "time"

// TrainStatusActive marks trains that are currently in service.
const TrainStatusActive = "Active"

// Train describes a single train in the system.
type Train struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	TrainNumber string `json:"trainNumber,omitempty"`
	Route       string `json:"route"`
	Status      string `json:"status"`
	Type        string `json:"type,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

// Schedule describes one scheduled run between two stations.
type Schedule struct {
	ID            string `json:"_id"`
	TrainName     string `json:"trainName"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureTime string `json:"departureTime"`
}

// Notice is a system announcement shown to riders.
type Notice struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActiveTrains filters a train list down to those in service,
// preserving order.
func ActiveTrains(trains []Train) []Train {
	var active []Train
	for _, tr := range trains {
		if tr.Status == TrainStatusActive {
			active = append(active, tr)
		}
	}
	return active
}
