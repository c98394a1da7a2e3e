package service

import (
	"fmt"
	"time"

	"mindmate/internal/domain"
)

// LocationHistoryCap limita la ventana de muestras a las últimas 10.
const LocationHistoryCap = 10

// bucketPrecision: 3 decimales ≈ celda de 111 metros.
const bucketPrecision = 3

// LocationEngine agrupa muestras de GPS en celdas y elige la dominante.
type LocationEngine struct{}

// DefaultLocationEngine permite uso directo sin instanciar.
var DefaultLocationEngine = LocationEngine{}

// AppendSample agrega la muestra nueva y recorta la ventana a las últimas
// LocationHistoryCap entradas, descartando desde el frente.
func (LocationEngine) AppendSample(history []domain.GeoSample, sample domain.GeoSample) []domain.GeoSample {
	history = append(history, sample)
	if len(history) > LocationHistoryCap {
		history = history[len(history)-LocationHistoryCap:]
	}
	return history
}

// locationBucket acumula las muestras que caen en la misma celda. Guarda las
// coordenadas crudas de la primera muestra vista como representativas.
type locationBucket struct {
	key        string
	count      int
	latitude   float64
	longitude  float64
	timestamps []string
}

// ClusterMostFrequent devuelve la celda con más muestras, o nil si la historia
// está vacía. Los empates se resuelven a favor de la celda que apareció primero
// en el input: es un contrato de determinismo, no un accidente, por eso los
// buckets viven en un slice ordenado y no en un map.
func (LocationEngine) ClusterMostFrequent(history []domain.GeoSample) *domain.FrequentLocation {
	if len(history) == 0 {
		return nil
	}

	var buckets []*locationBucket
	index := make(map[string]*locationBucket, len(history))

	for _, loc := range history {
		key := bucketKey(loc.Latitude, loc.Longitude)
		b, ok := index[key]
		if !ok {
			b = &locationBucket{
				key:       key,
				latitude:  loc.Latitude,
				longitude: loc.Longitude,
			}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.count++
		b.timestamps = append(b.timestamps, loc.Timestamp)
	}

	winner := buckets[0]
	for _, b := range buckets[1:] {
		if b.count > winner.count {
			winner = b
		}
	}

	return &domain.FrequentLocation{
		Latitude:    winner.latitude,
		Longitude:   winner.longitude,
		Frequency:   winner.count,
		LastVisited: latestTimestamp(winner.timestamps),
	}
}

func bucketKey(lat, lon float64) string {
	return fmt.Sprintf("%.*f,%.*f", bucketPrecision, lat, bucketPrecision, lon)
}

// latestTimestamp devuelve el máximo timestamp parseable en RFC3339. Las
// entradas malformadas se saltan en lugar de abortar la agregación; si ninguna
// parsea, devuelve string vacío.
func latestTimestamp(timestamps []string) string {
	var (
		best    time.Time
		bestRaw string
	)
	for _, raw := range timestamps {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		if bestRaw == "" || t.After(best) {
			best = t
			bestRaw = raw
		}
	}
	return bestRaw
}
