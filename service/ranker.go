package service

import (
	"math"
	"sort"

	"themisai-backend/models"
	"themisai-backend/vectorindex"
)

// EarthRadiusKM is the mean Earth radius used by Haversine
const EarthRadiusKM = 6371.0

// Haversine returns the great-circle distance between two points in kilometers
func Haversine(a, b models.GeoPoint) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// SemanticScore maps an inner product of unit vectors from [-1,1] to [0,1]
func SemanticScore(similarity float64) float64 {
	return (similarity + 1) / 2
}

// DistanceScore is 1/(1+km), or 0 when the distance is unknown
func DistanceScore(distanceKM *float64) float64 {
	if distanceKM == nil {
		return 0
	}
	return 1 / (1 + *distanceKM)
}

// FuseScore weights the semantic score by alpha and the distance score by 1-alpha
func FuseScore(alpha, semantic, distance float64) float64 {
	return alpha*semantic + (1-alpha)*distance
}

// Rank scores candidates against origin and returns the best k.
// A nil origin leaves every distance unknown.
func Rank(origin *models.GeoPoint, candidates []vectorindex.Match[models.Lawyer], alpha float64, k int) []models.RankedLawyer {
	ranked := make([]models.RankedLawyer, 0, len(candidates))
	for _, c := range candidates {
		lawyer := c.Record
		entry := models.RankedLawyer{
			Name:          lawyer.Name,
			OfficeAddress: lawyer.OfficeAddress,
			Specialties:   lawyer.Specialties,
			SemanticScore: SemanticScore(c.Similarity),
		}

		if loc, ok := lawyer.Location(); ok {
			entry.Location = &loc
			if origin != nil {
				km := Haversine(*origin, loc)
				entry.DistanceKM = &km
			}
		}

		entry.FinalScore = FuseScore(alpha, entry.SemanticScore, DistanceScore(entry.DistanceKM))
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
