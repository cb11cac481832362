package service

import (
	"testing"

	"themisai-backend/models"
	"themisai-backend/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	bandung := models.GeoPoint{Lat: -6.9175, Lon: 107.6191}
	surabaya := models.GeoPoint{Lat: -7.2575, Lon: 112.7521}

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, Haversine(jakartaSelatan, bandung), Haversine(bandung, jakartaSelatan))
		assert.Equal(t, Haversine(bandung, surabaya), Haversine(surabaya, bandung))
	})

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(bandung, bandung))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := Haversine(models.GeoPoint{Lat: 0, Lon: 100}, models.GeoPoint{Lat: 1, Lon: 100})
		assert.InDelta(t, EarthRadiusKM*3.141592653589793/180, d, 1e-9)
	})
}

func TestScores(t *testing.T) {
	assert.Equal(t, 0.0, SemanticScore(-1))
	assert.Equal(t, 0.5, SemanticScore(0))
	assert.Equal(t, 1.0, SemanticScore(1))

	assert.Equal(t, 0.0, DistanceScore(nil))
	assert.Equal(t, 1.0, DistanceScore(ptr(0.0)))
	assert.InDelta(t, 1.0/11, DistanceScore(ptr(10.0)), 1e-12)

	assert.InDelta(t, 0.6*0.8+0.4*0.5, FuseScore(0.6, 0.8, 0.5), 1e-12)
}

func TestFuseScore_Monotonic(t *testing.T) {
	for _, alpha := range []float64{0.1, 0.6, 0.9} {
		dist := DistanceScore(ptr(12.5))
		prev := FuseScore(alpha, 0, dist)
		for sem := 0.1; sem <= 1.0; sem += 0.1 {
			cur := FuseScore(alpha, sem, dist)
			assert.Greater(t, cur, prev, "alpha=%v sem=%v", alpha, sem)
			prev = cur
		}

		prev = FuseScore(alpha, 0.7, DistanceScore(ptr(0.0)))
		for km := 1.0; km < 1000; km *= 3 {
			cur := FuseScore(alpha, 0.7, DistanceScore(ptr(km)))
			assert.Less(t, cur, prev, "alpha=%v km=%v", alpha, km)
			prev = cur
		}
	}
}

func TestRank_MissingCoordinatesArePenalised(t *testing.T) {
	candidates := []vectorindex.Match[models.Lawyer]{
		{Record: lawyer("Tanpa Lokasi", nil, nil, "pidana"), Similarity: 0.9},
		{Record: lawyer("Dekat", ptr(-6.26), ptr(106.81), "pidana"), Similarity: 0.9},
	}

	ranked := Rank(&jakartaSelatan, candidates, 0.6, 3)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Dekat", ranked[0].Name)
	assert.NotNil(t, ranked[0].DistanceKM)
	assert.Equal(t, "Tanpa Lokasi", ranked[1].Name)
	assert.Nil(t, ranked[1].DistanceKM)
	assert.InDelta(t, 0.6*SemanticScore(0.9), ranked[1].FinalScore, 1e-12)
}

func TestRank_StableOnTies(t *testing.T) {
	var candidates []vectorindex.Match[models.Lawyer]
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		candidates = append(candidates, vectorindex.Match[models.Lawyer]{Record: lawyer(name, nil, nil), Similarity: 0.4})
	}

	ranked := Rank(&jakartaSelatan, candidates, 0.6, 10)
	names := make([]string, 0, len(ranked))
	for _, r := range ranked {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
}

func TestRank_GeoCanReorderSemanticResults(t *testing.T) {
	candidates := []vectorindex.Match[models.Lawyer]{
		{Record: lawyer("Jauh", ptr(3.59), ptr(98.67)), Similarity: 0.80},  // Medan
		{Record: lawyer("Dekat", ptr(-6.25), ptr(106.80)), Similarity: 0.70}, // Jakarta Selatan
	}

	ranked := Rank(&jakartaSelatan, candidates, 0.6, 1)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Dekat", ranked[0].Name)

	semantic := Rank(nil, candidates, 1, 1)
	assert.Equal(t, "Jauh", semantic[0].Name)
	assert.Nil(t, semantic[0].DistanceKM)
	assert.NotNil(t, semantic[0].Location)
}

func TestRank_JakartaSelatanScenario(t *testing.T) {
	var candidates []vectorindex.Match[models.Lawyer]
	for i := 0; i < 50; i++ {
		sim := 0.95 - float64(i)*0.03
		var lat, lon *float64
		if i%3 != 0 {
			lat, lon = ptr(-6.2+float64(i)*0.05), ptr(106.8+float64(i)*0.02)
		}
		candidates = append(candidates, vectorindex.Match[models.Lawyer]{
			Record:     lawyer(string(rune('A'+i%26))+string(rune('a'+i/26)), lat, lon, "penipuan online"),
			Similarity: sim,
		})
	}

	ranked := Rank(&jakartaSelatan, candidates, 0.6, 3)
	require.LessOrEqual(t, len(ranked), 3)
	require.NotEmpty(t, ranked)
	for i, r := range ranked {
		assert.GreaterOrEqual(t, r.FinalScore, 0.0)
		assert.LessOrEqual(t, r.FinalScore, 1.0)
		assert.GreaterOrEqual(t, r.SemanticScore, 0.0)
		assert.LessOrEqual(t, r.SemanticScore, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, ranked[i-1].FinalScore, r.FinalScore)
		}
	}
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(&jakartaSelatan, nil, 0.6, 3))
}
