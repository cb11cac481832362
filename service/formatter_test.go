package service

import (
	"errors"
	"strings"
	"testing"

	"themisai-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatRecommendation_Failure(t *testing.T) {
	rec := &Recommendation{Reason: ErrGeocodeFailed, Message: GeocodeFailedMessage}
	got := FormatRecommendation("Jakarta Selatan", "penipuan online", rec)
	assert.Equal(t, RecommendationFailurePrefix+GeocodeFailedMessage, got)
}

func TestFormatRecommendation_Empty(t *testing.T) {
	assert.Equal(t, NoLawyerFoundMessage, FormatRecommendation("Bandung", "kasus", &Recommendation{}))
	assert.Equal(t, NoLawyerFoundMessage, FormatRecommendation("Bandung", "kasus", nil))
}

func TestFormatRecommendation_List(t *testing.T) {
	rec := &Recommendation{
		Location: "Jl. Sudirman, Jakarta Selatan",
		Lawyers: []models.RankedLawyer{
			{Name: "Andi, S.H.", OfficeAddress: "Jl. Kemang Raya 1", Specialties: []string{"Pidana Umum", "Penipuan"},
				DistanceKM: ptr(3.14159), FinalScore: 0.81234},
			{Name: "", Specialties: nil, FinalScore: 0.5},
		},
	}

	got := FormatRecommendation(rec.Location, "penipuan online", rec)

	assert.True(t, strings.HasPrefix(got, "**Lokasi Anda terdeteksi:**\nJl. Sudirman, Jakarta Selatan\n"))
	assert.Contains(t, got, "**Deskripsi Kasus:**\npenipuan online\n")
	assert.Contains(t, got, "### **1. Andi, S.H.**\n*Jarak:* 3.14 km\n")
	assert.Contains(t, got, "*Spesialisasi:*\n- Pidana Umum\n- Penipuan\n")
	assert.Contains(t, got, "*Alamat:* Jl. Kemang Raya 1")
	assert.Contains(t, got, "*Skor Sistem:* 0.812\n")
	assert.Contains(t, got, "### **2. (tanpa nama)**\n*Jarak:* Tidak diketahui\n")
	assert.Contains(t, got, "*Alamat:* -")
	assert.Contains(t, got, "*Skor Sistem:* 0.500\n")
	assert.True(t, strings.HasSuffix(got, MethodologyFooter))

	assert.Equal(t, got, FormatRecommendation(rec.Location, "penipuan online", rec))
}

func TestFormatRecommendation_MissingLocation(t *testing.T) {
	rec := &Recommendation{Lawyers: []models.RankedLawyer{{Name: "A"}}}
	assert.Contains(t, FormatRecommendation(" ", "kasus", rec), "(alamat tidak lengkap)")
}

func TestRecommendation_Failed(t *testing.T) {
	assert.False(t, (&Recommendation{}).Failed())
	assert.True(t, (&Recommendation{Reason: errors.New("x")}).Failed())
}
