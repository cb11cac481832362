package service

import (
	"fmt"
	"strings"

	"themisai-backend/models"
)

const unknownDistance = "Tidak diketahui"

// FormatRecommendation renders a recommendation outcome as Markdown-flavoured Indonesian text
func FormatRecommendation(location, caseDescription string, rec *Recommendation) string {
	if rec != nil && rec.Failed() {
		return RecommendationFailurePrefix + rec.Message
	}
	if rec == nil || len(rec.Lawyers) == 0 {
		return NoLawyerFoundMessage
	}

	if strings.TrimSpace(location) == "" {
		location = "(alamat tidak lengkap)"
	}

	lines := []string{
		fmt.Sprintf("**Lokasi Anda terdeteksi:**\n%s\n", location),
		fmt.Sprintf("**Deskripsi Kasus:**\n%s\n", caseDescription),
		"**Rekomendasi Pengacara Pidana**",
		"Berdasarkan lokasi & kecocokan spesialisasi, berikut pengacara yang paling relevan:\n",
	}

	for i, lawyer := range rec.Lawyers {
		lines = append(lines, formatLawyer(i+1, lawyer))
	}

	lines = append(lines, "---\n", MethodologyFooter)
	return strings.Join(lines, "\n")
}

func formatLawyer(n int, lawyer models.RankedLawyer) string {
	name := lawyer.Name
	if name == "" {
		name = "(tanpa nama)"
	}
	address := lawyer.OfficeAddress
	if address == "" {
		address = "-"
	}

	distance := unknownDistance
	if lawyer.DistanceKM != nil {
		distance = fmt.Sprintf("%.2f km", *lawyer.DistanceKM)
	}

	specialties := make([]string, 0, len(lawyer.Specialties))
	for _, s := range lawyer.Specialties {
		specialties = append(specialties, "- "+s)
	}

	return fmt.Sprintf("---\n"+
		"### **%d. %s**\n"+
		"*Jarak:* %s\n\n"+
		"*Spesialisasi:*\n%s\n\n"+
		"*Alamat:* %s\n\n"+
		"*Skor Sistem:* %.3f\n",
		n, name, distance, strings.Join(specialties, "\n"), address, lawyer.FinalScore)
}
