package config

// DefaultSapaMessage answers greetings and "who are you" questions
const DefaultSapaMessage = "Halo, saya ThemisAI, asisten hukum pidana Indonesia.\n\n" +
	"Saya dirancang untuk menjawab pertanyaan seputar hukum pidana " +
	"(KUHP, KUHAP, proses penyidikan, penuntutan, jenis delik, ancaman pidana, dsb.) " +
	"dan dapat membantu memberikan rekomendasi pengacara pidana.\n\n" +
	"Silakan ajukan pertanyaan terkait hukum pidana yang ingin Anda ketahui."

// DefaultNonPidanaMessage answers anything outside Indonesian criminal law
const DefaultNonPidanaMessage = "Maaf, saya hanya dapat membantu menjawab pertanyaan terkait hukum pidana di Indonesia.\n\n" +
	"Topik seperti hukum perdata, pajak, bisnis, waris, pernikahan, maupun " +
	"pertanyaan non-hukum tidak termasuk dalam cakupan saya.\n\n" +
	"Silakan ajukan pertanyaan lain yang secara jelas berkaitan dengan hukum pidana."
