package ai

// MockAnalysis returns the sample review served when no model is configured
// or every model call failed. Each call returns a fresh copy.
func MockAnalysis() *Analysis {
	return &Analysis{
		Summary:         "Temel kontrol: PDF başarıyla okundu, örnek analiz döndürülüyor.",
		MissingSections: []string{"Projects", "Certifications"},
		Suggestions: []string{
			"Experience bölümlerinde ölçülebilir çıktılar ekleyin (örn. %25 performans artışı).",
			"Teknik becerileri seviyeleriyle listeleyin (Beginner/Intermediate/Advanced).",
			"Eğitim bölümüne tarih ve derece bilgisi ekleyin.",
		},
		Scoring: Scoring{
			Structure: Score{Score: 72, Reason: "Başlıklar mevcut, ancak format tutarlılığı iyileştirilebilir."},
			Language:  Score{Score: 78, Reason: "Dil anlaşılır, bazı cümleler sadeleştirilebilir."},
			Relevance: Score{Score: 75, Reason: "Hedef role uygunluk orta seviyede; projeler eklenmeli."},
			Technical: Score{Score: 70, Reason: "Temel beceriler var, teknolojiler için detay eksik."},
			Clarity:   Score{Score: 80, Reason: "Bilgiler okunabilir, madde işaretleri yeterli."},
		},
		InterviewQuestions: InterviewQuestions{
			Technical: []string{
				"Recent projelerinde React performans optimizasyonlarını nasıl uyguladın?",
				"Node.js API tasarımında hata yönetimi ve logging stratejin nedir?",
			},
			Behavioral: []string{
				"Zorlayıcı bir deadline'da ekibinle nasıl çalıştın?",
				"Bir hatayı erken fark edip çözdüğün bir örnek anlatır mısın?",
			},
			RoleSpecific: []string{
				"Pozisyona uygun olarak CI/CD sürecini nasıl kurarsın?",
				"Ölçeklenebilir frontend mimarisi için hangi patternleri tercih edersin?",
			},
		},
	}
}
