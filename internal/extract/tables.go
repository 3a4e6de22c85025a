package extract

// Tables holds the data the extraction heuristics run on. Every field can be
// replaced from configuration; DefaultTables returns the built-in English and
// Turkish tables.
type Tables struct {
	// Aliases maps each canonical section to the header lines that open it.
	Aliases map[Section][]string
	// Skills is the ordered skill vocabulary.
	Skills []string
	// NameDenylist holds words that are never part of a person name.
	NameDenylist []string
	// Months holds month-name prefixes that open a new experience or education entry.
	Months []string
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	aliases := make(map[Section][]string, len(defaultAliases))
	for section, list := range defaultAliases {
		aliases[section] = append([]string(nil), list...)
	}

	return Tables{
		Aliases:      aliases,
		Skills:       append([]string(nil), defaultSkills...),
		NameDenylist: append([]string(nil), defaultNameDenylist...),
		Months:       append([]string(nil), defaultMonths...),
	}
}

// merge fills empty fields of t from def.
func (t Tables) merge(def Tables) Tables {
	if len(t.Aliases) == 0 {
		t.Aliases = def.Aliases
	}
	if len(t.Skills) == 0 {
		t.Skills = def.Skills
	}
	if t.NameDenylist == nil {
		t.NameDenylist = def.NameDenylist
	}
	if len(t.Months) == 0 {
		t.Months = def.Months
	}
	return t
}

var defaultAliases = map[Section][]string{
	SectionContact:        {"CONTACT", "CONTACT INFORMATION", "İLETİŞİM", "İLETİŞİM BİLGİLERİ"},
	SectionSkills:         {"SKILLS", "TECHNICAL SKILLS", "BECERİLER", "YETENEKLER", "YETKİNLİKLER"},
	SectionExperience:     {"EXPERIENCE", "WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EMPLOYMENT HISTORY", "DENEYİM", "DENEYİMLER", "İŞ DENEYİMİ"},
	SectionEducation:      {"EDUCATION", "EĞİTİM", "EĞİTİM BİLGİLERİ", "ÖĞRENİM"},
	SectionProjects:       {"PROJECTS", "PERSONAL PROJECTS", "PROJELER"},
	SectionReferences:     {"REFERENCES", "REFERANSLAR"},
	SectionLanguages:      {"LANGUAGES", "DİLLER", "YABANCI DİLLER"},
	SectionAwards:         {"AWARDS", "HONORS", "ÖDÜLLER"},
	SectionCertifications: {"CERTIFICATIONS", "CERTIFICATES", "SERTİFİKALAR"},
	SectionInterests:      {"INTERESTS", "HOBBIES", "HOBİLER", "İLGİ ALANLARI"},
}

var defaultSkills = []string{
	"HTML", "HTML5", "CSS", "CSS3", "JavaScript", "TypeScript", "React", "React.js",
	"Node.js", "Python", "Angular", "Next.js", "Tailwind", "Bootstrap", "Vue.js",
	"Vue", "Express", "Express.js", "MongoDB", "PostgreSQL", "MySQL", "SQL",
	"Git", "GitHub", "Docker", "Kubernetes", "AWS", "Azure", "GCP", "Firebase",
	"Redux", "MobX", "GraphQL", "REST", "API", "Jest", "Testing", "JUnit",
	"Selenium", "Cypress", "Webpack", "Vite", "NPM", "Yarn", "Linux", "Unix",
	"Java", "C++", "C#", ".NET", "PHP", "Ruby", "Go", "Rust", "Swift", "Kotlin",
	"Django", "Flask", "Spring", "Laravel", "Rails", "TensorFlow", "PyTorch",
	"Machine Learning", "AI", "Deep Learning", "Data Science", "Pandas", "NumPy",
	"Scikit-learn", "Tableau", "Power BI", "Excel", "Agile", "Scrum", "DevOps",
	"CI/CD", "Jenkins", "Travis CI", "CircleCI", "GitLab CI", "Microservices",
	"Serverless", "Lambda", "S3", "EC2", "RDS", "DynamoDB", "Redis", "Elasticsearch",
}

var defaultNameDenylist = []string{
	"UNIVERSITY", "ÜNİVERSİTESİ", "ÜNİVERSİTE", "COLLEGE", "INSTITUTE", "SCHOOL", "LİSESİ",
	"FACULTY", "FAKÜLTESİ", "DEPARTMENT", "BÖLÜMÜ", "COMPUTER", "BİLGİSAYAR", "SCIENCE",
	"TECHNOLOGY", "ENGINEER", "ENGINEERING", "MÜHENDİS", "MÜHENDİSİ", "MÜHENDİSLİĞİ",
	"SOFTWARE", "YAZILIM", "DEVELOPER", "GELİŞTİRİCİ", "SENIOR", "JUNIOR", "MANAGER",
	"INTERN", "STAJYER", "STUDENT", "ÖĞRENCİ", "FULL", "STACK", "FRONTEND", "BACKEND",
	"CURRICULUM", "VITAE", "RESUME", "ÖZGEÇMİŞ", "PROFILE", "PROFİL", "SUMMARY", "ÖZET",
	"OBJECTIVE", "CAREER", "KARİYER", "HEDEF", "PERSONAL", "INFORMATION", "KİŞİSEL",
	"BİLGİLER", "PHONE", "TELEFON", "EMAIL", "ADDRESS", "ADRES", "LINKEDIN",
}

var defaultMonths = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}
